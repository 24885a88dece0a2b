// internal/app/store/files/filestore.go
package filestore

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dalemusser/surveyhub/internal/domain/models"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("files")}
}

// Create inserts a file metadata record. The bytes on disk are managed
// by the upload handler; this only records what was written.
func (s *Store) Create(ctx context.Context, f models.File) (models.File, error) {
	f.ID = primitive.NewObjectID()
	f.CreatedAt = time.Now().UTC()
	if _, err := s.c.InsertOne(ctx, f); err != nil {
		return models.File{}, err
	}
	return f, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.File, error) {
	var f models.File
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&f)
	if err != nil {
		return models.File{}, err
	}
	return f, nil
}

// FindByResponse returns a response's attachments in upload order.
func (s *Store) FindByResponse(ctx context.Context, responseID primitive.ObjectID) ([]models.File, error) {
	cur, err := s.c.Find(ctx, bson.M{"response_id": responseID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var fs []models.File
	if err := cur.All(ctx, &fs); err != nil {
		return nil, err
	}
	return fs, nil
}

// Delete removes a file record by ID. Returns the number of documents deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// DeleteByResponse removes every file record attached to a response and
// returns the deleted records so the caller can remove the bytes on disk.
func (s *Store) DeleteByResponse(ctx context.Context, responseID primitive.ObjectID) ([]models.File, error) {
	files, err := s.FindByResponse(ctx, responseID)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, nil
	}
	if _, err := s.c.DeleteMany(ctx, bson.M{"response_id": responseID}); err != nil {
		return nil, err
	}
	return files, nil
}

// Count returns the number of file records matching the given filter.
func (s *Store) Count(ctx context.Context, filter bson.M) (int64, error) {
	return s.c.CountDocuments(ctx, filter)
}

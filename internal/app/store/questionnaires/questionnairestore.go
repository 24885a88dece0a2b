// internal/app/store/questionnaires/questionnairestore.go
package questionnairestore

import (
	"context"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
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
	return &Store{c: db.Collection("questionnaires")}
}

// Create inserts a questionnaire with its embedded questions. Question
// IDs and 1-based order are assigned here from the slice order, so the
// template and its questions appear atomically.
func (s *Store) Create(ctx context.Context, q models.Questionnaire) (models.Questionnaire, error) {
	now := time.Now().UTC()
	q.ID = primitive.NewObjectID()
	q.TitleCI = text.Fold(q.Title)
	q.IsActive = true
	q.CreatedAt = now
	q.UpdatedAt = now
	for i := range q.Questions {
		q.Questions[i].ID = primitive.NewObjectID()
		q.Questions[i].Order = i + 1
	}
	if _, err := s.c.InsertOne(ctx, q); err != nil {
		return models.Questionnaire{}, err
	}
	return q, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Questionnaire, error) {
	var q models.Questionnaire
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&q)
	if err != nil {
		return models.Questionnaire{}, err
	}
	return q, nil
}

// SetActive flips the active flag. Deactivated questionnaires stay
// loadable by ID so existing responses keep their template.
func (s *Store) SetActive(ctx context.Context, id primitive.ObjectID, active bool) error {
	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"is_active":  active,
		"updated_at": time.Now().UTC(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// Find returns questionnaires matching the given filter with optional find options.
func (s *Store) Find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.Questionnaire, error) {
	cur, err := s.c.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var qs []models.Questionnaire
	if err := cur.All(ctx, &qs); err != nil {
		return nil, err
	}
	return qs, nil
}

// FindActive returns active questionnaires sorted by folded title.
func (s *Store) FindActive(ctx context.Context) ([]models.Questionnaire, error) {
	return s.Find(ctx, bson.M{"is_active": true},
		options.Find().SetSort(bson.D{{Key: "title_ci", Value: 1}}))
}

// FindAll returns every questionnaire, active or not, sorted by folded title.
func (s *Store) FindAll(ctx context.Context) ([]models.Questionnaire, error) {
	return s.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "title_ci", Value: 1}}))
}

// Count returns the number of questionnaires matching the given filter.
func (s *Store) Count(ctx context.Context, filter bson.M) (int64, error) {
	return s.c.CountDocuments(ctx, filter)
}

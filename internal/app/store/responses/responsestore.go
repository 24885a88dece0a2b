// internal/app/store/responses/responsestore.go
package responsestore

import (
	"context"
	"errors"
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

// ErrRevisionConflict means the document changed between the caller's
// read and its write. The caller should re-read and retry or surface a
// conflict.
var ErrRevisionConflict = errors.New("response was modified concurrently")

// ErrWrongStatus means a status transition found the document in a
// different state than the caller observed.
var ErrWrongStatus = errors.New("response is not in the expected status")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("responses")}
}

func (s *Store) Create(ctx context.Context, r models.Response) (models.Response, error) {
	now := time.Now().UTC()
	r.ID = primitive.NewObjectID()
	if r.Status == "" {
		r.Status = models.StatusDraft
	}
	if r.Answers == nil {
		r.Answers = map[string]any{}
	}
	if r.Status == models.StatusFinal {
		t := now
		r.FinalizedAt = &t
	}
	r.Revision = 1
	r.CreatedAt = now
	r.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, r); err != nil {
		return models.Response{}, err
	}
	return r, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Response, error) {
	var r models.Response
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&r)
	if err != nil {
		return models.Response{}, err
	}
	return r, nil
}

// Merge describes a partial update. Answer and metadata entries are
// merged key-by-key into the stored maps; keys absent from the merge are
// left untouched. MunicipalityID is only written when SetMunicipality is
// true, so callers can distinguish "clear it" from "leave it alone".
type Merge struct {
	Answers         map[string]any
	Metadata        map[string]any
	MunicipalityID  *primitive.ObjectID
	SetMunicipality bool
}

// MergeUpdate applies a merge against the revision the caller read.
// The filter pins both _id and revision; a concurrent writer bumps the
// revision first, so the slower write matches nothing and reports
// ErrRevisionConflict instead of silently clobbering.
func (s *Store) MergeUpdate(ctx context.Context, id primitive.ObjectID, expectedRevision int64, m Merge, modifiedBy primitive.ObjectID) (models.Response, error) {
	set := bson.M{
		"last_modified_by": modifiedBy,
		"updated_at":       time.Now().UTC(),
	}
	for k, v := range m.Answers {
		set["answers."+k] = v
	}
	for k, v := range m.Metadata {
		set["metadata."+k] = v
	}
	if m.SetMunicipality {
		set["municipality_id"] = m.MunicipalityID
	}

	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id, "revision": expectedRevision},
		bson.M{"$set": set, "$inc": bson.M{"revision": 1}})
	if err != nil {
		return models.Response{}, err
	}
	if res.MatchedCount == 0 {
		// Distinguish a lost race from a missing document.
		if err := s.c.FindOne(ctx, bson.M{"_id": id}).Err(); err == mongo.ErrNoDocuments {
			return models.Response{}, mongo.ErrNoDocuments
		} else if err != nil {
			return models.Response{}, err
		}
		return models.Response{}, ErrRevisionConflict
	}
	return s.GetByID(ctx, id)
}

// Finalize transitions a draft to final, stamping FinalizedAt. The
// filter pins the draft status so two racing finalizations cannot both
// succeed.
func (s *Store) Finalize(ctx context.Context, id, modifiedBy primitive.ObjectID) (models.Response, error) {
	now := time.Now().UTC()
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id, "status": models.StatusDraft},
		bson.M{
			"$set": bson.M{
				"status":           models.StatusFinal,
				"finalized_at":     now,
				"last_modified_by": modifiedBy,
				"updated_at":       now,
			},
			"$inc": bson.M{"revision": 1},
		})
	if err != nil {
		return models.Response{}, err
	}
	if res.MatchedCount == 0 {
		if err := s.c.FindOne(ctx, bson.M{"_id": id}).Err(); err == mongo.ErrNoDocuments {
			return models.Response{}, mongo.ErrNoDocuments
		} else if err != nil {
			return models.Response{}, err
		}
		return models.Response{}, ErrWrongStatus
	}
	return s.GetByID(ctx, id)
}

// Reopen transitions a final response back to draft and clears
// FinalizedAt.
func (s *Store) Reopen(ctx context.Context, id, modifiedBy primitive.ObjectID) (models.Response, error) {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id, "status": models.StatusFinal},
		bson.M{
			"$set": bson.M{
				"status":           models.StatusDraft,
				"finalized_at":     nil,
				"last_modified_by": modifiedBy,
				"updated_at":       time.Now().UTC(),
			},
			"$inc": bson.M{"revision": 1},
		})
	if err != nil {
		return models.Response{}, err
	}
	if res.MatchedCount == 0 {
		if err := s.c.FindOne(ctx, bson.M{"_id": id}).Err(); err == mongo.ErrNoDocuments {
			return models.Response{}, mongo.ErrNoDocuments
		} else if err != nil {
			return models.Response{}, err
		}
		return models.Response{}, ErrWrongStatus
	}
	return s.GetByID(ctx, id)
}

// Delete removes a response by ID. Returns the number of documents deleted (0 or 1).
// Cleaning up attached files is the caller's responsibility.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// Find returns responses matching the given filter with optional find options.
// The caller is responsible for building the filter and options (sorting, projection).
func (s *Store) Find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.Response, error) {
	cur, err := s.c.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var rs []models.Response
	if err := cur.All(ctx, &rs); err != nil {
		return nil, err
	}
	return rs, nil
}

// Count returns the number of responses matching the given filter.
func (s *Store) Count(ctx context.Context, filter bson.M) (int64, error) {
	return s.c.CountDocuments(ctx, filter)
}

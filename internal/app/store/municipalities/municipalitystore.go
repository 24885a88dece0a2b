// internal/app/store/municipalities/municipalitystore.go
package municipalitystore

import (
	"context"
	"errors"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
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

var ErrDuplicateCode = errors.New("a municipality with this code already exists")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("municipalities")}
}

func (s *Store) Create(ctx context.Context, m models.Municipality) (models.Municipality, error) {
	now := time.Now().UTC()
	m.ID = primitive.NewObjectID()
	m.NameCI = text.Fold(m.Name)
	m.IsActive = true
	m.CreatedAt = now
	m.UpdatedAt = now
	_, err := s.c.InsertOne(ctx, m)
	if err != nil {
		if wafflemongo.IsDup(err) {
			return models.Municipality{}, ErrDuplicateCode
		}
		return models.Municipality{}, err
	}
	return m, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Municipality, error) {
	var m models.Municipality
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&m)
	if err != nil {
		return models.Municipality{}, err
	}
	return m, nil
}

// GetByCode looks a municipality up by its canonical (uppercased) code.
func (s *Store) GetByCode(ctx context.Context, code string) (models.Municipality, error) {
	var m models.Municipality
	err := s.c.FindOne(ctx, bson.M{"code": code}).Decode(&m)
	if err != nil {
		return models.Municipality{}, err
	}
	return m, nil
}

// Update modifies a municipality's mutable fields and refreshes UpdatedAt.
// The code is immutable once assigned.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, m models.Municipality) error {
	set := bson.M{
		"updated_at": time.Now().UTC(),
	}
	if m.Name != "" {
		set["name"] = m.Name
		set["name_ci"] = text.Fold(m.Name)
	}
	if m.District != "" {
		set["district"] = m.District
	}
	_, err := s.c.UpdateByID(ctx, id, bson.M{"$set": set})
	return err
}

// SetActive flips the soft-delete flag. Inactive municipalities stay
// referenced by historical responses.
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

// ExistsByCode checks if a municipality with the given code exists.
func (s *Store) ExistsByCode(ctx context.Context, code string) (bool, error) {
	err := s.c.FindOne(ctx, bson.M{"code": code}).Err()
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Find returns municipalities matching the given filter with optional find options.
func (s *Store) Find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.Municipality, error) {
	cur, err := s.c.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var ms []models.Municipality
	if err := cur.All(ctx, &ms); err != nil {
		return nil, err
	}
	return ms, nil
}

// FindActive returns active municipalities sorted by folded name.
func (s *Store) FindActive(ctx context.Context) ([]models.Municipality, error) {
	return s.Find(ctx, bson.M{"is_active": true},
		options.Find().SetSort(bson.D{{Key: "name_ci", Value: 1}}))
}

// FindAll returns every municipality including inactive ones.
func (s *Store) FindAll(ctx context.Context) ([]models.Municipality, error) {
	return s.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "name_ci", Value: 1}}))
}

// FindByDistrict returns active municipalities in a district.
func (s *Store) FindByDistrict(ctx context.Context, district string) ([]models.Municipality, error) {
	return s.Find(ctx, bson.M{"district": district, "is_active": true},
		options.Find().SetSort(bson.D{{Key: "name_ci", Value: 1}}))
}

// Count returns the number of municipalities matching the given filter.
func (s *Store) Count(ctx context.Context, filter bson.M) (int64, error) {
	return s.c.CountDocuments(ctx, filter)
}

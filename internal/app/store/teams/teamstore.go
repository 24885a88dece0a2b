// internal/app/store/teams/teamstore.go
package teamstore

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

var ErrDuplicateTeam = errors.New("a team with this name already exists")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("teams")}
}

func (s *Store) Create(ctx context.Context, team models.Team) (models.Team, error) {
	now := time.Now().UTC()
	team.ID = primitive.NewObjectID()
	team.NameCI = text.Fold(team.Name)
	team.IsActive = true
	team.CreatedAt = now
	team.UpdatedAt = now
	_, err := s.c.InsertOne(ctx, team)
	if err != nil {
		if wafflemongo.IsDup(err) {
			return models.Team{}, ErrDuplicateTeam
		}
		return models.Team{}, err
	}
	return team, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Team, error) {
	var team models.Team
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&team)
	if err != nil {
		return models.Team{}, err
	}
	return team, nil
}

// Update modifies a team's mutable fields and refreshes UpdatedAt.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, team models.Team) error {
	set := bson.M{
		"updated_at": time.Now().UTC(),
	}
	if team.Name != "" {
		set["name"] = team.Name
		set["name_ci"] = text.Fold(team.Name)
	}
	if team.Description != "" {
		set["description"] = team.Description
	}
	_, err := s.c.UpdateByID(ctx, id, bson.M{"$set": set})
	if err != nil {
		if wafflemongo.IsDup(err) {
			return ErrDuplicateTeam
		}
		return err
	}
	return nil
}

// Delete removes a team by ID. Returns the number of documents deleted (0 or 1).
// Detaching the team's members is the caller's responsibility.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// ExistsByNameCI checks if a team with the given case-insensitive name exists.
func (s *Store) ExistsByNameCI(ctx context.Context, nameCI string) (bool, error) {
	err := s.c.FindOne(ctx, bson.M{"name_ci": nameCI}).Err()
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// NameExistsForOther checks if another team already holds the given name,
// excluding the specified ID. Used for update validation.
func (s *Store) NameExistsForOther(ctx context.Context, nameCI string, excludeID primitive.ObjectID) (bool, error) {
	err := s.c.FindOne(ctx, bson.M{
		"name_ci": nameCI,
		"_id":     bson.M{"$ne": excludeID},
	}).Err()
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Find returns teams matching the given filter with optional find options.
func (s *Store) Find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.Team, error) {
	cur, err := s.c.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var teams []models.Team
	if err := cur.All(ctx, &teams); err != nil {
		return nil, err
	}
	return teams, nil
}

// FindAll returns every team sorted by folded name.
func (s *Store) FindAll(ctx context.Context) ([]models.Team, error) {
	return s.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "name_ci", Value: 1}}))
}

// Count returns the number of teams matching the given filter.
func (s *Store) Count(ctx context.Context, filter bson.M) (int64, error) {
	return s.c.CountDocuments(ctx, filter)
}

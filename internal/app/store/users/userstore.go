// internal/app/store/users/userstore.go
package userstore

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

var ErrDuplicateEmail = errors.New("a user with this email already exists")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

func (s *Store) Create(ctx context.Context, u models.User) (models.User, error) {
	now := time.Now().UTC()
	u.ID = primitive.NewObjectID()
	u.NameCI = text.Fold(u.Name)
	u.CreatedAt = now
	u.UpdatedAt = now
	_, err := s.c.InsertOne(ctx, u)
	if err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, ErrDuplicateEmail
		}
		return models.User{}, err
	}
	return u, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.User, error) {
	var u models.User
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u)
	if err != nil {
		return models.User{}, err
	}
	return u, nil
}

// GetByEmail looks a user up by exact (already-normalized) email.
func (s *Store) GetByEmail(ctx context.Context, email string) (models.User, error) {
	var u models.User
	err := s.c.FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if err != nil {
		return models.User{}, err
	}
	return u, nil
}

// GetByIDs loads multiple users by their ObjectIDs.
func (s *Store) GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	cur, err := s.c.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var users []models.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// Update modifies a user's mutable fields and refreshes UpdatedAt.
// Empty strings are treated as "leave unchanged"; team assignment has
// its own operations because clearing it is a meaningful change.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, u models.User) error {
	set := bson.M{
		"updated_at": time.Now().UTC(),
	}
	if u.Email != "" {
		set["email"] = u.Email
	}
	if u.Name != "" {
		set["name"] = u.Name
		set["name_ci"] = text.Fold(u.Name)
	}
	if u.Role != "" {
		set["role"] = u.Role
	}
	if u.PasswordHash != "" {
		set["password_hash"] = u.PasswordHash
	}
	_, err := s.c.UpdateByID(ctx, id, bson.M{"$set": set})
	if err != nil {
		if wafflemongo.IsDup(err) {
			return ErrDuplicateEmail
		}
		return err
	}
	return nil
}

// SetPasswordHash replaces the stored credential for a user.
func (s *Store) SetPasswordHash(ctx context.Context, id primitive.ObjectID, hash string) error {
	_, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"password_hash": hash,
		"updated_at":    time.Now().UTC(),
	}})
	return err
}

// AssignTeam sets the user's team.
func (s *Store) AssignTeam(ctx context.Context, id, teamID primitive.ObjectID) error {
	_, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"team_id":    teamID,
		"updated_at": time.Now().UTC(),
	}})
	return err
}

// UnassignTeam clears the user's team.
func (s *Store) UnassignTeam(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"team_id":    nil,
		"updated_at": time.Now().UTC(),
	}})
	return err
}

// UnassignTeamMembers clears the team for every user on the given team.
// Returns the number of users detached.
func (s *Store) UnassignTeamMembers(ctx context.Context, teamID primitive.ObjectID) (int64, error) {
	res, err := s.c.UpdateMany(ctx, bson.M{"team_id": teamID}, bson.M{"$set": bson.M{
		"team_id":    nil,
		"updated_at": time.Now().UTC(),
	}})
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

// Delete removes a user by ID. Returns the number of documents deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// ExistsByEmail checks if a user with the given (normalized) email exists.
func (s *Store) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	err := s.c.FindOne(ctx, bson.M{"email": email}).Err()
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Find returns users matching the given filter with optional find options.
// The caller is responsible for building the filter and options (sorting, projection).
func (s *Store) Find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.User, error) {
	cur, err := s.c.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var users []models.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// FindByTeam returns the members of a team sorted by folded name.
func (s *Store) FindByTeam(ctx context.Context, teamID primitive.ObjectID) ([]models.User, error) {
	return s.Find(ctx, bson.M{"team_id": teamID},
		options.Find().SetSort(bson.D{{Key: "name_ci", Value: 1}}))
}

// FindEditors returns all editor users sorted by folded name.
func (s *Store) FindEditors(ctx context.Context) ([]models.User, error) {
	return s.Find(ctx, bson.M{"role": models.RoleEditor},
		options.Find().SetSort(bson.D{{Key: "name_ci", Value: 1}}))
}

// FindWithoutTeam returns users who are not attached to any team.
func (s *Store) FindWithoutTeam(ctx context.Context) ([]models.User, error) {
	return s.Find(ctx, bson.M{"team_id": nil},
		options.Find().SetSort(bson.D{{Key: "name_ci", Value: 1}}))
}

// Count returns the number of users matching the given filter.
func (s *Store) Count(ctx context.Context, filter bson.M) (int64, error) {
	return s.c.CountDocuments(ctx, filter)
}

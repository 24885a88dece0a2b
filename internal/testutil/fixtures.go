package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/dalemusser/surveyhub/internal/app/system/authutil"
	"github.com/dalemusser/surveyhub/internal/domain/models"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateUser creates a test user with the given role. teamID may be nil.
// Returns the created user with its generated ID.
func (f *Fixtures) CreateUser(ctx context.Context, name, email, role string, teamID *primitive.ObjectID) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	u := models.User{
		ID:           primitive.NewObjectID(),
		Email:        email,
		Name:         name,
		NameCI:       text.Fold(name),
		PasswordHash: "$2a$10$test.fixture.hash.not.a.real.credentialxxxxxxxxxxxxxx",
		Role:         role,
		TeamID:       teamID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if _, err := f.db.Collection("users").InsertOne(ctx, u); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return u
}

// CreateUserWithPassword creates a test user whose stored hash verifies
// against the given plaintext password. Slower than CreateUser (real
// bcrypt), so use it only in credential tests.
func (f *Fixtures) CreateUserWithPassword(ctx context.Context, name, email, role, password string, teamID *primitive.ObjectID) models.User {
	f.t.Helper()

	hash, err := authutil.HashPassword(password)
	if err != nil {
		f.t.Fatalf("failed to hash fixture password: %v", err)
	}

	u := f.CreateUser(ctx, name, email, role, teamID)
	if _, err := f.db.Collection("users").UpdateOne(ctx,
		bson.M{"_id": u.ID},
		bson.M{"$set": bson.M{"password_hash": hash}},
	); err != nil {
		f.t.Fatalf("failed to set fixture password hash: %v", err)
	}
	u.PasswordHash = hash
	return u
}

// CreateTeam creates a test team with the given name.
func (f *Fixtures) CreateTeam(ctx context.Context, name string) models.Team {
	f.t.Helper()

	now := time.Now().UTC()
	team := models.Team{
		ID:        primitive.NewObjectID(),
		Name:      name,
		NameCI:    text.Fold(name),
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := f.db.Collection("teams").InsertOne(ctx, team); err != nil {
		f.t.Fatalf("failed to create test team: %v", err)
	}
	return team
}

// CreateQuestionnaire creates an active test questionnaire with a couple
// of questions.
func (f *Fixtures) CreateQuestionnaire(ctx context.Context, title string, createdBy primitive.ObjectID) models.Questionnaire {
	f.t.Helper()

	now := time.Now().UTC()
	q := models.Questionnaire{
		ID:       primitive.NewObjectID(),
		Title:    title,
		TitleCI:  text.Fold(title),
		IsActive: true,
		Questions: []models.Question{
			{ID: primitive.NewObjectID(), Text: "How satisfied are you?", Type: models.QuestionRadio, Options: []string{"low", "medium", "high"}, IsRequired: true, Order: 1},
			{ID: primitive.NewObjectID(), Text: "Any comments?", Type: models.QuestionTextarea, Order: 2},
		},
		CreatedByID: createdBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := f.db.Collection("questionnaires").InsertOne(ctx, q); err != nil {
		f.t.Fatalf("failed to create test questionnaire: %v", err)
	}
	return q
}

// CreateResponse creates a draft response for the given user and survey.
func (f *Fixtures) CreateResponse(ctx context.Context, surveyID string, userID primitive.ObjectID, answers map[string]any) models.Response {
	f.t.Helper()

	if answers == nil {
		answers = map[string]any{}
	}
	now := time.Now().UTC()
	r := models.Response{
		ID:             primitive.NewObjectID(),
		SurveyID:       surveyID,
		Answers:        answers,
		Status:         models.StatusDraft,
		UserID:         userID,
		LastModifiedBy: userID,
		Revision:       1,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if _, err := f.db.Collection("responses").InsertOne(ctx, r); err != nil {
		f.t.Fatalf("failed to create test response: %v", err)
	}
	return r
}

// CreateMunicipality creates an active test municipality.
func (f *Fixtures) CreateMunicipality(ctx context.Context, code, name, district string) models.Municipality {
	f.t.Helper()

	now := time.Now().UTC()
	m := models.Municipality{
		ID:        primitive.NewObjectID(),
		Code:      code,
		Name:      name,
		NameCI:    text.Fold(name),
		District:  district,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := f.db.Collection("municipalities").InsertOne(ctx, m); err != nil {
		f.t.Fatalf("failed to create test municipality: %v", err)
	}
	return m
}

// CreateFileRecord creates a file metadata record attached to a response.
func (f *Fixtures) CreateFileRecord(ctx context.Context, responseID primitive.ObjectID, filename, mimeType string, size int64) models.File {
	f.t.Helper()

	rec := models.File{
		ID:         primitive.NewObjectID(),
		ResponseID: responseID,
		Filename:   filename,
		MimeType:   mimeType,
		FileSize:   size,
		CreatedAt:  time.Now().UTC(),
	}

	if _, err := f.db.Collection("files").InsertOne(ctx, rec); err != nil {
		f.t.Fatalf("failed to create test file record: %v", err)
	}
	return rec
}

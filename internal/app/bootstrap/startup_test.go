package bootstrap

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/dalemusser/surveyhub/internal/app/system/authutil"
	"github.com/dalemusser/surveyhub/internal/domain/models"
	"github.com/dalemusser/surveyhub/internal/testutil"
)

func testLogger() *zap.Logger {
	return zap.NewNop()
}

func TestEnsureBootstrapAdmin_CreatesNew(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	deps := DBDeps{SurveyHubMongoDatabase: db}
	admin := bootstrapAdmin{Email: "Admin@Example.com", Password: "bootstrap-secret", Name: "Root Admin"}

	if err := ensureBootstrapAdmin(ctx, deps, admin, testLogger()); err != nil {
		t.Fatalf("ensureBootstrapAdmin failed: %v", err)
	}

	var user models.User
	if err := db.Collection("users").FindOne(ctx, bson.M{"email": "admin@example.com"}).Decode(&user); err != nil {
		t.Fatalf("failed to find created admin: %v", err)
	}

	if user.Role != models.RoleAdmin {
		t.Errorf("expected role %q, got %q", models.RoleAdmin, user.Role)
	}
	if !authutil.VerifyPassword("bootstrap-secret", user.PasswordHash) {
		t.Error("stored hash does not verify the configured password")
	}
}

func TestEnsureBootstrapAdmin_PromotesExisting(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures := testutil.NewFixtures(t, db)
	existing := fixtures.CreateUserWithPassword(ctx, "Erin", "erin@example.com", models.RoleEditor, "original-pass", nil)

	deps := DBDeps{SurveyHubMongoDatabase: db}
	admin := bootstrapAdmin{Email: "erin@example.com", Password: "ignored-pass", Name: "Ignored"}

	if err := ensureBootstrapAdmin(ctx, deps, admin, testLogger()); err != nil {
		t.Fatalf("ensureBootstrapAdmin failed: %v", err)
	}

	var user models.User
	if err := db.Collection("users").FindOne(ctx, bson.M{"_id": existing.ID}).Decode(&user); err != nil {
		t.Fatalf("failed to reload user: %v", err)
	}

	if user.Role != models.RoleAdmin {
		t.Errorf("expected promotion to %q, got %q", models.RoleAdmin, user.Role)
	}
	if !authutil.VerifyPassword("original-pass", user.PasswordHash) {
		t.Error("promotion must not replace the existing password")
	}
}

func TestEnsureBootstrapAdmin_AlreadyAdmin(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures := testutil.NewFixtures(t, db)
	fixtures.CreateUser(ctx, "Root", "root@example.com", models.RoleAdmin, nil)

	deps := DBDeps{SurveyHubMongoDatabase: db}
	admin := bootstrapAdmin{Email: "root@example.com", Password: "whatever1", Name: "Root"}

	if err := ensureBootstrapAdmin(ctx, deps, admin, testLogger()); err != nil {
		t.Fatalf("ensureBootstrapAdmin failed: %v", err)
	}

	count, err := db.Collection("users").CountDocuments(ctx, bson.M{"email": "root@example.com"})
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected a single admin document, got %d", count)
	}
}

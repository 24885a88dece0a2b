package userstore_test

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/dalemusser/surveyhub/internal/app/system/indexes"
	userstore "github.com/dalemusser/surveyhub/internal/app/store/users"
	"github.com/dalemusser/surveyhub/internal/domain/models"
	"github.com/dalemusser/surveyhub/internal/testutil"
)

func TestStore_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u := models.User{
		Email:        "alice@example.com",
		Name:         "Alice Cooper",
		PasswordHash: "hash",
		Role:         models.RoleUser,
	}

	created, err := store.Create(ctx, u)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if created.ID == primitive.NilObjectID {
		t.Error("expected ID to be assigned")
	}
	if created.NameCI == "" {
		t.Error("expected NameCI to be set")
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Error("expected timestamps to be set")
	}
}

func TestStore_Create_DuplicateEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	// Unique email index must be in place for the duplicate to surface.
	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	store := userstore.New(db)
	u := models.User{
		Email:        "dup@example.com",
		Name:         "First",
		PasswordHash: "hash",
		Role:         models.RoleUser,
	}

	if _, err := store.Create(ctx, u); err != nil {
		t.Fatalf("first Create failed: %v", err)
	}
	u.Name = "Second"
	if _, err := store.Create(ctx, u); err != userstore.ErrDuplicateEmail {
		t.Errorf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestStore_GetByEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.User{
		Email:        "bob@example.com",
		Name:         "Bob",
		PasswordHash: "hash",
		Role:         models.RoleEditor,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	found, err := store.GetByEmail(ctx, "bob@example.com")
	if err != nil {
		t.Fatalf("GetByEmail failed: %v", err)
	}
	if found.ID != created.ID {
		t.Errorf("ID: got %s, want %s", found.ID.Hex(), created.ID.Hex())
	}

	if _, err := store.GetByEmail(ctx, "nobody@example.com"); err != mongo.ErrNoDocuments {
		t.Errorf("expected ErrNoDocuments for unknown email, got %v", err)
	}
}

func TestStore_AssignAndUnassignTeam(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.User{
		Email:        "team@example.com",
		Name:         "Teamed",
		PasswordHash: "hash",
		Role:         models.RoleUser,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	teamID := primitive.NewObjectID()
	if err := store.AssignTeam(ctx, created.ID, teamID); err != nil {
		t.Fatalf("AssignTeam failed: %v", err)
	}
	got, err := store.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.TeamID == nil || *got.TeamID != teamID {
		t.Error("expected team to be assigned")
	}

	if err := store.UnassignTeam(ctx, created.ID); err != nil {
		t.Fatalf("UnassignTeam failed: %v", err)
	}
	got, err = store.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.TeamID != nil {
		t.Error("expected team to be cleared")
	}
}

func TestStore_UnassignTeamMembers(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	teamID := primitive.NewObjectID()
	fx.CreateUser(ctx, "Member One", "m1@example.com", models.RoleUser, &teamID)
	fx.CreateUser(ctx, "Member Two", "m2@example.com", models.RoleUser, &teamID)
	fx.CreateUser(ctx, "Outsider", "m3@example.com", models.RoleUser, nil)

	n, err := store.UnassignTeamMembers(ctx, teamID)
	if err != nil {
		t.Fatalf("UnassignTeamMembers failed: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 members detached, got %d", n)
	}

	remaining, err := store.Count(ctx, bson.M{"team_id": teamID})
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if remaining != 0 {
		t.Errorf("expected no members left on team, found %d", remaining)
	}
}

func TestStore_FindEditorsAndWithoutTeam(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	teamID := primitive.NewObjectID()
	fx.CreateUser(ctx, "Zed Editor", "ze@example.com", models.RoleEditor, &teamID)
	fx.CreateUser(ctx, "Ann Editor", "ae@example.com", models.RoleEditor, nil)
	fx.CreateUser(ctx, "Plain User", "pu@example.com", models.RoleUser, nil)

	editors, err := store.FindEditors(ctx)
	if err != nil {
		t.Fatalf("FindEditors failed: %v", err)
	}
	if len(editors) != 2 {
		t.Fatalf("expected 2 editors, got %d", len(editors))
	}
	// Sorted by folded name: Ann before Zed.
	if editors[0].Name != "Ann Editor" {
		t.Errorf("expected Ann Editor first, got %q", editors[0].Name)
	}

	loose, err := store.FindWithoutTeam(ctx)
	if err != nil {
		t.Fatalf("FindWithoutTeam failed: %v", err)
	}
	if len(loose) != 2 {
		t.Errorf("expected 2 users without team, got %d", len(loose))
	}
}

func TestStore_Delete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.User{
		Email:        "gone@example.com",
		Name:         "Gone",
		PasswordHash: "hash",
		Role:         models.RoleUser,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	n, err := store.Delete(ctx, created.ID)
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 deletion, got %d", n)
	}

	n, err = store.Delete(ctx, created.ID)
	if err != nil {
		t.Fatalf("second Delete failed: %v", err)
	}
	if n != 0 {
		t.Errorf("expected 0 deletions on repeat, got %d", n)
	}
}

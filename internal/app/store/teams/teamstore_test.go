package teamstore_test

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	teamstore "github.com/dalemusser/surveyhub/internal/app/store/teams"
	"github.com/dalemusser/surveyhub/internal/app/system/indexes"
	"github.com/dalemusser/surveyhub/internal/domain/models"
	"github.com/dalemusser/surveyhub/internal/testutil"
)

func TestStore_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := teamstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.Team{
		Name:        "Field Crew North",
		Description: "Covers the northern district",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if created.ID == primitive.NilObjectID {
		t.Error("expected ID to be assigned")
	}
	if created.NameCI == "" {
		t.Error("expected NameCI to be set")
	}
	if !created.IsActive {
		t.Error("expected new team to be active")
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Error("expected timestamps to be set")
	}
}

func TestStore_Create_DuplicateName(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	store := teamstore.New(db)
	if _, err := store.Create(ctx, models.Team{Name: "Duplicate Crew"}); err != nil {
		t.Fatalf("first Create failed: %v", err)
	}
	// Name uniqueness is folded, so a case variant is still a duplicate.
	if _, err := store.Create(ctx, models.Team{Name: "DUPLICATE CREW"}); err != teamstore.ErrDuplicateTeam {
		t.Errorf("expected ErrDuplicateTeam, got %v", err)
	}
}

func TestStore_Update(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := teamstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.Team{Name: "Old Name"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := store.Update(ctx, created.ID, models.Team{Name: "New Name"}); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	got, err := store.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Name != "New Name" {
		t.Errorf("Name: got %q, want %q", got.Name, "New Name")
	}
	if got.NameCI == created.NameCI {
		t.Error("expected NameCI to be refreshed")
	}
}

func TestStore_NameExistsForOther(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := teamstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	a, err := store.Create(ctx, models.Team{Name: "Team A"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := store.Create(ctx, models.Team{Name: "Team B"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// A's own name does not conflict with A.
	exists, err := store.NameExistsForOther(ctx, a.NameCI, a.ID)
	if err != nil {
		t.Fatalf("NameExistsForOther failed: %v", err)
	}
	if exists {
		t.Error("expected no conflict for a team's own name")
	}

	// B's name does conflict when checked against A.
	exists, err = store.NameExistsForOther(ctx, "team b", a.ID)
	if err != nil {
		t.Fatalf("NameExistsForOther failed: %v", err)
	}
	if !exists {
		t.Error("expected conflict with the other team's name")
	}
}

func TestStore_FindAll_Sorted(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := teamstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	for _, name := range []string{"Zeta", "Alpha", "Mid"} {
		if _, err := store.Create(ctx, models.Team{Name: name}); err != nil {
			t.Fatalf("Create %s failed: %v", name, err)
		}
	}

	teams, err := store.FindAll(ctx)
	if err != nil {
		t.Fatalf("FindAll failed: %v", err)
	}
	if len(teams) != 3 {
		t.Fatalf("expected 3 teams, got %d", len(teams))
	}
	if teams[0].Name != "Alpha" || teams[2].Name != "Zeta" {
		t.Errorf("expected name-sorted order, got %q..%q", teams[0].Name, teams[2].Name)
	}
}

func TestStore_Delete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := teamstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.Team{Name: "Doomed"})
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
}

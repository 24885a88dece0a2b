package municipalitystore_test

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	municipalitystore "github.com/dalemusser/surveyhub/internal/app/store/municipalities"
	"github.com/dalemusser/surveyhub/internal/app/system/indexes"
	"github.com/dalemusser/surveyhub/internal/domain/models"
	"github.com/dalemusser/surveyhub/internal/testutil"
)

func TestStore_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := municipalitystore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.Municipality{
		Code:     "M-001",
		Name:     "Riverside",
		District: "North",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if created.ID == primitive.NilObjectID {
		t.Error("expected ID to be assigned")
	}
	if !created.IsActive {
		t.Error("expected new municipality to be active")
	}
	if created.NameCI == "" {
		t.Error("expected NameCI to be set")
	}
}

func TestStore_Create_DuplicateCode(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	store := municipalitystore.New(db)
	if _, err := store.Create(ctx, models.Municipality{Code: "M-001", Name: "First"}); err != nil {
		t.Fatalf("first Create failed: %v", err)
	}
	if _, err := store.Create(ctx, models.Municipality{Code: "M-001", Name: "Second"}); err != municipalitystore.ErrDuplicateCode {
		t.Errorf("expected ErrDuplicateCode, got %v", err)
	}
}

func TestStore_GetByCode(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := municipalitystore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.Municipality{Code: "M-002", Name: "Lakeside"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	found, err := store.GetByCode(ctx, "M-002")
	if err != nil {
		t.Fatalf("GetByCode failed: %v", err)
	}
	if found.ID != created.ID {
		t.Errorf("ID: got %s, want %s", found.ID.Hex(), created.ID.Hex())
	}

	if _, err := store.GetByCode(ctx, "M-999"); err != mongo.ErrNoDocuments {
		t.Errorf("expected ErrNoDocuments for unknown code, got %v", err)
	}
}

func TestStore_SetActive_SoftDeleteAndRestore(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := municipalitystore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.Municipality{Code: "M-003", Name: "Hilltop"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := store.SetActive(ctx, created.ID, false); err != nil {
		t.Fatalf("SetActive(false) failed: %v", err)
	}

	// Soft-deleted municipalities stay loadable by ID.
	got, err := store.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.IsActive {
		t.Error("expected municipality to be inactive")
	}

	// But they drop out of the active listing.
	active, err := store.FindActive(ctx)
	if err != nil {
		t.Fatalf("FindActive failed: %v", err)
	}
	if len(active) != 0 {
		t.Errorf("expected 0 active municipalities, got %d", len(active))
	}

	if err := store.SetActive(ctx, created.ID, true); err != nil {
		t.Fatalf("SetActive(true) failed: %v", err)
	}
	active, err = store.FindActive(ctx)
	if err != nil {
		t.Fatalf("FindActive failed: %v", err)
	}
	if len(active) != 1 {
		t.Errorf("expected 1 active municipality after restore, got %d", len(active))
	}
}

func TestStore_SetActive_Missing(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := municipalitystore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := store.SetActive(ctx, primitive.NewObjectID(), false); err != mongo.ErrNoDocuments {
		t.Errorf("expected ErrNoDocuments, got %v", err)
	}
}

func TestStore_FindByDistrict(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := municipalitystore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Create(ctx, models.Municipality{Code: "N-1", Name: "North One", District: "North"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := store.Create(ctx, models.Municipality{Code: "N-2", Name: "North Two", District: "North"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	south, err := store.Create(ctx, models.Municipality{Code: "S-1", Name: "South One", District: "South"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	// Inactive municipalities are excluded from district lists.
	if err := store.SetActive(ctx, south.ID, false); err != nil {
		t.Fatalf("SetActive failed: %v", err)
	}

	north, err := store.FindByDistrict(ctx, "North")
	if err != nil {
		t.Fatalf("FindByDistrict failed: %v", err)
	}
	if len(north) != 2 {
		t.Errorf("expected 2 in North, got %d", len(north))
	}

	southList, err := store.FindByDistrict(ctx, "South")
	if err != nil {
		t.Fatalf("FindByDistrict failed: %v", err)
	}
	if len(southList) != 0 {
		t.Errorf("expected inactive municipality excluded, got %d", len(southList))
	}
}

func TestStore_Update_CodeImmutable(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := municipalitystore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.Municipality{Code: "M-004", Name: "Original", District: "East"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := store.Update(ctx, created.ID, models.Municipality{Name: "Renamed", District: "West"}); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	got, err := store.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Code != "M-004" {
		t.Errorf("expected code unchanged, got %q", got.Code)
	}
	if got.Name != "Renamed" || got.District != "West" {
		t.Errorf("expected name/district updated, got %q/%q", got.Name, got.District)
	}
}

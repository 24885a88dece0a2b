package questionnairestore_test

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	questionnairestore "github.com/dalemusser/surveyhub/internal/app/store/questionnaires"
	"github.com/dalemusser/surveyhub/internal/domain/models"
	"github.com/dalemusser/surveyhub/internal/testutil"
)

func TestStore_Create_AssignsQuestionIDsAndOrder(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := questionnairestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.Questionnaire{
		Title:       "Household Survey",
		CreatedByID: primitive.NewObjectID(),
		Questions: []models.Question{
			{Text: "Pick one", Type: models.QuestionRadio, Options: []string{"a", "b"}, IsRequired: true},
			{Text: "Describe", Type: models.QuestionTextarea},
			{Text: "How many?", Type: models.QuestionNumber},
		},
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if created.ID == primitive.NilObjectID {
		t.Error("expected ID to be assigned")
	}
	if !created.IsActive {
		t.Error("expected new questionnaire to be active")
	}
	if created.TitleCI == "" {
		t.Error("expected TitleCI to be set")
	}
	for i, q := range created.Questions {
		if q.ID == primitive.NilObjectID {
			t.Errorf("question %d: expected ID to be assigned", i)
		}
		if q.Order != i+1 {
			t.Errorf("question %d: order got %d, want %d", i, q.Order, i+1)
		}
	}
}

func TestStore_GetByID_RoundTripsQuestions(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := questionnairestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.Questionnaire{
		Title:       "Round Trip",
		CreatedByID: primitive.NewObjectID(),
		Questions: []models.Question{
			{Text: "Pick one", Type: models.QuestionSelect, Options: []string{"x", "y", "z"}},
		},
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := store.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if len(got.Questions) != 1 {
		t.Fatalf("expected 1 question, got %d", len(got.Questions))
	}
	if len(got.Questions[0].Options) != 3 {
		t.Errorf("expected 3 options, got %d", len(got.Questions[0].Options))
	}
}

func TestStore_SetActive(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := questionnairestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.Questionnaire{
		Title:       "To Deactivate",
		CreatedByID: primitive.NewObjectID(),
		Questions:   []models.Question{{Text: "Q", Type: models.QuestionText}},
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := store.SetActive(ctx, created.ID, false); err != nil {
		t.Fatalf("SetActive failed: %v", err)
	}

	// Deactivated questionnaires drop out of the active list...
	active, err := store.FindActive(ctx)
	if err != nil {
		t.Fatalf("FindActive failed: %v", err)
	}
	if len(active) != 0 {
		t.Errorf("expected 0 active questionnaires, got %d", len(active))
	}

	// ...but stay loadable by ID for existing responses.
	got, err := store.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.IsActive {
		t.Error("expected questionnaire to be inactive")
	}
}

func TestStore_SetActive_Missing(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := questionnairestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := store.SetActive(ctx, primitive.NewObjectID(), false); err != mongo.ErrNoDocuments {
		t.Errorf("expected ErrNoDocuments, got %v", err)
	}
}

func TestStore_FindActive_Sorted(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := questionnairestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	creator := primitive.NewObjectID()
	for _, title := range []string{"Zebra Survey", "Apple Survey"} {
		if _, err := store.Create(ctx, models.Questionnaire{
			Title:       title,
			CreatedByID: creator,
			Questions:   []models.Question{{Text: "Q", Type: models.QuestionText}},
		}); err != nil {
			t.Fatalf("Create %s failed: %v", title, err)
		}
	}

	active, err := store.FindActive(ctx)
	if err != nil {
		t.Fatalf("FindActive failed: %v", err)
	}
	if len(active) != 2 {
		t.Fatalf("expected 2 questionnaires, got %d", len(active))
	}
	if active[0].Title != "Apple Survey" {
		t.Errorf("expected title-sorted order, got %q first", active[0].Title)
	}
}

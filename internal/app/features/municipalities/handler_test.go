package municipalities_test

import (
	"net/http"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/dalemusser/surveyhub/internal/app/features/municipalities"
	municipalitystore "github.com/dalemusser/surveyhub/internal/app/store/municipalities"
	"github.com/dalemusser/surveyhub/internal/domain/models"
	"github.com/dalemusser/surveyhub/internal/testutil"
)

func newTestHandler(t *testing.T) (*municipalities.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	handler := municipalities.NewHandler(db, zap.NewNop())
	return handler, testutil.NewFixtures(t, db)
}

func TestHandleCreate_UppercasesCode(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	req := testutil.NewJSONRequest(t, "POST", "/municipalities", map[string]string{
		"code":     "nor-01",
		"name":     "Northfield",
		"district": "North",
	})
	req = testutil.WithPrincipal(req, testutil.AdminPrincipal())
	rec := testutil.NewRecorder()
	handler.HandleCreate(rec, req)

	rec.AssertStatus(t, http.StatusCreated)

	m, err := municipalitystore.New(fixtures.DB()).GetByCode(ctx, "NOR-01")
	if err != nil {
		t.Fatalf("created municipality not found under uppercased code: %v", err)
	}
	if !m.IsActive {
		t.Error("new municipality must be active")
	}
}

func TestHandleCreate_DuplicateCode(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := fixtures.DB().Collection("municipalities").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "code", Value: 1}},
		Options: options.Index().SetName("uniq_municipalities_code").SetUnique(true),
	})
	if err != nil {
		t.Fatalf("failed to create unique code index: %v", err)
	}
	fixtures.CreateMunicipality(ctx, "NOR-01", "Northfield", "North")

	req := testutil.NewJSONRequest(t, "POST", "/municipalities", map[string]string{
		"code":     "NOR-01",
		"name":     "Other Town",
		"district": "North",
	})
	req = testutil.WithPrincipal(req, testutil.AdminPrincipal())
	rec := testutil.NewRecorder()
	handler.HandleCreate(rec, req)

	rec.AssertStatus(t, http.StatusBadRequest)
}

func TestHandleUpdate_CodeImmutable(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	m := fixtures.CreateMunicipality(ctx, "NOR-01", "Northfield", "North")

	req := testutil.NewJSONRequest(t, "PATCH", "/municipalities/"+m.ID.Hex(), map[string]string{
		"code": "NOR-02",
	})
	req = testutil.WithPrincipal(req, testutil.AdminPrincipal())
	req = testutil.WithChiURLParam(req, "id", m.ID.Hex())
	rec := testutil.NewRecorder()
	handler.HandleUpdate(rec, req)

	rec.AssertStatus(t, http.StatusBadRequest)
	rec.AssertContains(t, "code")
}

func TestSoftDeleteAndRestore(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	m := fixtures.CreateMunicipality(ctx, "NOR-01", "Northfield", "North")

	del := testutil.NewRequest("DELETE", "/municipalities/"+m.ID.Hex())
	del = testutil.WithPrincipal(del, testutil.AdminPrincipal())
	del = testutil.WithChiURLParam(del, "id", m.ID.Hex())
	rec := testutil.NewRecorder()
	handler.HandleDeactivate(rec, del)
	rec.AssertStatus(t, http.StatusOK)

	// Inactive entries read as not found for normal callers.
	get := testutil.NewRequest("GET", "/municipalities/"+m.ID.Hex())
	get = testutil.WithPrincipal(get, testutil.UserPrincipal(nil))
	get = testutil.WithChiURLParam(get, "id", m.ID.Hex())
	rec = testutil.NewRecorder()
	handler.HandleGet(rec, get)
	rec.AssertStatus(t, http.StatusNotFound)

	// But the admin catalog still lists them.
	all := testutil.NewRequest("GET", "/municipalities/all")
	all = testutil.WithPrincipal(all, testutil.AdminPrincipal())
	rec = testutil.NewRecorder()
	handler.HandleListAll(rec, all)
	rec.AssertStatus(t, http.StatusOK)
	var catalog []models.Municipality
	rec.DecodeJSON(t, &catalog)
	if len(catalog) != 1 {
		t.Fatalf("expected 1 catalog entry, got %d", len(catalog))
	}

	restore := testutil.NewRequest("POST", "/municipalities/"+m.ID.Hex()+"/restore")
	restore = testutil.WithPrincipal(restore, testutil.AdminPrincipal())
	restore = testutil.WithChiURLParam(restore, "id", m.ID.Hex())
	rec = testutil.NewRecorder()
	handler.HandleRestore(rec, restore)
	rec.AssertStatus(t, http.StatusOK)

	rec = testutil.NewRecorder()
	handler.HandleGet(rec, get)
	rec.AssertStatus(t, http.StatusOK)
}

func TestHandleListByDistrict_ActiveOnly(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateMunicipality(ctx, "NOR-01", "Northfield", "North")
	retired := fixtures.CreateMunicipality(ctx, "NOR-02", "Oldtown", "North")
	fixtures.CreateMunicipality(ctx, "SOU-01", "Southvale", "South")
	if err := municipalitystore.New(fixtures.DB()).SetActive(ctx, retired.ID, false); err != nil {
		t.Fatalf("SetActive failed: %v", err)
	}

	req := testutil.NewRequest("GET", "/municipalities/district/North")
	req = testutil.WithPrincipal(req, testutil.UserPrincipal(nil))
	req = testutil.WithChiURLParam(req, "district", "North")
	rec := testutil.NewRecorder()
	handler.HandleListByDistrict(rec, req)

	rec.AssertStatus(t, http.StatusOK)

	var list []models.Municipality
	rec.DecodeJSON(t, &list)
	if len(list) != 1 {
		t.Fatalf("expected 1 municipality, got %d", len(list))
	}
	if list[0].Code != "NOR-01" {
		t.Errorf("unexpected municipality: %s", list[0].Code)
	}
}

package authapi_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/dalemusser/surveyhub/internal/app/features/authapi"
	userstore "github.com/dalemusser/surveyhub/internal/app/store/users"
	"github.com/dalemusser/surveyhub/internal/app/system/auth"
	"github.com/dalemusser/surveyhub/internal/app/system/authutil"
	"github.com/dalemusser/surveyhub/internal/domain/models"
	"github.com/dalemusser/surveyhub/internal/testutil"
)

func newTestHandler(t *testing.T) (*authapi.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	tokens, err := auth.NewTokenManager("test-secret", 0, zap.NewNop())
	if err != nil {
		t.Fatalf("NewTokenManager failed: %v", err)
	}
	handler := authapi.NewHandler(db, zap.NewNop(), tokens)
	return handler, testutil.NewFixtures(t, db)
}

func TestHandleLogin_Success(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateUserWithPassword(ctx, "Dana Editor", "dana@example.com", models.RoleEditor, "password123", nil)

	req := testutil.NewJSONRequest(t, "POST", "/auth/login", map[string]string{
		"email":    "dana@example.com",
		"password": "password123",
	})
	rec := testutil.NewRecorder()
	handler.HandleLogin(rec, req)

	rec.AssertStatus(t, http.StatusOK)

	var body struct {
		AccessToken string `json:"access_token"`
		User        struct {
			Email string `json:"email"`
			Role  string `json:"role"`
		} `json:"user"`
	}
	rec.DecodeJSON(t, &body)
	if body.AccessToken == "" {
		t.Error("expected a non-empty access token")
	}
	if body.User.Email != "dana@example.com" || body.User.Role != models.RoleEditor {
		t.Errorf("unexpected user payload: %+v", body.User)
	}

	// The issued token must verify back to the same user.
	p, err := handler.Tokens.Verify(body.AccessToken)
	if err != nil {
		t.Fatalf("issued token failed verification: %v", err)
	}
	if p.Email != "dana@example.com" {
		t.Errorf("principal email: got %q", p.Email)
	}
}

func TestHandleLogin_WrongPassword(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateUserWithPassword(ctx, "Dana Editor", "dana@example.com", models.RoleEditor, "password123", nil)

	req := testutil.NewJSONRequest(t, "POST", "/auth/login", map[string]string{
		"email":    "dana@example.com",
		"password": "not-the-password",
	})
	rec := testutil.NewRecorder()
	handler.HandleLogin(rec, req)

	rec.AssertStatus(t, http.StatusUnauthorized)
	rec.AssertContains(t, "invalid email or password")
}

func TestHandleLogin_UnknownEmailSameMessage(t *testing.T) {
	handler, _ := newTestHandler(t)

	req := testutil.NewJSONRequest(t, "POST", "/auth/login", map[string]string{
		"email":    "nobody@example.com",
		"password": "whatever1",
	})
	rec := testutil.NewRecorder()
	handler.HandleLogin(rec, req)

	// Unknown email must be indistinguishable from a wrong password.
	rec.AssertStatus(t, http.StatusUnauthorized)
	rec.AssertContains(t, "invalid email or password")
}

func TestHandleLogin_MissingBody(t *testing.T) {
	handler, _ := newTestHandler(t)

	req := httptest.NewRequest("POST", "/auth/login", nil)
	rec := testutil.NewRecorder()
	handler.HandleLogin(rec, req)

	rec.AssertStatus(t, http.StatusBadRequest)
}

func TestHandleChangePassword_Success(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := fixtures.CreateUserWithPassword(ctx, "Sam User", "sam@example.com", models.RoleUser, "password123", nil)
	p := auth.Principal{ID: user.ID, Email: user.Email, Role: user.Role}

	req := testutil.NewJSONRequest(t, "PATCH", "/auth/change-password", map[string]string{
		"currentPassword": "password123",
		"newPassword":     "newsecret",
		"confirmPassword": "newsecret",
	})
	req = testutil.WithPrincipal(req, p)
	rec := testutil.NewRecorder()
	handler.HandleChangePassword(rec, req)

	rec.AssertStatus(t, http.StatusOK)

	updated, err := userstore.New(fixtures.DB()).GetByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if !authutil.VerifyPassword("newsecret", updated.PasswordHash) {
		t.Error("new password does not verify after change")
	}
	if authutil.VerifyPassword("password123", updated.PasswordHash) {
		t.Error("old password still verifies after change")
	}
}

func TestHandleChangePassword_WrongCurrent(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := fixtures.CreateUserWithPassword(ctx, "Sam User", "sam@example.com", models.RoleUser, "password123", nil)
	p := auth.Principal{ID: user.ID, Email: user.Email, Role: user.Role}

	req := testutil.NewJSONRequest(t, "PATCH", "/auth/change-password", map[string]string{
		"currentPassword": "wrong",
		"newPassword":     "newsecret",
		"confirmPassword": "newsecret",
	})
	req = testutil.WithPrincipal(req, p)
	rec := testutil.NewRecorder()
	handler.HandleChangePassword(rec, req)

	rec.AssertStatus(t, http.StatusUnauthorized)
}

func TestHandleChangePassword_ConfirmMismatch(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := fixtures.CreateUserWithPassword(ctx, "Sam User", "sam@example.com", models.RoleUser, "password123", nil)
	p := auth.Principal{ID: user.ID, Email: user.Email, Role: user.Role}

	req := testutil.NewJSONRequest(t, "PATCH", "/auth/change-password", map[string]string{
		"currentPassword": "password123",
		"newPassword":     "newsecret",
		"confirmPassword": "different",
	})
	req = testutil.WithPrincipal(req, p)
	rec := testutil.NewRecorder()
	handler.HandleChangePassword(rec, req)

	rec.AssertStatus(t, http.StatusBadRequest)
	rec.AssertContains(t, "confirmation")
}

func TestHandleChangePassword_TooShort(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := fixtures.CreateUserWithPassword(ctx, "Sam User", "sam@example.com", models.RoleUser, "password123", nil)
	p := auth.Principal{ID: user.ID, Email: user.Email, Role: user.Role}

	req := testutil.NewJSONRequest(t, "PATCH", "/auth/change-password", map[string]string{
		"currentPassword": "password123",
		"newPassword":     "abc",
		"confirmPassword": "abc",
	})
	req = testutil.WithPrincipal(req, p)
	rec := testutil.NewRecorder()
	handler.HandleChangePassword(rec, req)

	rec.AssertStatus(t, http.StatusBadRequest)
}

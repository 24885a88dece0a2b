package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/dalemusser/surveyhub/internal/app/system/auth"
	"github.com/dalemusser/surveyhub/internal/domain/models"
)

// AdminPrincipal returns a principal with the admin role.
func AdminPrincipal() auth.Principal {
	return auth.Principal{
		ID:    primitive.NewObjectID(),
		Email: "admin@test.com",
		Name:  "Test Admin",
		Role:  models.RoleAdmin,
	}
}

// EditorPrincipal returns a principal with the editor role on the given team.
func EditorPrincipal(teamID primitive.ObjectID) auth.Principal {
	return auth.Principal{
		ID:     primitive.NewObjectID(),
		Email:  "editor@test.com",
		Name:   "Test Editor",
		Role:   models.RoleEditor,
		TeamID: &teamID,
	}
}

// UserPrincipal returns a plain-user principal. teamID may be nil.
func UserPrincipal(teamID *primitive.ObjectID) auth.Principal {
	return auth.Principal{
		ID:     primitive.NewObjectID(),
		Email:  "user@test.com",
		Name:   "Test User",
		Role:   models.RoleUser,
		TeamID: teamID,
	}
}

// WithPrincipal adds a principal to the request context for testing
// authenticated handlers. This bypasses the token middleware.
func WithPrincipal(r *http.Request, p auth.Principal) *http.Request {
	return auth.WithTestPrincipal(r, p)
}

// NewRequest creates an HTTP request for testing.
func NewRequest(method, target string) *http.Request {
	return httptest.NewRequest(method, target, nil)
}

// NewJSONRequest creates an HTTP request with body marshaled as JSON.
func NewJSONRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()
	b, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("failed to marshal request body: %v", err)
	}
	req := httptest.NewRequest(method, target, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	return req
}

// NewAuthenticatedRequest creates an HTTP request with a principal in context.
func NewAuthenticatedRequest(method, target string, p auth.Principal) *http.Request {
	return WithPrincipal(httptest.NewRequest(method, target, nil), p)
}

// ResponseRecorder wraps httptest.ResponseRecorder with helper methods.
type ResponseRecorder struct {
	*httptest.ResponseRecorder
}

// NewRecorder creates a new ResponseRecorder.
func NewRecorder() *ResponseRecorder {
	return &ResponseRecorder{httptest.NewRecorder()}
}

// AssertStatus checks the response status code.
func (r *ResponseRecorder) AssertStatus(t interface{ Errorf(string, ...any) }, expected int) {
	if r.Code != expected {
		t.Errorf("status code: got %d, want %d", r.Code, expected)
	}
}

// DecodeJSON unmarshals the response body into dst.
func (r *ResponseRecorder) DecodeJSON(t *testing.T, dst any) {
	t.Helper()
	if err := json.Unmarshal(r.Body.Bytes(), dst); err != nil {
		t.Fatalf("failed to decode response body %q: %v", r.Body.String(), err)
	}
}

// AssertContains checks if the response body contains the expected string.
func (r *ResponseRecorder) AssertContains(t interface{ Errorf(string, ...any) }, expected string) {
	if !bytes.Contains(r.Body.Bytes(), []byte(expected)) {
		t.Errorf("response body does not contain %q", expected)
	}
}

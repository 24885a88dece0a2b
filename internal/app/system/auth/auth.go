// internal/app/system/auth/auth.go

// Package auth supplies the authentication boundary: it turns a verified
// bearer token into a Principal (id, role, team) and gates routes by
// sign-in state and role. Everything past the middleware receives the
// Principal as an explicit value; nothing downstream re-verifies identity.
package auth

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/dalemusser/surveyhub/internal/app/system/apperr"
	"github.com/dalemusser/surveyhub/internal/app/system/webjson"
	"github.com/dalemusser/surveyhub/internal/domain/models"
)

// Principal is the authenticated actor attached to a request.
type Principal struct {
	ID     primitive.ObjectID
	Email  string
	Name   string
	Role   string // normalized to lowercase
	TeamID *primitive.ObjectID
}

// IsAdmin reports whether the principal holds the admin role.
func (p Principal) IsAdmin() bool { return p.Role == models.RoleAdmin }

// IsEditor reports whether the principal holds the editor role.
func (p Principal) IsEditor() bool { return p.Role == models.RoleEditor }

type ctxKey string

const principalKey ctxKey = "principal"

// TokenManager issues and verifies the signed bearer tokens that carry
// the principal between requests.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	log    *zap.Logger
}

// NewTokenManager builds a TokenManager. The signing secret must be
// non-empty; TTL falls back to 24h when zero.
func NewTokenManager(secret string, ttl time.Duration, logger *zap.Logger) (*TokenManager, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, apperr.Internal("jwt secret is not configured", nil)
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenManager{secret: []byte(secret), ttl: ttl, log: logger}, nil
}

// claims is the JWT payload. TeamID travels as a hex string and may be
// empty for team-less principals.
type claims struct {
	Email  string `json:"email"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	TeamID string `json:"team_id,omitempty"`
	jwt.RegisteredClaims
}

// Issue signs a token for the given user.
func (tm *TokenManager) Issue(u models.User) (string, error) {
	now := time.Now().UTC()
	c := claims{
		Email: u.Email,
		Name:  u.Name,
		Role:  strings.ToLower(u.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID.Hex(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tm.ttl)),
		},
	}
	if u.TeamID != nil {
		c.TeamID = u.TeamID.Hex()
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(tm.secret)
}

// Verify parses and validates a token, returning the embedded Principal.
// Any malformed or expired token fails closed.
func (tm *TokenManager) Verify(token string) (Principal, error) {
	var c claims
	parsed, err := jwt.ParseWithClaims(token, &c, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apperr.Unauthenticated("unexpected token signing method")
		}
		return tm.secret, nil
	})
	if err != nil || !parsed.Valid {
		return Principal{}, apperr.Unauthenticated("invalid or expired token")
	}
	uid, err := primitive.ObjectIDFromHex(c.Subject)
	if err != nil {
		return Principal{}, apperr.Unauthenticated("invalid token subject")
	}
	p := Principal{ID: uid, Email: c.Email, Name: c.Name, Role: strings.ToLower(c.Role)}
	if c.TeamID != "" {
		tid, err := primitive.ObjectIDFromHex(c.TeamID)
		if err != nil {
			return Principal{}, apperr.Unauthenticated("invalid token team")
		}
		p.TeamID = &tid
	}
	return p, nil
}

// CurrentPrincipal returns the principal and a found flag.
func CurrentPrincipal(r *http.Request) (Principal, bool) {
	p, ok := r.Context().Value(principalKey).(Principal)
	return p, ok
}

// LoadPrincipal injects the principal into context when the request
// carries a valid bearer token. Absent or invalid tokens pass through
// unauthenticated; RequireSignedIn decides whether that matters.
func (tm *TokenManager) LoadPrincipal(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := bearerToken(r)
		if raw == "" {
			next.ServeHTTP(w, r)
			return
		}
		p, err := tm.Verify(raw)
		if err != nil {
			tm.log.Debug("rejected bearer token", zap.Error(err))
			next.ServeHTTP(w, r)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), principalKey, p)))
	})
}

// RequireSignedIn ensures a principal is present, else 401.
func RequireSignedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentPrincipal(r); !ok {
			webjson.Error(w, nil, apperr.Unauthenticated("authentication required"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRole ensures the principal holds one of the allowed roles, else
// 403 (401 when not signed in at all).
func RequireRole(allowed ...string) func(http.Handler) http.Handler {
	set := make(map[string]struct{}, len(allowed))
	for _, role := range allowed {
		set[strings.ToLower(strings.TrimSpace(role))] = struct{}{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := CurrentPrincipal(r)
			if !ok {
				webjson.Error(w, nil, apperr.Unauthenticated("authentication required"))
				return
			}
			if _, ok := set[p.Role]; !ok {
				webjson.Error(w, nil, apperr.Forbidden("insufficient role"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// WithTestPrincipal attaches a principal directly to the request context.
// Test-only seam; handlers under test skip the token middleware.
func WithTestPrincipal(r *http.Request, p Principal) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), principalKey, p))
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(h) > len(prefix) && strings.EqualFold(h[:len(prefix)], prefix) {
		return strings.TrimSpace(h[len(prefix):])
	}
	return ""
}

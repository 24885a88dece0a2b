// internal/app/system/authz/authz.go
package authz

import (
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/dalemusser/surveyhub/internal/app/system/auth"
	"github.com/dalemusser/surveyhub/internal/domain/models"
)

// PrincipalCtx returns the principal's role (lowercased), id, and a found
// flag. If no principal is present it returns "", NilObjectID, false so
// callers can trust ok=true means an authenticated actor.
func PrincipalCtx(r *http.Request) (role string, userID primitive.ObjectID, ok bool) {
	p, ok := auth.CurrentPrincipal(r)
	if !ok {
		return "", primitive.NilObjectID, false
	}
	return p.Role, p.ID, true
}

// IsAdmin reports whether the current request's principal is an admin.
func IsAdmin(r *http.Request) bool {
	role, _, ok := PrincipalCtx(r)
	return ok && role == models.RoleAdmin
}

// IsEditor reports whether the current request's principal is an editor.
func IsEditor(r *http.Request) bool {
	role, _, ok := PrincipalCtx(r)
	return ok && role == models.RoleEditor
}

// IsStaff reports whether the principal is an editor or admin.
func IsStaff(r *http.Request) bool {
	role, _, ok := PrincipalCtx(r)
	return ok && (role == models.RoleEditor || role == models.RoleAdmin)
}

// PrincipalTeamID returns the current principal's team ID, or NilObjectID
// when the principal is absent or team-less.
func PrincipalTeamID(r *http.Request) primitive.ObjectID {
	p, ok := auth.CurrentPrincipal(r)
	if !ok || p.TeamID == nil {
		return primitive.NilObjectID
	}
	return *p.TeamID
}

// SameTeam reports whether the principal belongs to the given team.
// A nil or zero team on either side is never a match.
func SameTeam(p auth.Principal, teamID *primitive.ObjectID) bool {
	if p.TeamID == nil || teamID == nil {
		return false
	}
	return !p.TeamID.IsZero() && *p.TeamID == *teamID
}

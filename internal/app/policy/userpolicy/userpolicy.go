// Package userpolicy provides authorization policies for user management.
//
// Authorization rules:
//   - Admins can manage any user
//   - Editors can manage plain (USER-role) users within their own team
//   - Other roles cannot manage users
package userpolicy

import (
	"github.com/dalemusser/surveyhub/internal/app/system/auth"
	"github.com/dalemusser/surveyhub/internal/app/system/authz"
	"github.com/dalemusser/surveyhub/internal/domain/models"
)

// CanManageUser reports whether the principal may update or delete the
// target user. Editors never reach privileged accounts, even on their
// own team.
func CanManageUser(p auth.Principal, target models.User) bool {
	switch p.Role {
	case models.RoleAdmin:
		return true
	case models.RoleEditor:
		if target.Role != models.RoleUser {
			return false
		}
		return authz.SameTeam(p, target.TeamID)
	default:
		return false
	}
}

// CanCreateTeamUser reports whether the principal may create a user on
// the given team. Editors may only create on their own team.
func CanCreateTeamUser(p auth.Principal) bool {
	return p.Role == models.RoleEditor && p.TeamID != nil
}

// internal/app/features/teams/members.go
package teams

import (
	"context"
	"errors"
	"net/http"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	teamstore "github.com/dalemusser/surveyhub/internal/app/store/teams"
	userstore "github.com/dalemusser/surveyhub/internal/app/store/users"
	"github.com/dalemusser/surveyhub/internal/app/system/apperr"
	"github.com/dalemusser/surveyhub/internal/app/system/timeouts"
	"github.com/dalemusser/surveyhub/internal/app/system/webjson"
	"github.com/dalemusser/surveyhub/internal/domain/models"
)

// HandleListMembers returns the users assigned to a team.
func (h *Handler) HandleListMembers(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		webjson.Error(w, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if _, err := teamstore.New(h.DB).GetByID(ctx, id); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			webjson.Error(w, h.Log, apperr.NotFound("team not found"))
			return
		}
		webjson.Error(w, h.Log, apperr.Internal("failed to load team", err))
		return
	}

	members, err := userstore.New(h.DB).FindByTeam(ctx, id)
	if err != nil {
		webjson.Error(w, h.Log, apperr.Internal("failed to list team members", err))
		return
	}
	if members == nil {
		members = []models.User{}
	}
	webjson.Write(w, http.StatusOK, members)
}

// HandleListUnassigned returns users who have no team.
func (h *Handler) HandleListUnassigned(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	users, err := userstore.New(h.DB).FindWithoutTeam(ctx)
	if err != nil {
		webjson.Error(w, h.Log, apperr.Internal("failed to list unassigned users", err))
		return
	}
	if users == nil {
		users = []models.User{}
	}
	webjson.Write(w, http.StatusOK, users)
}

// HandleAssignUser puts a user on a team, replacing any previous
// assignment.
func (h *Handler) HandleAssignUser(w http.ResponseWriter, r *http.Request) {
	teamID, err := pathID(r, "id")
	if err != nil {
		webjson.Error(w, h.Log, err)
		return
	}
	userID, err := pathID(r, "userID")
	if err != nil {
		webjson.Error(w, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if _, err := teamstore.New(h.DB).GetByID(ctx, teamID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			webjson.Error(w, h.Log, apperr.NotFound("team not found"))
			return
		}
		webjson.Error(w, h.Log, apperr.Internal("failed to load team", err))
		return
	}

	store := userstore.New(h.DB)
	if _, err := store.GetByID(ctx, userID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			webjson.Error(w, h.Log, apperr.NotFound("user not found"))
			return
		}
		webjson.Error(w, h.Log, apperr.Internal("failed to load user", err))
		return
	}

	if err := store.AssignTeam(ctx, userID, teamID); err != nil {
		webjson.Error(w, h.Log, apperr.Internal("failed to assign team", err))
		return
	}

	h.Log.Info("user assigned to team",
		zap.String("user_id", userID.Hex()),
		zap.String("team_id", teamID.Hex()))
	webjson.Write(w, http.StatusOK, map[string]string{"message": "user assigned"})
}

// HandleUnassignUser clears a user's team. Unassigning a user who has
// no team is a BadRequest so callers notice no-op mistakes.
func (h *Handler) HandleUnassignUser(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userID")
	if err != nil {
		webjson.Error(w, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()
	store := userstore.New(h.DB)

	user, err := store.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			webjson.Error(w, h.Log, apperr.NotFound("user not found"))
			return
		}
		webjson.Error(w, h.Log, apperr.Internal("failed to load user", err))
		return
	}
	if user.TeamID == nil {
		webjson.Error(w, h.Log, apperr.BadRequest("user is not assigned to a team"))
		return
	}

	if err := store.UnassignTeam(ctx, userID); err != nil {
		webjson.Error(w, h.Log, apperr.Internal("failed to unassign team", err))
		return
	}

	h.Log.Info("user unassigned from team", zap.String("user_id", userID.Hex()))
	webjson.Write(w, http.StatusOK, map[string]string{"message": "user unassigned"})
}

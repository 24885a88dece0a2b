// internal/app/features/teams/crud.go
package teams

import (
	"context"
	"errors"
	"net/http"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	teamstore "github.com/dalemusser/surveyhub/internal/app/store/teams"
	userstore "github.com/dalemusser/surveyhub/internal/app/store/users"
	"github.com/dalemusser/surveyhub/internal/app/system/apperr"
	"github.com/dalemusser/surveyhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/surveyhub/internal/app/system/inputval"
	"github.com/dalemusser/surveyhub/internal/app/system/normalize"
	"github.com/dalemusser/surveyhub/internal/app/system/timeouts"
	"github.com/dalemusser/surveyhub/internal/app/system/webjson"
	"github.com/dalemusser/surveyhub/internal/domain/models"
)

// createTeamInput defines validation rules for team creation.
type createTeamInput struct {
	Name        string `validate:"required,max=200" label:"Team name"`
	Description string `validate:"max=1000" label:"Description"`
}

type teamRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// HandleCreate creates a team. A duplicate name is a BadRequest, not a
// Conflict: the caller chose a name that is simply not acceptable.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req teamRequest
	if err := webjson.Decode(r, &req); err != nil {
		webjson.Error(w, h.Log, err)
		return
	}

	name := normalize.Name(req.Name)

	input := createTeamInput{Name: name, Description: req.Description}
	if result := inputval.Validate(input); result.HasErrors() {
		webjson.Error(w, h.Log, apperr.BadRequest(result.First()))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	team, err := teamstore.New(h.DB).Create(ctx, models.Team{
		Name:        name,
		Description: htmlsanitize.StripTags(req.Description),
	})
	if err != nil {
		if errors.Is(err, teamstore.ErrDuplicateTeam) {
			webjson.Error(w, h.Log, apperr.BadRequest(err.Error()))
			return
		}
		webjson.Error(w, h.Log, apperr.Internal("failed to create team", err))
		return
	}

	h.Log.Info("team created", zap.String("team_id", team.ID.Hex()))
	webjson.Write(w, http.StatusCreated, team)
}

// HandleList returns all teams sorted by folded name.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	teams, err := teamstore.New(h.DB).FindAll(ctx)
	if err != nil {
		webjson.Error(w, h.Log, apperr.Internal("failed to list teams", err))
		return
	}
	if teams == nil {
		teams = []models.Team{}
	}
	webjson.Write(w, http.StatusOK, teams)
}

// HandleGet returns a single team by ID.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		webjson.Error(w, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	team, err := teamstore.New(h.DB).GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			webjson.Error(w, h.Log, apperr.NotFound("team not found"))
			return
		}
		webjson.Error(w, h.Log, apperr.Internal("failed to load team", err))
		return
	}
	webjson.Write(w, http.StatusOK, team)
}

// HandleUpdate applies a partial update to a team.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		webjson.Error(w, h.Log, err)
		return
	}

	var req teamRequest
	if err := webjson.Decode(r, &req); err != nil {
		webjson.Error(w, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()
	store := teamstore.New(h.DB)

	if _, err := store.GetByID(ctx, id); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			webjson.Error(w, h.Log, apperr.NotFound("team not found"))
			return
		}
		webjson.Error(w, h.Log, apperr.Internal("failed to load team", err))
		return
	}

	if err := store.Update(ctx, id, models.Team{
		Name:        normalize.Name(req.Name),
		Description: htmlsanitize.StripTags(req.Description),
	}); err != nil {
		if errors.Is(err, teamstore.ErrDuplicateTeam) {
			webjson.Error(w, h.Log, apperr.BadRequest(err.Error()))
			return
		}
		webjson.Error(w, h.Log, apperr.Internal("failed to update team", err))
		return
	}

	updated, err := store.GetByID(ctx, id)
	if err != nil {
		webjson.Error(w, h.Log, apperr.Internal("failed to reload team", err))
		return
	}
	webjson.Write(w, http.StatusOK, updated)
}

// HandleDelete removes a team. Refused while members still point at it;
// the admin must reassign or unassign them first.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		webjson.Error(w, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	members, err := userstore.New(h.DB).Count(ctx, bson.M{"team_id": id})
	if err != nil {
		webjson.Error(w, h.Log, apperr.Internal("failed to count team members", err))
		return
	}
	if members > 0 {
		webjson.Error(w, h.Log, apperr.BadRequest("team still has members; unassign them first"))
		return
	}

	deleted, err := teamstore.New(h.DB).Delete(ctx, id)
	if err != nil {
		webjson.Error(w, h.Log, apperr.Internal("failed to delete team", err))
		return
	}
	if deleted == 0 {
		webjson.Error(w, h.Log, apperr.NotFound("team not found"))
		return
	}

	h.Log.Info("team deleted", zap.String("team_id", id.Hex()))
	webjson.Write(w, http.StatusOK, map[string]string{"message": "team deleted"})
}

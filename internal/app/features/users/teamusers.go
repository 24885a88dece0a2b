// internal/app/features/users/teamusers.go

// Editor-scoped operations. Editors manage only the plain (USER-role)
// members of their own team; role and team assignment stay admin-only.
package users

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/dalemusser/surveyhub/internal/app/policy/userpolicy"
	userstore "github.com/dalemusser/surveyhub/internal/app/store/users"
	"github.com/dalemusser/surveyhub/internal/app/system/apperr"
	"github.com/dalemusser/surveyhub/internal/app/system/auth"
	"github.com/dalemusser/surveyhub/internal/app/system/authutil"
	"github.com/dalemusser/surveyhub/internal/app/system/inputval"
	"github.com/dalemusser/surveyhub/internal/app/system/normalize"
	"github.com/dalemusser/surveyhub/internal/app/system/timeouts"
	"github.com/dalemusser/surveyhub/internal/app/system/webjson"
	"github.com/dalemusser/surveyhub/internal/domain/models"
)

type createTeamUserRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// HandleCreateTeamUser lets an editor create a USER-role account on
// their own team. The role and team are forced regardless of input.
func (h *Handler) HandleCreateTeamUser(w http.ResponseWriter, r *http.Request) {
	p, _ := auth.CurrentPrincipal(r)
	if !userpolicy.CanCreateTeamUser(p) {
		webjson.Error(w, h.Log, apperr.Forbidden("you must belong to a team to create team users"))
		return
	}

	var req createTeamUserRequest
	if err := webjson.Decode(r, &req); err != nil {
		webjson.Error(w, h.Log, err)
		return
	}

	email := normalize.Email(req.Email)
	name := normalize.Name(req.Name)

	input := createUserInput{Email: email, Name: name, Role: models.RoleUser}
	if result := inputval.Validate(input); result.HasErrors() {
		webjson.Error(w, h.Log, apperr.BadRequest(result.First()))
		return
	}
	if len(req.Password) < authutil.MinPasswordLength {
		webjson.Error(w, h.Log, apperr.BadRequest(
			fmt.Sprintf("password must be at least %d characters", authutil.MinPasswordLength)))
		return
	}

	hash, err := authutil.HashPassword(req.Password)
	if err != nil {
		webjson.Error(w, h.Log, apperr.Internal("failed to hash password", err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	user, err := userstore.New(h.DB).Create(ctx, models.User{
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		Role:         models.RoleUser,
		TeamID:       p.TeamID,
	})
	if err != nil {
		if errors.Is(err, userstore.ErrDuplicateEmail) {
			webjson.Error(w, h.Log, apperr.BadRequest(err.Error()))
			return
		}
		webjson.Error(w, h.Log, apperr.Internal("failed to create team user", err))
		return
	}

	h.Log.Info("team user created",
		zap.String("user_id", user.ID.Hex()),
		zap.String("team_id", p.TeamID.Hex()),
		zap.String("created_by", p.ID.Hex()))

	webjson.Write(w, http.StatusCreated, user)
}

// HandleListMyTeam returns the plain users on the editor's team.
func (h *Handler) HandleListMyTeam(w http.ResponseWriter, r *http.Request) {
	p, _ := auth.CurrentPrincipal(r)
	if p.TeamID == nil {
		webjson.Error(w, h.Log, apperr.Forbidden("you are not assigned to a team"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	members, err := userstore.New(h.DB).Find(ctx,
		bson.M{"team_id": *p.TeamID, "role": models.RoleUser},
		options.Find().SetSort(bson.D{{Key: "name_ci", Value: 1}}))
	if err != nil {
		webjson.Error(w, h.Log, apperr.Internal("failed to list team users", err))
		return
	}
	if members == nil {
		members = []models.User{}
	}
	webjson.Write(w, http.StatusOK, members)
}

// loadManagedTeamUser fetches the target and enforces the editor's
// management scope. A target outside the scope is Forbidden, not
// hidden.
func (h *Handler) loadManagedTeamUser(ctx context.Context, r *http.Request) (models.User, error) {
	p, _ := auth.CurrentPrincipal(r)

	id, err := pathID(r, "id")
	if err != nil {
		return models.User{}, err
	}

	target, err := userstore.New(h.DB).GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.User{}, apperr.NotFound("user not found")
		}
		return models.User{}, apperr.Internal("failed to load user", err)
	}

	if !userpolicy.CanManageUser(p, target) {
		return models.User{}, apperr.Forbidden("you cannot manage this user")
	}
	return target, nil
}

// HandleGetMyTeamUser returns one managed team member.
func (h *Handler) HandleGetMyTeamUser(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	target, err := h.loadManagedTeamUser(ctx, r)
	if err != nil {
		webjson.Error(w, h.Log, err)
		return
	}
	webjson.Write(w, http.StatusOK, target)
}

type updateTeamUserRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// HandleUpdateMyTeamUser applies a partial update to a managed team
// member. Role and team are not editable here.
func (h *Handler) HandleUpdateMyTeamUser(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	target, err := h.loadManagedTeamUser(ctx, r)
	if err != nil {
		webjson.Error(w, h.Log, err)
		return
	}

	var req updateTeamUserRequest
	if err := webjson.Decode(r, &req); err != nil {
		webjson.Error(w, h.Log, err)
		return
	}

	update := models.User{
		Email: normalize.Email(req.Email),
		Name:  normalize.Name(req.Name),
	}
	if update.Email != "" && !inputval.IsValidEmail(update.Email) {
		webjson.Error(w, h.Log, apperr.BadRequest("invalid email address"))
		return
	}
	if req.Password != "" {
		if len(req.Password) < authutil.MinPasswordLength {
			webjson.Error(w, h.Log, apperr.BadRequest(
				fmt.Sprintf("password must be at least %d characters", authutil.MinPasswordLength)))
			return
		}
		hash, err := authutil.HashPassword(req.Password)
		if err != nil {
			webjson.Error(w, h.Log, apperr.Internal("failed to hash password", err))
			return
		}
		update.PasswordHash = hash
	}

	store := userstore.New(h.DB)
	if err := store.Update(ctx, target.ID, update); err != nil {
		if errors.Is(err, userstore.ErrDuplicateEmail) {
			webjson.Error(w, h.Log, apperr.BadRequest(err.Error()))
			return
		}
		webjson.Error(w, h.Log, apperr.Internal("failed to update team user", err))
		return
	}

	updated, err := store.GetByID(ctx, target.ID)
	if err != nil {
		webjson.Error(w, h.Log, apperr.Internal("failed to reload team user", err))
		return
	}
	webjson.Write(w, http.StatusOK, updated)
}

// HandleDeleteMyTeamUser removes a managed team member.
func (h *Handler) HandleDeleteMyTeamUser(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	target, err := h.loadManagedTeamUser(ctx, r)
	if err != nil {
		webjson.Error(w, h.Log, err)
		return
	}

	if _, err := userstore.New(h.DB).Delete(ctx, target.ID); err != nil {
		webjson.Error(w, h.Log, apperr.Internal("failed to delete team user", err))
		return
	}

	h.Log.Info("team user deleted", zap.String("user_id", target.ID.Hex()))
	webjson.Write(w, http.StatusOK, map[string]string{"message": "user deleted"})
}

// internal/app/features/users/create.go
package users

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	teamstore "github.com/dalemusser/surveyhub/internal/app/store/teams"
	userstore "github.com/dalemusser/surveyhub/internal/app/store/users"
	"github.com/dalemusser/surveyhub/internal/app/system/apperr"
	"github.com/dalemusser/surveyhub/internal/app/system/authutil"
	"github.com/dalemusser/surveyhub/internal/app/system/inputval"
	"github.com/dalemusser/surveyhub/internal/app/system/normalize"
	"github.com/dalemusser/surveyhub/internal/app/system/timeouts"
	"github.com/dalemusser/surveyhub/internal/app/system/webjson"
	"github.com/dalemusser/surveyhub/internal/domain/models"
)

// createUserInput defines validation rules for account creation.
type createUserInput struct {
	Email string `validate:"required,email" label:"Email"`
	Name  string `validate:"required,max=200" label:"Name"`
	Role  string `validate:"required" label:"Role"`
}

type createUserRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
	Role     string `json:"role"`
	TeamID   string `json:"teamId"`
}

// HandleCreate creates a new account with any role.
// Authorization: RequireRole("admin") in routes.go.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := webjson.Decode(r, &req); err != nil {
		webjson.Error(w, h.Log, err)
		return
	}

	email := normalize.Email(req.Email)
	name := normalize.Name(req.Name)
	role := normalize.Role(req.Role)

	input := createUserInput{Email: email, Name: name, Role: role}
	if result := inputval.Validate(input); result.HasErrors() {
		webjson.Error(w, h.Log, apperr.BadRequest(result.First()))
		return
	}
	if !models.ValidRole(role) {
		webjson.Error(w, h.Log, apperr.BadRequest("role must be user, editor, or admin"))
		return
	}
	if len(req.Password) < authutil.MinPasswordLength {
		webjson.Error(w, h.Log, apperr.BadRequest(
			fmt.Sprintf("password must be at least %d characters", authutil.MinPasswordLength)))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	var teamID *primitive.ObjectID
	if req.TeamID != "" {
		id, err := primitive.ObjectIDFromHex(req.TeamID)
		if err != nil {
			webjson.Error(w, h.Log, apperr.BadRequest("invalid teamId"))
			return
		}
		// A stored team_id must always point at a real team.
		if _, err := teamstore.New(h.DB).GetByID(ctx, id); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				webjson.Error(w, h.Log, apperr.NotFound("team not found"))
				return
			}
			webjson.Error(w, h.Log, apperr.Internal("failed to load team", err))
			return
		}
		teamID = &id
	}

	hash, err := authutil.HashPassword(req.Password)
	if err != nil {
		webjson.Error(w, h.Log, apperr.Internal("failed to hash password", err))
		return
	}

	user, err := userstore.New(h.DB).Create(ctx, models.User{
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		Role:         role,
		TeamID:       teamID,
	})
	if err != nil {
		if errors.Is(err, userstore.ErrDuplicateEmail) {
			webjson.Error(w, h.Log, apperr.BadRequest(err.Error()))
			return
		}
		webjson.Error(w, h.Log, apperr.Internal("failed to create user", err))
		return
	}

	h.Log.Info("user created",
		zap.String("user_id", user.ID.Hex()),
		zap.String("role", user.Role))

	webjson.Write(w, http.StatusCreated, user)
}

// internal/app/features/users/update.go
package users

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	userstore "github.com/dalemusser/surveyhub/internal/app/store/users"
	"github.com/dalemusser/surveyhub/internal/app/system/apperr"
	"github.com/dalemusser/surveyhub/internal/app/system/authutil"
	"github.com/dalemusser/surveyhub/internal/app/system/inputval"
	"github.com/dalemusser/surveyhub/internal/app/system/normalize"
	"github.com/dalemusser/surveyhub/internal/app/system/timeouts"
	"github.com/dalemusser/surveyhub/internal/app/system/webjson"
	"github.com/dalemusser/surveyhub/internal/domain/models"
)

type updateUserRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// HandleUpdate applies a partial update to an account. Omitted fields
// are left unchanged; a new password is re-hashed before storage.
// Authorization: RequireRole("admin") in routes.go.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		webjson.Error(w, h.Log, err)
		return
	}

	var req updateUserRequest
	if err := webjson.Decode(r, &req); err != nil {
		webjson.Error(w, h.Log, err)
		return
	}

	update := models.User{
		Email: normalize.Email(req.Email),
		Name:  normalize.Name(req.Name),
		Role:  normalize.Role(req.Role),
	}
	if update.Email != "" && !inputval.IsValidEmail(update.Email) {
		webjson.Error(w, h.Log, apperr.BadRequest("invalid email address"))
		return
	}
	if update.Role != "" && !models.ValidRole(update.Role) {
		webjson.Error(w, h.Log, apperr.BadRequest("role must be user, editor, or admin"))
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

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()
	store := userstore.New(h.DB)

	if _, err := store.GetByID(ctx, id); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			webjson.Error(w, h.Log, apperr.NotFound("user not found"))
			return
		}
		webjson.Error(w, h.Log, apperr.Internal("failed to load user", err))
		return
	}

	if err := store.Update(ctx, id, update); err != nil {
		if errors.Is(err, userstore.ErrDuplicateEmail) {
			webjson.Error(w, h.Log, apperr.BadRequest(err.Error()))
			return
		}
		webjson.Error(w, h.Log, apperr.Internal("failed to update user", err))
		return
	}

	updated, err := store.GetByID(ctx, id)
	if err != nil {
		webjson.Error(w, h.Log, apperr.Internal("failed to reload user", err))
		return
	}

	h.Log.Info("user updated", zap.String("user_id", id.Hex()))
	webjson.Write(w, http.StatusOK, updated)
}

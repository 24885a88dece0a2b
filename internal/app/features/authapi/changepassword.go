// internal/app/features/authapi/changepassword.go
package authapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	userstore "github.com/dalemusser/surveyhub/internal/app/store/users"
	"github.com/dalemusser/surveyhub/internal/app/system/apperr"
	"github.com/dalemusser/surveyhub/internal/app/system/auth"
	"github.com/dalemusser/surveyhub/internal/app/system/authutil"
	"github.com/dalemusser/surveyhub/internal/app/system/timeouts"
	"github.com/dalemusser/surveyhub/internal/app/system/webjson"
)

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

// HandleChangePassword lets the signed-in user rotate their own
// password after proving knowledge of the current one.
func (h *Handler) HandleChangePassword(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.CurrentPrincipal(r)
	if !ok {
		webjson.Error(w, h.Log, apperr.Unauthenticated("sign-in required"))
		return
	}

	var req changePasswordRequest
	if err := webjson.Decode(r, &req); err != nil {
		webjson.Error(w, h.Log, err)
		return
	}

	switch {
	case req.CurrentPassword == "":
		webjson.Error(w, h.Log, apperr.BadRequest("current password is required"))
		return
	case req.NewPassword == "":
		webjson.Error(w, h.Log, apperr.BadRequest("new password is required"))
		return
	case len(req.NewPassword) < authutil.MinPasswordLength:
		webjson.Error(w, h.Log, apperr.BadRequest(
			fmt.Sprintf("new password must be at least %d characters", authutil.MinPasswordLength)))
		return
	case req.NewPassword != req.ConfirmPassword:
		webjson.Error(w, h.Log, apperr.BadRequest("password confirmation does not match"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()
	store := userstore.New(h.DB)

	user, err := store.GetByID(ctx, p.ID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			webjson.Error(w, h.Log, apperr.Unauthenticated("account no longer exists"))
			return
		}
		webjson.Error(w, h.Log, apperr.Internal("failed to look up user", err))
		return
	}

	if !authutil.VerifyPassword(req.CurrentPassword, user.PasswordHash) {
		webjson.Error(w, h.Log, apperr.Unauthenticated("current password is incorrect"))
		return
	}

	hash, err := authutil.HashPassword(req.NewPassword)
	if err != nil {
		webjson.Error(w, h.Log, apperr.Internal("failed to hash password", err))
		return
	}
	if err := store.SetPasswordHash(ctx, user.ID, hash); err != nil {
		webjson.Error(w, h.Log, apperr.Internal("failed to update password", err))
		return
	}

	h.Log.Info("password changed", zap.String("user_id", user.ID.Hex()))
	webjson.Write(w, http.StatusOK, map[string]string{"message": "password updated"})
}

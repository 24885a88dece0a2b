// internal/app/features/users/delete.go
package users

import (
	"context"
	"errors"
	"net/http"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	userstore "github.com/dalemusser/surveyhub/internal/app/store/users"
	"github.com/dalemusser/surveyhub/internal/app/system/apperr"
	"github.com/dalemusser/surveyhub/internal/app/system/timeouts"
	"github.com/dalemusser/surveyhub/internal/app/system/webjson"
	"github.com/dalemusser/surveyhub/internal/domain/models"
)

// HandleDelete removes an account. Deleting the last remaining admin is
// refused so the system cannot lock itself out.
// Authorization: RequireRole("admin") in routes.go.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		webjson.Error(w, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()
	store := userstore.New(h.DB)

	target, err := store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			webjson.Error(w, h.Log, apperr.NotFound("user not found"))
			return
		}
		webjson.Error(w, h.Log, apperr.Internal("failed to load user", err))
		return
	}

	if target.Role == models.RoleAdmin {
		admins, err := store.Count(ctx, bson.M{"role": models.RoleAdmin})
		if err != nil {
			webjson.Error(w, h.Log, apperr.Internal("failed to count admins", err))
			return
		}
		if admins <= 1 {
			webjson.Error(w, h.Log, apperr.Forbidden("cannot delete the last admin"))
			return
		}
	}

	deleted, err := store.Delete(ctx, id)
	if err != nil {
		webjson.Error(w, h.Log, apperr.Internal("failed to delete user", err))
		return
	}
	if deleted == 0 {
		webjson.Error(w, h.Log, apperr.NotFound("user not found"))
		return
	}

	h.Log.Info("user deleted", zap.String("user_id", id.Hex()))
	webjson.Write(w, http.StatusOK, map[string]string{"message": "user deleted"})
}

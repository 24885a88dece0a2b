// internal/app/features/users/list.go
package users

import (
	"context"
	"net/http"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	userstore "github.com/dalemusser/surveyhub/internal/app/store/users"
	"github.com/dalemusser/surveyhub/internal/app/system/apperr"
	"github.com/dalemusser/surveyhub/internal/app/system/timeouts"
	"github.com/dalemusser/surveyhub/internal/app/system/webjson"
	"github.com/dalemusser/surveyhub/internal/domain/models"
)

// HandleList returns every account sorted by folded name.
// Authorization: RequireRole("admin") in routes.go.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	users, err := userstore.New(h.DB).Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "name_ci", Value: 1}}))
	if err != nil {
		webjson.Error(w, h.Log, apperr.Internal("failed to list users", err))
		return
	}
	if users == nil {
		users = []models.User{}
	}
	webjson.Write(w, http.StatusOK, users)
}

// HandleListEditors returns all editor accounts.
func (h *Handler) HandleListEditors(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	editors, err := userstore.New(h.DB).FindEditors(ctx)
	if err != nil {
		webjson.Error(w, h.Log, apperr.Internal("failed to list editors", err))
		return
	}
	if editors == nil {
		editors = []models.User{}
	}
	webjson.Write(w, http.StatusOK, editors)
}

// HandleListWithoutTeam returns users not attached to any team.
func (h *Handler) HandleListWithoutTeam(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	users, err := userstore.New(h.DB).FindWithoutTeam(ctx)
	if err != nil {
		webjson.Error(w, h.Log, apperr.Internal("failed to list users without team", err))
		return
	}
	if users == nil {
		users = []models.User{}
	}
	webjson.Write(w, http.StatusOK, users)
}

// HandleListByTeam returns the members of the given team.
func (h *Handler) HandleListByTeam(w http.ResponseWriter, r *http.Request) {
	teamID, err := pathID(r, "teamID")
	if err != nil {
		webjson.Error(w, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	members, err := userstore.New(h.DB).FindByTeam(ctx, teamID)
	if err != nil {
		webjson.Error(w, h.Log, apperr.Internal("failed to list team members", err))
		return
	}
	if members == nil {
		members = []models.User{}
	}
	webjson.Write(w, http.StatusOK, members)
}

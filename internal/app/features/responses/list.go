// internal/app/features/responses/list.go
package responses

import (
	"context"
	"errors"
	"net/http"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dalemusser/surveyhub/internal/app/policy/responsepolicy"
	responsestore "github.com/dalemusser/surveyhub/internal/app/store/responses"
	"github.com/dalemusser/surveyhub/internal/app/system/apperr"
	"github.com/dalemusser/surveyhub/internal/app/system/auth"
	"github.com/dalemusser/surveyhub/internal/app/system/timeouts"
	"github.com/dalemusser/surveyhub/internal/app/system/webjson"
	"github.com/dalemusser/surveyhub/internal/domain/models"
)

// HandleList returns the responses the caller is allowed to see, newest
// first. Users see their own, editors their team's, admins everything.
// Optional filters: surveyId, status, and (privileged only) userId.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	p, _ := auth.CurrentPrincipal(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	scope, err := responsepolicy.ListScopeFor(ctx, h.DB, p)
	if err != nil {
		webjson.Error(w, h.Log, apperr.Internal("failed to resolve listing scope", err))
		return
	}
	if !scope.CanList {
		webjson.Error(w, h.Log, apperr.Forbidden("you cannot list responses"))
		return
	}

	filter := bson.M{}
	q := r.URL.Query()

	if surveyID := q.Get("surveyId"); surveyID != "" {
		filter["survey_id"] = surveyID
	}
	if status := q.Get("status"); status != "" {
		if status != models.StatusDraft && status != models.StatusFinal {
			webjson.Error(w, h.Log, apperr.BadRequest("status must be draft or final"))
			return
		}
		filter["status"] = status
	}

	if userHex := q.Get("userId"); userHex != "" {
		if p.Role == models.RoleUser {
			webjson.Error(w, h.Log, apperr.Forbidden("the userId filter requires an admin or editor"))
			return
		}
		userID, err := primitive.ObjectIDFromHex(userHex)
		if err != nil {
			webjson.Error(w, h.Log, apperr.BadRequest("invalid userId"))
			return
		}
		if !scope.All && !containsID(scope.UserIDs, userID) {
			webjson.Error(w, h.Log, apperr.Forbidden("userId is outside your team scope"))
			return
		}
		filter["user_id"] = userID
	} else if !scope.All {
		filter["user_id"] = bson.M{"$in": scope.UserIDs}
	}

	list, err := responsestore.New(h.DB).Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		webjson.Error(w, h.Log, apperr.Internal("failed to list responses", err))
		return
	}
	if list == nil {
		list = []models.Response{}
	}
	webjson.Write(w, http.StatusOK, list)
}

func containsID(ids []primitive.ObjectID, id primitive.ObjectID) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}

// HandleGet returns one response. Access outside the caller's scope is
// Forbidden; existence is never masked as a 404.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		webjson.Error(w, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	resp, err := responsestore.New(h.DB).GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			webjson.Error(w, h.Log, apperr.NotFound("response not found"))
			return
		}
		webjson.Error(w, h.Log, apperr.Internal("failed to load response", err))
		return
	}

	p, _ := auth.CurrentPrincipal(r)
	allowed, err := responsepolicy.CheckAccess(ctx, h.DB, p, resp)
	if err != nil {
		webjson.Error(w, h.Log, apperr.Internal("failed to check access", err))
		return
	}
	if !allowed {
		webjson.Error(w, h.Log, apperr.Forbidden("you cannot access this response"))
		return
	}

	webjson.Write(w, http.StatusOK, resp)
}

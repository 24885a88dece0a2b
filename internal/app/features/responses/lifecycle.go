// internal/app/features/responses/lifecycle.go
package responses

import (
	"context"
	"errors"
	"net/http"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/dalemusser/surveyhub/internal/app/policy/responsepolicy"
	responsestore "github.com/dalemusser/surveyhub/internal/app/store/responses"
	"github.com/dalemusser/surveyhub/internal/app/system/apperr"
	"github.com/dalemusser/surveyhub/internal/app/system/auth"
	"github.com/dalemusser/surveyhub/internal/app/system/timeouts"
	"github.com/dalemusser/surveyhub/internal/app/system/webjson"
	"github.com/dalemusser/surveyhub/internal/domain/models"
)

// loadWithAccess fetches the response and runs the manage-access check.
func (h *Handler) loadWithAccess(ctx context.Context, r *http.Request) (models.Response, auth.Principal, error) {
	p, _ := auth.CurrentPrincipal(r)

	id, err := pathID(r, "id")
	if err != nil {
		return models.Response{}, p, err
	}

	resp, err := responsestore.New(h.DB).GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Response{}, p, apperr.NotFound("response not found")
		}
		return models.Response{}, p, apperr.Internal("failed to load response", err)
	}

	allowed, err := responsepolicy.CheckAccess(ctx, h.DB, p, resp)
	if err != nil {
		return models.Response{}, p, apperr.Internal("failed to check access", err)
	}
	if !allowed {
		return models.Response{}, p, apperr.Forbidden("you cannot access this response")
	}
	return resp, p, nil
}

// HandleFinalize moves a draft to final. The owner and any principal
// with manage access may finalize; finalizing twice is a Conflict.
func (h *Handler) HandleFinalize(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	resp, p, err := h.loadWithAccess(ctx, r)
	if err != nil {
		webjson.Error(w, h.Log, err)
		return
	}

	finalized, err := responsestore.New(h.DB).Finalize(ctx, resp.ID, p.ID)
	if err != nil {
		switch {
		case errors.Is(err, responsestore.ErrWrongStatus):
			webjson.Error(w, h.Log, apperr.Conflict("response is already final"))
		case errors.Is(err, mongo.ErrNoDocuments):
			webjson.Error(w, h.Log, apperr.NotFound("response not found"))
		default:
			webjson.Error(w, h.Log, apperr.Internal("failed to finalize response", err))
		}
		return
	}

	h.Log.Info("response finalized",
		zap.String("response_id", resp.ID.Hex()),
		zap.String("finalized_by", p.ID.Hex()))

	webjson.Write(w, http.StatusOK, finalized)
}

// HandleReopen moves a final response back to draft. Plain users never
// reopen, not even their own; reopening a draft is a BadRequest.
func (h *Handler) HandleReopen(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	resp, p, err := h.loadWithAccess(ctx, r)
	if err != nil {
		webjson.Error(w, h.Log, err)
		return
	}
	if p.Role == models.RoleUser {
		webjson.Error(w, h.Log, apperr.Forbidden("reopening requires an admin or editor"))
		return
	}

	reopened, err := responsestore.New(h.DB).Reopen(ctx, resp.ID, p.ID)
	if err != nil {
		switch {
		case errors.Is(err, responsestore.ErrWrongStatus):
			webjson.Error(w, h.Log, apperr.BadRequest("only final responses can be reopened"))
		case errors.Is(err, mongo.ErrNoDocuments):
			webjson.Error(w, h.Log, apperr.NotFound("response not found"))
		default:
			webjson.Error(w, h.Log, apperr.Internal("failed to reopen response", err))
		}
		return
	}

	h.Log.Info("response reopened",
		zap.String("response_id", resp.ID.Hex()),
		zap.String("reopened_by", p.ID.Hex()))

	webjson.Write(w, http.StatusOK, reopened)
}

// internal/app/features/responses/update.go
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

type updateResponseRequest struct {
	Answers  map[string]any `json:"answers"`
	Metadata map[string]any `json:"metadata"`
	Status   string         `json:"status"`
	Revision int64          `json:"revision"`
	// MunicipalityID distinguishes three cases: key absent (leave
	// alone), empty string (clear), hex string (set).
	MunicipalityID *string `json:"municipalityId"`
}

// HandleUpdate merges answer and metadata keys into a response. Keys
// not named in the request survive untouched; a whole-map replacement
// never happens. The write is a compare-and-swap against the revision
// the caller read — a lost race is a Conflict, not a silent overwrite.
//
// A status of "final" inside the update finalizes after the merge.
// Plain users cannot touch a final response at all; admins and editors
// can keep editing one.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		webjson.Error(w, h.Log, err)
		return
	}

	var req updateResponseRequest
	if err := webjson.Decode(r, &req); err != nil {
		webjson.Error(w, h.Log, err)
		return
	}
	if req.Revision <= 0 {
		webjson.Error(w, h.Log, apperr.BadRequest("revision is required"))
		return
	}
	switch req.Status {
	case "", models.StatusFinal:
	case models.StatusDraft:
		// Draft is only meaningful as the current state; going back to
		// draft is the reopen operation.
		webjson.Error(w, h.Log, apperr.BadRequest("use the reopen operation to return a response to draft"))
		return
	default:
		webjson.Error(w, h.Log, apperr.BadRequest("status must be final when present"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()
	store := responsestore.New(h.DB)

	resp, err := store.GetByID(ctx, id)
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
		webjson.Error(w, h.Log, apperr.Forbidden("you cannot modify this response"))
		return
	}

	if resp.Status == models.StatusFinal {
		if p.Role == models.RoleUser {
			webjson.Error(w, h.Log, apperr.BadRequest("final responses cannot be modified"))
			return
		}
		if req.Status == models.StatusFinal {
			webjson.Error(w, h.Log, apperr.Conflict("response is already final"))
			return
		}
	}

	merge := responsestore.Merge{
		Answers:  req.Answers,
		Metadata: req.Metadata,
	}
	if req.MunicipalityID != nil {
		merge.SetMunicipality = true
		if *req.MunicipalityID != "" {
			mid, err := h.validateMunicipality(ctx, *req.MunicipalityID)
			if err != nil {
				webjson.Error(w, h.Log, err)
				return
			}
			merge.MunicipalityID = mid
		}
	}

	updated, err := store.MergeUpdate(ctx, id, req.Revision, merge, p.ID)
	if err != nil {
		switch {
		case errors.Is(err, responsestore.ErrRevisionConflict):
			webjson.Error(w, h.Log, apperr.Conflict("response was modified concurrently; re-read and retry"))
		case errors.Is(err, mongo.ErrNoDocuments):
			webjson.Error(w, h.Log, apperr.NotFound("response not found"))
		default:
			webjson.Error(w, h.Log, apperr.Internal("failed to update response", err))
		}
		return
	}

	if req.Status == models.StatusFinal {
		finalized, err := store.Finalize(ctx, id, p.ID)
		if err != nil {
			if errors.Is(err, responsestore.ErrWrongStatus) {
				webjson.Error(w, h.Log, apperr.Conflict("response is already final"))
				return
			}
			webjson.Error(w, h.Log, apperr.Internal("failed to finalize response", err))
			return
		}
		updated = finalized
	}

	h.Log.Info("response updated",
		zap.String("response_id", id.Hex()),
		zap.Int64("revision", updated.Revision),
		zap.String("modified_by", p.ID.Hex()))

	webjson.Write(w, http.StatusOK, updated)
}

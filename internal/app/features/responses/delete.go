// internal/app/features/responses/delete.go
package responses

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	filestore "github.com/dalemusser/surveyhub/internal/app/store/files"
	responsestore "github.com/dalemusser/surveyhub/internal/app/store/responses"
	"github.com/dalemusser/surveyhub/internal/app/system/apperr"
	"github.com/dalemusser/surveyhub/internal/app/system/timeouts"
	"github.com/dalemusser/surveyhub/internal/app/system/webjson"
	"github.com/dalemusser/surveyhub/internal/domain/models"
)

// HandleDelete removes a response and its attached file records. Plain
// users cannot delete a final response; admins and editors can.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	resp, p, err := h.loadWithAccess(ctx, r)
	if err != nil {
		webjson.Error(w, h.Log, err)
		return
	}

	if resp.Status == models.StatusFinal && p.Role == models.RoleUser {
		webjson.Error(w, h.Log, apperr.BadRequest("final responses cannot be deleted"))
		return
	}

	deleted, err := responsestore.New(h.DB).Delete(ctx, resp.ID)
	if err != nil {
		webjson.Error(w, h.Log, apperr.Internal("failed to delete response", err))
		return
	}
	if deleted == 0 {
		webjson.Error(w, h.Log, apperr.NotFound("response not found"))
		return
	}

	// Attached file records go with the response. Disk artifacts are
	// cleaned up best-effort by the files feature's delete path; records
	// removed here just stop them being listed.
	removed, err := filestore.New(h.DB).DeleteByResponse(ctx, resp.ID)
	if err != nil {
		h.Log.Warn("failed to delete file records for response",
			zap.String("response_id", resp.ID.Hex()), zap.Error(err))
	} else if len(removed) > 0 {
		h.Log.Info("file records deleted with response",
			zap.String("response_id", resp.ID.Hex()), zap.Int("count", len(removed)))
	}

	h.Log.Info("response deleted",
		zap.String("response_id", resp.ID.Hex()),
		zap.String("deleted_by", p.ID.Hex()))

	webjson.Write(w, http.StatusOK, map[string]string{"message": "response deleted"})
}

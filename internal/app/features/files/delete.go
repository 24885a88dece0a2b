// internal/app/features/files/delete.go
package files

import (
	"context"
	"errors"
	"net/http"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	filestore "github.com/dalemusser/surveyhub/internal/app/store/files"
	"github.com/dalemusser/surveyhub/internal/app/system/apperr"
	"github.com/dalemusser/surveyhub/internal/app/system/timeouts"
	"github.com/dalemusser/surveyhub/internal/app/system/webjson"
)

// HandleDelete removes a file: disk artifacts best-effort first, then
// the record. A second delete is a NotFound because the record is gone.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		webjson.Error(w, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()
	store := filestore.New(h.DB)

	record, err := store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			webjson.Error(w, h.Log, apperr.NotFound("file not found"))
			return
		}
		webjson.Error(w, h.Log, apperr.Internal("failed to load file", err))
		return
	}

	if err := h.checkResponseAccess(ctx, r, record.ResponseID); err != nil {
		webjson.Error(w, h.Log, err)
		return
	}

	h.removeArtifact(h.originalPath(record))
	h.removeArtifact(h.optimizedPath(record))

	deleted, err := store.Delete(ctx, id)
	if err != nil {
		webjson.Error(w, h.Log, apperr.Internal("failed to delete file", err))
		return
	}
	if deleted == 0 {
		webjson.Error(w, h.Log, apperr.NotFound("file not found"))
		return
	}

	h.Log.Info("file deleted", zap.String("file_id", id.Hex()))
	webjson.Write(w, http.StatusOK, map[string]string{"message": "file deleted"})
}

// internal/app/features/files/serve.go
package files

import (
	"context"
	"errors"
	"net/http"
	"os"

	"go.mongodb.org/mongo-driver/mongo"

	filestore "github.com/dalemusser/surveyhub/internal/app/store/files"
	"github.com/dalemusser/surveyhub/internal/app/system/apperr"
	"github.com/dalemusser/surveyhub/internal/app/system/timeouts"
	"github.com/dalemusser/surveyhub/internal/app/system/webjson"
	"github.com/dalemusser/surveyhub/internal/domain/models"
)

// HandleListByResponse returns a response's file records with their
// optimization state.
func (h *Handler) HandleListByResponse(w http.ResponseWriter, r *http.Request) {
	responseID, err := pathID(r, "responseID")
	if err != nil {
		webjson.Error(w, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.checkResponseAccess(ctx, r, responseID); err != nil {
		webjson.Error(w, h.Log, err)
		return
	}

	records, err := filestore.New(h.DB).FindByResponse(ctx, responseID)
	if err != nil {
		webjson.Error(w, h.Log, apperr.Internal("failed to list files", err))
		return
	}

	list := make([]fileInfo, 0, len(records))
	for _, rec := range records {
		list = append(list, fileInfo{File: rec, IsOptimized: h.hasDerivative(rec)})
	}
	webjson.Write(w, http.StatusOK, list)
}

// HandleServe streams the image bytes: the optimized derivative when it
// exists, the original otherwise. A record whose backing files are gone
// is a NotFound; the record itself is left alone.
func (h *Handler) HandleServe(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		webjson.Error(w, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	record, err := filestore.New(h.DB).GetByID(ctx, id)
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

	if path := h.optimizedPath(record); fileExists(path) {
		w.Header().Set("Content-Type", "image/jpeg")
		http.ServeFile(w, r, path)
		return
	}
	if path := h.originalPath(record); fileExists(path) {
		w.Header().Set("Content-Type", record.MimeType)
		http.ServeFile(w, r, path)
		return
	}

	webjson.Error(w, h.Log, apperr.NotFound("file contents are missing"))
}

func (h *Handler) hasDerivative(f models.File) bool {
	return fileExists(h.optimizedPath(f))
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

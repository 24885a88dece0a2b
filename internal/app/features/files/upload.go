// internal/app/features/files/upload.go
package files

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	filestore "github.com/dalemusser/surveyhub/internal/app/store/files"
	"github.com/dalemusser/surveyhub/internal/app/system/apperr"
	"github.com/dalemusser/surveyhub/internal/app/system/imageopt"
	"github.com/dalemusser/surveyhub/internal/app/system/limits"
	"github.com/dalemusser/surveyhub/internal/app/system/timeouts"
	"github.com/dalemusser/surveyhub/internal/app/system/webjson"
	"github.com/dalemusser/surveyhub/internal/domain/models"
)

// fileInfo is the list/upload payload: the record plus whether a
// derivative exists on disk.
type fileInfo struct {
	models.File
	IsOptimized bool `json:"is_optimized"`
}

// HandleUpload accepts a multipart image upload for a response. The
// flow is: spool to a temp file, insert the metadata record, rename the
// temp file into place under the record's ID, then build the derivative
// best-effort. A failed metadata insert removes the temp spool; a
// failed derivative build only logs.
func (h *Handler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, limits.MaxUploadSize)
	if err := r.ParseMultipartForm(limits.MaxUploadMemory); err != nil {
		webjson.Error(w, h.Log, apperr.BadRequest("invalid multipart upload (10 MiB limit)"))
		return
	}

	responseID, err := primitive.ObjectIDFromHex(r.FormValue("responseId"))
	if err != nil {
		webjson.Error(w, h.Log, apperr.BadRequest("invalid responseId"))
		return
	}

	src, header, err := r.FormFile("file")
	if err != nil {
		webjson.Error(w, h.Log, apperr.BadRequest("a file field is required"))
		return
	}
	defer src.Close()

	mimeType := header.Header.Get("Content-Type")
	if !imageopt.CanOptimize(mimeType) {
		webjson.Error(w, h.Log, apperr.BadRequest("only image uploads are accepted"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	if err := h.checkResponseAccess(ctx, r, responseID); err != nil {
		webjson.Error(w, h.Log, err)
		return
	}

	// Spool under a unique temp name so partial writes never collide
	// with a stored original.
	tmpPath := filepath.Join(h.OriginalsDir, "upload-"+uuid.New().String()[:8]+".tmp")
	tmp, err := os.Create(tmpPath)
	if err != nil {
		webjson.Error(w, h.Log, apperr.Internal("failed to spool upload", err))
		return
	}
	written, err := io.Copy(tmp, src)
	closeErr := tmp.Close()
	if err != nil || closeErr != nil {
		if err == nil {
			err = closeErr
		}
		h.removeArtifact(tmpPath)
		webjson.Error(w, h.Log, apperr.Internal("failed to spool upload", err))
		return
	}

	record, err := filestore.New(h.DB).Create(ctx, models.File{
		ResponseID: responseID,
		Filename:   header.Filename,
		MimeType:   mimeType,
		FileSize:   written,
	})
	if err != nil {
		h.removeArtifact(tmpPath)
		webjson.Error(w, h.Log, apperr.Internal("failed to record upload", err))
		return
	}

	finalPath := h.originalPath(record)
	if err := os.Rename(tmpPath, finalPath); err != nil {
		// The record stays: a record without a backing file is a known
		// state and serves as NotFound.
		h.removeArtifact(tmpPath)
		webjson.Error(w, h.Log, apperr.Internal("failed to store upload", err))
		return
	}

	optimized := false
	if h.OptimizeUploads {
		if err := imageopt.Optimize(finalPath, h.optimizedPath(record)); err != nil {
			h.Log.Warn("image optimization failed",
				zap.String("file_id", record.ID.Hex()), zap.Error(err))
		} else {
			optimized = true
		}
	}

	h.Log.Info("file uploaded",
		zap.String("file_id", record.ID.Hex()),
		zap.String("response_id", responseID.Hex()),
		zap.Int64("size", written),
		zap.Bool("optimized", optimized))

	webjson.Write(w, http.StatusCreated, fileInfo{File: record, IsOptimized: optimized})
}

// removeArtifact deletes a disk artifact best-effort.
func (h *Handler) removeArtifact(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		h.Log.Warn("failed to remove artifact", zap.String("path", path), zap.Error(err))
	}
}

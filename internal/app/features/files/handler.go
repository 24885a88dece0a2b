// internal/app/features/files/handler.go

// Package files implements image attachments for responses. Metadata
// lives in Mongo; bytes live on disk addressed by convention:
// originals/{id}{ext}, plus optimized/{id}.jpg when the derivative
// build succeeded. A record whose backing file is missing serves as
// NotFound but is never auto-deleted.
package files

import (
	"context"
	"errors"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/dalemusser/surveyhub/internal/app/policy/responsepolicy"
	responsestore "github.com/dalemusser/surveyhub/internal/app/store/responses"
	"github.com/dalemusser/surveyhub/internal/app/system/apperr"
	"github.com/dalemusser/surveyhub/internal/app/system/auth"
	"github.com/dalemusser/surveyhub/internal/domain/models"
)

// Handler holds dependencies for file endpoints.
type Handler struct {
	DB  *mongo.Database
	Log *zap.Logger

	// OriginalsDir and OptimizedDir are the storage roots for uploaded
	// bytes and their derivatives.
	OriginalsDir string
	OptimizedDir string

	// OptimizeUploads controls whether uploads get a derivative built.
	// Serving still falls back to originals either way.
	OptimizeUploads bool
}

// NewHandler constructs a files Handler with optimization enabled.
func NewHandler(db *mongo.Database, logger *zap.Logger, originalsDir, optimizedDir string) *Handler {
	return &Handler{
		DB:              db,
		Log:             logger,
		OriginalsDir:    originalsDir,
		OptimizedDir:    optimizedDir,
		OptimizeUploads: true,
	}
}

// originalPath is the on-disk location of the uploaded bytes.
func (h *Handler) originalPath(f models.File) string {
	ext := strings.ToLower(filepath.Ext(f.Filename))
	return filepath.Join(h.OriginalsDir, f.ID.Hex()+ext)
}

// optimizedPath is the on-disk location of the derivative, when built.
func (h *Handler) optimizedPath(f models.File) string {
	return filepath.Join(h.OptimizedDir, f.ID.Hex()+".jpg")
}

func pathID(r *http.Request, name string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, name))
	if err != nil {
		return primitive.NilObjectID, apperr.BadRequest("invalid " + name)
	}
	return id, nil
}

// checkResponseAccess loads the response and enforces manage access for
// the caller. File access always follows the owning response.
func (h *Handler) checkResponseAccess(ctx context.Context, r *http.Request, responseID primitive.ObjectID) error {
	resp, err := responsestore.New(h.DB).GetByID(ctx, responseID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return apperr.NotFound("response not found")
		}
		return apperr.Internal("failed to load response", err)
	}

	p, _ := auth.CurrentPrincipal(r)
	allowed, err := responsepolicy.CheckAccess(ctx, h.DB, p, resp)
	if err != nil {
		return apperr.Internal("failed to check access", err)
	}
	if !allowed {
		return apperr.Forbidden("you cannot access this response's files")
	}
	return nil
}

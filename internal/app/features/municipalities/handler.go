// internal/app/features/municipalities/handler.go

// Package municipalities implements the reference-data catalog that
// responses point at. Deletion is a soft flag so historical responses
// keep a resolvable target; admins can restore.
package municipalities

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/dalemusser/surveyhub/internal/app/system/apperr"
)

// Handler holds dependencies for municipality endpoints.
type Handler struct {
	DB  *mongo.Database
	Log *zap.Logger
}

// NewHandler constructs a municipalities Handler.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{DB: db, Log: logger}
}

func pathID(r *http.Request, name string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, name))
	if err != nil {
		return primitive.NilObjectID, apperr.BadRequest("invalid " + name)
	}
	return id, nil
}

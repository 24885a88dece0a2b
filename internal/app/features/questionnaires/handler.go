// internal/app/features/questionnaires/handler.go

// Package questionnaires implements survey template management.
// Templates are created by admins and editors, read by everyone, and
// soft-deactivated rather than deleted so existing responses keep a
// resolvable survey reference.
package questionnaires

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/dalemusser/surveyhub/internal/app/system/apperr"
)

// Handler holds dependencies for questionnaire endpoints.
type Handler struct {
	DB  *mongo.Database
	Log *zap.Logger
}

// NewHandler constructs a questionnaires Handler.
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

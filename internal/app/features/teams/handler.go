// internal/app/features/teams/handler.go

// Package teams implements team administration: CRUD plus membership
// assignment. All operations are admin-only; editors see their team
// through the users feature instead.
package teams

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/dalemusser/surveyhub/internal/app/system/apperr"
)

// Handler holds dependencies for team management endpoints.
type Handler struct {
	DB  *mongo.Database
	Log *zap.Logger
}

// NewHandler constructs a teams Handler.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{DB: db, Log: logger}
}

// pathID extracts and parses the given ObjectID URL parameter.
func pathID(r *http.Request, name string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, name))
	if err != nil {
		return primitive.NilObjectID, apperr.BadRequest("invalid " + name)
	}
	return id, nil
}

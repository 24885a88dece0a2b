// internal/app/features/authapi/handler.go
package authapi

import (
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/dalemusser/surveyhub/internal/app/system/auth"
)

// Handler holds dependencies for the authentication endpoints.
type Handler struct {
	DB     *mongo.Database
	Log    *zap.Logger
	Tokens *auth.TokenManager
}

// NewHandler constructs an auth Handler.
func NewHandler(db *mongo.Database, logger *zap.Logger, tokens *auth.TokenManager) *Handler {
	return &Handler{DB: db, Log: logger, Tokens: tokens}
}

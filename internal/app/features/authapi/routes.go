// internal/app/features/authapi/routes.go
package authapi

import (
	"github.com/go-chi/chi/v5"

	"github.com/dalemusser/surveyhub/internal/app/system/auth"
)

// Routes mounts the authentication endpoints.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	// Public: credential exchange.
	r.Post("/login", h.HandleLogin)

	// Signed-in only.
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireSignedIn)
		r.Patch("/change-password", h.HandleChangePassword)
	})

	return r
}

// internal/app/features/files/routes.go
package files

import (
	"github.com/go-chi/chi/v5"

	"github.com/dalemusser/surveyhub/internal/app/system/auth"
)

// Routes mounts the file endpoints. Scope follows the owning response,
// enforced in the handlers.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(auth.RequireSignedIn)

	r.Post("/upload", h.HandleUpload)
	r.Get("/response/{responseID}", h.HandleListByResponse)
	r.Get("/{id}", h.HandleServe)
	r.Delete("/{id}", h.HandleDelete)

	return r
}

// internal/app/features/responses/routes.go
package responses

import (
	"github.com/go-chi/chi/v5"

	"github.com/dalemusser/surveyhub/internal/app/system/auth"
)

// Routes mounts the response endpoints. Every route is available to all
// signed-in roles; per-response scope is enforced by responsepolicy in
// the handlers, not by route gating.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(auth.RequireSignedIn)

	r.Post("/", h.HandleCreate)
	r.Get("/", h.HandleList)
	r.Get("/{id}", h.HandleGet)
	r.Patch("/{id}", h.HandleUpdate)
	r.Post("/{id}/finalize", h.HandleFinalize)
	r.Post("/{id}/reopen", h.HandleReopen)
	r.Delete("/{id}", h.HandleDelete)

	return r
}

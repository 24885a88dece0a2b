// internal/app/features/municipalities/routes.go
package municipalities

import (
	"github.com/go-chi/chi/v5"

	"github.com/dalemusser/surveyhub/internal/app/system/auth"
	"github.com/dalemusser/surveyhub/internal/domain/models"
)

// Routes mounts the municipality endpoints.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(auth.RequireSignedIn)

	// Reads are open to every signed-in role; only active entries show.
	r.Get("/", h.HandleList)
	r.Get("/by-code/{code}", h.HandleGetByCode)
	r.Get("/district/{district}", h.HandleListByDistrict)
	r.Get("/{id}", h.HandleGet)

	// Catalog maintenance is admin-only.
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireRole(models.RoleAdmin))
		r.Post("/", h.HandleCreate)
		r.Get("/all", h.HandleListAll)
		r.Patch("/{id}", h.HandleUpdate)
		r.Delete("/{id}", h.HandleDeactivate)
		r.Post("/{id}/restore", h.HandleRestore)
	})

	return r
}

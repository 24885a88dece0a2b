// internal/app/features/questionnaires/routes.go
package questionnaires

import (
	"github.com/go-chi/chi/v5"

	"github.com/dalemusser/surveyhub/internal/app/system/auth"
	"github.com/dalemusser/surveyhub/internal/domain/models"
)

// Routes mounts the questionnaire endpoints.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(auth.RequireSignedIn)

	// Every signed-in role can read active templates.
	r.Get("/", h.HandleList)
	r.Get("/{id}", h.HandleGet)

	// Admins and editors author templates.
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireRole(models.RoleAdmin, models.RoleEditor))
		r.Post("/", h.HandleCreate)
	})

	// Retiring a template is admin-only.
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireRole(models.RoleAdmin))
		r.Post("/{id}/deactivate", h.HandleDeactivate)
	})

	return r
}

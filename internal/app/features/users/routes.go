// internal/app/features/users/routes.go
package users

import (
	"github.com/go-chi/chi/v5"

	"github.com/dalemusser/surveyhub/internal/app/system/auth"
	"github.com/dalemusser/surveyhub/internal/domain/models"
)

// Routes mounts the user management endpoints.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(auth.RequireSignedIn)

	// Admin-only: full account administration.
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireRole(models.RoleAdmin))
		r.Post("/", h.HandleCreate)
		r.Get("/", h.HandleList)
		r.Get("/editors", h.HandleListEditors)
		r.Get("/without-team", h.HandleListWithoutTeam)
		r.Get("/by-team/{teamID}", h.HandleListByTeam)
		r.Get("/{id}", h.HandleGet)
		r.Patch("/{id}", h.HandleUpdate)
		r.Delete("/{id}", h.HandleDelete)
	})

	// Editor-only: manage plain users on the editor's own team.
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireRole(models.RoleEditor))
		r.Post("/team", h.HandleCreateTeamUser)
		r.Get("/my-team", h.HandleListMyTeam)
		r.Get("/my-team/{id}", h.HandleGetMyTeamUser)
		r.Patch("/my-team/{id}", h.HandleUpdateMyTeamUser)
		r.Delete("/my-team/{id}", h.HandleDeleteMyTeamUser)
	})

	return r
}

// internal/app/features/teams/routes.go
package teams

import (
	"github.com/go-chi/chi/v5"

	"github.com/dalemusser/surveyhub/internal/app/system/auth"
	"github.com/dalemusser/surveyhub/internal/domain/models"
)

// Routes mounts the team management endpoints (admin-only).
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(auth.RequireSignedIn)
	r.Use(auth.RequireRole(models.RoleAdmin))

	r.Post("/", h.HandleCreate)
	r.Get("/", h.HandleList)
	r.Get("/unassigned-users", h.HandleListUnassigned)
	r.Get("/{id}", h.HandleGet)
	r.Patch("/{id}", h.HandleUpdate)
	r.Delete("/{id}", h.HandleDelete)

	r.Get("/{id}/users", h.HandleListMembers)
	r.Post("/{id}/users/{userID}", h.HandleAssignUser)
	r.Delete("/users/{userID}", h.HandleUnassignUser)

	return r
}

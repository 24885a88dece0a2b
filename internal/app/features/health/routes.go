package health

import "github.com/go-chi/chi/v5"

// Routes mounts the health endpoint. No authentication: load balancers
// and uptime probes hit this anonymously.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.Serve)
	return r
}

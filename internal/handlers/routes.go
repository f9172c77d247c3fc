package handlers

import (
	"github.com/go-chi/chi/v5"
)

// Routes mounts the view endpoints. Middleware, CORS and /metrics are the
// caller's concern.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.Dashboard)
	r.Get("/health", h.Health)

	r.Route("/views/{resource}", func(r chi.Router) {
		r.Get("/", h.ServeView)
		r.Get("/state", h.ServeState)
		r.Get("/events", h.ServeEvents)
	})

	return r
}

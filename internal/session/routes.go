package session

import "github.com/go-chi/chi/v5"

// RegisterRoutes mounts the session endpoints under /sessions.
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", h.Create)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.Get)
			r.Delete("/", h.Delete)
			r.Post("/keys", h.PressKeys)
		})
	})
}

package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"calcpad/internal/handlers"
	"calcpad/internal/observability"
	"calcpad/internal/session"
)

// NewRouter wires the middleware chain, the operational endpoints and the
// calculator session API backed by store.
func NewRouter(store *session.Store) http.Handler {

	r := chi.NewRouter()

	r.Use(observability.RequestIDMiddleware)
	r.Use(observability.TracingMiddleware)
	r.Use(observability.LoggingMiddleware)

	r.Get("/health", handlers.Health)

	r.Handle("/metrics", observability.PrometheusHandler())

	session.RegisterRoutes(r, session.NewHandler(store))

	return r
}

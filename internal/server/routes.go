package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// newRouter wires the API routes and middleware around h.
func newRouter(h *handler) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(requestID)
	r.Use(h.logRequests)
	r.Use(middleware.Recoverer)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, errNotFound(r.URL.Path))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorBody{
			Error:     "METHOD_NOT_ALLOWED",
			Message:   r.Method + " not allowed on " + r.URL.Path,
			RequestID: RequestIDFrom(r.Context()),
		})
	})

	r.Get("/healthz", h.health)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/drill", h.convert)
		r.Post("/tools", h.listTools)
	})

	return r
}

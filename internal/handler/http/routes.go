package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID, h.withLogging)
	router.Use(withGzipRequests, middleware.Compress(5, "application/json", "text/plain"))

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Get("/health", h.health)
		r.Get("/api/version", h.getServerVersion)
	})

	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Get("/api/sync", h.pull)
		r.Post("/api/sync", h.push)
		r.Post("/api/sync/force", h.forcePush)
		r.Get("/api/sync/status", h.status)
	})

	router.NotFound(notFound)
	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}

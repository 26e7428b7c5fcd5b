package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Get("/api/version", h.getServerVersion)
	})

	// routes with authorization
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Post("/api/sync/push", h.pushChanges)
		r.Post("/api/sync/pull", h.pullChanges)
		r.Post("/api/sync/delta", h.computeDelta)

		r.Get("/api/sync/conflicts", h.listConflicts)
		r.Post("/api/sync/conflicts/{conflictID}/resolve", h.resolveConflict)

		r.Get("/ws/sync", h.liveSync)
	})

	return router
}

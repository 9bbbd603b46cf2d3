package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iudanet/cartosync/internal/server/middleware"
)

// Router bundles the handlers served under /api/v1.
type Router struct {
	Projects   *ProjectsHandler
	Changes    *ChangesHandler
	Health     *HealthHandler
	WriteLimit *middleware.RateLimiter // nil отключает ограничение записи
	Logger     *slog.Logger
}

// Handler builds the chi router with logging and recovery middleware.
func (rt Router) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RecoveryMiddleware(rt.Logger))
	r.Use(middleware.LoggingWithSkip(rt.Logger, []string{"/api/v1/health"}))

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", rt.Health.Health)
		r.Get("/changes", rt.Changes.Changes)
		r.Get("/projects", rt.Projects.List)

		r.Group(func(r chi.Router) {
			if rt.WriteLimit != nil {
				r.Use(middleware.WriteLimitMiddleware(rt.WriteLimit, rt.Logger))
			}
			r.Get("/projects/*", rt.Projects.Document)
			r.Put("/projects/*", rt.Projects.Document)
			r.Post("/projects/*", rt.Projects.Document)
		})
	})

	return r
}

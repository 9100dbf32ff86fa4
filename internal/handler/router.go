package handler

import (
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"seized-page/internal/config"
	"seized-page/internal/middleware"
	"seized-page/pkg/logger"
)

// RouterDeps holds the handlers mounted by NewRouter
type RouterDeps struct {
	Seizure *SeizureHandler
	Health  *HealthHandler
	Stats   *StatsHandler
	Logger  *logger.Logger
}

// NewRouter configures and returns the HTTP router.
// chi's RealIP middleware is not used: it would overwrite RemoteAddr, which
// the address resolver reads as its last source.
func NewRouter(deps RouterDeps) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID(deps.Logger))
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Compress(5))
	r.Use(chiMiddleware.Timeout(config.RequestTimeout))

	r.Get("/health", deps.Health.Check)

	r.Route("/api/visits", func(r chi.Router) {
		r.Get("/stats", deps.Stats.GetStats)
	})

	// Everything else, any method, is the seized page
	r.Handle("/", deps.Seizure)
	r.NotFound(deps.Seizure.ServeHTTP)
	r.MethodNotAllowed(deps.Seizure.ServeHTTP)

	deps.Logger.Info("Router configured successfully")
	return r
}

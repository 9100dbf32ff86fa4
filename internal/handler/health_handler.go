package handler

import (
	"context"
	"net/http"
	"time"

	"seized-page/pkg/logger"
)

// Pinger reports whether a backend is reachable
type Pinger interface {
	Health(ctx context.Context) error
}

// HealthHandler handles health check requests
type HealthHandler struct {
	database Pinger
	redis    Pinger
	logger   *logger.Logger
}

// NewHealthHandler creates a new health handler. database and redis may be nil.
func NewHealthHandler(database, redis Pinger, logger *logger.Logger) *HealthHandler {
	return &HealthHandler{
		database: database,
		redis:    redis,
		logger:   logger,
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string    `json:"status"`
	Database  string    `json:"database"`
	Redis     string    `json:"redis"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
	Service   string    `json:"service"`
}

// Check handles GET /health.
// The process is healthy even when its backends are not: the page still renders.
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context(), h.logger)

	response := HealthResponse{
		Status:    "healthy",
		Database:  "unconfigured",
		Redis:     "unconfigured",
		Timestamp: time.Now().UTC(),
		Version:   "1.0.0",
		Service:   "seized-page",
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	if h.database != nil {
		response.Database = pingStatus(ctx, h.database, log.WithField("backend", "database"))
	}
	if h.redis != nil {
		response.Redis = pingStatus(ctx, h.redis, log.WithField("backend", "redis"))
	}

	writeJSON(w, http.StatusOK, response, log)
}

func pingStatus(ctx context.Context, p Pinger, log *logger.Logger) string {
	if err := p.Health(ctx); err != nil {
		log.WithError(err).Warn("Health check failed")
		return "down"
	}
	return "up"
}

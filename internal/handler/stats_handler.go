package handler

import (
	"net/http"

	"seized-page/internal/domain"
	"seized-page/internal/service"
	"seized-page/pkg/errors"
	"seized-page/pkg/logger"
)

// StatsHandler exposes the Redis visit counters
type StatsHandler struct {
	counter service.VisitCounter
	logger  *logger.Logger
}

// NewStatsHandler creates a new stats handler. counter may be nil.
func NewStatsHandler(counter service.VisitCounter, logger *logger.Logger) *StatsHandler {
	return &StatsHandler{
		counter: counter,
		logger:  logger,
	}
}

// StatsResponse represents the response for visit statistics
type StatsResponse struct {
	Success bool               `json:"success"`
	Data    *domain.VisitStats `json:"data"`
}

// GetStats handles GET /api/visits/stats
func (h *StatsHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context(), h.logger)

	if h.counter == nil {
		writeError(w, r, errors.NewUnavailableError("Visit counters are not configured"), log)
		return
	}

	stats, err := h.counter.GetStats(r.Context())
	if err != nil {
		log.WithError(err).Error("Failed to get visit stats")
		writeError(w, r, errors.NewInternalError("Failed to get visit stats", err), log)
		return
	}

	writeJSON(w, http.StatusOK, StatsResponse{Success: true, Data: stats}, log)
}

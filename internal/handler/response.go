package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"seized-page/internal/middleware"
	"seized-page/pkg/errors"
	"seized-page/pkg/logger"
)

// writeJSON encodes payload with the given status
func writeJSON(w http.ResponseWriter, statusCode int, payload interface{}, log *logger.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.WithError(err).Error("Failed to encode response")
	}
}

// writeError sends a standardized error response
func writeError(w http.ResponseWriter, r *http.Request, appErr *errors.AppError, log *logger.Logger) {
	response := errors.ErrorResponse{}
	response.Error.Type = appErr.Type
	response.Error.Message = appErr.Message
	response.Error.RequestID = middleware.GetRequestID(r.Context())
	response.Error.Timestamp = time.Now().UTC().Format(time.RFC3339)

	writeJSON(w, appErr.StatusCode, response, log)
}

package handler

import (
	"html/template"
	"net/http"

	"seized-page/internal/service"
	"seized-page/pkg/logger"
	"seized-page/pkg/utils"
)

// VisitErrorMessage is written ahead of the page when a visit could not be stored
const VisitErrorMessage = "An error occurred while logging the IP address."

// SeizureHandler records the visitor address and serves the seized page
type SeizureHandler struct {
	resolver     *utils.AddressResolver
	visitService service.VisitService
	logger       *logger.Logger
	exposeErrors bool
	page         []byte
}

// NewSeizureHandler creates a new seizure handler.
// With exposeErrors the driver message follows the generic error sentence.
func NewSeizureHandler(resolver *utils.AddressResolver, visitService service.VisitService, logger *logger.Logger, exposeErrors bool) *SeizureHandler {
	return &SeizureHandler{
		resolver:     resolver,
		visitService: visitService,
		logger:       logger,
		exposeErrors: exposeErrors,
		page:         renderSeizedPage(),
	}
}

// ServeHTTP handles every method on every unclaimed path.
// The response is always 200 with the same document; a failed write only adds
// an error sentence in front of it.
func (h *SeizureHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context(), h.logger)
	ipAddress := h.resolver.Resolve(r)

	_, err := h.visitService.Persist(r.Context(), ipAddress)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)

	if err != nil {
		log.WithField("ip", ipAddress).WithError(err).Error("Failed to record visit")

		message := VisitErrorMessage
		if h.exposeErrors {
			message += " " + template.HTMLEscapeString(err.Error())
		}
		if _, werr := w.Write([]byte(message + "\n")); werr != nil {
			return
		}
	}

	if _, err := w.Write(h.page); err != nil {
		log.WithError(err).Debug("Failed to write seized page")
	}
}

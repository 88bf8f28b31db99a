package handler

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/TusharSA25/Weather-Dashboard/internal/api/models"
	"github.com/TusharSA25/Weather-Dashboard/internal/api/response"
	"github.com/TusharSA25/Weather-Dashboard/internal/history"
)

// HistoryHandler handles search history endpoints.
type HistoryHandler struct {
	service *history.Service
	logger  zerolog.Logger
}

// NewHistoryHandler creates a new HistoryHandler.
func NewHistoryHandler(service *history.Service, logger zerolog.Logger) *HistoryHandler {
	return &HistoryHandler{service: service, logger: logger}
}

// List handles GET /api/history - recently searched cities, most
// recent first.
func (h *HistoryHandler) List(w http.ResponseWriter, r *http.Request) {
	cities, err := h.service.Cities(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("loading search history failed")
		response.InternalError(w, r, "could not load search history")
		return
	}
	if cities == nil {
		cities = []string{}
	}

	response.JSON(w, r, http.StatusOK, models.History{Cities: cities})
}

package handler

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/TusharSA25/Weather-Dashboard/internal/api/models"
	"github.com/TusharSA25/Weather-Dashboard/internal/api/response"
	"github.com/TusharSA25/Weather-Dashboard/internal/weather"
)

// AlertHandler handles weather alert endpoints.
type AlertHandler struct {
	service *weather.Service
	logger  zerolog.Logger
}

// NewAlertHandler creates a new AlertHandler.
func NewAlertHandler(service *weather.Service, logger zerolog.Logger) *AlertHandler {
	return &AlertHandler{service: service, logger: logger}
}

// Alerts handles GET /api/alerts/{city}. An unreachable alerts
// resource or an unresolvable city degrades to an empty list with 200;
// only a missing credential is a hard error.
func (h *AlertHandler) Alerts(w http.ResponseWriter, r *http.Request) {
	city := pathParam(r, "city")
	if city == "" {
		response.BadRequest(w, r, "city is required")
		return
	}

	alerts, err := h.service.AlertsForCity(r.Context(), city)
	if err != nil {
		response.WeatherError(w, r, err)
		return
	}

	resp := models.AlertsResponse{
		City:   city,
		Alerts: models.NewWeatherAlerts(alerts),
	}
	response.JSON(w, r, http.StatusOK, resp)
}

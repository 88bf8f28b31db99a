package handler

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/TusharSA25/Weather-Dashboard/internal/api/models"
	"github.com/TusharSA25/Weather-Dashboard/internal/api/response"
	"github.com/TusharSA25/Weather-Dashboard/internal/weather"
)

// AirQualityHandler handles air quality endpoints.
type AirQualityHandler struct {
	service *weather.Service
	logger  zerolog.Logger
}

// NewAirQualityHandler creates a new AirQualityHandler.
func NewAirQualityHandler(service *weather.Service, logger zerolog.Logger) *AirQualityHandler {
	return &AirQualityHandler{service: service, logger: logger}
}

// AirQuality handles GET /api/air-quality/{city}. Unlike the search
// flow, a failing lookup here is a hard error: this endpoint has no
// other facet to fall back on.
func (h *AirQualityHandler) AirQuality(w http.ResponseWriter, r *http.Request) {
	city := pathParam(r, "city")
	if city == "" {
		response.BadRequest(w, r, "city is required")
		return
	}

	location, snapshot, err := h.service.AirQualityForCity(r.Context(), city)
	if err != nil {
		response.WeatherError(w, r, err)
		return
	}

	resp := models.AirQualityResponse{
		City:        location.Name,
		Coordinates: models.Coordinates{Lat: location.Lat, Lon: location.Lon},
		AirQuality:  models.NewAirQuality(snapshot),
	}
	response.JSON(w, r, http.StatusOK, resp)
}

package handler

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/TusharSA25/Weather-Dashboard/internal/api/models"
	"github.com/TusharSA25/Weather-Dashboard/internal/api/response"
	"github.com/TusharSA25/Weather-Dashboard/internal/weather"
)

// GeocodeHandler handles geocoding and suggestion endpoints.
type GeocodeHandler struct {
	service *weather.Service
	logger  zerolog.Logger
}

// NewGeocodeHandler creates a new GeocodeHandler.
func NewGeocodeHandler(service *weather.Service, logger zerolog.Logger) *GeocodeHandler {
	return &GeocodeHandler{service: service, logger: logger}
}

// Geocode handles GET /api/geocode/{city} - up to five candidate
// locations for a query. Zero candidates is a valid empty list, not an
// error.
func (h *GeocodeHandler) Geocode(w http.ResponseWriter, r *http.Request) {
	city := pathParam(r, "city")
	if city == "" {
		response.BadRequest(w, r, "city is required")
		return
	}

	locations, err := h.service.Geocode(r.Context(), city)
	if err != nil {
		response.WeatherError(w, r, err)
		return
	}

	w.Header().Set("Cache-Control", "public, max-age=1800")
	response.JSON(w, r, http.StatusOK, models.NewLocations(locations))
}

// Suggestions handles GET /api/suggestions/{query}. This endpoint is
// always 200: short queries, a missing credential and upstream
// failures all degrade to an empty list so the search box never breaks
// mid-keystroke.
func (h *GeocodeHandler) Suggestions(w http.ResponseWriter, r *http.Request) {
	query := pathParam(r, "query")

	locations, err := h.service.Suggestions(r.Context(), query)
	if err != nil {
		h.logger.Warn().Err(err).Str("query", query).Msg("suggestions degraded to empty")
		locations = nil
	}

	w.Header().Set("Cache-Control", "public, max-age=1800")
	response.JSON(w, r, http.StatusOK, models.NewLocations(locations))
}

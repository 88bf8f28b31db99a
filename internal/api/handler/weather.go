// Package handler provides HTTP handlers for the Weather Dashboard API.
package handler

import (
	"context"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/TusharSA25/Weather-Dashboard/internal/api/models"
	"github.com/TusharSA25/Weather-Dashboard/internal/api/response"
	"github.com/TusharSA25/Weather-Dashboard/internal/history"
	"github.com/TusharSA25/Weather-Dashboard/internal/weather"
	"github.com/TusharSA25/Weather-Dashboard/internal/weather/openweathermap"
)

// UpstreamClient is the raw passthrough surface of the upstream
// provider. The /api/weather and /api/forecast endpoints serve the
// upstream payload shape unchanged, so the contract here is the
// concrete response types rather than the domain model.
type UpstreamClient interface {
	HasAPIKey() bool
	FetchCurrent(ctx context.Context, city string) (*openweathermap.CurrentWeatherResponse, error)
	FetchForecast(ctx context.Context, city string) (*openweathermap.ForecastResponse, error)
}

// WeatherHandlerConfig holds dependencies for the WeatherHandler.
type WeatherHandlerConfig struct {
	Service  *weather.Service
	Upstream UpstreamClient
	Fallback *weather.FallbackProvider
	History  *history.Service
	Logger   zerolog.Logger
}

// WeatherHandler handles weather data endpoints.
type WeatherHandler struct {
	service  *weather.Service
	upstream UpstreamClient
	fallback *weather.FallbackProvider
	history  *history.Service
	logger   zerolog.Logger
}

// NewWeatherHandler creates a new WeatherHandler.
func NewWeatherHandler(cfg WeatherHandlerConfig) *WeatherHandler {
	return &WeatherHandler{
		service:  cfg.Service,
		upstream: cfg.Upstream,
		fallback: cfg.Fallback,
		history:  cfg.History,
		logger:   cfg.Logger,
	}
}

// Search handles GET /api/search/{city} - the composed dashboard payload.
func (h *WeatherHandler) Search(w http.ResponseWriter, r *http.Request) {
	city := pathParam(r, "city")
	if city == "" {
		response.BadRequest(w, r, "city is required")
		return
	}

	result, err := h.service.Search(r.Context(), city)
	if err != nil {
		response.WeatherError(w, r, err)
		return
	}

	h.recordSearch(r.Context(), result.Current.City)

	w.Header().Set("Cache-Control", "public, max-age=600")
	response.JSON(w, r, http.StatusOK, models.NewSearchResult(result))
}

// Current handles GET /api/weather/{city} - raw upstream current conditions.
func (h *WeatherHandler) Current(w http.ResponseWriter, r *http.Request) {
	city := pathParam(r, "city")
	if city == "" {
		response.BadRequest(w, r, "city is required")
		return
	}

	if !h.upstream.HasAPIKey() {
		response.Error(w, r, models.NewMissingAPIKey(""))
		return
	}

	resp, err := h.upstream.FetchCurrent(r.Context(), city)
	if err != nil {
		response.WeatherError(w, r, err)
		return
	}

	w.Header().Set("Cache-Control", "public, max-age=600")
	response.JSON(w, r, http.StatusOK, resp)
}

// Forecast handles GET /api/forecast/{city} - the raw 3-hour sample series.
func (h *WeatherHandler) Forecast(w http.ResponseWriter, r *http.Request) {
	city := pathParam(r, "city")
	if city == "" {
		response.BadRequest(w, r, "city is required")
		return
	}

	if !h.upstream.HasAPIKey() {
		response.Error(w, r, models.NewMissingAPIKey(""))
		return
	}

	resp, err := h.upstream.FetchForecast(r.Context(), city)
	if err != nil {
		response.WeatherError(w, r, err)
		return
	}

	w.Header().Set("Cache-Control", "public, max-age=600")
	response.JSON(w, r, http.StatusOK, resp.List)
}

// Demo handles GET /api/demo - the synthetic dashboard payload, served
// without touching any upstream so the UI can run keyless.
func (h *WeatherHandler) Demo(w http.ResponseWriter, r *http.Request) {
	result := h.fallback.Compose()
	response.JSON(w, r, http.StatusOK, models.NewSearchResult(&result))
}

// recordSearch stores a successful search in the history. Failures are
// logged, never surfaced; history is a convenience, not a guarantee.
func (h *WeatherHandler) recordSearch(ctx context.Context, city string) {
	if h.history == nil {
		return
	}
	if err := h.history.RecordSearch(ctx, city); err != nil {
		h.logger.Warn().Err(err).Str("city", city).Msg("recording search history failed")
	}
}

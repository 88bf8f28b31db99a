package handler

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/TusharSA25/Weather-Dashboard/internal/api/middleware"
	"github.com/TusharSA25/Weather-Dashboard/internal/api/models"
	"github.com/TusharSA25/Weather-Dashboard/internal/api/response"
	"github.com/TusharSA25/Weather-Dashboard/internal/weather"
	"github.com/TusharSA25/Weather-Dashboard/internal/worker"
)

// AdminHandler handles the JWT-protected cache administration
// endpoints.
type AdminHandler struct {
	weather    *weather.Service
	refreshJob *worker.RefreshJob
	logger     zerolog.Logger
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(weatherService *weather.Service, refreshJob *worker.RefreshJob, logger zerolog.Logger) *AdminHandler {
	return &AdminHandler{
		weather:    weatherService,
		refreshJob: refreshJob,
		logger:     logger,
	}
}

// Refresh handles POST /api/admin/refresh - re-warm the composed cache
// for the recorded history cities and report a per-run summary.
func (h *AdminHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	h.logger.Info().
		Str("subject", middleware.GetSubject(r.Context())).
		Msg("admin cache refresh requested")

	result := h.refreshJob.Run(r.Context())

	summary := models.RefreshSummary{
		Total:      result.Total,
		Successful: result.Successful,
		Failed:     result.Failed,
		DurationMS: result.Duration.Milliseconds(),
		Cities:     result.Cities,
	}
	if summary.Cities == nil {
		summary.Cities = []string{}
	}
	response.JSON(w, r, http.StatusOK, summary)
}

// Invalidate handles POST /api/admin/invalidate - drop every cached
// composed result and geocoding entry.
func (h *AdminHandler) Invalidate(w http.ResponseWriter, r *http.Request) {
	h.logger.Info().
		Str("subject", middleware.GetSubject(r.Context())).
		Msg("admin cache invalidation requested")

	h.weather.InvalidateCache()
	response.NoContent(w, r)
}

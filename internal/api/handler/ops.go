package handler

import (
	"net/http"
	"time"

	"github.com/TusharSA25/Weather-Dashboard/internal/api/models"
	"github.com/TusharSA25/Weather-Dashboard/internal/api/response"
	"github.com/TusharSA25/Weather-Dashboard/internal/provider/resilience"
	"github.com/TusharSA25/Weather-Dashboard/internal/weather"
)

// OpsConfig holds dependencies for the OpsHandler.
type OpsConfig struct {
	Version   string
	BuildTime string
	StartedAt time.Time
	APIKey    string
	Weather   *weather.Service
	Registry  *resilience.Registry
}

// OpsHandler handles operational endpoints.
type OpsHandler struct {
	version   string
	buildTime string
	startedAt time.Time
	apiKey    string
	weather   *weather.Service
	registry  *resilience.Registry
}

// NewOpsHandler creates a new OpsHandler.
func NewOpsHandler(cfg OpsConfig) *OpsHandler {
	return &OpsHandler{
		version:   cfg.Version,
		buildTime: cfg.BuildTime,
		startedAt: cfg.StartedAt,
		apiKey:    cfg.APIKey,
		weather:   cfg.Weather,
		registry:  cfg.Registry,
	}
}

// Health handles GET /api/health. Always 200: a missing credential or
// an open provider circuit degrades the reported status, it never
// makes the process unhealthy.
func (h *OpsHandler) Health(w http.ResponseWriter, r *http.Request) {
	hasKey := h.weather != nil && h.weather.HasAPIKey()

	status := models.HealthStatusOK
	if !hasKey {
		status = models.HealthStatusDegraded
	}

	var providers []models.ProviderStatus
	if h.registry != nil {
		for _, ph := range h.registry.GetAllHealth() {
			providers = append(providers, newProviderStatus(ph))
			if ph.IsUnhealthy() {
				status = models.HealthStatusDegraded
			}
		}
	}

	health := models.Health{
		Status:    status,
		Timestamp: models.Timestamp(time.Now()),
		Uptime:    time.Since(h.startedAt).Seconds(),
		HasAPIKey: hasKey,
		Version:   h.version,
		BuildTime: h.buildTime,
		Providers: providers,
	}
	response.JSON(w, r, http.StatusOK, health)
}

// Config handles GET /api/config - the credential the dashboard needs
// for client-side map tile requests. 500 while no key is configured.
func (h *OpsHandler) Config(w http.ResponseWriter, r *http.Request) {
	if h.apiKey == "" {
		response.Error(w, r, models.NewMissingAPIKey(""))
		return
	}
	response.JSON(w, r, http.StatusOK, models.Config{APIKey: h.apiKey})
}

func newProviderStatus(ph *resilience.ProviderHealth) models.ProviderStatus {
	status := "healthy"
	switch {
	case ph.IsUnhealthy():
		status = "unhealthy"
	case ph.IsDegraded():
		status = "degraded"
	}

	out := models.ProviderStatus{
		Provider: ph.Name,
		Status:   status,
		Message:  ph.LastError,
	}
	if ph.LastSuccessAt != nil {
		ts := models.Timestamp(*ph.LastSuccessAt)
		out.LastSuccessAt = &ts
	}
	if ph.LastFailureAt != nil {
		ts := models.Timestamp(*ph.LastFailureAt)
		out.LastFailureAt = &ts
	}
	return out
}

package models

// Health is the body of GET /api/health. It reports readiness to
// serve weather data even when the upstream credential is absent.
type Health struct {
	Status    HealthStatus     `json:"status"`
	Timestamp Timestamp        `json:"timestamp"`
	Uptime    float64          `json:"uptime"`
	HasAPIKey bool             `json:"hasApiKey"`
	Version   string           `json:"version,omitempty"`
	BuildTime string           `json:"buildTime,omitempty"`
	Providers []ProviderStatus `json:"providers,omitempty"`
}

// ProviderStatus reports the circuit state of one upstream provider.
type ProviderStatus struct {
	Provider      string     `json:"provider"`
	Status        string     `json:"status"`
	LastSuccessAt *Timestamp `json:"lastSuccessAt,omitempty"`
	LastFailureAt *Timestamp `json:"lastFailureAt,omitempty"`
	Message       string     `json:"message,omitempty"`
}

// Config is the body of GET /api/config, consumed by the dashboard for
// client-side map tile requests.
type Config struct {
	APIKey string `json:"apiKey"`
}

// History is the body of GET /api/history.
type History struct {
	Cities []string `json:"cities"`
}

// RefreshSummary is the body of POST /api/admin/refresh.
type RefreshSummary struct {
	Total      int      `json:"total"`
	Successful int      `json:"successful"`
	Failed     int      `json:"failed"`
	DurationMS int64    `json:"durationMs"`
	Cities     []string `json:"cities"`
}

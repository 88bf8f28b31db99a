// Package api provides the HTTP API for the Weather Dashboard.
package api

import (
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/TusharSA25/Weather-Dashboard/internal/api/handler"
	"github.com/TusharSA25/Weather-Dashboard/internal/api/middleware"
	"github.com/TusharSA25/Weather-Dashboard/internal/auth"
	"github.com/TusharSA25/Weather-Dashboard/internal/history"
	"github.com/TusharSA25/Weather-Dashboard/internal/provider/resilience"
	"github.com/TusharSA25/Weather-Dashboard/internal/weather"
	"github.com/TusharSA25/Weather-Dashboard/internal/worker"
)

// RouterConfig holds configuration for the router.
type RouterConfig struct {
	Version        string
	BuildTime      string
	Logger         zerolog.Logger
	ServiceName    string
	Metrics        *middleware.Metrics
	APIKey         string
	StartedAt      time.Time
	WeatherService *weather.Service
	Upstream       handler.UpstreamClient
	Fallback       *weather.FallbackProvider
	HistoryService *history.Service
	JWTService     *auth.JWTService
	RefreshJob     *worker.RefreshJob
	Registry       *resilience.Registry
}

// NewRouter creates a new chi router with all API routes configured.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	// Set default service name if not provided
	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "weather-dashboard-api"
	}

	startedAt := cfg.StartedAt
	if startedAt.IsZero() {
		startedAt = time.Now()
	}

	historyService := cfg.HistoryService
	if historyService == nil {
		historyService = history.NewService(history.NewInMemoryRepository())
	}

	fallback := cfg.Fallback
	if fallback == nil {
		fallback = weather.NewFallbackProvider(weather.FallbackConfig{})
	}

	refreshJob := cfg.RefreshJob
	if refreshJob == nil {
		refreshJob = worker.NewRefreshJob(worker.RefreshJobConfig{
			Logger:         cfg.Logger,
			WeatherService: cfg.WeatherService,
			HistoryService: historyService,
		})
	}

	// Global middleware - order matters
	r.Use(middleware.RequestID)            // Generate/propagate request ID first
	r.Use(middleware.Tracing(serviceName)) // Distributed tracing
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware()) // HTTP metrics
	}
	r.Use(middleware.Logger(cfg.Logger))   // Structured logging
	r.Use(middleware.Recovery(cfg.Logger)) // Panic recovery
	r.Use(chimiddleware.RealIP)            // Real IP extraction
	r.Use(middleware.SecurityHeaders)      // Security headers (HSTS, CSP, etc.)
	r.Use(middleware.RequireTLS)           // TLS enforcement (enabled via REQUIRE_TLS=true)
	r.Use(middleware.ContentTypeJSON)      // JSON content type

	// Initialize handlers
	weatherHandler := handler.NewWeatherHandler(handler.WeatherHandlerConfig{
		Service:  cfg.WeatherService,
		Upstream: cfg.Upstream,
		Fallback: fallback,
		History:  historyService,
		Logger:   cfg.Logger,
	})
	airQualityHandler := handler.NewAirQualityHandler(cfg.WeatherService, cfg.Logger)
	alertHandler := handler.NewAlertHandler(cfg.WeatherService, cfg.Logger)
	geocodeHandler := handler.NewGeocodeHandler(cfg.WeatherService, cfg.Logger)
	historyHandler := handler.NewHistoryHandler(historyService, cfg.Logger)
	opsHandler := handler.NewOpsHandler(handler.OpsConfig{
		Version:   cfg.Version,
		BuildTime: cfg.BuildTime,
		StartedAt: startedAt,
		APIKey:    cfg.APIKey,
		Weather:   cfg.WeatherService,
		Registry:  cfg.Registry,
	})
	adminHandler := handler.NewAdminHandler(cfg.WeatherService, refreshJob, cfg.Logger)

	// Create admin auth middleware
	adminAuth := middleware.AdminAuth(cfg.JWTService)

	// Create rate limit middleware for different endpoint categories
	adminRateLimit := middleware.RateLimitBySubject(middleware.AdminRateLimit)    // 10 req/min per token subject
	expensiveRateLimit := middleware.RateLimitByIP(middleware.ExpensiveRateLimit) // 30 req/min
	standardRateLimit := middleware.RateLimitByIP(middleware.StandardRateLimit)   // 100 req/min

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Ops endpoints (public, unthrottled so probes never bounce)
		r.Get("/health", opsHandler.Health)
		r.Get("/config", opsHandler.Config)

		// Composed search - one request fans out to four upstream
		// resources, so it gets the strict tier
		r.With(expensiveRateLimit).Get("/search/{city}", weatherHandler.Search)

		// Facet and passthrough endpoints - standard rate limiting
		r.Group(func(r chi.Router) {
			r.Use(standardRateLimit)
			r.Get("/weather/{city}", weatherHandler.Current)
			r.Get("/forecast/{city}", weatherHandler.Forecast)
			r.Get("/air-quality/{city}", airQualityHandler.AirQuality)
			r.Get("/alerts/{city}", alertHandler.Alerts)
			r.Get("/geocode/{city}", geocodeHandler.Geocode)
			r.Get("/suggestions/{query}", geocodeHandler.Suggestions)
			r.Get("/history", historyHandler.List)
			r.Get("/demo", weatherHandler.Demo)
		})

		// Admin endpoints (authenticated) - for internal operations
		r.Route("/admin", func(r chi.Router) {
			r.Use(adminAuth)
			r.Use(adminRateLimit)
			r.Post("/refresh", adminHandler.Refresh)
			r.Post("/invalidate", adminHandler.Invalidate)
		})
	})

	return r
}

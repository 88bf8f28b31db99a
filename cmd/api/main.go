// Package main provides the entrypoint for the Weather Dashboard API server.
package main

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/TusharSA25/Weather-Dashboard/internal/api"
	"github.com/TusharSA25/Weather-Dashboard/internal/api/middleware"
	"github.com/TusharSA25/Weather-Dashboard/internal/auth"
	"github.com/TusharSA25/Weather-Dashboard/internal/config"
	"github.com/TusharSA25/Weather-Dashboard/internal/database"
	"github.com/TusharSA25/Weather-Dashboard/internal/history"
	"github.com/TusharSA25/Weather-Dashboard/internal/provider/resilience"
	"github.com/TusharSA25/Weather-Dashboard/internal/telemetry"
	"github.com/TusharSA25/Weather-Dashboard/internal/weather"
	"github.com/TusharSA25/Weather-Dashboard/internal/weather/openweathermap"
	"github.com/TusharSA25/Weather-Dashboard/internal/worker"
)

// Version and BuildTime are set at compile time via ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	const serviceName = "weather-dashboard-api"

	// Setup structured logging
	log := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("version", Version).
		Logger()

	log.Info().
		Str("build_time", BuildTime).
		Msg("starting Weather Dashboard API")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Initialize OpenTelemetry
	ctx := context.Background()

	tp, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName:    serviceName,
		ServiceVersion: Version,
		Environment:    cfg.Env,
		OTLPEndpoint:   cfg.OTLPEndpoint,
		Enabled:        cfg.OTELEnabled,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize telemetry")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tp.Shutdown(shutdownCtx); shutdownErr != nil {
			log.Error().Err(shutdownErr).Msg("failed to shutdown telemetry")
		}
	}()

	if cfg.OTELEnabled {
		log.Info().
			Str("otlp_endpoint", cfg.OTLPEndpoint).
			Msg("OpenTelemetry initialized")
	}

	// Initialize metrics
	metrics, err := middleware.NewMetrics()
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize metrics")
		os.Exit(1) //nolint:gocritic // intentional exit, telemetry cleanup is best-effort
	}

	providerMetrics, err := middleware.NewProviderMetrics()
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize provider metrics")
		os.Exit(1)
	}

	// The upstream key is optional: without it the API boots, serves
	// /api/demo and /api/health, and reports DEGRADED.
	if cfg.OpenWeatherAPIKey == "" {
		log.Warn().Msg("OPENWEATHER_API_KEY not set - weather endpoints will report DEGRADED")
	}

	// Initialize the upstream gateway behind a resilient client
	registry := resilience.NewRegistry()
	owmHTTPClient := resilience.NewClient(resilience.DefaultClientConfig(openweathermap.ProviderName))
	registry.Register(openweathermap.ProviderName, owmHTTPClient)

	owmClient := openweathermap.NewClient(openweathermap.ClientConfig{
		APIKey:     cfg.OpenWeatherAPIKey,
		HTTPClient: owmHTTPClient,
		Logger:     log,
	})

	// Initialize search history: PostgreSQL when enabled, in-memory
	// otherwise
	var historyRepo history.Repository = history.NewInMemoryRepository()
	if cfg.DBEnabled {
		dbConfig := database.ConfigFromEnv()
		pool, err := database.Connect(ctx, dbConfig)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to database")
		}
		defer pool.Close()

		pgRepo := history.NewPostgresRepository(pool)
		if err := pgRepo.EnsureSchema(ctx); err != nil {
			log.Fatal().Err(err).Msg("failed to ensure history schema")
		}
		historyRepo = pgRepo

		log.Info().
			Str("host", dbConfig.Host).
			Int("port", dbConfig.Port).
			Str("database", dbConfig.Database).
			Msg("database connected")
	}
	historyService := history.NewService(historyRepo)

	// Initialize the aggregation service
	weatherService := weather.NewService(weather.ServiceConfig{
		Provider: owmClient,
		Logger:   log,
		Registry: registry,
		Metrics:  providerMetrics,
		CacheTTL: cfg.CacheTTL,
	})

	// Initialize JWT service for the admin endpoints
	jwtSigningKey := cfg.AdminJWTSecret
	if jwtSigningKey == "" {
		// A random per-process key means no externally minted token can
		// validate, so the admin surface stays locked instead of open.
		jwtSigningKey = randomSecret()
		log.Warn().Msg("ADMIN_JWT_SECRET not set - admin endpoints are effectively disabled")
	}

	jwtService := auth.NewJWTService(auth.JWTConfig{
		SigningKey: jwtSigningKey,
		Issuer:     "weather-dashboard",
		Audience:   "weather-dashboard-api",
	})

	// Refresh job backing POST /api/admin/refresh
	refreshConfig := worker.DefaultRefreshConfig()
	refreshConfig.Concurrency = cfg.RefreshConcurrency
	if len(cfg.SeedCities) > 0 {
		refreshConfig.SeedCities = cfg.SeedCities
	}
	refreshJob := worker.NewRefreshJob(worker.RefreshJobConfig{
		Config:         refreshConfig,
		Logger:         log,
		WeatherService: weatherService,
		HistoryService: historyService,
	})

	// Create router with configuration
	router := api.NewRouter(api.RouterConfig{
		Version:        Version,
		BuildTime:      BuildTime,
		Logger:         log,
		ServiceName:    serviceName,
		Metrics:        metrics,
		APIKey:         cfg.OpenWeatherAPIKey,
		StartedAt:      time.Now(),
		WeatherService: weatherService,
		Upstream:       owmClient,
		HistoryService: historyService,
		JWTService:     jwtService,
		RefreshJob:     refreshJob,
		Registry:       registry,
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().
			Str("addr", server.Addr).
			Msg("server listening")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		os.Exit(1)
	}

	log.Info().Msg("server stopped")
}

// randomSecret generates an unguessable per-process signing key.
func randomSecret() string {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		panic(err)
	}
	return base64.RawURLEncoding.EncodeToString(bytes)
}

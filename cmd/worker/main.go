// Package main provides the entrypoint for the Weather Dashboard cache
// refresh worker. Refresh jobs arrive over a Pub/Sub subscription; when
// one is not configured the worker falls back to a local ticker.
package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/TusharSA25/Weather-Dashboard/internal/config"
	"github.com/TusharSA25/Weather-Dashboard/internal/database"
	"github.com/TusharSA25/Weather-Dashboard/internal/history"
	"github.com/TusharSA25/Weather-Dashboard/internal/provider/resilience"
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
	const serviceName = "weather-dashboard-worker"

	log := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("version", Version).
		Logger()

	log.Info().
		Str("build_time", BuildTime).
		Msg("starting Weather Dashboard worker")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	if cfg.OpenWeatherAPIKey == "" {
		log.Warn().Msg("OPENWEATHER_API_KEY not set - refresh jobs will fail until configured")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Upstream gateway behind a resilient client
	registry := resilience.NewRegistry()
	owmHTTPClient := resilience.NewClient(resilience.DefaultClientConfig(openweathermap.ProviderName))
	registry.Register(openweathermap.ProviderName, owmHTTPClient)

	owmClient := openweathermap.NewClient(openweathermap.ClientConfig{
		APIKey:     cfg.OpenWeatherAPIKey,
		HTTPClient: owmHTTPClient,
		Logger:     log,
	})

	weatherService := weather.NewService(weather.ServiceConfig{
		Provider: owmClient,
		Logger:   log,
		Registry: registry,
		CacheTTL: cfg.CacheTTL,
	})

	// Refresh targets come from the shared search history when the
	// database is enabled; otherwise the seed cities are all there is.
	var historyService *history.Service
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
		historyService = history.NewService(pgRepo)

		log.Info().
			Str("host", dbConfig.Host).
			Str("database", dbConfig.Database).
			Msg("database connected, refreshing history cities")
	}

	refreshConfig := worker.RefreshConfig{
		SeedCities:  cfg.SeedCities,
		Concurrency: cfg.RefreshConcurrency,
		Timeout:     30 * time.Second,
		Interval:    cfg.RefreshInterval,
	}
	refreshJob := worker.NewRefreshJob(worker.RefreshJobConfig{
		Config:         refreshConfig,
		Logger:         log,
		WeatherService: weatherService,
		HistoryService: historyService,
	})

	// Health endpoint for Cloud Run, reporting refresh metrics
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"status":  "healthy",
			"version": Version,
			"refresh": refreshJob.MetricsSnapshot(),
		})
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("health server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("health server error")
		}
	}()

	// Refresh trigger: Pub/Sub subscription when configured, local
	// ticker otherwise
	if cfg.PubSubProjectID != "" {
		handler, err := worker.NewPubSubHandler(ctx, worker.PubSubConfig{
			ProjectID:        cfg.PubSubProjectID,
			SubscriptionName: cfg.PubSubSubscription,
			RefreshJob:       refreshJob,
			Logger:           log,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create pubsub handler")
		}
		defer handler.Close()

		go func() {
			if err := handler.Start(ctx); err != nil {
				log.Error().Err(err).Msg("pubsub handler stopped")
				cancel()
			}
		}()
	} else {
		log.Info().
			Dur("interval", cfg.RefreshInterval).
			Msg("PUBSUB_PROJECT_ID not set, using ticker")

		go func() {
			ticker := time.NewTicker(cfg.RefreshInterval)
			defer ticker.Stop()

			// Warm the caches once at startup instead of waiting a
			// full interval.
			refreshJob.Run(ctx)

			for {
				select {
				case <-ctx.Done():
					return
				case <-ticker.C:
					refreshJob.Run(ctx)
				}
			}
		}()
	}

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down worker")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("health server forced to shutdown")
	}

	log.Info().Msg("worker stopped")
}

// Package config reads the environment configuration for both binaries.
// A .env file is loaded best-effort so local development does not need
// exported variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the environment configuration shared by the API server
// and the worker.
type Config struct {
	// Port is the HTTP listen port.
	Port string

	// Env is the deployment environment name (development, production).
	Env string

	// OpenWeatherAPIKey is the upstream credential. May be empty: the
	// service starts and reports DEGRADED instead of refusing to boot.
	OpenWeatherAPIKey string

	// AdminJWTSecret signs admin bearer tokens. Empty means no valid
	// admin token can exist.
	AdminJWTSecret string

	// DBEnabled selects the PostgreSQL history repository over the
	// in-memory default.
	DBEnabled bool

	// OTELEnabled turns on OTLP trace and metric export.
	OTELEnabled bool

	// OTLPEndpoint is the OTLP gRPC collector endpoint.
	OTLPEndpoint string

	// PubSubProjectID enables the Pub/Sub refresh trigger when set.
	// Without it the worker falls back to a local ticker.
	PubSubProjectID string

	// PubSubSubscription is the refresh job subscription name.
	PubSubSubscription string

	// RefreshInterval is the ticker period for the worker fallback loop.
	RefreshInterval time.Duration

	// RefreshConcurrency bounds the refresh worker pool.
	RefreshConcurrency int

	// SeedCities overrides the built-in refresh seed list. Empty keeps
	// the defaults.
	SeedCities []string

	// CacheTTL is the composed result cache lifetime.
	CacheTTL time.Duration
}

// Load reads configuration from the environment with defaults.
func Load() (*Config, error) {
	// Missing .env is the normal case outside local development.
	_ = godotenv.Load()

	cfg := &Config{
		Port:               getenvDefault("APP_PORT", "8080"),
		Env:                getenvDefault("APP_ENV", "development"),
		OpenWeatherAPIKey:  os.Getenv("OPENWEATHER_API_KEY"),
		AdminJWTSecret:     os.Getenv("ADMIN_JWT_SECRET"),
		DBEnabled:          getenvBool("DB_ENABLED", false),
		OTELEnabled:        getenvBool("OTEL_ENABLED", false),
		OTLPEndpoint:       getenvDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
		PubSubProjectID:    os.Getenv("PUBSUB_PROJECT_ID"),
		PubSubSubscription: getenvDefault("PUBSUB_SUBSCRIPTION", "weather-refresh-jobs"),
		RefreshConcurrency: getenvInt("REFRESH_CONCURRENCY", 3),
		SeedCities:         getenvList("SEED_CITIES"),
	}

	interval, err := getenvDuration("REFRESH_INTERVAL", 15*time.Minute)
	if err != nil {
		return nil, err
	}
	cfg.RefreshInterval = interval

	cacheTTL, err := getenvDuration("CACHE_TTL", 10*time.Minute)
	if err != nil {
		return nil, err
	}
	cfg.CacheTTL = cacheTTL

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getenvDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

// getenvList splits a comma-separated variable, dropping blank entries.
func getenvList(key string) []string {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TusharSA25/Weather-Dashboard/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.False(t, cfg.DBEnabled)
	assert.False(t, cfg.OTELEnabled)
	assert.Equal(t, "localhost:4317", cfg.OTLPEndpoint)
	assert.Equal(t, "weather-refresh-jobs", cfg.PubSubSubscription)
	assert.Equal(t, 15*time.Minute, cfg.RefreshInterval)
	assert.Equal(t, 3, cfg.RefreshConcurrency)
	assert.Equal(t, 10*time.Minute, cfg.CacheTTL)
	assert.Nil(t, cfg.SeedCities)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("APP_ENV", "production")
	t.Setenv("OPENWEATHER_API_KEY", "owm-key")
	t.Setenv("ADMIN_JWT_SECRET", "jwt-secret")
	t.Setenv("DB_ENABLED", "true")
	t.Setenv("REFRESH_INTERVAL", "5m")
	t.Setenv("REFRESH_CONCURRENCY", "8")
	t.Setenv("CACHE_TTL", "30s")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, "owm-key", cfg.OpenWeatherAPIKey)
	assert.Equal(t, "jwt-secret", cfg.AdminJWTSecret)
	assert.True(t, cfg.DBEnabled)
	assert.Equal(t, 5*time.Minute, cfg.RefreshInterval)
	assert.Equal(t, 8, cfg.RefreshConcurrency)
	assert.Equal(t, 30*time.Second, cfg.CacheTTL)
}

func TestLoad_SeedCities(t *testing.T) {
	t.Setenv("SEED_CITIES", "Amsterdam, London ,Tokyo,,")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"Amsterdam", "London", "Tokyo"}, cfg.SeedCities)
}

func TestLoad_InvalidDuration(t *testing.T) {
	t.Setenv("REFRESH_INTERVAL", "soon")

	_, err := config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "REFRESH_INTERVAL")
}

func TestLoad_InvalidBoolFallsBack(t *testing.T) {
	t.Setenv("DB_ENABLED", "maybe")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.False(t, cfg.DBEnabled)
}

package worker_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TusharSA25/Weather-Dashboard/internal/history"
	"github.com/TusharSA25/Weather-Dashboard/internal/weather"
	"github.com/TusharSA25/Weather-Dashboard/internal/worker"
)

// stubProvider serves fixed data for any city, with one optional
// always-failing city to exercise error collection.
type stubProvider struct {
	mu       sync.Mutex
	calls    map[string]int
	failCity string
}

func newStubProvider() *stubProvider {
	return &stubProvider{calls: make(map[string]int)}
}

func (p *stubProvider) callsFor(city string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls[city]
}

func (p *stubProvider) Name() string    { return "stub" }
func (p *stubProvider) HasAPIKey() bool { return true }

func (p *stubProvider) GetCurrent(_ context.Context, city string) (*weather.CurrentConditions, error) {
	p.mu.Lock()
	p.calls[city]++
	failCity := p.failCity
	p.mu.Unlock()

	if city == failCity {
		return nil, errors.New("upstream down")
	}
	return &weather.CurrentConditions{
		City:        city,
		Country:     "NL",
		Lat:         52.37,
		Lon:         4.90,
		Temperature: 18.0,
		Humidity:    60,
		Condition:   weather.ConditionClouds,
		Description: "scattered clouds",
		ObservedAt:  time.Now(),
	}, nil
}

func (p *stubProvider) GetForecast(_ context.Context, city string) ([]weather.ForecastSample, error) {
	return []weather.ForecastSample{
		{Time: time.Now().Add(3 * time.Hour), Temperature: 17.0, Humidity: 65, Condition: weather.ConditionClouds, Description: "scattered clouds", Icon: "03d"},
	}, nil
}

func (p *stubProvider) GetLocations(_ context.Context, query string, _ int) ([]weather.Location, error) {
	return []weather.Location{{Name: query, Country: "NL", Lat: 52.37, Lon: 4.90}}, nil
}

func (p *stubProvider) GetAirQuality(_ context.Context, _, _ float64) (*weather.AirQualitySnapshot, error) {
	return &weather.AirQualitySnapshot{Lat: 52.37, Lon: 4.90, Index: 2, MeasuredAt: time.Now()}, nil
}

func (p *stubProvider) GetAlerts(_ context.Context, _, _ float64) ([]weather.AlertEntry, error) {
	return nil, nil
}

func newTestWeatherService(p weather.Provider) *weather.Service {
	return weather.NewService(weather.ServiceConfig{
		Provider: p,
		Logger:   zerolog.Nop(),
	})
}

func TestDefaultRefreshConfig(t *testing.T) {
	cfg := worker.DefaultRefreshConfig()

	assert.Equal(t, 3, cfg.Concurrency)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, 15*time.Minute, cfg.Interval)
	assert.NotEmpty(t, cfg.SeedCities)
}

func TestDefaultSeedCities(t *testing.T) {
	cities := worker.DefaultSeedCities()

	require.NotEmpty(t, cities)
	assert.Equal(t, "Amsterdam", cities[0])
	assert.Contains(t, cities, "London")
}

func TestNewRefreshJob_DefaultConfig(t *testing.T) {
	// Create job with empty config - should use defaults
	job := worker.NewRefreshJob(worker.RefreshJobConfig{
		Config: worker.RefreshConfig{}, // Empty
		Logger: zerolog.Nop(),
	})

	metrics := job.GetMetrics()
	assert.Equal(t, int64(0), metrics.TotalRuns) // Not run yet
}

func TestRefreshJob_Run_NoServices(t *testing.T) {
	// Create a job with no services configured
	job := worker.NewRefreshJob(worker.RefreshJobConfig{
		Config: worker.RefreshConfig{
			SeedCities:  []string{"Amsterdam"},
			Concurrency: 1,
			Timeout:     1 * time.Second,
		},
		Logger: zerolog.Nop(),
	})

	result := job.Run(context.Background())

	// Should complete without panicking
	require.NotNil(t, result)
	assert.Equal(t, 1, result.Total)
	assert.Equal(t, 1, result.Successful)
	assert.Greater(t, result.Duration, time.Duration(0))
}

func TestRefreshJob_Run_SeedCitiesWithoutHistory(t *testing.T) {
	provider := newStubProvider()

	job := worker.NewRefreshJob(worker.RefreshJobConfig{
		Config: worker.RefreshConfig{
			SeedCities:  []string{"Amsterdam", "London"},
			Concurrency: 1,
			Timeout:     1 * time.Second,
		},
		Logger:         zerolog.Nop(),
		WeatherService: newTestWeatherService(provider),
	})

	result := job.Run(context.Background())

	assert.Equal(t, []string{"Amsterdam", "London"}, result.Cities)
	assert.Equal(t, 2, result.Successful)
	assert.Equal(t, 0, result.Failed)
	assert.Equal(t, 1, provider.callsFor("Amsterdam"))
	assert.Equal(t, 1, provider.callsFor("London"))
}

func TestRefreshJob_Run_UsesHistoryCities(t *testing.T) {
	provider := newStubProvider()
	historyService := history.NewService(history.NewInMemoryRepository())

	ctx := context.Background()
	require.NoError(t, historyService.RecordSearch(ctx, "Paris"))
	require.NoError(t, historyService.RecordSearch(ctx, "Berlin"))

	job := worker.NewRefreshJob(worker.RefreshJobConfig{
		Config: worker.RefreshConfig{
			SeedCities:  []string{"Amsterdam"},
			Concurrency: 1,
			Timeout:     1 * time.Second,
		},
		Logger:         zerolog.Nop(),
		WeatherService: newTestWeatherService(provider),
		HistoryService: historyService,
	})

	result := job.Run(ctx)

	// History wins over seed cities, most recent first.
	assert.Equal(t, []string{"Berlin", "Paris"}, result.Cities)
	assert.Equal(t, 2, result.Successful)
	assert.Equal(t, 0, provider.callsFor("Amsterdam"))
}

func TestRefreshJob_Run_EmptyHistoryFallsBackToSeeds(t *testing.T) {
	provider := newStubProvider()
	historyService := history.NewService(history.NewInMemoryRepository())

	job := worker.NewRefreshJob(worker.RefreshJobConfig{
		Config: worker.RefreshConfig{
			SeedCities:  []string{"Amsterdam"},
			Concurrency: 1,
			Timeout:     1 * time.Second,
		},
		Logger:         zerolog.Nop(),
		WeatherService: newTestWeatherService(provider),
		HistoryService: historyService,
	})

	result := job.Run(context.Background())

	assert.Equal(t, []string{"Amsterdam"}, result.Cities)
	assert.Equal(t, 1, result.Successful)
}

func TestRefreshJob_Run_CollectsErrors(t *testing.T) {
	provider := newStubProvider()
	provider.failCity = "Berlin"

	job := worker.NewRefreshJob(worker.RefreshJobConfig{
		Config: worker.RefreshConfig{
			SeedCities:  []string{"Amsterdam", "Berlin"},
			Concurrency: 1,
			Timeout:     1 * time.Second,
		},
		Logger:         zerolog.Nop(),
		WeatherService: newTestWeatherService(provider),
	})

	result := job.Run(context.Background())

	assert.Equal(t, 1, result.Successful)
	assert.Equal(t, 1, result.Failed)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "Berlin", result.Errors[0].City)
	assert.NotEmpty(t, result.Errors[0].Error)
}

func TestRefreshJob_Run_BypassesComposedCache(t *testing.T) {
	provider := newStubProvider()

	job := worker.NewRefreshJob(worker.RefreshJobConfig{
		Config: worker.RefreshConfig{
			SeedCities:  []string{"Amsterdam"},
			Concurrency: 1,
			Timeout:     1 * time.Second,
		},
		Logger:         zerolog.Nop(),
		WeatherService: newTestWeatherService(provider),
	})

	ctx := context.Background()
	_ = job.Run(ctx)
	_ = job.Run(ctx)

	// A second run must hit the provider again, not the warm cache.
	assert.Equal(t, 2, provider.callsFor("Amsterdam"))
}

func TestRefreshJob_Run_WithConcurrency(t *testing.T) {
	provider := newStubProvider()

	cities := make([]string, 10)
	for i := range cities {
		cities[i] = fmt.Sprintf("City %d", i)
	}

	job := worker.NewRefreshJob(worker.RefreshJobConfig{
		Config: worker.RefreshConfig{
			SeedCities:  cities,
			Concurrency: 3,
			Timeout:     1 * time.Second,
		},
		Logger:         zerolog.Nop(),
		WeatherService: newTestWeatherService(provider),
	})

	result := job.Run(context.Background())

	assert.Equal(t, 10, result.Total)
	assert.Equal(t, 10, result.Successful)
	assert.Equal(t, 0, result.Failed)
}

func TestRefreshJob_Run_ContextCancellation(t *testing.T) {
	provider := newStubProvider()

	cities := make([]string, 100)
	for i := range cities {
		cities[i] = fmt.Sprintf("City %d", i)
	}

	job := worker.NewRefreshJob(worker.RefreshJobConfig{
		Config: worker.RefreshConfig{
			SeedCities:  cities,
			Concurrency: 1,
			Timeout:     100 * time.Millisecond,
		},
		Logger:         zerolog.Nop(),
		WeatherService: newTestWeatherService(provider),
	})

	// Cancel context immediately
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := job.Run(ctx)

	// Should complete (even if not all cities processed)
	assert.NotNil(t, result)
}

func TestRefreshJob_GetMetrics(t *testing.T) {
	provider := newStubProvider()

	job := worker.NewRefreshJob(worker.RefreshJobConfig{
		Config: worker.RefreshConfig{
			SeedCities:  []string{"Amsterdam", "London"},
			Concurrency: 1,
			Timeout:     1 * time.Second,
		},
		Logger:         zerolog.Nop(),
		WeatherService: newTestWeatherService(provider),
	})

	// Run the job
	_ = job.Run(context.Background())

	// Check metrics
	metrics := job.GetMetrics()
	assert.Equal(t, int64(1), metrics.TotalRuns)
	assert.Equal(t, int64(2), metrics.SuccessfulRefresh)
	assert.Equal(t, int64(2), metrics.CitiesRefreshed)
	assert.NotZero(t, metrics.LastRefreshAt)
	assert.Greater(t, metrics.LastRefreshDuration, time.Duration(0))
}

func TestRefreshJob_MetricsSnapshot(t *testing.T) {
	job := worker.NewRefreshJob(worker.RefreshJobConfig{
		Config: worker.RefreshConfig{
			SeedCities:  []string{"Amsterdam"},
			Concurrency: 1,
			Timeout:     1 * time.Second,
		},
		Logger: zerolog.Nop(),
	})

	_ = job.Run(context.Background())

	snapshot := job.MetricsSnapshot()

	assert.Contains(t, snapshot, "total_runs")
	assert.Contains(t, snapshot, "successful_refreshes")
	assert.Contains(t, snapshot, "failed_refreshes")
	assert.Contains(t, snapshot, "cities_refreshed")
	assert.Contains(t, snapshot, "last_refresh_at")
	assert.Contains(t, snapshot, "last_refresh_duration")
}

package worker

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/TusharSA25/Weather-Dashboard/internal/history"
	"github.com/TusharSA25/Weather-Dashboard/internal/weather"
)

// RefreshJob re-warms the composed weather cache for recently searched
// cities. The same job backs the worker's Pub/Sub handler, the ticker
// fallback and the admin refresh endpoint.
type RefreshJob struct {
	config RefreshConfig
	logger zerolog.Logger

	// Services (history optional, nil falls back to seed cities)
	weatherService *weather.Service
	historyService *history.Service

	// Metrics
	metrics *RefreshMetrics
}

// RefreshMetrics tracks refresh job statistics.
type RefreshMetrics struct {
	mu sync.RWMutex

	// Counters
	TotalRuns         int64
	SuccessfulRefresh int64
	FailedRefreshes   int64
	CitiesRefreshed   int64

	// Timings
	LastRefreshAt       time.Time
	LastRefreshDuration time.Duration
	TotalDuration       time.Duration
}

// RefreshJobConfig holds configuration for creating a RefreshJob.
type RefreshJobConfig struct {
	Config         RefreshConfig
	Logger         zerolog.Logger
	WeatherService *weather.Service
	HistoryService *history.Service
}

// NewRefreshJob creates a new refresh job processor.
func NewRefreshJob(cfg RefreshJobConfig) *RefreshJob {
	config := cfg.Config
	if config.Concurrency <= 0 {
		config = DefaultRefreshConfig()
	}

	return &RefreshJob{
		config:         config,
		logger:         cfg.Logger,
		weatherService: cfg.WeatherService,
		historyService: cfg.HistoryService,
		metrics:        &RefreshMetrics{},
	}
}

// RefreshResult contains the result of a refresh run.
type RefreshResult struct {
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
	Cities     []string
	Total      int
	Successful int
	Failed     int
	Errors     []RefreshError
}

// RefreshError represents an error during refresh.
type RefreshError struct {
	City  string
	Error string
}

// Run refreshes every history city through a bounded worker pool. An
// empty or unreadable history falls back to the configured seed cities
// so the run always warms something.
func (j *RefreshJob) Run(ctx context.Context) *RefreshResult {
	startTime := time.Now()

	cities := j.cities(ctx)
	result := &RefreshResult{
		StartTime: startTime,
		Cities:    cities,
		Total:     len(cities),
	}

	j.logger.Info().
		Int("total_cities", result.Total).
		Int("concurrency", j.config.Concurrency).
		Msg("starting cache refresh job")

	// Create work channels
	citiesChan := make(chan string, len(cities))
	resultsChan := make(chan cityResult, len(cities))

	// Start workers
	var wg sync.WaitGroup
	for i := 0; i < j.config.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			j.refreshWorker(ctx, citiesChan, resultsChan)
		}()
	}

	// Send cities to workers
	for _, city := range cities {
		citiesChan <- city
	}
	close(citiesChan)

	// Wait for workers to complete
	go func() {
		wg.Wait()
		close(resultsChan)
	}()

	// Collect results
	for cr := range resultsChan {
		if cr.success {
			result.Successful++
		} else {
			result.Failed++
			result.Errors = append(result.Errors, RefreshError{
				City:  cr.city,
				Error: cr.err,
			})
		}
	}

	result.EndTime = time.Now()
	result.Duration = result.EndTime.Sub(startTime)

	// Update metrics
	j.updateMetrics(result)

	j.logger.Info().
		Dur("duration", result.Duration).
		Int("successful", result.Successful).
		Int("failed", result.Failed).
		Msg("cache refresh job completed")

	return result
}

// cities returns the refresh targets: the recorded search history when
// available, the seed cities otherwise.
func (j *RefreshJob) cities(ctx context.Context) []string {
	if j.historyService != nil {
		cities, err := j.historyService.Cities(ctx)
		if err != nil {
			j.logger.Warn().Err(err).Msg("loading search history failed, using seed cities")
		} else if len(cities) > 0 {
			return cities
		}
	}
	return j.config.SeedCities
}

type cityResult struct {
	city    string
	success bool
	err     string
}

func (j *RefreshJob) refreshWorker(ctx context.Context, cities <-chan string, results chan<- cityResult) {
	for city := range cities {
		select {
		case <-ctx.Done():
			return
		default:
			results <- j.refreshCity(ctx, city)
		}
	}
}

func (j *RefreshJob) refreshCity(ctx context.Context, city string) cityResult {
	if j.weatherService == nil {
		return cityResult{city: city, success: true}
	}

	// Create timeout context for this city
	cityCtx, cancel := context.WithTimeout(ctx, j.config.Timeout)
	defer cancel()

	if _, err := j.weatherService.Refresh(cityCtx, city); err != nil {
		return cityResult{city: city, err: err.Error()}
	}

	atomic.AddInt64(&j.metrics.CitiesRefreshed, 1)
	return cityResult{city: city, success: true}
}

func (j *RefreshJob) updateMetrics(result *RefreshResult) {
	j.metrics.mu.Lock()
	defer j.metrics.mu.Unlock()

	j.metrics.TotalRuns++
	j.metrics.SuccessfulRefresh += int64(result.Successful)
	j.metrics.FailedRefreshes += int64(result.Failed)
	j.metrics.LastRefreshAt = result.EndTime
	j.metrics.LastRefreshDuration = result.Duration
	j.metrics.TotalDuration += result.Duration
}

// GetMetrics returns a copy of the current metrics.
func (j *RefreshJob) GetMetrics() RefreshMetrics {
	j.metrics.mu.RLock()
	defer j.metrics.mu.RUnlock()

	return RefreshMetrics{
		TotalRuns:           j.metrics.TotalRuns,
		SuccessfulRefresh:   j.metrics.SuccessfulRefresh,
		FailedRefreshes:     j.metrics.FailedRefreshes,
		CitiesRefreshed:     atomic.LoadInt64(&j.metrics.CitiesRefreshed),
		LastRefreshAt:       j.metrics.LastRefreshAt,
		LastRefreshDuration: j.metrics.LastRefreshDuration,
		TotalDuration:       j.metrics.TotalDuration,
	}
}

// MetricsSnapshot returns a snapshot of the current metrics as a map.
func (j *RefreshJob) MetricsSnapshot() map[string]interface{} {
	m := j.GetMetrics()
	return map[string]interface{}{
		"total_runs":            m.TotalRuns,
		"successful_refreshes":  m.SuccessfulRefresh,
		"failed_refreshes":      m.FailedRefreshes,
		"cities_refreshed":      m.CitiesRefreshed,
		"last_refresh_at":       m.LastRefreshAt,
		"last_refresh_duration": m.LastRefreshDuration.String(),
		"total_duration":        m.TotalDuration.String(),
	}
}

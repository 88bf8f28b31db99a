// Package weather implements the weather aggregation pipeline: a
// free-text city query fans out to independent upstream facets, the
// forecast series is reduced to daily and hourly views, coordinates
// are mapped to a slippy-map tile, and everything is composed into a
// single result for the dashboard.
package weather

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/TusharSA25/Weather-Dashboard/internal/provider/resilience"
	"github.com/TusharSA25/Weather-Dashboard/pkg/maptile"
)

// Provider supplies the upstream weather facets, one operation per
// resource, each independently failing.
type Provider interface {
	// GetCurrent fetches current conditions for a city by name.
	GetCurrent(ctx context.Context, city string) (*CurrentConditions, error)

	// GetForecast fetches the raw forecast sample series for a city.
	GetForecast(ctx context.Context, city string) ([]ForecastSample, error)

	// GetLocations geocodes a free-text query into candidates.
	GetLocations(ctx context.Context, query string, limit int) ([]Location, error)

	// GetAirQuality fetches the air quality snapshot for a coordinate.
	GetAirQuality(ctx context.Context, lat, lon float64) (*AirQualitySnapshot, error)

	// GetAlerts fetches active alerts for a coordinate. Providers
	// degrade missing alert access to an empty list themselves.
	GetAlerts(ctx context.Context, lat, lon float64) ([]AlertEntry, error)

	// Name returns the provider name for logging.
	Name() string

	// HasAPIKey reports whether an upstream credential is configured.
	HasAPIKey() bool
}

// ProviderMetrics records upstream call durations and cache outcomes.
// The API middleware's provider instruments satisfy this; nil disables
// recording.
type ProviderMetrics interface {
	RecordRequest(provider, operation string, duration time.Duration, err error)
	RecordCacheHit(provider, operation string)
	RecordCacheMiss(provider, operation string)
}

// SuggestionMinQueryLen is the minimum query length for suggestions;
// shorter queries resolve to an empty list without an upstream call.
const SuggestionMinQueryLen = 2

// GeocodeLimit is the number of candidates requested for geocoding
// and suggestion flows.
const GeocodeLimit = 5

// ServiceConfig holds configuration for the aggregation service.
type ServiceConfig struct {
	// Provider is the upstream weather data provider.
	Provider Provider

	// Logger for service operations.
	Logger zerolog.Logger

	// Reducer derives the daily and hourly views. If nil, a reducer
	// with defaults is used.
	Reducer *Reducer

	// Registry records per-provider success and failure for health
	// reporting (optional).
	Registry *resilience.Registry

	// Metrics records upstream call durations and cache outcomes
	// (optional).
	Metrics ProviderMetrics

	// CacheTTL is how long composed results stay fresh (default: 10
	// minutes). Caching is advisory and per-process.
	CacheTTL time.Duration

	// SuggestionTTL is how long geocoding results stay fresh
	// (default: 30 minutes; place names change slowly).
	SuggestionTTL time.Duration

	// StaleIfErrorTTL allows serving stale composed results on
	// upstream errors (default: 1 hour).
	StaleIfErrorTTL time.Duration

	// Now returns the current time, injected so the hourly window is
	// testable. Default: time.Now.
	Now func() time.Time
}

// Service is the aggregation orchestrator. One Search drives the whole
// pipeline: current conditions gate the search, the remaining facets
// are fetched concurrently and tolerate failure, and the composition
// step always produces a result once the gate passed.
type Service struct {
	provider        Provider
	logger          zerolog.Logger
	reducer         *Reducer
	registry        *resilience.Registry
	metrics         ProviderMetrics
	cacheTTL        time.Duration
	suggestionTTL   time.Duration
	staleIfErrorTTL time.Duration
	now             func() time.Time

	mu              sync.RWMutex
	composedCache   map[string]*cachedComposed
	locationCache   map[string]*cachedLocations
	lastCleanup     time.Time
	cleanupInterval time.Duration
}

type cachedComposed struct {
	result    *ComposedResult
	fetchedAt time.Time
	expiresAt time.Time
}

type cachedLocations struct {
	locations []Location
	expiresAt time.Time
}

// NewService creates a new aggregation service.
func NewService(cfg ServiceConfig) *Service {
	cacheTTL := cfg.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 10 * time.Minute
	}

	suggestionTTL := cfg.SuggestionTTL
	if suggestionTTL == 0 {
		suggestionTTL = 30 * time.Minute
	}

	staleIfErrorTTL := cfg.StaleIfErrorTTL
	if staleIfErrorTTL == 0 {
		staleIfErrorTTL = 1 * time.Hour
	}

	reducer := cfg.Reducer
	if reducer == nil {
		reducer = NewReducer(DefaultReducerConfig())
	}

	nowFunc := cfg.Now
	if nowFunc == nil {
		nowFunc = time.Now
	}

	return &Service{
		provider:        cfg.Provider,
		logger:          cfg.Logger,
		reducer:         reducer,
		registry:        cfg.Registry,
		metrics:         cfg.Metrics,
		cacheTTL:        cacheTTL,
		suggestionTTL:   suggestionTTL,
		staleIfErrorTTL: staleIfErrorTTL,
		now:             nowFunc,
		composedCache:   make(map[string]*cachedComposed),
		locationCache:   make(map[string]*cachedLocations),
		cleanupInterval: 5 * time.Minute,
	}
}

// Search aggregates every facet for a city into one ComposedResult.
// Current conditions are the only fatal facet: their failure fails the
// search with either ErrCityNotFound or an upstream error. Forecast,
// air quality and alerts degrade to empty values on failure.
func (s *Service) Search(ctx context.Context, city string) (*ComposedResult, error) {
	if !s.provider.HasAPIKey() {
		return nil, ErrMissingAPIKey
	}

	key := cityKey(city)

	// Check cache
	s.mu.RLock()
	if cached, ok := s.composedCache[key]; ok && s.now().Before(cached.expiresAt) {
		s.mu.RUnlock()
		s.recordCacheHit("search")
		return cached.result, nil
	}
	s.mu.RUnlock()
	s.recordCacheMiss("search")

	result, err := s.compose(ctx, city)
	if err != nil {
		// A 404 from upstream is authoritative; stale data must not
		// resurrect a city name that no longer resolves.
		if errors.Is(err, ErrCityNotFound) {
			return nil, err
		}

		s.mu.RLock()
		cached, ok := s.composedCache[key]
		s.mu.RUnlock()
		if ok && s.now().Before(cached.fetchedAt.Add(s.staleIfErrorTTL)) {
			s.logger.Warn().
				Str("city", city).
				Time("fetched_at", cached.fetchedAt).
				Msg("serving stale composed result due to upstream error")
			return cached.result, nil
		}
		return nil, err
	}

	s.storeComposed(key, result)
	return result, nil
}

// Refresh recomposes a city bypassing the fresh-cache check, so cache
// warmers always hit upstream. The result replaces the cached entry.
func (s *Service) Refresh(ctx context.Context, city string) (*ComposedResult, error) {
	if !s.provider.HasAPIKey() {
		return nil, ErrMissingAPIKey
	}

	result, err := s.compose(ctx, city)
	if err != nil {
		return nil, err
	}

	s.storeComposed(cityKey(city), result)
	return result, nil
}

// compose runs the five-step search sequence against the provider.
func (s *Service) compose(ctx context.Context, city string) (*ComposedResult, error) {
	// Step 1: the gating facet.
	start := time.Now()
	current, err := s.provider.GetCurrent(ctx, city)
	s.recordRequest("current", start, err)
	if err != nil {
		s.recordFailure(err)
		s.logger.Error().Err(err).Str("city", city).Msg("current conditions fetch failed")
		return nil, err
	}
	s.recordSuccess()

	// Step 2: shared coordinate resolution for the coordinate-bound
	// facets. Current conditions normally carry coordinates; fall back
	// to one geocoding call, and degrade both facets when that fails.
	location := Location{
		Name:    current.City,
		Country: current.Country,
		Lat:     current.Lat,
		Lon:     current.Lon,
	}
	coordsKnown := current.Lat != 0 || current.Lon != 0
	if !coordsKnown {
		start := time.Now()
		resolved, rerr := s.provider.GetLocations(ctx, city, 1)
		s.recordRequest("geocode", start, rerr)
		switch {
		case rerr == nil && len(resolved) > 0:
			location = resolved[0]
			coordsKnown = true
		case rerr != nil:
			s.logger.Warn().Err(rerr).Str("city", city).Msg("coordinate resolution failed, degrading coordinate facets")
		}
	}

	// Step 3: independent facet fetches. Each goroutine writes only
	// its own slot; the join below is the only synchronization needed.
	var (
		wg         sync.WaitGroup
		samples    []ForecastSample
		forecastEr error
		airQuality *AirQualitySnapshot
		alerts     []AlertEntry
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		start := time.Now()
		samples, forecastEr = s.provider.GetForecast(ctx, city)
		s.recordRequest("forecast", start, forecastEr)
	}()

	if coordsKnown {
		wg.Add(2)
		go func() {
			defer wg.Done()
			start := time.Now()
			aq, aerr := s.provider.GetAirQuality(ctx, location.Lat, location.Lon)
			s.recordRequest("air_quality", start, aerr)
			if aerr != nil {
				s.logger.Warn().Err(aerr).Str("city", city).Msg("air quality facet degraded")
				return
			}
			airQuality = aq
		}()
		go func() {
			defer wg.Done()
			start := time.Now()
			entries, aerr := s.provider.GetAlerts(ctx, location.Lat, location.Lon)
			s.recordRequest("alerts", start, aerr)
			if aerr != nil {
				s.logger.Warn().Err(aerr).Str("city", city).Msg("alerts facet degraded")
				return
			}
			alerts = entries
		}()
	}

	wg.Wait()

	if forecastEr != nil {
		s.logger.Warn().Err(forecastEr).Str("city", city).Msg("forecast facet degraded")
		samples = nil
	}

	// Step 4: reduce the forecast series.
	now := s.now()
	daily := s.reducer.DailyView(samples)
	hourly := s.reducer.HourlyView(samples, now)

	if alerts == nil {
		alerts = []AlertEntry{}
	}

	// Step 5: compose. No partial-failure state remains here.
	result := &ComposedResult{
		Location:   location,
		Current:    *current,
		Daily:      daily,
		Hourly:     hourly,
		AirQuality: airQuality,
		Alerts:     alerts,
		Source:     SourceLive,
		FetchedAt:  now,
	}
	if coordsKnown {
		result.Tile = maptile.At(maptile.ClampLat(location.Lat), location.Lon, DisplayTileZoom)
	}
	return result, nil
}

// AirQualityForCity resolves a city and fetches its air quality
// snapshot. Unlike the tolerant facet inside Search, this standalone
// lookup is fatal on failure: an unresolvable city is ErrCityNotFound
// and an upstream failure propagates.
func (s *Service) AirQualityForCity(ctx context.Context, city string) (Location, *AirQualitySnapshot, error) {
	if !s.provider.HasAPIKey() {
		return Location{}, nil, ErrMissingAPIKey
	}

	location, err := s.resolveOne(ctx, city)
	if err != nil {
		return Location{}, nil, err
	}

	start := time.Now()
	snapshot, err := s.provider.GetAirQuality(ctx, location.Lat, location.Lon)
	s.recordRequest("air_quality", start, err)
	if err != nil {
		s.recordFailure(err)
		return location, nil, err
	}
	s.recordSuccess()

	return location, snapshot, nil
}

// AlertsForCity resolves a city and fetches its active alerts. Every
// failure past the key check degrades to an empty list; the alerts
// surface never hard-fails.
func (s *Service) AlertsForCity(ctx context.Context, city string) ([]AlertEntry, error) {
	if !s.provider.HasAPIKey() {
		return nil, ErrMissingAPIKey
	}

	location, err := s.resolveOne(ctx, city)
	if err != nil {
		s.logger.Warn().Err(err).Str("city", city).Msg("alerts lookup degraded, city did not resolve")
		return []AlertEntry{}, nil
	}

	start := time.Now()
	alerts, err := s.provider.GetAlerts(ctx, location.Lat, location.Lon)
	s.recordRequest("alerts", start, err)
	if err != nil {
		s.logger.Warn().Err(err).Str("city", city).Msg("alerts lookup degraded")
		return []AlertEntry{}, nil
	}
	if alerts == nil {
		alerts = []AlertEntry{}
	}
	return alerts, nil
}

// resolveOne resolves a city to a single location for the standalone
// facet lookups. Zero matches map to ErrCityNotFound.
func (s *Service) resolveOne(ctx context.Context, city string) (Location, error) {
	start := time.Now()
	locations, err := s.provider.GetLocations(ctx, city, 1)
	s.recordRequest("geocode", start, err)
	if err != nil {
		s.recordFailure(err)
		return Location{}, err
	}
	s.recordSuccess()

	if len(locations) == 0 {
		return Location{}, ErrCityNotFound
	}
	return locations[0], nil
}

// Geocode resolves a city query into up to GeocodeLimit candidates.
func (s *Service) Geocode(ctx context.Context, query string) ([]Location, error) {
	if !s.provider.HasAPIKey() {
		return nil, ErrMissingAPIKey
	}
	return s.resolveCached(ctx, query, GeocodeLimit)
}

// Suggestions resolves a partial query into deduplicated location
// suggestions. Queries shorter than SuggestionMinQueryLen resolve to
// an empty list without an upstream call; callers degrade upstream
// failures to an empty list themselves.
func (s *Service) Suggestions(ctx context.Context, query string) ([]Location, error) {
	if len(strings.TrimSpace(query)) < SuggestionMinQueryLen {
		return []Location{}, nil
	}
	if !s.provider.HasAPIKey() {
		return nil, ErrMissingAPIKey
	}

	locations, err := s.resolveCached(ctx, query, GeocodeLimit)
	if err != nil {
		return nil, err
	}

	// Candidates are identified by (name, country, state); the
	// upstream happily returns the same place twice.
	seen := make(map[string]struct{}, len(locations))
	deduped := make([]Location, 0, len(locations))
	for _, loc := range locations {
		id := loc.Name + "\x00" + loc.Country + "\x00" + loc.State
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		deduped = append(deduped, loc)
	}
	return deduped, nil
}

// resolveCached wraps provider geocoding with the advisory TTL cache.
func (s *Service) resolveCached(ctx context.Context, query string, limit int) ([]Location, error) {
	key := cityKey(query)

	s.mu.RLock()
	if cached, ok := s.locationCache[key]; ok && s.now().Before(cached.expiresAt) {
		s.mu.RUnlock()
		s.recordCacheHit("geocode")
		return cached.locations, nil
	}
	s.mu.RUnlock()
	s.recordCacheMiss("geocode")

	start := time.Now()
	locations, err := s.provider.GetLocations(ctx, query, limit)
	s.recordRequest("geocode", start, err)
	if err != nil {
		s.recordFailure(err)
		return nil, err
	}
	s.recordSuccess()

	s.mu.Lock()
	s.locationCache[key] = &cachedLocations{
		locations: locations,
		expiresAt: s.now().Add(s.suggestionTTL),
	}
	s.cleanupIfNeeded()
	s.mu.Unlock()

	return locations, nil
}

// HasAPIKey reports whether the underlying provider has a credential.
func (s *Service) HasAPIKey() bool {
	return s.provider.HasAPIKey()
}

// InvalidateCache clears all cached data.
func (s *Service) InvalidateCache() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.composedCache = make(map[string]*cachedComposed)
	s.locationCache = make(map[string]*cachedLocations)
}

// CacheStats contains cache statistics.
type CacheStats struct {
	ComposedEntries      int
	ComposedFreshEntries int
	LocationEntries      int
	Provider             string
}

// CacheStats returns cache statistics.
func (s *Service) CacheStats() CacheStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := s.now()
	fresh := 0
	for _, c := range s.composedCache {
		if now.Before(c.expiresAt) {
			fresh++
		}
	}

	return CacheStats{
		ComposedEntries:      len(s.composedCache),
		ComposedFreshEntries: fresh,
		LocationEntries:      len(s.locationCache),
		Provider:             s.provider.Name(),
	}
}

// storeComposed caches a composed result under the city key.
func (s *Service) storeComposed(key string, result *ComposedResult) {
	now := s.now()
	s.mu.Lock()
	s.composedCache[key] = &cachedComposed{
		result:    result,
		fetchedAt: now,
		expiresAt: now.Add(s.cacheTTL),
	}
	s.cleanupIfNeeded()
	s.mu.Unlock()
}

// cleanupIfNeeded removes long-expired entries. Callers hold s.mu.
func (s *Service) cleanupIfNeeded() {
	now := s.now()
	if now.Sub(s.lastCleanup) < s.cleanupInterval {
		return
	}

	s.lastCleanup = now
	expired := 0

	for key, cached := range s.composedCache {
		if now.After(cached.fetchedAt.Add(s.staleIfErrorTTL)) {
			delete(s.composedCache, key)
			expired++
		}
	}
	for key, cached := range s.locationCache {
		if now.After(cached.expiresAt) {
			delete(s.locationCache, key)
			expired++
		}
	}

	if expired > 0 {
		s.logger.Debug().Int("expired_entries", expired).Msg("cleaned up expired cache entries")
	}
}

// recordSuccess notes provider success in the health registry.
func (s *Service) recordSuccess() {
	if s.registry != nil {
		s.registry.RecordSuccess(s.provider.Name())
	}
}

// recordFailure notes provider failure in the health registry.
func (s *Service) recordFailure(err error) {
	if s.registry != nil {
		s.registry.RecordFailure(s.provider.Name(), err)
	}
}

// recordRequest notes an upstream call in the metrics instruments.
func (s *Service) recordRequest(operation string, start time.Time, err error) {
	if s.metrics != nil {
		s.metrics.RecordRequest(s.provider.Name(), operation, time.Since(start), err)
	}
}

func (s *Service) recordCacheHit(operation string) {
	if s.metrics != nil {
		s.metrics.RecordCacheHit(s.provider.Name(), operation)
	}
}

func (s *Service) recordCacheMiss(operation string) {
	if s.metrics != nil {
		s.metrics.RecordCacheMiss(s.provider.Name(), operation)
	}
}

// cityKey normalizes a city query into a cache key.
func cityKey(city string) string {
	return strings.ToLower(strings.TrimSpace(city))
}

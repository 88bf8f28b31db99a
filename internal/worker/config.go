// Package worker provides background cache refresh jobs for the Weather Dashboard.
package worker

import (
	"time"
)

// RefreshConfig holds configuration for the cache refresh job.
type RefreshConfig struct {
	// SeedCities are refreshed when the search history is empty, so a
	// fresh deployment still warms something useful.
	// If empty, uses DefaultSeedCities.
	SeedCities []string

	// Concurrency is the number of concurrent city refreshes.
	// Default: 3
	Concurrency int

	// Timeout is the timeout for each city refresh.
	// Default: 30 seconds
	Timeout time.Duration

	// Interval is the ticker period used when no Pub/Sub subscription
	// is configured.
	// Default: 15 minutes
	Interval time.Duration
}

// DefaultRefreshConfig returns the default refresh configuration.
func DefaultRefreshConfig() RefreshConfig {
	return RefreshConfig{
		SeedCities:  DefaultSeedCities(),
		Concurrency: 3,
		Timeout:     30 * time.Second,
		Interval:    15 * time.Minute,
	}
}

// DefaultSeedCities returns the cities warmed before any search has
// been recorded. Amsterdam first so the fallback reference city is
// always fresh.
func DefaultSeedCities() []string {
	return []string{
		"Amsterdam",
		"London",
		"New York",
		"Tokyo",
		"Sydney",
	}
}

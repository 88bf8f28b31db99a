// Package history tracks recent successful searches as a bounded,
// most-recent-first list shared by the dashboard and the cache warmer.
package history

import "time"

// MaxEntries caps the history length; recording beyond the cap evicts
// the oldest entry.
const MaxEntries = 10

// Entry is one recorded search.
type Entry struct {
	// City is the query as the user typed it, whitespace-trimmed.
	City string `json:"city"`

	// SearchedAt is when the search succeeded.
	SearchedAt time.Time `json:"searchedAt"`
}

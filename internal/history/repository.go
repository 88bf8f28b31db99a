package history

import (
	"context"
	"strings"
	"sync"
)

// Repository defines the interface for search history persistence.
// Implementations enforce the history invariants themselves: at most
// MaxEntries entries, no two entries equal under case-insensitive
// comparison, most-recent-first ordering.
type Repository interface {
	// Record inserts an entry at the front. A case-insensitive match
	// with an existing city replaces that entry instead of adding a
	// second one.
	Record(ctx context.Context, entry Entry) error

	// List returns entries most-recent-first.
	List(ctx context.Context) ([]Entry, error)
}

// InMemoryRepository is an in-memory implementation of Repository.
// It is the default when no database is configured; history then lives
// only as long as the process.
type InMemoryRepository struct {
	mu      sync.RWMutex
	entries []Entry
}

// NewInMemoryRepository creates a new in-memory history repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{}
}

// Record inserts an entry at the front, deduplicating case-insensitively.
func (r *InMemoryRepository) Record(_ context.Context, entry Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, e := range r.entries {
		if strings.EqualFold(e.City, entry.City) {
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
			break
		}
	}

	r.entries = append([]Entry{entry}, r.entries...)
	if len(r.entries) > MaxEntries {
		r.entries = r.entries[:MaxEntries]
	}
	return nil
}

// List returns entries most-recent-first.
func (r *InMemoryRepository) List(_ context.Context) ([]Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	// Return a copy to prevent mutation
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out, nil
}

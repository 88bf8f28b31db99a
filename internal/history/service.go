package history

import (
	"context"
	"strings"
	"time"
)

// Service provides search history operations.
type Service struct {
	repo Repository
}

// NewService creates a new history service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// RecordSearch records a successful search. The city is stored as
// typed, whitespace-trimmed; blank input is ignored.
func (s *Service) RecordSearch(ctx context.Context, city string) error {
	city = strings.TrimSpace(city)
	if city == "" {
		return nil
	}
	return s.repo.Record(ctx, Entry{City: city, SearchedAt: time.Now()})
}

// Recent returns recorded searches, most recent first.
func (s *Service) Recent(ctx context.Context) ([]Entry, error) {
	return s.repo.List(ctx)
}

// Cities returns just the city names, most recent first.
func (s *Service) Cities(ctx context.Context) ([]string, error) {
	entries, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	cities := make([]string, len(entries))
	for i, e := range entries {
		cities[i] = e.City
	}
	return cities, nil
}

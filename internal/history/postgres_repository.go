package history

import (
	"context"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository is a PostgreSQL implementation of Repository.
// Dedup and the entry cap are enforced in SQL so concurrent API
// instances share one consistent history.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL history repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// EnsureSchema creates the search_history table if it does not exist.
func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS search_history (
			city_key    TEXT PRIMARY KEY,
			city        TEXT NOT NULL,
			searched_at TIMESTAMPTZ NOT NULL
		)
	`
	_, err := r.pool.Exec(ctx, query)
	return err
}

// Record upserts the entry keyed by the lowercased city name, then
// trims everything beyond the newest MaxEntries rows.
func (r *PostgresRepository) Record(ctx context.Context, entry Entry) error {
	upsert := `
		INSERT INTO search_history (city_key, city, searched_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (city_key) DO UPDATE SET
			city = EXCLUDED.city,
			searched_at = EXCLUDED.searched_at
	`

	_, err := r.pool.Exec(ctx, upsert, strings.ToLower(entry.City), entry.City, entry.SearchedAt)
	if err != nil {
		return err
	}

	trim := `
		DELETE FROM search_history
		WHERE city_key NOT IN (
			SELECT city_key FROM search_history
			ORDER BY searched_at DESC
			LIMIT $1
		)
	`

	_, err = r.pool.Exec(ctx, trim, MaxEntries)
	return err
}

// List returns entries most-recent-first.
func (r *PostgresRepository) List(ctx context.Context) ([]Entry, error) {
	query := `
		SELECT city, searched_at
		FROM search_history
		ORDER BY searched_at DESC
		LIMIT $1
	`

	rows, err := r.pool.Query(ctx, query, MaxEntries)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			city       string
			searchedAt time.Time
		)
		if err := rows.Scan(&city, &searchedAt); err != nil {
			return nil, err
		}
		entries = append(entries, Entry{City: city, SearchedAt: searchedAt})
	}

	return entries, rows.Err()
}

// Ensure PostgresRepository implements Repository interface.
var _ Repository = (*PostgresRepository)(nil)

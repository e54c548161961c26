package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore backs the cache with a snapshot table. Entries survive
// restarts; expiry is left to the Cache's lazy age check, the ttl hint is
// ignored.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a postgres-backed store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// EnsureSchema creates the snapshot table if it does not exist.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS analysis_cache (
			cache_key  TEXT PRIMARY KEY,
			data       BYTEA NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`)
	if err != nil {
		return fmt.Errorf("create analysis_cache table: %w", err)
	}
	return nil
}

// Get retrieves the raw entry bytes.
func (s *PostgresStore) Get(ctx context.Context, key string) ([]byte, error) {
	var data []byte
	err := s.pool.QueryRow(ctx,
		`SELECT data FROM analysis_cache WHERE cache_key = $1`, key,
	).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("cache select: %w", err)
	}

	return data, nil
}

// Set upserts the whole entry as one row.
func (s *PostgresStore) Set(ctx context.Context, key string, data []byte, _ time.Duration) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO analysis_cache (cache_key, data, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (cache_key)
		DO UPDATE SET data = EXCLUDED.data, updated_at = now()
	`, key, data)
	if err != nil {
		return fmt.Errorf("cache upsert: %w", err)
	}
	return nil
}

// Delete removes the entry.
func (s *PostgresStore) Delete(ctx context.Context, key string) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM analysis_cache WHERE cache_key = $1`, key)
	if err != nil {
		return fmt.Errorf("cache delete: %w", err)
	}
	return nil
}

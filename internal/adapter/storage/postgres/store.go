package postgres

import (
	"context"
	"errors"
	"fmt"

	"shared-wallet-service/internal/core/ports"

	"github.com/jackc/pgx/v5"
)

// Store implements ports.KeyValueStore on a single kv_entries table with
// keyset pagination for prefix scans. Each row is one entity record; there
// is deliberately no transactional grouping across keys, matching the
// contract of the other store backends.
type Store struct {
	pool Pool
}

// NewStore creates a PostgreSQL-backed key-value store.
func NewStore(pool Pool) *Store {
	return &Store{pool: pool}
}

// EnsureSchema creates the kv_entries table if it does not exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	query := `CREATE TABLE IF NOT EXISTS kv_entries (
		key   text PRIMARY KEY,
		value jsonb NOT NULL
	)`

	if _, err := s.pool.Exec(ctx, query); err != nil {
		return fmt.Errorf("ensure kv schema: %w", err)
	}
	return nil
}

// Get returns the value for key, or nil when the key does not exist.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	query := `SELECT value FROM kv_entries WHERE key = $1`

	var value []byte
	err := s.pool.QueryRow(ctx, query, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("kv get %q: %w", key, err)
	}
	return value, nil
}

// Put upserts value under key.
func (s *Store) Put(ctx context.Context, key string, value []byte) error {
	query := `INSERT INTO kv_entries (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`

	if _, err := s.pool.Exec(ctx, query, key, value); err != nil {
		return fmt.Errorf("kv put %q: %w", key, err)
	}
	return nil
}

// Delete removes key. Deleting an absent key is not an error.
func (s *Store) Delete(ctx context.Context, key string) error {
	query := `DELETE FROM kv_entries WHERE key = $1`

	if _, err := s.pool.Exec(ctx, query, key); err != nil {
		return fmt.Errorf("kv delete %q: %w", key, err)
	}
	return nil
}

// Scan returns up to count keys sharing prefix in lexical order, resuming
// after the cursor key. starts_with avoids LIKE-pattern escaping for the
// underscores in entity key prefixes.
func (s *Store) Scan(ctx context.Context, prefix string, cursor string, count int64) (*ports.ScanPage, error) {
	query := `SELECT key FROM kv_entries
		WHERE starts_with(key, $1) AND key > $2
		ORDER BY key LIMIT $3`

	rows, err := s.pool.Query(ctx, query, prefix, cursor, count)
	if err != nil {
		return nil, fmt.Errorf("kv scan %q: %w", prefix, err)
	}
	defer rows.Close()

	page := &ports.ScanPage{}
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("kv scan row: %w", err)
		}
		page.Keys = append(page.Keys, key)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("kv scan rows: %w", err)
	}

	if int64(len(page.Keys)) < count {
		page.Complete = true
	} else {
		page.Cursor = page.Keys[len(page.Keys)-1]
	}
	return page, nil
}

package redis

import (
	"context"
	"fmt"
	"strconv"

	"shared-wallet-service/config"
	"shared-wallet-service/internal/core/ports"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// NewClient creates a Redis client and verifies connectivity.
func NewClient(ctx context.Context, cfg config.RedisConfig, log zerolog.Logger) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Verify connectivity
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("pinging redis: %w", err)
	}

	log.Info().
		Str("addr", cfg.Addr()).
		Int("db", cfg.DB).
		Msg("Redis connection established")

	return client, nil
}

// Store implements ports.KeyValueStore on Redis. Prefix scans use the
// native SCAN cursor; the count argument is a hint, so pages may come back
// smaller (or occasionally larger) than requested.
type Store struct {
	client *goredis.Client
}

// NewStore creates a Redis-backed key-value store.
func NewStore(client *goredis.Client) *Store {
	return &Store{client: client}
}

// Get returns the value for key, or nil when the key does not exist.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == goredis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("redis get %q: %w", key, err)
	}
	return val, nil
}

// Put stores value under key with no expiry.
func (s *Store) Put(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %q: %w", key, err)
	}
	return nil
}

// Delete removes key. Deleting an absent key is not an error.
func (s *Store) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis del %q: %w", key, err)
	}
	return nil
}

// Scan returns one SCAN iteration of keys matching prefix. The cursor is
// Redis's numeric SCAN cursor rendered as a string; zero means complete.
func (s *Store) Scan(ctx context.Context, prefix string, cursor string, count int64) (*ports.ScanPage, error) {
	var start uint64
	if cursor != "" {
		parsed, err := strconv.ParseUint(cursor, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("redis scan: invalid cursor %q", cursor)
		}
		start = parsed
	}

	keys, next, err := s.client.Scan(ctx, start, prefix+"*", count).Result()
	if err != nil {
		return nil, fmt.Errorf("redis scan %q: %w", prefix, err)
	}

	page := &ports.ScanPage{Keys: keys}
	if next == 0 {
		page.Complete = true
	} else {
		page.Cursor = strconv.FormatUint(next, 10)
	}
	return page, nil
}

package ports

import "context"

// ScanPage is one page of a prefix scan. Cursor is the opaque continuation
// token for the next page; Complete is true when the scan has reached the
// end of the keyspace. Page sizes are a hint; a backend may return fewer
// keys than requested.
type ScanPage struct {
	Keys     []string
	Cursor   string
	Complete bool
}

// KeyValueStore is the flat string-keyed store every record lives in.
// There is no multi-key atomicity and no compare-and-swap: callers perform
// plain read-modify-write sequences and accept last-write-wins semantics.
type KeyValueStore interface {
	// Get returns the value for key, or nil with no error when absent.
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	// Scan returns one page of keys sharing prefix, resuming from cursor
	// (empty cursor starts a new scan).
	Scan(ctx context.Context, prefix string, cursor string, count int64) (*ScanPage, error)
}

// HealthChecker verifies a storage backend is reachable.
type HealthChecker interface {
	Name() string
	Ping(ctx context.Context) error
}

package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"shared-wallet-service/internal/core/ports"
)

// Store is an in-process ports.KeyValueStore. Used by the memory storage
// driver and throughout the service tests. Scan cursors are the last key of
// the previous page.
type Store struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{data: make(map[string][]byte)}
}

// Get returns the value for key, or nil when absent.
func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.data[key]
	if !ok {
		return nil, nil
	}
	cp := make([]byte, len(v))
	copy(cp, v)
	return cp, nil
}

// Put stores value under key, overwriting any previous value.
func (s *Store) Put(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := make([]byte, len(value))
	copy(cp, value)
	s.data[key] = cp
	return nil
}

// Delete removes key. Deleting an absent key is not an error.
func (s *Store) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.data, key)
	return nil
}

// Scan returns up to count keys sharing prefix, in lexical order, resuming
// after the cursor key.
func (s *Store) Scan(_ context.Context, prefix string, cursor string, count int64) (*ports.ScanPage, error) {
	s.mu.RLock()
	var keys []string
	for k := range s.data {
		if strings.HasPrefix(k, prefix) && k > cursor {
			keys = append(keys, k)
		}
	}
	s.mu.RUnlock()

	sort.Strings(keys)

	page := &ports.ScanPage{}
	if int64(len(keys)) <= count {
		page.Keys = keys
		page.Complete = true
		return page, nil
	}

	page.Keys = keys[:count]
	page.Cursor = page.Keys[len(page.Keys)-1]
	return page, nil
}

// Len reports the number of stored keys. Test helper.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

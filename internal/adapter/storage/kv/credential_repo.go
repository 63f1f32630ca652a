package kv

import (
	"context"
	"encoding/json"
	"fmt"

	"shared-wallet-service/internal/core/domain"
	"shared-wallet-service/internal/core/ports"
)

// CredentialRepo implements ports.CredentialRepository. Usernames are
// normalized before every key operation so lookups are case-insensitive.
type CredentialRepo struct {
	store ports.KeyValueStore
}

// NewCredentialRepo creates a new CredentialRepo.
func NewCredentialRepo(store ports.KeyValueStore) *CredentialRepo {
	return &CredentialRepo{store: store}
}

// Save persists the credential under the normalized username.
func (r *CredentialRepo) Save(ctx context.Context, username string, cred *domain.Credential) error {
	data, err := json.Marshal(cred)
	if err != nil {
		return fmt.Errorf("marshal credential: %w", err)
	}
	key := credentialKey(domain.NormalizeUsername(username))
	if err := r.store.Put(ctx, key, data); err != nil {
		return fmt.Errorf("save credential: %w", err)
	}
	return nil
}

// Get fetches the credential for a username. Returns nil, nil when absent.
func (r *CredentialRepo) Get(ctx context.Context, username string) (*domain.Credential, error) {
	key := credentialKey(domain.NormalizeUsername(username))
	data, err := r.store.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("get credential: %w", err)
	}
	if data == nil {
		return nil, nil
	}

	cred := &domain.Credential{}
	if err := json.Unmarshal(data, cred); err != nil {
		return nil, fmt.Errorf("decode credential: %w", err)
	}
	return cred, nil
}

// List scans credentials whose normalized username starts with prefix.
// Entries that fail to decode are skipped.
func (r *CredentialRepo) List(ctx context.Context, prefix string, cursor string, limit int64) (*ports.CredentialPage, error) {
	scanPrefix := credentialKeyPrefix + domain.NormalizeUsername(prefix)
	scan, err := r.store.Scan(ctx, scanPrefix, cursor, limit)
	if err != nil {
		return nil, fmt.Errorf("scan credentials: %w", err)
	}

	page := &ports.CredentialPage{
		Cursor:  scan.Cursor,
		HasMore: !scan.Complete,
	}
	for _, key := range scan.Keys {
		data, err := r.store.Get(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("get credential %s: %w", key, err)
		}
		if data == nil {
			continue
		}
		var cred domain.Credential
		if err := json.Unmarshal(data, &cred); err != nil {
			continue
		}
		page.Credentials = append(page.Credentials, cred)
	}
	return page, nil
}

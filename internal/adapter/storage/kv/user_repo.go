package kv

import (
	"context"
	"encoding/json"
	"fmt"

	"shared-wallet-service/internal/core/domain"
	"shared-wallet-service/internal/core/ports"
)

// UserRepo implements ports.UserRepository.
type UserRepo struct {
	store ports.KeyValueStore
}

// NewUserRepo creates a new UserRepo.
func NewUserRepo(store ports.KeyValueStore) *UserRepo {
	return &UserRepo{store: store}
}

// Save persists the user record.
func (r *UserRepo) Save(ctx context.Context, user *domain.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("marshal user %s: %w", user.ID, err)
	}
	if err := r.store.Put(ctx, userKey(user.ID), data); err != nil {
		return fmt.Errorf("save user %s: %w", user.ID, err)
	}
	return nil
}

// GetByID fetches a user record. Returns nil, nil when absent.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	data, err := r.store.Get(ctx, userKey(id))
	if err != nil {
		return nil, fmt.Errorf("get user %s: %w", id, err)
	}
	if data == nil {
		return nil, nil
	}

	user := &domain.User{}
	if err := json.Unmarshal(data, user); err != nil {
		return nil, fmt.Errorf("decode user %s: %w", id, err)
	}
	return user, nil
}

package kv

import (
	"context"
	"encoding/json"
	"fmt"

	"shared-wallet-service/internal/core/domain"
	"shared-wallet-service/internal/core/ports"
)

// WalletRepo implements ports.WalletRepository.
type WalletRepo struct {
	store ports.KeyValueStore
}

// NewWalletRepo creates a new WalletRepo.
func NewWalletRepo(store ports.KeyValueStore) *WalletRepo {
	return &WalletRepo{store: store}
}

// Save persists the wallet record.
func (r *WalletRepo) Save(ctx context.Context, wallet *domain.Wallet) error {
	data, err := json.Marshal(wallet)
	if err != nil {
		return fmt.Errorf("marshal wallet %s: %w", wallet.ID, err)
	}
	if err := r.store.Put(ctx, walletKey(wallet.ID), data); err != nil {
		return fmt.Errorf("save wallet %s: %w", wallet.ID, err)
	}
	return nil
}

// GetByID fetches a wallet record. Returns nil, nil when absent.
func (r *WalletRepo) GetByID(ctx context.Context, id string) (*domain.Wallet, error) {
	data, err := r.store.Get(ctx, walletKey(id))
	if err != nil {
		return nil, fmt.Errorf("get wallet %s: %w", id, err)
	}
	if data == nil {
		return nil, nil
	}

	wallet := &domain.Wallet{}
	if err := json.Unmarshal(data, wallet); err != nil {
		return nil, fmt.Errorf("decode wallet %s: %w", id, err)
	}
	return wallet, nil
}

// Delete removes the wallet key. The wallet's transactions are left in
// place; there is no cascading cleanup.
func (r *WalletRepo) Delete(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, walletKey(id)); err != nil {
		return fmt.Errorf("delete wallet %s: %w", id, err)
	}
	return nil
}

// List pages over all wallets. Entries that fail to decode are skipped, so
// a page may hold fewer than limit items.
func (r *WalletRepo) List(ctx context.Context, cursor string, limit int64) (*ports.WalletPage, error) {
	scan, err := r.store.Scan(ctx, walletKeyPrefix, cursor, limit)
	if err != nil {
		return nil, fmt.Errorf("scan wallets: %w", err)
	}

	page := &ports.WalletPage{
		Cursor:  scan.Cursor,
		HasMore: !scan.Complete,
	}
	for _, key := range scan.Keys {
		data, err := r.store.Get(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("get wallet %s: %w", key, err)
		}
		if data == nil {
			continue
		}
		var wallet domain.Wallet
		if err := json.Unmarshal(data, &wallet); err != nil {
			continue
		}
		page.Wallets = append(page.Wallets, wallet)
	}
	return page, nil
}

package kv

import (
	"context"
	"encoding/json"
	"fmt"

	"shared-wallet-service/internal/core/domain"
	"shared-wallet-service/internal/core/ports"
)

// fullScanPageSize is the batch size used when walking the entire
// transaction keyspace for the by-creator listing.
const fullScanPageSize = 100

// TransactionRepo implements ports.TransactionRepository.
type TransactionRepo struct {
	store ports.KeyValueStore
}

// NewTransactionRepo creates a new TransactionRepo.
func NewTransactionRepo(store ports.KeyValueStore) *TransactionRepo {
	return &TransactionRepo{store: store}
}

// Save persists the transaction record.
func (r *TransactionRepo) Save(ctx context.Context, tx *domain.Transaction) error {
	data, err := json.Marshal(tx)
	if err != nil {
		return fmt.Errorf("marshal transaction %s: %w", tx.ID, err)
	}
	if err := r.store.Put(ctx, transactionKey(tx.ID), data); err != nil {
		return fmt.Errorf("save transaction %s: %w", tx.ID, err)
	}
	return nil
}

// GetByID fetches a transaction record. Returns nil, nil when absent.
func (r *TransactionRepo) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	data, err := r.store.Get(ctx, transactionKey(id))
	if err != nil {
		return nil, fmt.Errorf("get transaction %s: %w", id, err)
	}
	if data == nil {
		return nil, nil
	}

	tx := &domain.Transaction{}
	if err := json.Unmarshal(data, tx); err != nil {
		return nil, fmt.Errorf("decode transaction %s: %w", id, err)
	}
	return tx, nil
}

// Delete removes the transaction key.
func (r *TransactionRepo) Delete(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, transactionKey(id)); err != nil {
		return fmt.Errorf("delete transaction %s: %w", id, err)
	}
	return nil
}

// ListByWallet pages over one wallet's transactions using the store's
// native scan cursor. Entries that fail to decode are skipped, so a page
// may hold fewer than limit items.
func (r *TransactionRepo) ListByWallet(ctx context.Context, walletID string, cursor string, limit int64) (*ports.TransactionPage, error) {
	scan, err := r.store.Scan(ctx, walletTransactionPrefix(walletID), cursor, limit)
	if err != nil {
		return nil, fmt.Errorf("scan transactions for wallet %s: %w", walletID, err)
	}

	page := &ports.TransactionPage{
		Cursor:  scan.Cursor,
		HasMore: !scan.Complete,
	}
	for _, key := range scan.Keys {
		tx, ok, err := r.load(ctx, key)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		page.Transactions = append(page.Transactions, tx)
	}
	return page, nil
}

// ListAll walks every transaction in the store. Full keyspace scan with no
// secondary index; acceptable only at small scale.
func (r *TransactionRepo) ListAll(ctx context.Context) ([]domain.Transaction, error) {
	var all []domain.Transaction
	cursor := ""
	for {
		scan, err := r.store.Scan(ctx, transactionKeyPrefix, cursor, fullScanPageSize)
		if err != nil {
			return nil, fmt.Errorf("scan all transactions: %w", err)
		}
		for _, key := range scan.Keys {
			tx, ok, err := r.load(ctx, key)
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}
			all = append(all, tx)
		}
		if scan.Complete {
			return all, nil
		}
		cursor = scan.Cursor
	}
}

// load fetches and decodes one transaction key. ok is false for keys that
// vanished mid-scan or hold undecodable payloads.
func (r *TransactionRepo) load(ctx context.Context, key string) (domain.Transaction, bool, error) {
	var tx domain.Transaction
	data, err := r.store.Get(ctx, key)
	if err != nil {
		return tx, false, fmt.Errorf("get transaction %s: %w", key, err)
	}
	if data == nil {
		return tx, false, nil
	}
	if err := json.Unmarshal(data, &tx); err != nil {
		return tx, false, nil
	}
	return tx, true, nil
}

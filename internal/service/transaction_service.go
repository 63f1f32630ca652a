package service

import (
	"context"
	"fmt"
	"time"

	"shared-wallet-service/internal/core/domain"
	"shared-wallet-service/internal/core/ports"
	"shared-wallet-service/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// defaultTransactionPageSize is the per-wallet listing page size when the
// caller gives no limit.
const defaultTransactionPageSize = 5

// TransactionServiceImpl implements ports.TransactionService. It owns the
// balance invariant: every transaction mutation applies its amount delta
// to the owning wallet incrementally, never by rescanning the ledger. The
// wallet and transaction writes are separate and not atomic; on update and
// delete the wallet correction is persisted first to shrink the window in
// which a crash loses it.
type TransactionServiceImpl struct {
	txRepo     ports.TransactionRepository
	walletRepo ports.WalletRepository
	log        zerolog.Logger
}

// NewTransactionService creates a new TransactionServiceImpl.
func NewTransactionService(txRepo ports.TransactionRepository, walletRepo ports.WalletRepository, log zerolog.Logger) *TransactionServiceImpl {
	return &TransactionServiceImpl{
		txRepo:     txRepo,
		walletRepo: walletRepo,
		log:        log,
	}
}

// Create posts a transaction against a wallet and adds its amount to the
// wallet balance. A locked wallet does not block postings. Non-numeric
// amounts are coerced to zero.
func (s *TransactionServiceImpl) Create(ctx context.Context, walletID string, req ports.CreateTransactionRequest, requester *domain.User) (*domain.Transaction, error) {
	wallet, err := s.authorizedWallet(ctx, walletID, requester)
	if err != nil {
		return nil, err
	}

	amount := parseAmount(req.Amount)
	tx := &domain.Transaction{
		ID:        domain.NewTransactionID(wallet.ID, uuid.New().String()),
		WalletID:  wallet.ID,
		Name:      req.Name,
		Amount:    amount,
		Extra:     req.Extra,
		CreatedBy: requester.Summary(),
		CreatedAt: time.Now().UTC(),
	}
	if err := s.txRepo.Save(ctx, tx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("save transaction: %w", err))
	}

	wallet.Balance += amount
	if err := s.walletRepo.Save(ctx, wallet); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("save wallet balance: %w", err))
	}

	s.log.Info().
		Str("tx_id", tx.ID).
		Str("wallet_id", wallet.ID).
		Float64("amount", amount).
		Msg("transaction created")

	return tx, nil
}

// Get fetches a transaction, enforcing membership on its owning wallet.
func (s *TransactionServiceImpl) Get(ctx context.Context, txID string, requester *domain.User) (*domain.Transaction, error) {
	tx, _, err := s.authorizedTransaction(ctx, txID, requester)
	if err != nil {
		return nil, err
	}
	return tx, nil
}

// Update applies the patch fields that are present. An amount change
// applies the delta to the wallet balance, wallet written before the
// transaction; an equal amount leaves the wallet untouched.
func (s *TransactionServiceImpl) Update(ctx context.Context, txID string, patch ports.TransactionPatch, requester *domain.User) (*domain.Transaction, error) {
	tx, wallet, err := s.authorizedTransaction(ctx, txID, requester)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		tx.Name = *patch.Name
	}
	if patch.Extra != nil {
		tx.Extra = patch.Extra
	}
	if patch.Amount != nil {
		newAmount := parseAmount(patch.Amount)
		if delta := newAmount - tx.Amount; delta != 0 {
			wallet.Balance += delta
			if err := s.walletRepo.Save(ctx, wallet); err != nil {
				return nil, apperror.InternalError(fmt.Errorf("save wallet balance: %w", err))
			}
		}
		tx.Amount = newAmount
	}

	if err := s.txRepo.Save(ctx, tx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("save transaction: %w", err))
	}
	return tx, nil
}

// Delete reverses the transaction's contribution to the wallet balance,
// persists the wallet, then removes the transaction key. The ordering
// keeps the reversal durable before the record disappears; it is
// best-effort, not a guarantee.
func (s *TransactionServiceImpl) Delete(ctx context.Context, txID string, requester *domain.User) (*domain.Transaction, error) {
	tx, wallet, err := s.authorizedTransaction(ctx, txID, requester)
	if err != nil {
		return nil, err
	}

	wallet.Balance -= tx.Amount
	if err := s.walletRepo.Save(ctx, wallet); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("save wallet balance: %w", err))
	}

	if err := s.txRepo.Delete(ctx, tx.ID); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("delete transaction: %w", err))
	}

	s.log.Info().
		Str("tx_id", tx.ID).
		Str("wallet_id", wallet.ID).
		Float64("amount", tx.Amount).
		Msg("transaction deleted")

	return tx, nil
}

// List pages over a wallet's transactions with the store's native cursor.
// Pages may hold fewer than limit items when entries fail to decode.
func (s *TransactionServiceImpl) List(ctx context.Context, walletID string, cursor string, limit int64, requester *domain.User) (*ports.TransactionPage, error) {
	if _, err := s.authorizedWallet(ctx, walletID, requester); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultTransactionPageSize
	}

	page, err := s.txRepo.ListByWallet(ctx, walletID, cursor, limit)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("list transactions: %w", err))
	}
	return page, nil
}

// ListByCreator returns every transaction created by the requester. Full
// scan filtered client-side. There is no by-creator index, which is fine
// at the scale this service targets.
func (s *TransactionServiceImpl) ListByCreator(ctx context.Context, requester *domain.User) ([]domain.Transaction, error) {
	if requester == nil {
		return nil, apperror.ErrAuthRequired()
	}

	all, err := s.txRepo.ListAll(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("scan transactions: %w", err))
	}

	var mine []domain.Transaction
	for _, tx := range all {
		if tx.CreatedBy.ID == requester.ID {
			mine = append(mine, tx)
		}
	}
	return mine, nil
}

// authorizedWallet loads a wallet and enforces the requester's membership
// before anything is written.
func (s *TransactionServiceImpl) authorizedWallet(ctx context.Context, walletID string, requester *domain.User) (*domain.Wallet, error) {
	if requester == nil {
		return nil, apperror.ErrAuthRequired()
	}
	wallet, err := s.walletRepo.GetByID(ctx, walletID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get wallet: %w", err))
	}
	if wallet == nil {
		return nil, apperror.ErrNotFound("wallet")
	}
	if !wallet.HasAccess(requester.ID) {
		return nil, apperror.ErrNoAccess()
	}
	return wallet, nil
}

// authorizedTransaction loads a transaction plus its owning wallet and
// enforces membership. Transactions orphaned by wallet deletion surface
// as wallet not-found.
func (s *TransactionServiceImpl) authorizedTransaction(ctx context.Context, txID string, requester *domain.User) (*domain.Transaction, *domain.Wallet, error) {
	if requester == nil {
		return nil, nil, apperror.ErrAuthRequired()
	}
	tx, err := s.txRepo.GetByID(ctx, txID)
	if err != nil {
		return nil, nil, apperror.InternalError(fmt.Errorf("get transaction: %w", err))
	}
	if tx == nil {
		return nil, nil, apperror.ErrNotFound("transaction")
	}

	wallet, err := s.walletRepo.GetByID(ctx, tx.WalletID)
	if err != nil {
		return nil, nil, apperror.InternalError(fmt.Errorf("get wallet: %w", err))
	}
	if wallet == nil {
		return nil, nil, apperror.ErrNotFound("wallet")
	}
	if !wallet.HasAccess(requester.ID) {
		return nil, nil, apperror.ErrNoAccess()
	}
	return tx, wallet, nil
}

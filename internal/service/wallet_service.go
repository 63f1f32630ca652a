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

// defaultWalletPageSize caps the all-wallets listing when no limit is given.
const defaultWalletPageSize = 20

// WalletServiceImpl implements ports.WalletService. Every mutation is a
// short sequence of independent key writes; a crash mid-sequence can leave
// the wallet record and the members' wallet caches out of step, and no
// reconciliation runs afterwards.
type WalletServiceImpl struct {
	walletRepo ports.WalletRepository
	userRepo   ports.UserRepository
	log        zerolog.Logger
}

// NewWalletService creates a new WalletServiceImpl.
func NewWalletService(walletRepo ports.WalletRepository, userRepo ports.UserRepository, log zerolog.Logger) *WalletServiceImpl {
	return &WalletServiceImpl{
		walletRepo: walletRepo,
		userRepo:   userRepo,
		log:        log,
	}
}

// Create allocates a wallet with the owner as sole member and zero
// balance, then appends the wallet summary to the owner's membership
// cache. Wallet first, owner second; the gap between the two writes is the
// documented non-atomic window.
func (s *WalletServiceImpl) Create(ctx context.Context, owner *domain.User, req ports.CreateWalletRequest) (*domain.Wallet, error) {
	if owner == nil {
		return nil, apperror.ErrAuthRequired()
	}
	if req.Name == "" {
		return nil, apperror.Validation("wallet name must not be empty")
	}

	wallet := &domain.Wallet{
		ID:          uuid.New().String(),
		Name:        req.Name,
		Description: req.Description,
		Access:      []domain.UserSummary{owner.Summary()},
		Balance:     0,
		Extra:       req.Extra,
		CreatedBy:   owner.Summary(),
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.walletRepo.Save(ctx, wallet); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("create wallet: %w", err))
	}

	owner.AddWallet(wallet.Summary())
	if err := s.userRepo.Save(ctx, owner); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("update owner wallets: %w", err))
	}

	s.log.Info().
		Str("wallet_id", wallet.ID).
		Str("owner_id", owner.ID).
		Msg("wallet created")

	return wallet, nil
}

// Get fetches a wallet without any membership check. Reserved for trusted
// internal callers; never route unauthenticated traffic here.
func (s *WalletServiceImpl) Get(ctx context.Context, walletID string) (*domain.Wallet, error) {
	wallet, err := s.walletRepo.GetByID(ctx, walletID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get wallet: %w", err))
	}
	if wallet == nil {
		return nil, apperror.ErrNotFound("wallet")
	}
	return wallet, nil
}

// GetForUser fetches a wallet for a requesting user, enforcing membership.
func (s *WalletServiceImpl) GetForUser(ctx context.Context, walletID string, requester *domain.User) (*domain.Wallet, error) {
	if requester == nil {
		return nil, apperror.ErrAuthRequired()
	}
	wallet, err := s.Get(ctx, walletID)
	if err != nil {
		return nil, err
	}
	if !wallet.HasAccess(requester.ID) {
		return nil, apperror.ErrNoAccess()
	}
	return wallet, nil
}

// ListMine returns the requester's denormalized wallet summaries, re-read
// from the store so a fresh grant on another node is visible.
func (s *WalletServiceImpl) ListMine(ctx context.Context, requester *domain.User) ([]domain.WalletSummary, error) {
	if requester == nil {
		return nil, apperror.ErrAuthRequired()
	}
	user, err := s.userRepo.GetByID(ctx, requester.ID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("load user: %w", err))
	}
	if user == nil {
		return nil, apperror.ErrNotFound("user")
	}
	return user.Wallets, nil
}

// ListAll pages over every wallet in the store. Requires authentication
// but no membership; intended for administrative listings.
func (s *WalletServiceImpl) ListAll(ctx context.Context, requester *domain.User, cursor string, limit int64) (*ports.WalletPage, error) {
	if requester == nil {
		return nil, apperror.ErrAuthRequired()
	}
	if limit <= 0 {
		limit = defaultWalletPageSize
	}
	page, err := s.walletRepo.List(ctx, cursor, limit)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("list wallets: %w", err))
	}
	return page, nil
}

// Close marks the wallet locked. Locking does not block balance-affecting
// operations: transactions still post against a locked wallet.
func (s *WalletServiceImpl) Close(ctx context.Context, walletID string, requester *domain.User) (*domain.Wallet, error) {
	wallet, err := s.GetForUser(ctx, walletID, requester)
	if err != nil {
		return nil, err
	}

	wallet.Locked = true
	if err := s.walletRepo.Save(ctx, wallet); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("close wallet: %w", err))
	}
	return wallet, nil
}

// Delete scrubs the wallet from every member's cache, then removes the
// wallet key. Per-member scrub failures are logged and swallowed so one
// unreachable user record cannot block the deletion. The wallet's
// transactions are intentionally left orphaned.
func (s *WalletServiceImpl) Delete(ctx context.Context, walletID string, requester *domain.User) (*domain.Wallet, error) {
	wallet, err := s.GetForUser(ctx, walletID, requester)
	if err != nil {
		return nil, err
	}

	for _, outcome := range s.scrubMembers(ctx, wallet) {
		if outcome.err != nil {
			s.log.Warn().
				Err(outcome.err).
				Str("wallet_id", wallet.ID).
				Str("user_id", outcome.userID).
				Msg("failed to scrub wallet from member")
		}
	}

	if err := s.walletRepo.Delete(ctx, walletID); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("delete wallet: %w", err))
	}

	s.log.Info().
		Str("wallet_id", wallet.ID).
		Str("requester_id", requester.ID).
		Msg("wallet deleted")

	return wallet, nil
}

// memberScrubOutcome records the result of removing one member's wallet
// cache entry during deletion.
type memberScrubOutcome struct {
	userID string
	err    error
}

// scrubMembers removes the wallet summary from each member's cache,
// continuing past individual failures.
func (s *WalletServiceImpl) scrubMembers(ctx context.Context, wallet *domain.Wallet) []memberScrubOutcome {
	outcomes := make([]memberScrubOutcome, 0, len(wallet.Access))
	for _, member := range wallet.Access {
		outcomes = append(outcomes, memberScrubOutcome{
			userID: member.ID,
			err:    s.scrubMember(ctx, member.ID, wallet.ID),
		})
	}
	return outcomes
}

func (s *WalletServiceImpl) scrubMember(ctx context.Context, userID, walletID string) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("user %s not found", userID)
	}
	if !user.RemoveWallet(walletID) {
		return nil
	}
	return s.userRepo.Save(ctx, user)
}

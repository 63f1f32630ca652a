package service

import (
	"context"
	"fmt"

	"shared-wallet-service/internal/core/domain"
	"shared-wallet-service/internal/core/ports"
	"shared-wallet-service/pkg/apperror"

	"github.com/rs/zerolog"
)

// AccessServiceImpl implements ports.AccessService. Membership lives in
// two places, wallet.access and each member's wallets cache, and every
// grant/revoke mutates both in one call. The two writes are not atomic; a
// failure between them leaves the copies out of step until the next
// successful mutation.
type AccessServiceImpl struct {
	walletRepo ports.WalletRepository
	userRepo   ports.UserRepository
	log        zerolog.Logger
}

// NewAccessService creates a new AccessServiceImpl.
func NewAccessService(walletRepo ports.WalletRepository, userRepo ports.UserRepository, log zerolog.Logger) *AccessServiceImpl {
	return &AccessServiceImpl{
		walletRepo: walletRepo,
		userRepo:   userRepo,
		log:        log,
	}
}

// Grant adds a user to the wallet's access list and mirrors the wallet
// onto the user's membership cache. The requester must already be a
// member; the target must exist and not already be one.
func (s *AccessServiceImpl) Grant(ctx context.Context, walletID, targetUserID string, requester *domain.User) (*domain.Wallet, error) {
	wallet, target, err := s.loadForMutation(ctx, walletID, targetUserID, requester)
	if err != nil {
		return nil, err
	}

	if wallet.HasAccess(target.ID) {
		return nil, apperror.ErrAlreadyMember()
	}

	wallet.AddMember(target.Summary())
	if err := s.walletRepo.Save(ctx, wallet); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("save wallet access: %w", err))
	}

	target.AddWallet(wallet.Summary())
	if err := s.userRepo.Save(ctx, target); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("save target wallets: %w", err))
	}

	s.log.Info().
		Str("wallet_id", wallet.ID).
		Str("target_id", target.ID).
		Str("requester_id", requester.ID).
		Msg("access granted")

	return wallet, nil
}

// Revoke removes a user from the wallet's access list and from the user's
// membership cache. Removing the final member is refused: a wallet's
// access list is never empty while the wallet exists.
func (s *AccessServiceImpl) Revoke(ctx context.Context, walletID, targetUserID string, requester *domain.User) (*domain.Wallet, error) {
	wallet, target, err := s.loadForMutation(ctx, walletID, targetUserID, requester)
	if err != nil {
		return nil, err
	}

	if !wallet.HasAccess(target.ID) {
		return nil, apperror.Validation("user has no access to this wallet")
	}
	if len(wallet.Access) == 1 {
		return nil, apperror.ErrLastMember()
	}

	wallet.RemoveMember(target.ID)
	if err := s.walletRepo.Save(ctx, wallet); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("save wallet access: %w", err))
	}

	target.RemoveWallet(wallet.ID)
	if err := s.userRepo.Save(ctx, target); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("save target wallets: %w", err))
	}

	s.log.Info().
		Str("wallet_id", wallet.ID).
		Str("target_id", target.ID).
		Str("requester_id", requester.ID).
		Msg("access revoked")

	return wallet, nil
}

// loadForMutation authorizes the requester against the wallet and loads
// the target user, without mutating anything.
func (s *AccessServiceImpl) loadForMutation(ctx context.Context, walletID, targetUserID string, requester *domain.User) (*domain.Wallet, *domain.User, error) {
	if requester == nil {
		return nil, nil, apperror.ErrAuthRequired()
	}

	wallet, err := s.walletRepo.GetByID(ctx, walletID)
	if err != nil {
		return nil, nil, apperror.InternalError(fmt.Errorf("get wallet: %w", err))
	}
	if wallet == nil {
		return nil, nil, apperror.ErrNotFound("wallet")
	}
	if !wallet.HasAccess(requester.ID) {
		return nil, nil, apperror.ErrNoAccess()
	}

	target, err := s.userRepo.GetByID(ctx, targetUserID)
	if err != nil {
		return nil, nil, apperror.InternalError(fmt.Errorf("get target user: %w", err))
	}
	if target == nil {
		return nil, nil, apperror.ErrNotFound("user")
	}
	return wallet, target, nil
}

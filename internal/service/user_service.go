package service

import (
	"context"
	"fmt"

	"shared-wallet-service/internal/core/domain"
	"shared-wallet-service/internal/core/ports"
	"shared-wallet-service/pkg/apperror"
)

// defaultUserPageSize caps username-prefix listings when no limit is given.
const defaultUserPageSize = 20

// UserServiceImpl implements ports.UserService: the user directory.
type UserServiceImpl struct {
	userRepo ports.UserRepository
	credRepo ports.CredentialRepository
}

// NewUserService creates a new UserServiceImpl.
func NewUserService(userRepo ports.UserRepository, credRepo ports.CredentialRepository) *UserServiceImpl {
	return &UserServiceImpl{
		userRepo: userRepo,
		credRepo: credRepo,
	}
}

// GetByID fetches a user's profile.
func (s *UserServiceImpl) GetByID(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get user: %w", err))
	}
	if user == nil {
		return nil, apperror.ErrNotFound("user")
	}
	return user, nil
}

// ResolveIDByName maps a username (case-insensitive) to its user id via
// the credential record.
func (s *UserServiceImpl) ResolveIDByName(ctx context.Context, name string) (string, error) {
	cred, err := s.credRepo.Get(ctx, name)
	if err != nil {
		return "", apperror.InternalError(fmt.Errorf("resolve username: %w", err))
	}
	if cred == nil {
		return "", apperror.ErrNotFound("user")
	}
	return cred.UserID, nil
}

// List pages over users whose username starts with prefix, via a prefix
// scan of the credential keyspace. Users that have vanished since their
// credential was written are skipped.
func (s *UserServiceImpl) List(ctx context.Context, prefix string, cursor string, limit int64) (*ports.UserPage, error) {
	if limit <= 0 {
		limit = defaultUserPageSize
	}

	credPage, err := s.credRepo.List(ctx, prefix, cursor, limit)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("list credentials: %w", err))
	}

	page := &ports.UserPage{
		Cursor:  credPage.Cursor,
		HasMore: credPage.HasMore,
	}
	for _, cred := range credPage.Credentials {
		user, err := s.userRepo.GetByID(ctx, cred.UserID)
		if err != nil {
			return nil, apperror.InternalError(fmt.Errorf("load user %s: %w", cred.UserID, err))
		}
		if user == nil {
			continue
		}
		page.Users = append(page.Users, user.Summary())
	}
	return page, nil
}

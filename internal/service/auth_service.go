package service

import (
	"context"
	"fmt"

	"shared-wallet-service/internal/core/domain"
	"shared-wallet-service/internal/core/ports"
	"shared-wallet-service/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// AuthServiceImpl implements ports.AuthService: the credential vault.
// Credentials are stored as a salted SHA-256 digest keyed by normalized
// username; there is no password-change flow.
type AuthServiceImpl struct {
	credRepo ports.CredentialRepository
	userRepo ports.UserRepository
	tokenSvc ports.TokenService
	salt     string
	log      zerolog.Logger
}

// NewAuthService creates a new AuthServiceImpl.
func NewAuthService(
	credRepo ports.CredentialRepository,
	userRepo ports.UserRepository,
	tokenSvc ports.TokenService,
	salt string,
	log zerolog.Logger,
) *AuthServiceImpl {
	return &AuthServiceImpl{
		credRepo: credRepo,
		userRepo: userRepo,
		tokenSvc: tokenSvc,
		salt:     salt,
		log:      log,
	}
}

// Register creates a new user and credential, then issues a token. The
// username must be letters/digits only; the normalized form must be
// unused. User and credential are two separate writes with no atomicity.
func (s *AuthServiceImpl) Register(ctx context.Context, username, password string) (*ports.AuthResult, error) {
	if !domain.ValidUsername(username) {
		return nil, apperror.Validation("username must be non-empty letters and digits only")
	}
	if password == "" {
		return nil, apperror.Validation("password must not be empty")
	}

	existing, err := s.credRepo.Get(ctx, username)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("check username: %w", err))
	}
	if existing != nil {
		return nil, apperror.ErrUsernameExists()
	}

	user := &domain.User{
		ID:   uuid.New().String(),
		Name: domain.NormalizeUsername(username),
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("create user: %w", err))
	}

	cred := &domain.Credential{
		UserID: user.ID,
		Digest: saltedDigest(s.salt, password),
	}
	if err := s.credRepo.Save(ctx, username, cred); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("create credential: %w", err))
	}

	token, err := s.tokenSvc.Issue(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("user_id", user.ID).
		Str("username", user.Name).
		Msg("user registered")

	return &ports.AuthResult{User: user, Token: token}, nil
}

// Login verifies a username/password pair and issues a token. Missing
// credentials surface as not-found; a digest mismatch as invalid
// credentials.
func (s *AuthServiceImpl) Login(ctx context.Context, username, password string) (*ports.AuthResult, error) {
	cred, err := s.credRepo.Get(ctx, username)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("find credential: %w", err))
	}
	if cred == nil {
		return nil, apperror.ErrNotFound("user")
	}

	if !digestsEqual(saltedDigest(s.salt, password), cred.Digest) {
		return nil, apperror.ErrInvalidCredentials()
	}

	user, err := s.userRepo.GetByID(ctx, cred.UserID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("load user: %w", err))
	}
	if user == nil {
		return nil, apperror.ErrNotFound("user")
	}

	token, err := s.tokenSvc.Issue(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	return &ports.AuthResult{User: user, Token: token}, nil
}

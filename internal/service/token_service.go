package service

import (
	"context"
	"fmt"
	"strings"

	"shared-wallet-service/internal/core/domain"
	"shared-wallet-service/internal/core/ports"
	"shared-wallet-service/pkg/apperror"
)

// tokenNonceBytes sizes the random nonce in issued tokens.
const tokenNonceBytes = 16

// DigestTokenService implements ports.TokenService with self-contained
// salted-digest tokens: "<userId>_<nonce>_<digest>". No session state is
// stored and no expiry is enforced: a token stays valid as long as the
// user exists and the server salt is unchanged.
type DigestTokenService struct {
	salt     string
	userRepo ports.UserRepository
}

// NewDigestTokenService creates a new DigestTokenService.
func NewDigestTokenService(salt string, userRepo ports.UserRepository) *DigestTokenService {
	return &DigestTokenService{
		salt:     salt,
		userRepo: userRepo,
	}
}

// Issue creates a token for the user. The nonce is cryptographically
// random so tokens cannot be forged or predicted.
func (s *DigestTokenService) Issue(_ context.Context, userID string) (string, error) {
	nonce, err := randomHex(tokenNonceBytes)
	if err != nil {
		return "", apperror.InternalError(fmt.Errorf("generate token nonce: %w", err))
	}

	payload := userID + "_" + nonce
	return payload + "_" + saltedDigest(s.salt, payload), nil
}

// Verify checks the token digest and resolves the referenced user. Any
// malformed or tampered token fails with an auth error, as does a token
// whose user no longer exists.
func (s *DigestTokenService) Verify(ctx context.Context, token string) (*domain.User, error) {
	parts := strings.Split(token, "_")
	if len(parts) != 3 {
		return nil, apperror.ErrInvalidToken()
	}
	userID, nonce, digest := parts[0], parts[1], parts[2]

	if !digestsEqual(saltedDigest(s.salt, userID+"_"+nonce), digest) {
		return nil, apperror.ErrInvalidToken()
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("resolve token user: %w", err))
	}
	if user == nil {
		return nil, apperror.ErrInvalidToken()
	}
	return user, nil
}

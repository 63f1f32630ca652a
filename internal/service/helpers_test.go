package service

import (
	"context"
	"testing"

	"shared-wallet-service/internal/adapter/storage/kv"
	"shared-wallet-service/internal/adapter/storage/memory"
	"shared-wallet-service/internal/core/domain"
	"shared-wallet-service/pkg/logger"

	"github.com/stretchr/testify/require"
)

const testSalt = "unit-test-salt"

// testEnv wires the full service stack over an in-memory store, the same
// shape cmd/api assembles in production.
type testEnv struct {
	store     *memory.Store
	userRepo  *kv.UserRepo
	credRepo  *kv.CredentialRepo
	walletSvc *WalletServiceImpl
	txSvc     *TransactionServiceImpl
	accessSvc *AccessServiceImpl
	authSvc   *AuthServiceImpl
	userSvc   *UserServiceImpl
	tokenSvc  *DigestTokenService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store := memory.NewStore()
	log := logger.NewWithWriter("error", testWriter{t})

	userRepo := kv.NewUserRepo(store)
	credRepo := kv.NewCredentialRepo(store)
	walletRepo := kv.NewWalletRepo(store)
	txRepo := kv.NewTransactionRepo(store)

	tokenSvc := NewDigestTokenService(testSalt, userRepo)

	return &testEnv{
		store:     store,
		userRepo:  userRepo,
		credRepo:  credRepo,
		walletSvc: NewWalletService(walletRepo, userRepo, log),
		txSvc:     NewTransactionService(txRepo, walletRepo, log),
		accessSvc: NewAccessService(walletRepo, userRepo, log),
		authSvc:   NewAuthService(credRepo, userRepo, tokenSvc, testSalt, log),
		userSvc:   NewUserService(userRepo, credRepo),
		tokenSvc:  tokenSvc,
	}
}

// registerUser registers a user through the real auth flow and returns the
// stored record.
func (e *testEnv) registerUser(t *testing.T, username, password string) *domain.User {
	t.Helper()
	res, err := e.authSvc.Register(context.Background(), username, password)
	require.NoError(t, err)
	return res.User
}

// reload fetches the current stored state of a user.
func (e *testEnv) reload(t *testing.T, userID string) *domain.User {
	t.Helper()
	user, err := e.userRepo.GetByID(context.Background(), userID)
	require.NoError(t, err)
	require.NotNil(t, user)
	return user
}

// testWriter routes log output through t.Log so failures show context.
type testWriter struct{ t *testing.T }

func (w testWriter) Write(p []byte) (int, error) {
	w.t.Log(string(p))
	return len(p), nil
}

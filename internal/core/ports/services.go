package ports

import (
	"context"
	"encoding/json"

	"shared-wallet-service/internal/core/domain"
)

// TokenService issues and verifies self-contained bearer tokens. Tokens
// carry the user id, a random nonce and an integrity digest; no server-side
// session state exists and no expiry is enforced.
type TokenService interface {
	Issue(ctx context.Context, userID string) (string, error)
	// Verify checks the token's integrity digest and that the referenced
	// user still exists, returning the resolved user.
	Verify(ctx context.Context, token string) (*domain.User, error)
}

// AuthResult is the outcome of a successful register or login call.
type AuthResult struct {
	User  *domain.User
	Token string
}

// AuthService is the credential vault: registration and password login.
type AuthService interface {
	Register(ctx context.Context, username, password string) (*AuthResult, error)
	Login(ctx context.Context, username, password string) (*AuthResult, error)
}

// UserPage is one page of user summaries from a username-prefix listing.
type UserPage struct {
	Users   []domain.UserSummary
	Cursor  string
	HasMore bool
}

// UserService is the user directory.
type UserService interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
	// ResolveIDByName maps a (case-insensitive) username to a user id.
	ResolveIDByName(ctx context.Context, name string) (string, error)
	List(ctx context.Context, prefix string, cursor string, limit int64) (*UserPage, error)
}

// CreateWalletRequest holds validated input for wallet creation.
type CreateWalletRequest struct {
	Name        string
	Description string
	Extra       json.RawMessage
}

// WalletService owns wallet records and their lifecycle. Balance is never
// mutated here directly; it changes only through TransactionService.
type WalletService interface {
	Create(ctx context.Context, owner *domain.User, req CreateWalletRequest) (*domain.Wallet, error)
	// Get skips the membership check. Reserved for trusted internal
	// callers; exposed routes must use GetForUser.
	Get(ctx context.Context, walletID string) (*domain.Wallet, error)
	GetForUser(ctx context.Context, walletID string, requester *domain.User) (*domain.Wallet, error)
	ListMine(ctx context.Context, requester *domain.User) ([]domain.WalletSummary, error)
	ListAll(ctx context.Context, requester *domain.User, cursor string, limit int64) (*WalletPage, error)
	Close(ctx context.Context, walletID string, requester *domain.User) (*domain.Wallet, error)
	Delete(ctx context.Context, walletID string, requester *domain.User) (*domain.Wallet, error)
}

// AccessService mutates a wallet's access list together with the mirrored
// membership cache on the affected user. Both sides are updated in one
// call; the two writes are still not atomic.
type AccessService interface {
	Grant(ctx context.Context, walletID, targetUserID string, requester *domain.User) (*domain.Wallet, error)
	Revoke(ctx context.Context, walletID, targetUserID string, requester *domain.User) (*domain.Wallet, error)
}

// CreateTransactionRequest holds input for posting a transaction. Amount is
// the raw decoded JSON value; non-numeric input is coerced to zero rather
// than rejected.
type CreateTransactionRequest struct {
	Name   string
	Amount any
	Extra  json.RawMessage
}

// TransactionPatch holds the fields of a transaction update. Nil fields are
// left untouched.
type TransactionPatch struct {
	Name   *string
	Amount any
	Extra  json.RawMessage
}

// TransactionService owns transaction records and keeps wallet balances
// consistent with every mutation.
type TransactionService interface {
	Create(ctx context.Context, walletID string, req CreateTransactionRequest, requester *domain.User) (*domain.Transaction, error)
	Get(ctx context.Context, txID string, requester *domain.User) (*domain.Transaction, error)
	Update(ctx context.Context, txID string, patch TransactionPatch, requester *domain.User) (*domain.Transaction, error)
	Delete(ctx context.Context, txID string, requester *domain.User) (*domain.Transaction, error)
	List(ctx context.Context, walletID string, cursor string, limit int64, requester *domain.User) (*TransactionPage, error)
	ListByCreator(ctx context.Context, requester *domain.User) ([]domain.Transaction, error)
}

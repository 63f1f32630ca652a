package ports

import (
	"context"

	"shared-wallet-service/internal/core/domain"
)

// UserRepository defines persistence operations for user records.
type UserRepository interface {
	Save(ctx context.Context, user *domain.User) error
	// GetByID returns nil, nil when the user does not exist.
	GetByID(ctx context.Context, id string) (*domain.User, error)
}

// CredentialPage is one page of credentials from a username-prefix scan.
type CredentialPage struct {
	Credentials []domain.Credential
	Cursor      string
	HasMore     bool
}

// CredentialRepository defines persistence operations for credentials,
// keyed by normalized username.
type CredentialRepository interface {
	Save(ctx context.Context, username string, cred *domain.Credential) error
	// Get returns nil, nil when no credential exists for the username.
	Get(ctx context.Context, username string) (*domain.Credential, error)
	// List scans credentials whose normalized username starts with prefix.
	List(ctx context.Context, prefix string, cursor string, limit int64) (*CredentialPage, error)
}

// WalletPage is one page of wallets from a full scan.
type WalletPage struct {
	Wallets []domain.Wallet
	Cursor  string
	HasMore bool
}

// WalletRepository defines persistence operations for wallet records.
type WalletRepository interface {
	Save(ctx context.Context, wallet *domain.Wallet) error
	// GetByID returns nil, nil when the wallet does not exist.
	GetByID(ctx context.Context, id string) (*domain.Wallet, error)
	Delete(ctx context.Context, id string) error
	// List pages over all wallets. Entries that fail to decode are skipped.
	List(ctx context.Context, cursor string, limit int64) (*WalletPage, error)
}

// TransactionPage is one page of transactions from a per-wallet prefix scan.
type TransactionPage struct {
	Transactions []domain.Transaction
	Cursor       string
	HasMore      bool
}

// TransactionRepository defines persistence operations for transaction
// records, keyed so all transactions of a wallet share a prefix.
type TransactionRepository interface {
	Save(ctx context.Context, tx *domain.Transaction) error
	// GetByID returns nil, nil when the transaction does not exist.
	GetByID(ctx context.Context, id string) (*domain.Transaction, error)
	Delete(ctx context.Context, id string) error
	// ListByWallet pages over a single wallet's transactions using the
	// store's native cursor. Entries that fail to decode are skipped, so a
	// page may hold fewer than limit items.
	ListByWallet(ctx context.Context, walletID string, cursor string, limit int64) (*TransactionPage, error)
	// ListAll walks every transaction in the store. Full scan, only used
	// by the by-creator listing, which has no secondary index.
	ListAll(ctx context.Context) ([]domain.Transaction, error)
}

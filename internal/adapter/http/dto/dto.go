package dto

import "encoding/json"

// RegisterRequest is the request body for user registration.
type RegisterRequest struct {
	Username string `json:"username" binding:"required,username"`
	Password string `json:"password" binding:"required"`
}

// LoginRequest is the request body for user login.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse is the response body for successful register/login.
type AuthResponse struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Token    string `json:"token"`
}

// UserSummaryResponse is the embedded short form of a user.
type UserSummaryResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// WalletSummaryResponse is the embedded short form of a wallet.
type WalletSummaryResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// UserResponse is the response body for a user profile.
type UserResponse struct {
	ID      string                  `json:"id"`
	Name    string                  `json:"name"`
	Wallets []WalletSummaryResponse `json:"wallets"`
}

// ResolveUserResponse is the response body for a username lookup.
type ResolveUserResponse struct {
	UserID string `json:"user_id"`
}

// UserListResponse wraps a paginated user listing.
type UserListResponse struct {
	Users   []UserSummaryResponse `json:"users"`
	Cursor  string                `json:"cursor,omitempty"`
	HasMore bool                  `json:"has_more"`
}

// CreateWalletRequest is the request body for wallet creation.
type CreateWalletRequest struct {
	Name        string          `json:"name" binding:"required,max=100"`
	Description string          `json:"description" binding:"max=500"`
	Extra       json.RawMessage `json:"extra,omitempty"`
}

// WalletResponse is the full wallet representation.
type WalletResponse struct {
	ID          string                `json:"id"`
	Name        string                `json:"name"`
	Description string                `json:"description,omitempty"`
	Access      []UserSummaryResponse `json:"access"`
	Balance     float64               `json:"balance"`
	Extra       json.RawMessage       `json:"extra,omitempty"`
	CreatedBy   UserSummaryResponse   `json:"created_by"`
	CreatedAt   string                `json:"created_at"`
	Locked      bool                  `json:"locked"`
}

// WalletListResponse wraps a paginated wallet listing.
type WalletListResponse struct {
	Wallets []WalletResponse `json:"wallets"`
	Cursor  string           `json:"cursor,omitempty"`
	HasMore bool             `json:"has_more"`
}

// GrantAccessRequest is the request body for granting wallet access.
type GrantAccessRequest struct {
	UserID string `json:"user_id" binding:"required"`
}

// CreateTransactionRequest is the request body for posting a transaction.
// Amount stays untyped: any non-numeric JSON value is accepted and
// coerced to zero downstream.
type CreateTransactionRequest struct {
	Name   string          `json:"name" binding:"required,max=100"`
	Amount any             `json:"amount"`
	Extra  json.RawMessage `json:"extra,omitempty"`
}

// UpdateTransactionRequest is the request body for patching a
// transaction. Absent fields are left unchanged.
type UpdateTransactionRequest struct {
	Name   *string         `json:"name,omitempty" binding:"omitempty,max=100"`
	Amount any             `json:"amount,omitempty"`
	Extra  json.RawMessage `json:"extra,omitempty"`
}

// TransactionResponse is the full transaction representation.
type TransactionResponse struct {
	ID        string              `json:"id"`
	WalletID  string              `json:"wallet_id"`
	Name      string              `json:"name"`
	Amount    float64             `json:"amount"`
	Extra     json.RawMessage     `json:"extra,omitempty"`
	CreatedBy UserSummaryResponse `json:"created_by"`
	CreatedAt string              `json:"created_at"`
}

// TransactionListResponse wraps a paginated transaction listing.
type TransactionListResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Cursor       string                `json:"cursor,omitempty"`
	HasMore      bool                  `json:"has_more"`
}

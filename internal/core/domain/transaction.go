package domain

import (
	"encoding/json"
	"strings"
	"time"
)

// Transaction is a ledger entry contributing its amount to a wallet's
// balance. The id is the wallet id plus a generated suffix so that all
// transactions of a wallet share a lexical prefix for scanning.
type Transaction struct {
	ID        string          `json:"id"`
	WalletID  string          `json:"walletId"`
	Name      string          `json:"name"`
	Amount    float64         `json:"amount"`
	Extra     json.RawMessage `json:"extra,omitempty"`
	CreatedBy UserSummary     `json:"createdBy"`
	CreatedAt time.Time       `json:"createdAt"`
}

// NewTransactionID builds a transaction id from the owning wallet id and a
// generated suffix.
func NewTransactionID(walletID, suffix string) string {
	return walletID + "_" + suffix
}

// WalletIDFromTransactionID extracts the wallet id portion of a transaction
// id. Returns false if the id has no suffix separator.
func WalletIDFromTransactionID(txID string) (string, bool) {
	i := strings.LastIndex(txID, "_")
	if i <= 0 {
		return "", false
	}
	return txID[:i], true
}

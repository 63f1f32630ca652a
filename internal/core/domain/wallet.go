package domain

import (
	"encoding/json"
	"time"
)

// Wallet is a named, balance-bearing container shared by the users on its
// access list. Balance is maintained incrementally by transaction mutations
// and always equals the sum of amounts over the wallet's stored transactions.
type Wallet struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Access      []UserSummary   `json:"access"`
	Balance     float64         `json:"balance"`
	Extra       json.RawMessage `json:"extra,omitempty"`
	CreatedBy   UserSummary     `json:"createdBy"`
	CreatedAt   time.Time       `json:"createdAt"`
	Locked      bool            `json:"locked"`
}

// Summary returns the compact reference cached on member user records.
func (w *Wallet) Summary() WalletSummary {
	return WalletSummary{ID: w.ID, Name: w.Name}
}

// HasAccess reports whether the user is on the wallet's access list.
func (w *Wallet) HasAccess(userID string) bool {
	for _, m := range w.Access {
		if m.ID == userID {
			return true
		}
	}
	return false
}

// AddMember appends the member unless already present, preserving order.
func (w *Wallet) AddMember(member UserSummary) {
	if w.HasAccess(member.ID) {
		return
	}
	w.Access = append(w.Access, member)
}

// RemoveMember removes the member from the access list, preserving order.
// Returns false if the user was not a member.
func (w *Wallet) RemoveMember(userID string) bool {
	for i, m := range w.Access {
		if m.ID == userID {
			w.Access = append(w.Access[:i], w.Access[i+1:]...)
			return true
		}
	}
	return false
}

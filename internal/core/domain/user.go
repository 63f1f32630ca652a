package domain

// UserSummary is the compact identity embedded in wallet access lists and
// transaction createdBy fields.
type UserSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// WalletSummary is the compact wallet reference cached on each user record
// for fast "my wallets" listing.
type WalletSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// User represents a registered account. Wallets is a denormalized cache of
// wallet membership; the authoritative access list lives on each wallet and
// both sides must be mutated together.
type User struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	Wallets []WalletSummary `json:"wallets"`
}

// Summary returns the compact identity for embedding in other records.
func (u *User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Name: u.Name}
}

// HasWallet reports whether the wallet id is in the user's membership cache.
func (u *User) HasWallet(walletID string) bool {
	for _, w := range u.Wallets {
		if w.ID == walletID {
			return true
		}
	}
	return false
}

// AddWallet appends the wallet summary unless it is already present.
func (u *User) AddWallet(summary WalletSummary) {
	if u.HasWallet(summary.ID) {
		return
	}
	u.Wallets = append(u.Wallets, summary)
}

// RemoveWallet removes the wallet from the membership cache, preserving order.
// Returns false if the wallet was not present.
func (u *User) RemoveWallet(walletID string) bool {
	for i, w := range u.Wallets {
		if w.ID == walletID {
			u.Wallets = append(u.Wallets[:i], u.Wallets[i+1:]...)
			return true
		}
	}
	return false
}

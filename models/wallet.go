package models

import "time"

// WalletKind is the bucket type of an account.
type WalletKind string

const (
	WalletCash    WalletKind = "cash"
	WalletBank    WalletKind = "bank"
	WalletDigital WalletKind = "digital"
)

// Wallet is a named account bucket. Balance is derived from the transaction
// list and recomputed on every mutation; it is never a stored source of truth.
type Wallet struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Kind      WalletKind `json:"type"`
	BankName  string     `json:"bankName,omitempty"`
	Balance   int64      `json:"balance"`
	Currency  string     `json:"currency"`
	Color     string     `json:"color"`
	Icon      string     `json:"icon"`
	CreatedAt time.Time  `json:"createdAt"`
}

// ValidWalletKind reports whether k is one of the supported kinds.
func ValidWalletKind(k WalletKind) bool {
	switch k {
	case WalletCash, WalletBank, WalletDigital:
		return true
	}
	return false
}

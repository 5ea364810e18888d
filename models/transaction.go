package models

import (
	"fmt"
	"strings"
	"time"
)

// TransactionKind is the direction of a financial event.
type TransactionKind string

const (
	TxIncome   TransactionKind = "income"
	TxExpense  TransactionKind = "expense"
	TxTransfer TransactionKind = "transfer"
)

// Transaction is an immutable financial event. There is no edit operation;
// a wrong entry is deleted and re-created. Amount is whole rupiah, always
// positive. For transfers WalletID equals FromWalletID.
type Transaction struct {
	ID           string          `json:"id"`
	Kind         TransactionKind `json:"type"`
	Amount       int64           `json:"amount"`
	Category     string          `json:"category"`
	Description  string          `json:"description,omitempty"`
	Date         time.Time       `json:"date"`
	WalletID     string          `json:"walletId"`
	FromWalletID string          `json:"fromWalletId,omitempty"`
	ToWalletID   string          `json:"toWalletId,omitempty"`
}

// TransactionDraft holds form input before validation. Only a valid draft is
// promoted to a Transaction; nothing is persisted from a rejected draft.
type TransactionDraft struct {
	Kind        TransactionKind `json:"type" binding:"required"`
	Amount      int64           `json:"amount" binding:"required"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Date        string          `json:"date"` // optional ISO 8601, defaults to now
	WalletID    string          `json:"walletId"`
}

// Validate checks the draft. Transfers never come through a draft; they have
// their own explicit flow.
func (d TransactionDraft) Validate() error {
	if d.Kind != TxIncome && d.Kind != TxExpense {
		return fmt.Errorf("type must be income or expense")
	}
	if d.Amount <= 0 {
		return fmt.Errorf("amount must be greater than zero")
	}
	if strings.TrimSpace(d.Category) == "" {
		return fmt.Errorf("category is required")
	}
	if strings.TrimSpace(d.WalletID) == "" {
		return fmt.Errorf("walletId is required")
	}
	return nil
}

// Package ledger derives wallet balances and report aggregates from the
// transaction list. Balances are never stored: the fold here is the only
// legitimate write path, rerun in full on every mutation.
package ledger

import "aureus/models"

// WalletBalance folds the full transaction set into one wallet's balance.
// Order is irrelevant. For transfers only the source and destination ids
// matter; the nominal owning wallet id contributes nothing even when it
// happens to match.
func WalletBalance(walletID string, txs []models.Transaction) int64 {
	var balance int64
	for _, t := range txs {
		switch t.Kind {
		case models.TxIncome:
			if t.WalletID == walletID {
				balance += t.Amount
			}
		case models.TxExpense:
			if t.WalletID == walletID {
				balance -= t.Amount
			}
		case models.TxTransfer:
			if t.FromWalletID == walletID {
				balance -= t.Amount
			} else if t.ToWalletID == walletID {
				balance += t.Amount
			}
		}
	}
	return balance
}

// TotalBalance sums the derived balances of all wallets. Transfers cancel
// pairwise, so the total moves only with income and expense.
func TotalBalance(wallets []models.Wallet, txs []models.Transaction) int64 {
	var total int64
	for _, w := range wallets {
		total += WalletBalance(w.ID, txs)
	}
	return total
}

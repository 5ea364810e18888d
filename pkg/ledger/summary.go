package ledger

import (
	"sort"
	"time"

	"aureus/models"
)

// Summary aggregates one month (or all time) of income/expense activity.
// Transfers move money between wallets and are excluded from the totals.
type Summary struct {
	Income       int64                `json:"income"`
	Expense      int64                `json:"expense"`
	Net          int64                `json:"net"`
	Count        int                  `json:"count"`
	Transactions []models.Transaction `json:"transactions"`
}

// FilterMonth returns the transactions dated within the given month and year.
func FilterMonth(txs []models.Transaction, month time.Month, year int) []models.Transaction {
	var out []models.Transaction
	for _, t := range txs {
		if t.Date.Month() == month && t.Date.Year() == year {
			out = append(out, t)
		}
	}
	return out
}

// MonthlySummary computes the report projection for a month/year.
func MonthlySummary(txs []models.Transaction, month time.Month, year int) Summary {
	return Summarize(FilterMonth(txs, month, year))
}

// Summarize totals an arbitrary transaction slice.
func Summarize(txs []models.Transaction) Summary {
	s := Summary{Transactions: txs, Count: len(txs)}
	for _, t := range txs {
		switch t.Kind {
		case models.TxIncome:
			s.Income += t.Amount
		case models.TxExpense:
			s.Expense += t.Amount
		}
	}
	s.Net = s.Income - s.Expense
	return s
}

// Years lists the distinct years present in the transaction set, newest
// first; an empty set yields the reference year so pickers have something to
// show.
func Years(txs []models.Transaction, ref time.Time) []int {
	seen := map[int]bool{}
	var out []int
	for _, t := range txs {
		y := t.Date.Year()
		if !seen[y] {
			seen[y] = true
			out = append(out, y)
		}
	}
	if len(out) == 0 {
		return []int{ref.Year()}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(out)))
	return out
}

package ledger

import (
	"time"

	"aureus/models"
)

// BudgetStatus is one budget with its derived consumption for the month.
type BudgetStatus struct {
	Budget     models.Budget `json:"budget"`
	Spent      int64         `json:"spent"`
	Remaining  int64         `json:"remaining"`
	Percentage float64       `json:"percentage"`
}

// SpentByCategory totals a month's expense transactions per category.
// Income and transfers contribute nothing.
func SpentByCategory(txs []models.Transaction, month time.Month, year int) map[string]int64 {
	out := map[string]int64{}
	for _, t := range FilterMonth(txs, month, year) {
		if t.Kind == models.TxExpense {
			out[t.Category] += t.Amount
		}
	}
	return out
}

// BudgetStatuses derives spent/remaining/percentage for every budget set in
// the given month. Budgets for other months are ignored; a spend over the
// cap yields a negative remaining and a percentage above 100.
func BudgetStatuses(budgets []models.Budget, txs []models.Transaction, month time.Month, year int) []BudgetStatus {
	spent := SpentByCategory(txs, month, year)
	var out []BudgetStatus
	for _, b := range budgets {
		if b.Month != int(month) || b.Year != year {
			continue
		}
		s := spent[b.Category]
		st := BudgetStatus{
			Budget:    b,
			Spent:     s,
			Remaining: b.Amount - s,
		}
		if b.Amount > 0 {
			st.Percentage = float64(s) / float64(b.Amount) * 100
		}
		out = append(out, st)
	}
	return out
}

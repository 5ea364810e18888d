package models

// Budget caps planned spending for one expense category in one calendar
// month. Spent/remaining are derived against that month's expense
// transactions, never stored.
type Budget struct {
	ID       string `json:"id"`
	Category string `json:"category"`
	Amount   int64  `json:"amount"`
	Month    int    `json:"month"` // 1-12
	Year     int    `json:"year"`
}

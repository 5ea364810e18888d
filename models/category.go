package models

import "time"

// Category is a direction-scoped label. Transactions reference categories by
// name, not id, so renaming or deleting a category never touches existing
// transaction rows.
type Category struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Kind      TransactionKind `json:"type"` // income or expense only
	Color     string          `json:"color"`
	Icon      string          `json:"icon"`
	IsCustom  bool            `json:"isCustom"`
	CreatedAt time.Time       `json:"createdAt"`
}

package models

// BackupVersion tags exported snapshots. There is no migration logic beyond
// the tag itself.
const BackupVersion = "1.0.0"

// BackupData is the full-state snapshot used for export and restore.
// Subscriptions and budgets are deliberately not part of the backup format;
// it mirrors what the export file has always contained.
type BackupData struct {
	Version      string        `json:"version"`
	Timestamp    string        `json:"timestamp"`
	Wallets      []Wallet      `json:"wallets"`
	Transactions []Transaction `json:"transactions"`
	Categories   []Category    `json:"categories"`
}

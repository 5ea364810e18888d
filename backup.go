package main

import (
	"encoding/json"
	"fmt"

	"aureus/models"
)

// backupKeys are the top-level fields a backup file must carry to be
// accepted. Extra fields are ignored.
var backupKeys = []string{"version", "timestamp", "wallets", "transactions", "categories"}

// DecodeBackup validates raw backup JSON by shape and decodes it. The check
// is deliberately presence-only so files produced by newer versions with
// extra fields still import.
func DecodeBackup(raw []byte) (models.BackupData, error) {
	var shape map[string]json.RawMessage
	if err := json.Unmarshal(raw, &shape); err != nil {
		return models.BackupData{}, fmt.Errorf("invalid backup file: %w", err)
	}
	for _, k := range backupKeys {
		if _, ok := shape[k]; !ok {
			return models.BackupData{}, fmt.Errorf("invalid backup file: missing %q", k)
		}
	}
	var b models.BackupData
	if err := json.Unmarshal(raw, &b); err != nil {
		return models.BackupData{}, fmt.Errorf("invalid backup file: %w", err)
	}
	return b, nil
}

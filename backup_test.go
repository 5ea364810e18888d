package main

import (
	"encoding/json"
	"testing"

	"aureus/models"
)

func TestDecodeBackupShapeValidation(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"not json", `{{{`},
		{"not an object", `[1,2,3]`},
		{"missing version", `{"timestamp":"t","wallets":[],"transactions":[],"categories":[]}`},
		{"missing timestamp", `{"version":"1.0.0","wallets":[],"transactions":[],"categories":[]}`},
		{"missing wallets", `{"version":"1.0.0","timestamp":"t","transactions":[],"categories":[]}`},
		{"missing transactions", `{"version":"1.0.0","timestamp":"t","wallets":[],"categories":[]}`},
		{"missing categories", `{"version":"1.0.0","timestamp":"t","wallets":[],"transactions":[]}`},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, err := DecodeBackup([]byte(c.raw)); err == nil {
				t.Errorf("DecodeBackup accepted %s", c.raw)
			}
		})
	}
}

func TestDecodeBackupIgnoresExtras(t *testing.T) {
	raw := `{"version":"1.0.0","timestamp":"2024-05-15T00:00:00Z","wallets":[],"transactions":[],"categories":[],"futureField":42}`
	if _, err := DecodeBackup([]byte(raw)); err != nil {
		t.Errorf("extra field rejected: %v", err)
	}
}

func TestBackupRestoreRoundTrip(t *testing.T) {
	reg := testRegistry(t, newMemKV())
	wallet := reg.Snapshot().Wallets[0]
	if _, err := reg.AddFromDraft(models.TransactionDraft{
		Kind: models.TxIncome, Amount: 500_000, Category: "Gaji",
		Description: "Gaji bulan ini", WalletID: wallet.ID,
	}); err != nil {
		t.Fatal(err)
	}
	if _, err := reg.AddCategory("Mancing", models.TxExpense, "#111", "🎣"); err != nil {
		t.Fatal(err)
	}

	exported := reg.Backup()
	if exported.Version != models.BackupVersion {
		t.Errorf("version = %q", exported.Version)
	}
	raw, err := json.Marshal(exported)
	if err != nil {
		t.Fatal(err)
	}

	decoded, err := DecodeBackup(raw)
	if err != nil {
		t.Fatal(err)
	}
	fresh := testRegistry(t, newMemKV())
	if err := fresh.Restore(decoded); err != nil {
		t.Fatal(err)
	}

	got := fresh.Backup()
	for _, pair := range []struct {
		name     string
		got, out any
	}{
		{"wallets", got.Wallets, exported.Wallets},
		{"transactions", got.Transactions, exported.Transactions},
		{"categories", got.Categories, exported.Categories},
	} {
		gb, _ := json.Marshal(pair.got)
		wb, _ := json.Marshal(pair.out)
		if string(gb) != string(wb) {
			t.Errorf("%s differ after round trip\n got %s\nwant %s", pair.name, gb, wb)
		}
	}

	// derived balances recomputed from imported transactions
	st := fresh.Snapshot()
	if st.Wallets[0].Balance != 500_000 {
		t.Errorf("restored balance = %d, want 500000", st.Wallets[0].Balance)
	}
	if st.SelectedWalletID != st.Wallets[0].ID {
		t.Errorf("selection after restore = %q", st.SelectedWalletID)
	}
}

package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"aureus/models"
	"aureus/store"
)

func newDraft(amount int64, walletID, date string) models.TransactionDraft {
	return models.TransactionDraft{
		Kind: models.TxExpense, Amount: amount, Category: "Lainnya",
		Date: date, WalletID: walletID,
	}
}

func testServer(t *testing.T, passphrase string) (*gin.Engine, *Server) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	kv, err := store.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	cfg := Config{JWTSecret: "test-secret", Passphrase: passphrase, CatchupPolicy: CatchupSingle}
	reg := NewRegistry(kv, cfg.CatchupPolicy)
	if err := reg.Load(); err != nil {
		t.Fatal(err)
	}
	lock, err := NewLock(cfg.Passphrase, cfg.JWTSecret)
	if err != nil {
		t.Fatal(err)
	}
	srv := NewServer(reg, lock, cfg)
	srv.now = func() time.Time { return time.Date(2024, 5, 15, 10, 0, 0, 0, time.UTC) }
	r := gin.New()
	srv.setupRoutes(r)
	return r, srv
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, dst any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), dst); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
}

func TestStateEndpoint(t *testing.T) {
	r, _ := testServer(t, "")
	w := doJSON(t, r, http.MethodGet, "/state", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", w.Code, w.Body.String())
	}
	var st State
	decode(t, w, &st)
	if len(st.Wallets) != 1 || st.Wallets[0].Name != "Tunai" {
		t.Errorf("state wallets = %+v", st.Wallets)
	}
}

func TestVoiceTransactionFlow(t *testing.T) {
	r, srv := testServer(t, "")

	// dry-run parse mutates nothing
	w := doJSON(t, r, http.MethodPost, "/parse", gin.H{"text": "beli kopi susu 25rb kemarin"})
	if w.Code != http.StatusOK {
		t.Fatalf("parse status = %d body=%s", w.Code, w.Body.String())
	}
	var cand struct {
		Type     string `json:"type"`
		Amount   int64  `json:"amount"`
		Category string `json:"category"`
		Date     string `json:"date"`
	}
	decode(t, w, &cand)
	if cand.Type != "expense" || cand.Amount != 25000 || cand.Category != "Makanan & Minuman" {
		t.Errorf("candidate = %+v", cand)
	}
	if cand.Date != "2024-05-14" {
		t.Errorf("date = %q, want yesterday", cand.Date)
	}
	if n := len(srv.reg.Transactions()); n != 0 {
		t.Fatalf("parse persisted %d transactions", n)
	}

	// confirmed voice input persists
	w = doJSON(t, r, http.MethodPost, "/transactions/voice", gin.H{"text": "beli kopi susu 25rb kemarin"})
	if w.Code != http.StatusCreated {
		t.Fatalf("voice status = %d body=%s", w.Code, w.Body.String())
	}
	txs := srv.reg.Transactions()
	if len(txs) != 1 || txs[0].Amount != 25000 || txs[0].WalletID == "" {
		t.Errorf("transactions = %+v", txs)
	}
}

func TestParseFailureIs422(t *testing.T) {
	r, _ := testServer(t, "")
	w := doJSON(t, r, http.MethodPost, "/parse", gin.H{"text": "beli sesuatu"})
	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", w.Code)
	}
	w = doJSON(t, r, http.MethodPost, "/transactions/voice", gin.H{"text": "beli sesuatu"})
	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("voice status = %d, want 422", w.Code)
	}
}

func TestDestructiveOpsNeedConfirmation(t *testing.T) {
	r, srv := testServer(t, "")
	wallet := srv.reg.Snapshot().Wallets[0]

	w := doJSON(t, r, http.MethodDelete, "/wallets/"+wallet.ID, nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("unconfirmed delete status = %d, want 400", w.Code)
	}
	if len(srv.reg.Snapshot().Wallets) != 1 {
		t.Fatal("unconfirmed delete removed the wallet")
	}

	w = doJSON(t, r, http.MethodDelete, "/wallets/"+wallet.ID+"?confirm=true", nil)
	if w.Code != http.StatusOK {
		t.Errorf("confirmed delete status = %d body=%s", w.Code, w.Body.String())
	}
	if len(srv.reg.Snapshot().Wallets) != 0 {
		t.Error("confirmed delete kept the wallet")
	}
}

func TestWalletLifecycle(t *testing.T) {
	r, srv := testServer(t, "")
	w := doJSON(t, r, http.MethodPost, "/wallets", gin.H{"name": "BCA", "type": "bank", "bankName": "BCA"})
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d body=%s", w.Code, w.Body.String())
	}
	var created struct {
		ID string `json:"id"`
	}
	decode(t, w, &created)

	w = doJSON(t, r, http.MethodPost, "/wallets/"+created.ID+"/select", nil)
	if w.Code != http.StatusOK {
		t.Errorf("select status = %d", w.Code)
	}
	if srv.reg.SelectedWalletID() != created.ID {
		t.Error("selection did not move")
	}

	w = doJSON(t, r, http.MethodPost, "/wallets", gin.H{"name": "X", "type": "crypto"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("invalid kind status = %d, want 400", w.Code)
	}
}

func TestUnlockGate(t *testing.T) {
	r, _ := testServer(t, "rahasia")

	w := doJSON(t, r, http.MethodGet, "/state", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("locked state status = %d, want 401", w.Code)
	}

	w = doJSON(t, r, http.MethodPost, "/unlock", gin.H{"passphrase": "salah"})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("wrong passphrase status = %d, want 401", w.Code)
	}

	w = doJSON(t, r, http.MethodPost, "/unlock", gin.H{"passphrase": "rahasia"})
	if w.Code != http.StatusOK {
		t.Fatalf("unlock status = %d body=%s", w.Code, w.Body.String())
	}
	var resp struct {
		Token string `json:"token"`
	}
	decode(t, w, &resp)
	if resp.Token == "" {
		t.Fatal("empty token")
	}

	req := httptest.NewRequest(http.MethodGet, "/state", nil)
	req.Header.Set("Authorization", "Bearer "+resp.Token)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("authorized state status = %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestMonthlyReportEndpoint(t *testing.T) {
	r, srv := testServer(t, "")
	wallet := srv.reg.Snapshot().Wallets[0]
	if _, err := srv.reg.AddFromDraft(newDraft(50_000, wallet.ID, "2024-05-02")); err != nil {
		t.Fatal(err)
	}
	if _, err := srv.reg.AddFromDraft(newDraft(10_000, wallet.ID, "2024-04-02")); err != nil {
		t.Fatal(err)
	}

	w := doJSON(t, r, http.MethodGet, "/reports/monthly?month=5&year=2024", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("json report status = %d", w.Code)
	}
	var resp struct {
		Summary struct {
			Expense int64 `json:"expense"`
			Count   int   `json:"count"`
		} `json:"summary"`
	}
	decode(t, w, &resp)
	if resp.Summary.Expense != 50_000 || resp.Summary.Count != 1 {
		t.Errorf("summary = %+v", resp.Summary)
	}

	w = doJSON(t, r, http.MethodGet, "/reports/monthly?month=5&year=2024&format=csv", nil)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "Total Pengeluaran") {
		t.Errorf("csv status = %d body=%s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodGet, "/reports/monthly?month=5&year=2024&format=html", nil)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "Laporan Bulanan Mei 2024") {
		t.Errorf("html status = %d", w.Code)
	}

	w = doJSON(t, r, http.MethodGet, "/reports/monthly?month=13", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("bad month status = %d, want 400", w.Code)
	}
}

func TestRestoreEndpoint(t *testing.T) {
	r, srv := testServer(t, "")
	backup := srv.reg.Backup()
	raw, _ := json.Marshal(backup)

	req := httptest.NewRequest(http.MethodPost, "/restore", bytes.NewReader(raw))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("unconfirmed restore status = %d, want 400", w.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/restore?confirm=true", bytes.NewReader(raw))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("restore status = %d body=%s", w.Code, w.Body.String())
	}

	req = httptest.NewRequest(http.MethodPost, "/restore?confirm=true", strings.NewReader(`{"wallets":[]}`))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("malformed restore status = %d, want 400", w.Code)
	}
}

func TestBudgetEndpoints(t *testing.T) {
	r, srv := testServer(t, "")
	srv.reg.now = srv.now
	wallet := srv.reg.Snapshot().Wallets[0]
	if _, err := srv.reg.AddFromDraft(models.TransactionDraft{
		Kind: models.TxExpense, Amount: 60_000, Category: "Makanan",
		Date: "2024-05-10", WalletID: wallet.ID,
	}); err != nil {
		t.Fatal(err)
	}

	w := doJSON(t, r, http.MethodPost, "/budgets", gin.H{"category": "Makanan", "amount": 200_000})
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d body=%s", w.Code, w.Body.String())
	}
	var created models.Budget
	decode(t, w, &created)
	// month and year default to the current period
	if created.Month != 5 || created.Year != 2024 {
		t.Errorf("budget period = %d/%d, want 5/2024", created.Month, created.Year)
	}

	w = doJSON(t, r, http.MethodPost, "/budgets", gin.H{"category": "Makanan", "amount": 999_000})
	if w.Code != http.StatusBadRequest {
		t.Errorf("duplicate create status = %d, want 400", w.Code)
	}

	w = doJSON(t, r, http.MethodGet, "/budgets", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list status = %d body=%s", w.Code, w.Body.String())
	}
	var list struct {
		Budgets []struct {
			Budget     models.Budget `json:"budget"`
			Spent      int64         `json:"spent"`
			Remaining  int64         `json:"remaining"`
			Percentage float64       `json:"percentage"`
		} `json:"budgets"`
		TotalBudget int64 `json:"totalBudget"`
		TotalSpent  int64 `json:"totalSpent"`
		Remaining   int64 `json:"remaining"`
	}
	decode(t, w, &list)
	if len(list.Budgets) != 1 {
		t.Fatalf("budgets = %+v, want 1", list.Budgets)
	}
	if list.Budgets[0].Spent != 60_000 || list.Budgets[0].Remaining != 140_000 {
		t.Errorf("status = %+v", list.Budgets[0])
	}
	if list.Budgets[0].Percentage != 30 {
		t.Errorf("percentage = %v, want 30", list.Budgets[0].Percentage)
	}
	if list.TotalBudget != 200_000 || list.TotalSpent != 60_000 || list.Remaining != 140_000 {
		t.Errorf("totals = %d/%d/%d", list.TotalBudget, list.TotalSpent, list.Remaining)
	}

	// an empty month reports no budgets
	w = doJSON(t, r, http.MethodGet, "/budgets?month=6&year=2024", nil)
	decode(t, w, &list)
	if len(list.Budgets) != 0 || list.TotalBudget != 0 {
		t.Errorf("June budgets = %+v", list)
	}

	w = doJSON(t, r, http.MethodDelete, "/budgets/"+created.ID, nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("unconfirmed delete status = %d, want 400", w.Code)
	}
	w = doJSON(t, r, http.MethodDelete, "/budgets/"+created.ID+"?confirm=true", nil)
	if w.Code != http.StatusNoContent {
		t.Errorf("delete status = %d body=%s", w.Code, w.Body.String())
	}
	if got := len(srv.reg.Snapshot().Budgets); got != 0 {
		t.Errorf("budgets after delete = %d, want 0", got)
	}
}

func TestCreateSubscriptionSettlesOverdue(t *testing.T) {
	r, srv := testServer(t, "")
	srv.reg.now = srv.now

	// already one cycle past due at creation, not paid up front
	w := doJSON(t, r, http.MethodPost, "/subscriptions", gin.H{
		"name": "Netflix", "amount": 54_000, "cycleDays": 30,
		"startDate": "2024-04-10", "payNow": false,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d body=%s", w.Code, w.Body.String())
	}
	var resp struct {
		Renewed int `json:"renewed"`
	}
	decode(t, w, &resp)
	if resp.Renewed == 0 {
		t.Fatal("overdue subscription not charged on create")
	}
	txs := srv.reg.Transactions()
	if len(txs) == 0 {
		t.Fatal("no renewal transaction recorded")
	}
	if txs[0].Description != "Perpanjangan: Netflix" {
		t.Errorf("description = %q", txs[0].Description)
	}
	if txs[0].Category != models.SubscriptionCategory {
		t.Errorf("category = %q", txs[0].Category)
	}
}

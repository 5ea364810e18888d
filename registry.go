package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"aureus/models"
	"aureus/pkg/ledger"
	"aureus/pkg/logger"
	"aureus/pkg/parse"
	"aureus/store"
)

// Registry is the in-memory application state over an injected snapshot
// store. The store is read once at startup; every mutation recomputes all
// wallet balances from the transaction list and rewrites the affected lists
// wholesale. The mutex exists because gin serves handlers concurrently even
// though the logical model is single-user.
type Registry struct {
	mu     sync.Mutex
	kv     store.KV
	now    func() time.Time
	policy CatchupPolicy

	wallets       []models.Wallet
	transactions  []models.Transaction
	categories    []models.Category
	subscriptions []models.Subscription
	budgets       []models.Budget
	selectedID    string
}

// State is the full snapshot handed to the UI.
type State struct {
	Wallets          []models.Wallet       `json:"wallets"`
	Transactions     []models.Transaction  `json:"transactions"`
	Categories       []models.Category     `json:"categories"`
	Subscriptions    []models.Subscription `json:"subscriptions"`
	Budgets          []models.Budget       `json:"budgets"`
	SelectedWalletID string                `json:"selectedWalletId"`
	TotalBalance     int64                 `json:"totalBalance"`
}

func NewRegistry(kv store.KV, policy CatchupPolicy) *Registry {
	return &Registry{kv: kv, now: time.Now, policy: policy}
}

// Load reads every list from the store. A missing key or malformed JSON is
// treated as "no saved data": that list falls back to its built-in default
// instead of aborting startup.
func (r *Registry) Load() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now()

	loadList(r.kv, store.KeyWallets, &r.wallets)
	if r.wallets == nil {
		r.wallets = defaultWallets(now)
	}
	loadList(r.kv, store.KeyTransactions, &r.transactions)
	if r.transactions == nil {
		r.transactions = []models.Transaction{}
	}
	loadList(r.kv, store.KeyCategories, &r.categories)
	if r.categories == nil {
		r.categories = defaultCategories(now)
	}
	loadList(r.kv, store.KeySubscriptions, &r.subscriptions)
	if r.subscriptions == nil {
		r.subscriptions = []models.Subscription{}
	}
	loadList(r.kv, store.KeyBudgets, &r.budgets)
	if r.budgets == nil {
		r.budgets = []models.Budget{}
	}

	if raw, ok, err := r.kv.Get(store.KeySelectedWallet); err == nil && ok {
		r.selectedID = strings.TrimSpace(raw)
	}
	if !r.walletExists(r.selectedID) {
		r.selectedID = ""
		if len(r.wallets) > 0 {
			r.selectedID = r.wallets[0].ID
		}
	}

	r.recalc()
	return r.save()
}

func loadList[T any](kv store.KV, key string, dst *[]T) {
	raw, ok, err := kv.Get(key)
	if err != nil {
		logger.Warn("store read failed", zap.String("key", key), zap.Error(err))
		return
	}
	if !ok {
		return
	}
	var list []T
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		logger.Warn("corrupted snapshot, using defaults", zap.String("key", key), zap.Error(err))
		return
	}
	*dst = list
}

// recalc rewrites every wallet's derived balance from scratch. Callers hold
// the lock.
func (r *Registry) recalc() {
	for i := range r.wallets {
		r.wallets[i].Balance = ledger.WalletBalance(r.wallets[i].ID, r.transactions)
	}
}

// save rewrites every list. Callers hold the lock.
func (r *Registry) save() error {
	sets := []struct {
		key string
		v   any
	}{
		{store.KeyWallets, r.wallets},
		{store.KeyTransactions, r.transactions},
		{store.KeyCategories, r.categories},
		{store.KeySubscriptions, r.subscriptions},
		{store.KeyBudgets, r.budgets},
	}
	for _, s := range sets {
		b, err := json.Marshal(s.v)
		if err != nil {
			return fmt.Errorf("marshal %s: %w", s.key, err)
		}
		if err := r.kv.Set(s.key, string(b)); err != nil {
			return err
		}
	}
	return r.kv.Set(store.KeySelectedWallet, r.selectedID)
}

func (r *Registry) walletExists(id string) bool {
	for _, w := range r.wallets {
		if w.ID == id {
			return true
		}
	}
	return false
}

func (r *Registry) Snapshot() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return State{
		Wallets:          append([]models.Wallet(nil), r.wallets...),
		Transactions:     append([]models.Transaction(nil), r.transactions...),
		Categories:       append([]models.Category(nil), r.categories...),
		Subscriptions:    append([]models.Subscription(nil), r.subscriptions...),
		Budgets:          append([]models.Budget(nil), r.budgets...),
		SelectedWalletID: r.selectedID,
		TotalBalance:     ledger.TotalBalance(r.wallets, r.transactions),
	}
}

// AddWallet creates an account bucket. Balance starts derived (zero until
// transactions reference it).
func (r *Registry) AddWallet(name string, kind models.WalletKind, bankName, color, icon string) (models.Wallet, error) {
	if strings.TrimSpace(name) == "" {
		return models.Wallet{}, fmt.Errorf("wallet name is required")
	}
	if !models.ValidWalletKind(kind) {
		return models.Wallet{}, fmt.Errorf("unknown wallet type %q", kind)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	w := models.Wallet{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(name),
		Kind:      kind,
		BankName:  bankName,
		Currency:  "IDR",
		Color:     color,
		Icon:      icon,
		CreatedAt: r.now(),
	}
	r.wallets = append(r.wallets, w)
	if r.selectedID == "" {
		r.selectedID = w.ID
	}
	return w, r.save()
}

// DeleteWallet removes the wallet. If it was the active one, selection falls
// back to another existing wallet or empty. Its transactions stay; the
// balance they produced simply has no wallet to land on anymore.
func (r *Registry) DeleteWallet(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	idx := -1
	for i, w := range r.wallets {
		if w.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("wallet not found")
	}
	r.wallets = append(r.wallets[:idx], r.wallets[idx+1:]...)
	if r.selectedID == id {
		r.selectedID = ""
		if len(r.wallets) > 0 {
			r.selectedID = r.wallets[0].ID
		}
	}
	r.recalc()
	return r.save()
}

func (r *Registry) SelectWallet(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.walletExists(id) {
		return fmt.Errorf("wallet not found")
	}
	r.selectedID = id
	return r.save()
}

// AddFromDraft validates and promotes a manual entry. The persisted date
// keeps the draft's date portion but the wall-clock time of entry.
func (r *Registry) AddFromDraft(d models.TransactionDraft) (models.Transaction, error) {
	if err := d.Validate(); err != nil {
		return models.Transaction{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.walletExists(d.WalletID) {
		return models.Transaction{}, fmt.Errorf("wallet not found")
	}
	now := r.now()
	date := now
	if d.Date != "" {
		parsed, err := time.Parse(time.RFC3339, d.Date)
		if err != nil {
			parsed, err = time.Parse("2006-01-02", d.Date)
		}
		if err != nil {
			return models.Transaction{}, fmt.Errorf("invalid date %q", d.Date)
		}
		date = atClock(parsed, now)
	}
	t := models.Transaction{
		ID:          uuid.NewString(),
		Kind:        d.Kind,
		Amount:      d.Amount,
		Category:    d.Category,
		Description: d.Description,
		Date:        date,
		WalletID:    d.WalletID,
	}
	r.transactions = append([]models.Transaction{t}, r.transactions...)
	r.recalc()
	return t, r.save()
}

// AddFromCandidate persists a confirmed parser candidate against a wallet.
func (r *Registry) AddFromCandidate(c parse.Candidate, walletID string) (models.Transaction, error) {
	d := models.TransactionDraft{
		Kind:        c.Kind,
		Amount:      c.Amount,
		Category:    c.Category,
		Description: c.Description,
		Date:        c.Date.Format("2006-01-02"),
		WalletID:    walletID,
	}
	return r.AddFromDraft(d)
}

// AddTransfer records a movement between two distinct wallets. The owning
// wallet id of a transfer is its source.
func (r *Registry) AddTransfer(fromID, toID string, amount int64, description string) (models.Transaction, error) {
	if amount <= 0 {
		return models.Transaction{}, fmt.Errorf("amount must be greater than zero")
	}
	if fromID == toID {
		return models.Transaction{}, fmt.Errorf("source and destination wallets must differ")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.walletExists(fromID) || !r.walletExists(toID) {
		return models.Transaction{}, fmt.Errorf("wallet not found")
	}
	if description == "" {
		description = "Pemindahan dana antar akun"
	}
	t := models.Transaction{
		ID:           uuid.NewString(),
		Kind:         models.TxTransfer,
		Amount:       amount,
		Category:     "Pemindahan Dana Antar Akun",
		Description:  description,
		Date:         r.now(),
		WalletID:     fromID,
		FromWalletID: fromID,
		ToWalletID:   toID,
	}
	r.transactions = append([]models.Transaction{t}, r.transactions...)
	r.recalc()
	return t, r.save()
}

func (r *Registry) DeleteTransaction(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	idx := -1
	for i, t := range r.transactions {
		if t.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("transaction not found")
	}
	r.transactions = append(r.transactions[:idx], r.transactions[idx+1:]...)
	r.recalc()
	return r.save()
}

// AddCategory enforces case-insensitive name uniqueness within a direction.
func (r *Registry) AddCategory(name string, kind models.TransactionKind, color, icon string) (models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Category{}, fmt.Errorf("category name is required")
	}
	if kind != models.TxIncome && kind != models.TxExpense {
		return models.Category{}, fmt.Errorf("category type must be income or expense")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.categories {
		if c.Kind == kind && strings.EqualFold(c.Name, name) {
			return models.Category{}, fmt.Errorf("category %q already exists", name)
		}
	}
	c := models.Category{
		ID:        uuid.NewString(),
		Name:      name,
		Kind:      kind,
		Color:     color,
		Icon:      icon,
		IsCustom:  true,
		CreatedAt: r.now(),
	}
	r.categories = append(r.categories, c)
	return c, r.save()
}

// DeleteCategory removes a custom category. Seeded defaults stay; existing
// transactions keep their category text either way.
func (r *Registry) DeleteCategory(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, c := range r.categories {
		if c.ID == id {
			if !c.IsCustom {
				return fmt.Errorf("default categories cannot be deleted")
			}
			r.categories = append(r.categories[:i], r.categories[i+1:]...)
			return r.save()
		}
	}
	return fmt.Errorf("category not found")
}

// Backup snapshots the backup-format subset of state.
func (r *Registry) Backup() models.BackupData {
	r.mu.Lock()
	defer r.mu.Unlock()
	return models.BackupData{
		Version:      models.BackupVersion,
		Timestamp:    r.now().Format(time.RFC3339),
		Wallets:      append([]models.Wallet(nil), r.wallets...),
		Transactions: append([]models.Transaction(nil), r.transactions...),
		Categories:   append([]models.Category(nil), r.categories...),
	}
}

// Restore replaces wallets, transactions, and categories with the imported
// snapshot, all or nothing. Subscriptions are not part of the backup format
// and stay untouched.
func (r *Registry) Restore(b models.BackupData) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.wallets = b.Wallets
	r.transactions = b.Transactions
	r.categories = b.Categories
	if !r.walletExists(r.selectedID) {
		r.selectedID = ""
		if len(r.wallets) > 0 {
			r.selectedID = r.wallets[0].ID
		}
	}
	r.recalc()
	return r.save()
}

// Transactions returns a copy of the transaction list.
func (r *Registry) Transactions() []models.Transaction {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.Transaction(nil), r.transactions...)
}

// SelectedWalletID returns the active wallet id, or empty when none exists.
func (r *Registry) SelectedWalletID() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.selectedID
}

// atClock combines d's date portion with ref's wall-clock time.
func atClock(d, ref time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(),
		ref.Hour(), ref.Minute(), ref.Second(), ref.Nanosecond(), ref.Location())
}

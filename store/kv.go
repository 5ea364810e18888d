// Package store provides the durable key-value snapshot store behind the
// application state. Each list (wallets, transactions, categories,
// subscriptions, budgets) is serialized as one JSON string under its own
// key, read
// once at startup and rewritten wholesale after every mutation. There is a
// single writer, so no locking happens here.
package store

// Keys under which the application state lives.
const (
	KeyWallets        = "wallets"
	KeyTransactions   = "transactions"
	KeyCategories     = "categories"
	KeySubscriptions  = "subscriptions"
	KeyBudgets        = "budgets"
	KeySelectedWallet = "selected_wallet"
)

// KV is the minimal durable store contract: get a string by key (with a
// found flag) and set a string by key.
type KV interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
}

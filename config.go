package main

import (
	"os"

	"github.com/joho/godotenv"
)

// CatchupPolicy decides how subscription renewals behave when the app was
// closed across one or more due dates.
type CatchupPolicy string

const (
	// CatchupSingle records one renewal per check; a subscription missed for
	// N cycles catches up one cycle per app load.
	CatchupSingle CatchupPolicy = "single"
	// CatchupBackfill records one renewal per missed cycle until current.
	CatchupBackfill CatchupPolicy = "backfill"
)

// Config is the process configuration, loaded from the environment with an
// optional .env file.
type Config struct {
	Port          string
	DataDir       string
	DBDSN         string // optional: Postgres kv snapshot backend
	Passphrase    string // optional: lock the API behind /unlock
	JWTSecret     string
	CatchupPolicy CatchupPolicy
	ReceiptInbox  string // optional: watched directory for receipt images
	LogLevel      string
}

// LoadConfig reads .env (if present) then the environment. Existing env vars
// are never overwritten by the file.
func LoadConfig() Config {
	_ = godotenv.Load()

	policy := CatchupPolicy(getEnv("CATCHUP_POLICY", string(CatchupSingle)))
	if policy != CatchupSingle && policy != CatchupBackfill {
		policy = CatchupSingle
	}

	return Config{
		Port:          getEnv("PORT", "8081"),
		DataDir:       getEnv("DATA_DIR", "data"),
		DBDSN:         os.Getenv("DB_DSN"),
		Passphrase:    os.Getenv("APP_PASSPHRASE"),
		JWTSecret:     getEnv("JWT_SECRET", "dev-insecure-secret-change"),
		CatchupPolicy: policy,
		ReceiptInbox:  os.Getenv("RECEIPT_INBOX"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

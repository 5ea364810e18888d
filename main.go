package main

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"aureus/pkg/logger"
	"aureus/store"
)

func main() {
	cfg := LoadConfig()
	if err := logger.Init(cfg.LogLevel); err != nil {
		panic(err)
	}
	defer logger.Sync()

	kv, err := openStore(cfg)
	if err != nil {
		logger.Fatal("opening snapshot store failed", zap.Error(err))
	}

	reg := NewRegistry(kv, cfg.CatchupPolicy)
	if err := reg.Load(); err != nil {
		logger.Fatal("loading state failed", zap.Error(err))
	}

	// settle overdue subscriptions before serving anything
	if created := reg.RenewDue(); len(created) > 0 {
		logger.Info("startup renewal check", zap.Int("charged", len(created)))
	}

	lock, err := NewLock(cfg.Passphrase, cfg.JWTSecret)
	if err != nil {
		logger.Fatal("configuring lock failed", zap.Error(err))
	}

	if cfg.ReceiptInbox != "" {
		watcher := NewInboxWatcher(reg, cfg.ReceiptInbox, 0)
		go func() {
			if err := watcher.Run(context.Background()); err != nil && err != context.Canceled {
				logger.Error("receipt inbox watcher stopped", zap.Error(err))
			}
		}()
	}

	r := gin.Default()
	NewServer(reg, lock, cfg).setupRoutes(r)

	logger.Info("listening", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}

// openStore picks the snapshot backend: Postgres when DB_DSN is set, local
// files otherwise.
func openStore(cfg Config) (store.KV, error) {
	if cfg.DBDSN != "" {
		return store.NewDBStore(cfg.DBDSN)
	}
	return store.NewFileStore(cfg.DataDir)
}

package main

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"aureus/pkg/logger"
	"aureus/pkg/ocr"
)

// InboxWatcher ingests receipt images dropped into a directory. Each stable
// new file is OCRed and, when an amount is found, recorded as an expense on
// the selected wallet. Processed files move to <dir>/processed so restarts
// do not double-ingest.
type InboxWatcher struct {
	reg     *Registry
	dir     string
	workers int
}

func NewInboxWatcher(reg *Registry, dir string, workers int) *InboxWatcher {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &InboxWatcher{reg: reg, dir: dir, workers: workers}
}

// Run scans the inbox once, then watches until ctx is cancelled. Create
// events are debounced so half-written files are not picked up.
func (iw *InboxWatcher) Run(ctx context.Context) error {
	if err := os.MkdirAll(iw.dir, 0o755); err != nil {
		return err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()
	if err := w.Add(iw.dir); err != nil {
		return err
	}
	logger.Info("watching receipt inbox", zap.String("dir", iw.dir), zap.Int("workers", iw.workers))

	fileCh := make(chan string, 256)
	var wg sync.WaitGroup
	for i := 0; i < iw.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for name := range fileCh {
				iw.ingest(name)
			}
		}()
	}

	for _, name := range iw.listImages() {
		fileCh <- name
	}

	pending := map[string]time.Time{}
	ticker := time.NewTicker(250 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			close(fileCh)
			wg.Wait()
			return ctx.Err()
		case ev, ok := <-w.Events:
			if !ok {
				close(fileCh)
				wg.Wait()
				return nil
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write) != 0 {
				name := filepath.Base(ev.Name)
				if isImageFile(name) {
					pending[name] = time.Now()
				}
			}
		case <-ticker.C:
			now := time.Now()
			for name, t := range pending {
				if now.Sub(t) > 300*time.Millisecond { // stable
					fileCh <- name
					delete(pending, name)
				}
			}
		case err, ok := <-w.Errors:
			if !ok {
				close(fileCh)
				wg.Wait()
				return nil
			}
			logger.Warn("inbox watch error", zap.Error(err))
		}
	}
}

func (iw *InboxWatcher) listImages() []string {
	entries, err := os.ReadDir(iw.dir)
	if err != nil {
		return nil
	}
	var out []string
	for _, e := range entries {
		if !e.IsDir() && isImageFile(e.Name()) {
			out = append(out, e.Name())
		}
	}
	sort.Strings(out)
	return out
}

func (iw *InboxWatcher) ingest(name string) {
	path := filepath.Join(iw.dir, name)
	cand, err := ocr.ParseReceipt(path, time.Now())
	if err != nil {
		logger.Warn("receipt skipped", zap.String("file", name), zap.Error(err))
		return
	}
	t, err := iw.reg.AddFromCandidate(cand, iw.reg.SelectedWalletID())
	if err != nil {
		logger.Error("receipt ingest failed", zap.String("file", name), zap.Error(err))
		return
	}
	logger.Info("receipt ingested",
		zap.String("file", name),
		zap.Int64("amount", t.Amount),
		zap.String("category", t.Category))
	if err := iw.moveProcessed(path, name); err != nil {
		logger.Warn("could not move processed receipt", zap.String("file", name), zap.Error(err))
	}
}

func (iw *InboxWatcher) moveProcessed(src, name string) error {
	dir := filepath.Join(iw.dir, "processed")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	dst := filepath.Join(dir, name)
	if err := os.Rename(src, dst); err == nil {
		return nil
	}
	return copyRemove(src, dst)
}

func copyRemove(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		_ = os.Remove(dst)
		return err
	}
	_ = out.Close()
	return os.Remove(src)
}

func isImageFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".png", ".jpg", ".jpeg", ".gif", ".webp":
		return true
	}
	return false
}

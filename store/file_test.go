package store

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileStoreRoundTrip(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if _, ok, err := s.Get(KeyWallets); err != nil || ok {
		t.Fatalf("missing key: ok=%v err=%v, want not found", ok, err)
	}
	if err := s.Set(KeyWallets, `[{"id":"w1"}]`); err != nil {
		t.Fatal(err)
	}
	v, ok, err := s.Get(KeyWallets)
	if err != nil || !ok {
		t.Fatalf("get after set: ok=%v err=%v", ok, err)
	}
	if v != `[{"id":"w1"}]` {
		t.Errorf("value = %q", v)
	}
}

func TestFileStoreOverwrite(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Set("k", "one"); err != nil {
		t.Fatal(err)
	}
	if err := s.Set("k", "two"); err != nil {
		t.Fatal(err)
	}
	v, _, _ := s.Get("k")
	if v != "two" {
		t.Errorf("value = %q, want two", v)
	}
	// no temp files left behind
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if filepath.Ext(e.Name()) == ".tmp" {
			t.Errorf("leftover temp file %s", e.Name())
		}
	}
}

func TestFileStoreCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	if _, err := NewFileStore(dir); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("data dir not created: %v", err)
	}
}

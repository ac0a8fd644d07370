package cliconfig

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/openroberta/oraclient/pkg/log"
)

func TestWatcher_ReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("debug = false\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	reloaded := make(chan FileConfig, 4)
	w, err := NewWatcher(path, log.NewNoopLogger(), func(fc FileConfig) { reloaded <- fc })
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	if err := os.WriteFile(filepath.Join(dir, "other.toml"), []byte("debug = true\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("debug = true\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case fc := <-reloaded:
		if fc.Debug == nil || !*fc.Debug {
			t.Errorf("reloaded Debug = %v, want true", fc.Debug)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("config was not reloaded")
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run() did not return after cancel")
	}
}

func TestNewWatcher_MissingDirectory(t *testing.T) {
	_, err := NewWatcher("/nonexistent/dir/config.toml", log.NewNoopLogger(), func(FileConfig) {})
	if err == nil {
		t.Error("NewWatcher() expected error for missing directory")
	}
}

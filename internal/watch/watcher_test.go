package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

func TestWatcherFiresOnChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "targets.csv")
	if err := os.WriteFile(path, []byte("ra,dec\n1,2\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	var fires atomic.Int32
	w := New(path, 20*time.Millisecond, nil, func() { fires.Add(1) })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	// Let the watcher install before mutating the file.
	time.Sleep(100 * time.Millisecond)
	if err := os.WriteFile(path, []byte("ra,dec\n3,4\n"), 0o644); err != nil {
		t.Fatalf("rewrite: %v", err)
	}

	deadline := time.After(3 * time.Second)
	for fires.Load() == 0 {
		select {
		case <-deadline:
			t.Fatal("watcher never fired after file change")
		case <-time.After(10 * time.Millisecond):
		}
	}

	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Errorf("Run returned %v, want context.Canceled", err)
	}
}

func TestWatcherIgnoresSiblingFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "targets.csv")
	if err := os.WriteFile(path, []byte("ra,dec\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	var fires atomic.Int32
	w := New(path, 20*time.Millisecond, nil, func() { fires.Add(1) })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	time.Sleep(100 * time.Millisecond)
	if err := os.WriteFile(filepath.Join(dir, "other.csv"), []byte("x\n"), 0o644); err != nil {
		t.Fatalf("write sibling: %v", err)
	}

	time.Sleep(200 * time.Millisecond)
	if fires.Load() != 0 {
		t.Errorf("fires = %d after sibling change, want 0", fires.Load())
	}
}

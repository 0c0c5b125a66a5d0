package batch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWaitForSettleStableFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stable.pdf")
	if err := os.WriteFile(path, []byte("finished content"), 0o644); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := waitForSettle(ctx, path); err != nil {
		t.Errorf("waitForSettle on stable file: %v", err)
	}
}

func TestWaitForSettleMissingFile(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := waitForSettle(ctx, filepath.Join(t.TempDir(), "never-appears.pdf"))
	if err == nil {
		t.Error("waitForSettle on missing file: err = nil")
	}
}

func TestWatcherDrainsInFlight(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.pdf")
	if err := os.WriteFile(path, []byte("not a real pdf"), 0o644); err != nil {
		t.Fatal(err)
	}

	w := NewWatcher(testRunner(1), t.TempDir())
	w.handle(context.Background(), path)

	// Wait must not return until the spawned processing goroutine finished
	// and cleared its in-flight marker.
	w.wg.Wait()

	w.mu.Lock()
	defer w.mu.Unlock()
	if len(w.inFlight) != 0 {
		t.Errorf("inFlight = %v, want empty after drain", w.inFlight)
	}
}

func TestWatcherDedupesInFlight(t *testing.T) {
	w := NewWatcher(testRunner(1), t.TempDir())

	w.mu.Lock()
	w.inFlight["busy.pdf"] = true
	w.mu.Unlock()

	// A second event for an in-flight file must be dropped without spawning
	// another goroutine; handle returns immediately.
	w.handle(context.Background(), "busy.pdf")

	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.inFlight["busy.pdf"] {
		t.Error("in-flight marker cleared by duplicate event")
	}
}

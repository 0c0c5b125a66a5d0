package batch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/fsnotify/fsnotify"

	"github.com/docsift/docsift/output"
)

// Watcher processes PDF files as they appear in an input directory. Files
// already present when the watch starts are processed first, then filesystem
// events drive the rest. Each document still runs through the same isolated
// pipeline the batch runner uses.
type Watcher struct {
	runner *Runner
	outDir string

	mu       sync.Mutex
	inFlight map[string]bool
	wg       sync.WaitGroup
}

// NewWatcher creates a watcher that writes results into outDir.
func NewWatcher(runner *Runner, outDir string) *Watcher {
	return &Watcher{
		runner:   runner,
		outDir:   outDir,
		inFlight: make(map[string]bool),
	}
}

// Watch blocks, processing inputDir until the context is cancelled.
func (w *Watcher) Watch(ctx context.Context, inputDir string) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fw.Close()
	// Documents already handed to a goroutine run to completion before
	// Watch returns.
	defer w.wg.Wait()

	if err := fw.Add(inputDir); err != nil {
		return fmt.Errorf("watch %s: %w", inputDir, err)
	}

	// Catch up on files that predate the watch.
	existing, err := DiscoverPDFs(inputDir)
	if err != nil {
		return err
	}
	w.runner.Run(ctx, existing, w.outDir)

	w.runner.logger.Info("watching for documents", "dir", inputDir)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			if !strings.EqualFold(filepath.Ext(ev.Name), ".pdf") {
				continue
			}
			w.handle(ctx, ev.Name)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.runner.logger.Warn("watch error", "error", err)
		}
	}
}

// handle processes one observed file in its own goroutine, deduplicating
// events for files already in flight.
func (w *Watcher) handle(ctx context.Context, path string) {
	w.mu.Lock()
	if w.inFlight[path] {
		w.mu.Unlock()
		return
	}
	w.inFlight[path] = true
	w.mu.Unlock()

	w.wg.Add(1)
	go func() {
		defer func() {
			w.mu.Lock()
			delete(w.inFlight, path)
			w.mu.Unlock()
			w.wg.Done()
		}()

		if err := waitForSettle(ctx, path); err != nil {
			w.runner.logger.Warn("file never settled", "file", path, "error", err)
			return
		}
		w.runner.Process(path, output.OutputPath(w.outDir, path))
	}()
}

// waitForSettle waits until the file's size stops changing between polls.
// Create/Write events fire while the producer is still writing; processing a
// half-written PDF would fail validation for no good reason.
func waitForSettle(ctx context.Context, path string) error {
	var lastSize int64 = -1
	return retry.Do(
		func() error {
			info, err := os.Stat(path)
			if err != nil {
				return err
			}
			if info.Size() != lastSize || info.Size() == 0 {
				lastSize = info.Size()
				return fmt.Errorf("still growing: %d bytes", info.Size())
			}
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(10),
		retry.Delay(200*time.Millisecond),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
	)
}

// Package batch discovers documents and runs the analysis pipeline across
// them with bounded parallel workers. Each document's analysis is fully
// independent: workers share nothing, and one document's failure never
// cancels or blocks its siblings.
package batch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/docsift/docsift/analyze"
	"github.com/docsift/docsift/decode"
	"github.com/docsift/docsift/output"
)

// Runner coordinates parallel document processing.
type Runner struct {
	decoder  *decode.Decoder
	analyzer *analyze.Analyzer
	logger   *slog.Logger
	workers  int
}

// RunnerConfig configures a Runner.
type RunnerConfig struct {
	// Engine is the analysis configuration applied to every document.
	Engine analyze.Config

	// Workers caps the worker count. Zero means automatic:
	// min(available cores, 8, document count).
	Workers int

	// Validate runs pdfcpu validation before parsing each file.
	Validate bool

	// Logger receives progress and warning logs; nil uses slog.Default().
	Logger *slog.Logger
}

// NewRunner creates a runner from the given configuration.
func NewRunner(cfg RunnerConfig) *Runner {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		decoder: decode.NewDecoder(
			decode.WithLogger(logger),
			decode.WithValidation(cfg.Validate),
		),
		analyzer: analyze.NewAnalyzerWithConfig(cfg.Engine),
		logger:   logger,
		workers:  cfg.Workers,
	}
}

// DocumentResult records the outcome of one document's pipeline run. Err is
// set when decoding or writing failed; an analysis that merely found no
// structure is not an error and is reported through Result.Empty().
type DocumentResult struct {
	JobID      string
	InputPath  string
	OutputPath string
	Result     *analyze.Result
	Err        error
	Duration   time.Duration
}

// DiscoverPDFs lists the PDF files directly inside dir, sorted by name.
func DiscoverPDFs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read input directory: %w", err)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(e.Name()), ".pdf") {
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(paths)
	return paths, nil
}

// Run processes every given input file, writing each result as JSON into
// outDir, and returns per-document results in input order. The context
// cancels scheduling of not-yet-started documents; documents already in
// flight run to completion.
func (r *Runner) Run(ctx context.Context, inputs []string, outDir string) []DocumentResult {
	results := make([]DocumentResult, len(inputs))
	if len(inputs) == 0 {
		return results
	}

	workers := r.workerCount(len(inputs))
	r.logger.Info("starting batch", "documents", len(inputs), "workers", workers)
	start := time.Now()

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = r.Process(inputs[i], output.OutputPath(outDir, inputs[i]))
			}
		}()
	}

	for i := range inputs {
		select {
		case <-ctx.Done():
			// Documents from i onward were never handed to a worker.
			for j := i; j < len(inputs); j++ {
				results[j] = DocumentResult{InputPath: inputs[j], Err: ctx.Err()}
			}
			close(jobs)
			wg.Wait()
			return results
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	r.logger.Info("batch complete",
		"documents", len(inputs),
		"elapsed", time.Since(start).Round(time.Millisecond),
		"failed", countFailed(results))
	return results
}

// Process runs the full pipeline for a single document: decode, analyze,
// write. Every run gets a job ID so its log lines can be correlated.
func (r *Runner) Process(inputPath, outputPath string) (res DocumentResult) {
	res = DocumentResult{
		JobID:      uuid.New().String(),
		InputPath:  inputPath,
		OutputPath: outputPath,
	}
	log := r.logger.With("job", res.JobID, "file", filepath.Base(inputPath))
	start := time.Now()
	defer func() {
		// rsc.io/pdf can panic on malformed cross-reference tables before
		// per-page recovery gets a chance; contain it to this document.
		if p := recover(); p != nil {
			res.Err = fmt.Errorf("decode panic: %v", p)
		}
		res.Duration = time.Since(start)
		if res.Err != nil {
			log.Error("document failed", "error", res.Err)
		}
	}()

	log.Debug("processing document")

	fragments, err := r.decoder.DecodeFile(inputPath)
	if err != nil {
		res.Err = err
		return res
	}

	res.Result = r.analyzer.Analyze(fragments)
	if res.Result.Empty() {
		log.Info("document produced zero outline entries")
	}

	if err := output.WriteFile(outputPath, res.Result); err != nil {
		res.Err = err
		return res
	}

	log.Info("document complete",
		"headings", len(res.Result.Outline),
		"elapsed", time.Since(start).Round(time.Millisecond))
	return res
}

// workerCount resolves the effective parallelism for n documents.
func (r *Runner) workerCount(n int) int {
	workers := r.workers
	if workers <= 0 {
		workers = runtime.NumCPU()
		if workers > 8 {
			workers = 8
		}
	}
	if workers > n {
		workers = n
	}
	if workers < 1 {
		workers = 1
	}
	return workers
}

func countFailed(results []DocumentResult) int {
	n := 0
	for i := range results {
		if results[i].Err != nil {
			n++
		}
	}
	return n
}

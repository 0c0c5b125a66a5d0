package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/docsift/docsift/batch"
)

var (
	inputDir  string
	outputDir string
	workers   int
)

var extractCmd = &cobra.Command{
	Use:   "extract [file...]",
	Short: "Extract outlines from PDFs and write JSON results",
	Long: `Extract processes the given PDF files, or every PDF in the input
directory when no files are named, and writes one JSON outline per document
into the output directory. Documents are processed in parallel; a document
that fails to decode is reported and skipped without affecting the rest.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		inputs := args
		if len(inputs) == 0 {
			var err error
			inputs, err = batch.DiscoverPDFs(resolveInputDir())
			if err != nil {
				return err
			}
		}
		if len(inputs) == 0 {
			return fmt.Errorf("no PDF files to process")
		}

		runner := batch.NewRunner(batch.RunnerConfig{
			Engine:   cfg.Engine(),
			Workers:  resolveWorkers(),
			Validate: cfg.Validate,
			Logger:   slog.Default(),
		})

		results := runner.Run(cmd.Context(), inputs, resolveOutputDir())

		failed := 0
		for _, res := range results {
			if res.Err != nil {
				failed++
			}
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d documents failed", failed, len(results))
		}
		return nil
	},
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Process PDFs continuously as they appear in the input directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		runner := batch.NewRunner(batch.RunnerConfig{
			Engine:   cfg.Engine(),
			Workers:  resolveWorkers(),
			Validate: cfg.Validate,
			Logger:   slog.Default(),
		})
		watcher := batch.NewWatcher(runner, resolveOutputDir())
		return watcher.Watch(cmd.Context(), resolveInputDir())
	},
}

func init() {
	for _, c := range []*cobra.Command{extractCmd, watchCmd} {
		c.Flags().StringVarP(&inputDir, "input", "i", "", "input directory (overrides config)")
		c.Flags().StringVarP(&outputDir, "output", "o", "", "output directory (overrides config)")
		c.Flags().IntVarP(&workers, "workers", "w", 0, "worker count (0 = auto)")
	}
}

func resolveInputDir() string {
	if inputDir != "" {
		return inputDir
	}
	return cfg.InputDir
}

func resolveOutputDir() string {
	if outputDir != "" {
		return outputDir
	}
	return cfg.OutputDir
}

func resolveWorkers() int {
	if workers > 0 {
		return workers
	}
	return cfg.Workers
}

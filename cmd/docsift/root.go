package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/docsift/docsift/config"
	"github.com/docsift/docsift/version"
)

var (
	cfgFile string
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "docsift",
	Short: "Infer document outlines from PDF files",
	Long: `Docsift infers the hierarchical outline of PDF documents (title and
H1/H2/H3 headings) from positioned text fragments and their font styling.

No per-language configuration is involved: numbering conventions, bold-font
keywords, and content vocabulary are learned fresh from each document, so the
same binary handles Latin, CJK, RTL, and Indic documents alike. Each document
is written as a JSON file containing its title and outline.`,
	Version:       version.Full(),
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./config.yaml or ~/.docsift/config.yaml)",
	)

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return err
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: cfg.SlogLevel(),
		})))
		return nil
	}

	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(versionCmd)
}

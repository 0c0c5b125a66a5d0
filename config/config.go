// Package config loads docsift configuration from defaults, an optional YAML
// file, and DOCSIFT_-prefixed environment variables, in increasing order of
// precedence.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/viper"

	"github.com/docsift/docsift/analyze"
)

// Config holds everything tunable about a docsift run. The engine's scoring
// weights are intentionally absent: they are fixed constants of the engine,
// and only the candidate threshold and size rounding are exposed.
type Config struct {
	// InputDir is scanned for PDF documents.
	InputDir string `mapstructure:"input_dir"`

	// OutputDir receives one JSON file per processed document.
	OutputDir string `mapstructure:"output_dir"`

	// Workers caps batch parallelism; 0 means min(cores, 8, documents).
	Workers int `mapstructure:"workers"`

	// Validate runs pdfcpu validation before parsing each document.
	Validate bool `mapstructure:"validate"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `mapstructure:"log_level"`

	// MinScore is the heading-candidate threshold.
	MinScore float64 `mapstructure:"min_score"`

	// SizeGranularity is the font-size rounding granularity in points.
	SizeGranularity float64 `mapstructure:"size_granularity"`
}

// Default returns the built-in configuration.
func Default() *Config {
	engine := analyze.DefaultConfig()
	return &Config{
		InputDir:        "input",
		OutputDir:       "output",
		Workers:         0,
		Validate:        true,
		LogLevel:        "info",
		MinScore:        engine.MinScore,
		SizeGranularity: engine.SizeGranularity,
	}
}

// Load reads configuration. cfgFile may be empty, in which case config.yaml
// is looked up in the working directory and ~/.docsift; a missing file is not
// an error.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	def := Default()
	v.SetDefault("input_dir", def.InputDir)
	v.SetDefault("output_dir", def.OutputDir)
	v.SetDefault("workers", def.Workers)
	v.SetDefault("validate", def.Validate)
	v.SetDefault("log_level", def.LogLevel)
	v.SetDefault("min_score", def.MinScore)
	v.SetDefault("size_granularity", def.SizeGranularity)

	v.SetEnvPrefix("DOCSIFT")
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.docsift")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}

// Engine returns the analysis-engine view of the configuration.
func (c *Config) Engine() analyze.Config {
	return analyze.Config{
		MinScore:        c.MinScore,
		SizeGranularity: c.SizeGranularity,
	}
}

// SlogLevel parses LogLevel, defaulting to info for unknown values.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

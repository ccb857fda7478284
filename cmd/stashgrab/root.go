package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/vmunix/stashgrab/internal/config"
	"github.com/vmunix/stashgrab/pkg/stash"
)

var version = "dev"

var (
	configPath string
	jsonOutput bool
)

var rootCmd = &cobra.Command{
	Use:   "stashgrab",
	Short: "Import third-party media into Stash",
	Long: `stashgrab - scrape and import third-party media into Stash

Scrapes metadata from a URL through a chain of extraction strategies,
matches performers, tags, and studio against the catalog, then imports
the file and creates or updates the record.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file path")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	rootCmd.Version = version
	rootCmd.SetVersionTemplate("stashgrab {{.Version}}\n")
}

// loadConfig resolves, loads, and validates the configuration.
func loadConfig() (*config.Config, error) {
	path := configPath
	if path == "" {
		var err error
		path, err = config.Discover()
		if err != nil {
			return nil, fmt.Errorf("%w (run 'stashgrab init' to create one)", err)
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, &config.ConfigError{Path: path, Errors: errs}
	}
	return cfg, nil
}

// newLogger builds the root slog logger from config.
func newLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	switch cfg.Log.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// newCatalog builds the Stash client from config.
func newCatalog(cfg *config.Config, log *slog.Logger) *stash.Client {
	opts := []stash.Option{stash.WithLogger(log)}
	if cfg.Stash.APIKey != "" {
		opts = append(opts, stash.WithAPIKey(cfg.Stash.APIKey))
	}
	return stash.New(cfg.Stash.URL, opts...)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

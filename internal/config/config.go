// Package config handles TOML configuration loading with environment variable substitution.
package config

import (
	"fmt"
	"os"
	"regexp"
	"time"

	"github.com/BurntSushi/toml"
)

// Config is the root configuration structure.
type Config struct {
	Stash    StashConfig    `toml:"stash"`
	Scrape   ScrapeConfig   `toml:"scrape"`
	Import   ImportConfig   `toml:"import"`
	Database DatabaseConfig `toml:"database"`
	Log      LogConfig      `toml:"log"`
}

// StashConfig points at the remote catalog.
type StashConfig struct {
	URL    string `toml:"url"`
	APIKey string `toml:"api_key"`
}

// ScrapeConfig tunes the extraction chain.
type ScrapeConfig struct {
	// Environment is "unrestricted" or "sandboxed". Sandboxed skips
	// strategies that fetch source sites from this process.
	Environment string `toml:"environment"`

	// Timeout bounds a whole fallback chain run.
	Timeout duration `toml:"timeout"`

	// CacheTTL bounds reuse of cached scrape results. Zero disables the
	// cache.
	CacheTTL duration `toml:"cache_ttl"`

	// PluginID names the catalog-side downloader plugin.
	PluginID string `toml:"plugin_id"`
}

// ImportConfig tunes the import orchestrator.
type ImportConfig struct {
	// HotlinkHosts keep the page URL primary during acquisition.
	HotlinkHosts []string `toml:"hotlink_hosts"`

	// OutputDir is the library directory server-side downloads land in.
	OutputDir string `toml:"output_dir"`

	// ScanWait bounds the wait on the catalog scan job.
	ScanWait duration `toml:"scan_wait"`

	// LocateRetries bounds the search for a scanned record by path.
	LocateRetries int `toml:"locate_retries"`
}

// DatabaseConfig locates the local SQLite state (scrape cache, history,
// event log).
type DatabaseConfig struct {
	Path string `toml:"path"`
}

// LogConfig controls slog output.
type LogConfig struct {
	Level string `toml:"level"`
}

// duration wraps time.Duration for TOML strings like "90s".
type duration time.Duration

func (d *duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = duration(parsed)
	return nil
}

func (d duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Duration returns the underlying time.Duration.
func (d duration) Duration() time.Duration { return time.Duration(d) }

// Load reads and parses the configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	// Substitute environment variables
	content := substituteEnvVars(string(data))

	var cfg Config
	if _, err := toml.Decode(content, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	// Apply defaults
	if cfg.Scrape.Environment == "" {
		cfg.Scrape.Environment = "unrestricted"
	}
	if cfg.Scrape.Timeout == 0 {
		cfg.Scrape.Timeout = duration(90 * time.Second)
	}
	if cfg.Scrape.PluginID == "" {
		cfg.Scrape.PluginID = "stash-downloader"
	}
	if cfg.Import.ScanWait == 0 {
		cfg.Import.ScanWait = duration(2 * time.Minute)
	}
	if cfg.Import.LocateRetries == 0 {
		cfg.Import.LocateRetries = 10
	}
	if cfg.Database.Path == "" {
		cfg.Database.Path = "./data/stashgrab.db"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}

	return &cfg, nil
}

// substituteEnvVars replaces ${VAR_NAME} with environment variable values.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

func substituteEnvVars(content string) string {
	return envVarPattern.ReplaceAllStringFunc(content, func(match string) string {
		varName := match[2 : len(match)-1] // Strip ${ and }
		if value, ok := os.LookupEnv(varName); ok {
			return value
		}
		return match // Leave unchanged if not found
	})
}

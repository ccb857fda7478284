package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/vmunix/stashgrab/internal/config"
	"github.com/vmunix/stashgrab/internal/remotejob"
	"github.com/vmunix/stashgrab/internal/scrape"
	"github.com/vmunix/stashgrab/pkg/stash"
	_ "modernc.org/sqlite"
)

// openDatabase opens the local SQLite state file, creating its directory
// when needed.
func openDatabase(cfg *config.Config) (*sql.DB, error) {
	dir := filepath.Dir(cfg.Database.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}
	db, err := sql.Open("sqlite", cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	return db, nil
}

// checkCatalog verifies the Stash server is reachable before any work
// is queued against it.
func checkCatalog(ctx context.Context, catalog *stash.Client, log *slog.Logger) error {
	version, err := catalog.Version(ctx)
	if err != nil {
		return fmt.Errorf("cannot reach stash: %w", err)
	}
	log.Debug("connected to stash", "version", version)
	return nil
}

// validateOutputDir checks that a server-side download destination sits
// inside one of the catalog's configured libraries. Files placed outside
// a library are never picked up by a scan. Empty inputs skip the check.
func validateOutputDir(dir string, libraries []string) error {
	if dir == "" || len(libraries) == 0 {
		return nil
	}
	cleaned := filepath.Clean(dir)
	for _, lib := range libraries {
		lib = filepath.Clean(lib)
		if cleaned == lib || strings.HasPrefix(cleaned, lib+string(filepath.Separator)) {
			return nil
		}
	}
	return fmt.Errorf("output_dir %s is outside the catalog's libraries (%s)",
		dir, strings.Join(libraries, ", "))
}

// newRegistry wires the extraction chain from config.
func newRegistry(ctx context.Context, cfg *config.Config, catalog *stash.Client, db *sql.DB, log *slog.Logger) (*scrape.Registry, error) {
	env := scrape.EnvUnrestricted
	if cfg.Scrape.Environment == "sandboxed" {
		env = scrape.EnvSandboxed
	}

	var cache *scrape.Cache
	if db != nil && cfg.Scrape.CacheTTL.Duration() > 0 {
		cache = scrape.NewCache(db, cfg.Scrape.CacheTTL.Duration())
		if err := cache.Init(ctx); err != nil {
			return nil, fmt.Errorf("initializing scrape cache: %w", err)
		}
		if err := cache.Prune(ctx); err != nil {
			log.Warn("failed to prune scrape cache", "error", err)
		}
	}

	strategies := scrape.DefaultStrategies(env, catalog, remotejob.RealClock(), cfg.Scrape.PluginID, log)
	return scrape.NewRegistry(strategies, cache, cfg.Scrape.Timeout.Duration(), log), nil
}

// parseContentType maps the --type flag to a content type hint.
func parseContentType(flag string) (scrape.ContentType, error) {
	switch flag {
	case "":
		return "", nil
	case "video":
		return scrape.ContentTypeVideo, nil
	case "image":
		return scrape.ContentTypeImage, nil
	case "gallery":
		return scrape.ContentTypeGallery, nil
	}
	return "", fmt.Errorf("invalid --type %q: must be video, image, or gallery", flag)
}

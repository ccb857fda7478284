package scrape

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// defaultCacheTTL keeps scraped pages fresh enough while sparing the
// source hosts repeat fetches during an editing session.
const defaultCacheTTL = 6 * time.Hour

// Cache is a SQLite-backed TTL cache for successful scrape results.
type Cache struct {
	db  *sql.DB
	ttl time.Duration
}

// NewCache creates a scrape cache on db. A zero ttl uses the default.
func NewCache(db *sql.DB, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &Cache{db: db, ttl: ttl}
}

// Init creates the cache table if it does not exist.
func (c *Cache) Init(ctx context.Context) error {
	_, err := c.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS scrape_cache (
			key        TEXT PRIMARY KEY,
			value      TEXT NOT NULL,
			expires_at TIMESTAMP NOT NULL
		)`)
	if err != nil {
		return fmt.Errorf("init scrape cache: %w", err)
	}
	return nil
}

// Get returns the cached metadata for key, or nil, false on miss or
// expiry.
func (c *Cache) Get(ctx context.Context, key string) (*Metadata, bool) {
	var value string
	var expiresAt time.Time

	err := c.db.QueryRowContext(ctx,
		"SELECT value, expires_at FROM scrape_cache WHERE key = ?", key,
	).Scan(&value, &expiresAt)
	if err != nil || time.Now().After(expiresAt) {
		return nil, false
	}

	var md Metadata
	if err := json.Unmarshal([]byte(value), &md); err != nil {
		return nil, false
	}
	return &md, true
}

// Set stores md under key.
func (c *Cache) Set(ctx context.Context, key string, md *Metadata) error {
	value, err := json.Marshal(md)
	if err != nil {
		return fmt.Errorf("marshal metadata: %w", err)
	}

	_, err = c.db.ExecContext(ctx, `
		INSERT INTO scrape_cache (key, value, expires_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, expires_at = excluded.expires_at`,
		key, string(value), time.Now().Add(c.ttl),
	)
	if err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Prune removes expired rows.
func (c *Cache) Prune(ctx context.Context) error {
	_, err := c.db.ExecContext(ctx,
		"DELETE FROM scrape_cache WHERE expires_at < ?", time.Now())
	if err != nil {
		return fmt.Errorf("cache prune: %w", err)
	}
	return nil
}

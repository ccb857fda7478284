package scrape

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupCache(t *testing.T, ttl time.Duration) *Cache {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	c := NewCache(db, ttl)
	require.NoError(t, c.Init(context.Background()))
	return c
}

func TestCache_RoundTrip(t *testing.T) {
	c := setupCache(t, time.Hour)
	ctx := context.Background()

	md := &Metadata{
		Title:       "Cached Clip",
		Performers:  []string{"Jane"},
		ContentType: ContentTypeVideo,
	}
	require.NoError(t, c.Set(ctx, "https://example.com/v/1|", md))

	got, ok := c.Get(ctx, "https://example.com/v/1|")
	require.True(t, ok)
	assert.Equal(t, md.Title, got.Title)
	assert.Equal(t, md.Performers, got.Performers)
	assert.Equal(t, md.ContentType, got.ContentType)
}

func TestCache_Miss(t *testing.T) {
	c := setupCache(t, time.Hour)

	_, ok := c.Get(context.Background(), "nope")
	assert.False(t, ok)
}

func TestCache_Expiry(t *testing.T) {
	c := setupCache(t, -time.Second) // NewCache replaces non-positive ttl
	c.ttl = -time.Second             // force already-expired writes

	ctx := context.Background()
	require.NoError(t, c.Set(ctx, "k", &Metadata{Title: "stale"}))

	_, ok := c.Get(ctx, "k")
	assert.False(t, ok, "expired entries must not be served")

	require.NoError(t, c.Prune(ctx))
}

func TestCache_Overwrite(t *testing.T) {
	c := setupCache(t, time.Hour)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", &Metadata{Title: "first"}))
	require.NoError(t, c.Set(ctx, "k", &Metadata{Title: "second"}))

	got, ok := c.Get(ctx, "k")
	require.True(t, ok)
	assert.Equal(t, "second", got.Title)
}

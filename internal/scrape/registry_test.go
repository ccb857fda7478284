package scrape

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// stubStrategy is a scriptable strategy for registry tests.
type stubStrategy struct {
	name    string
	handles bool
	types   ContentTypeSet
	md      *Metadata
	err     error
	delay   time.Duration
	calls   atomic.Int32
}

func (s *stubStrategy) Name() string                 { return s.name }
func (s *stubStrategy) CanHandle(rawURL string) bool { return s.handles }
func (s *stubStrategy) ContentTypes() ContentTypeSet {
	if s.types == nil {
		return Types(ContentTypeVideo, ContentTypeImage, ContentTypeGallery)
	}
	return s.types
}

func (s *stubStrategy) Scrape(ctx context.Context, rawURL string) (*Metadata, error) {
	s.calls.Add(1)
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if s.err != nil {
		return nil, s.err
	}
	return s.md, nil
}

func newTestRegistry(strategies ...Strategy) *Registry {
	return NewRegistry(strategies, nil, time.Minute, testLogger())
}

func TestScrape_FirstStrategyWins(t *testing.T) {
	a := &stubStrategy{name: "a", handles: true, md: &Metadata{Title: "from a", ContentType: ContentTypeVideo}}
	b := &stubStrategy{name: "b", handles: true, md: &Metadata{Title: "from b", ContentType: ContentTypeVideo}}
	r := newTestRegistry(a, b)

	md, err := r.Scrape(context.Background(), "https://example.com/v/1", "")
	require.NoError(t, err)
	assert.Equal(t, "from a", md.Title)
	assert.Equal(t, int32(0), b.calls.Load(), "lower-priority strategy must not run")
}

func TestScrape_FailureFallsThroughInOrder(t *testing.T) {
	a := &stubStrategy{name: "a", handles: true, err: errors.New("boom")}
	b := &stubStrategy{name: "b", handles: true, md: &Metadata{Title: "from b", ContentType: ContentTypeVideo}}
	r := newTestRegistry(a, b)

	md, err := r.Scrape(context.Background(), "https://example.com/v/1", "")
	require.NoError(t, err)

	// The result must equal what b alone would have returned.
	assert.Equal(t, "from b", md.Title)
	assert.Equal(t, int32(1), a.calls.Load())
	assert.Equal(t, int32(1), b.calls.Load(), "each strategy is tried once, never retried")
}

func TestScrape_SkipsNonHandlingStrategies(t *testing.T) {
	a := &stubStrategy{name: "a", handles: false, md: &Metadata{Title: "from a"}}
	b := &stubStrategy{name: "b", handles: true, md: &Metadata{Title: "from b", ContentType: ContentTypeVideo}}
	r := newTestRegistry(a, b)

	md, err := r.Scrape(context.Background(), "https://example.com/v/1", "")
	require.NoError(t, err)
	assert.Equal(t, "from b", md.Title)
	assert.Equal(t, int32(0), a.calls.Load())
}

func TestScrape_ContentTypePreferenceFilters(t *testing.T) {
	videoOnly := &stubStrategy{name: "video-only", handles: true, types: Types(ContentTypeVideo),
		md: &Metadata{Title: "video", ContentType: ContentTypeVideo}}
	all := &stubStrategy{name: "all", handles: true,
		md: &Metadata{Title: "all", ContentType: ContentTypeImage}}
	r := newTestRegistry(videoOnly, all)

	md, err := r.Scrape(context.Background(), "https://example.com/p/1", ContentTypeImage)
	require.NoError(t, err)
	assert.Equal(t, "all", md.Title)
	assert.Equal(t, int32(0), videoOnly.calls.Load(), "strategy without the preferred type is filtered out")
}

func TestScrape_AllFail_UniversalFallback(t *testing.T) {
	a := &stubStrategy{name: "a", handles: true, err: errors.New("nope")}
	b := &stubStrategy{name: "b", handles: true, err: ErrNoSignal}
	r := newTestRegistry(a, b)

	md, err := r.Scrape(context.Background(), "https://example.com/videos/late-night_drive.mp4", "")
	require.NoError(t, err, "registry must not fail while the fallback can run")
	assert.Equal(t, "Late Night Drive", md.Title)
	assert.Equal(t, ContentTypeVideo, md.ContentType)
	assert.Equal(t, "url-fallback", md.Scraper)
}

func TestScrape_NoStrategies_FallbackOnly(t *testing.T) {
	r := newTestRegistry()

	md, err := r.Scrape(context.Background(), "https://example.com/items/cool-thing.jpg", "")
	require.NoError(t, err)
	assert.Equal(t, "Cool Thing", md.Title)
	assert.Equal(t, ContentTypeImage, md.ContentType)
}

func TestScrape_InvalidURL(t *testing.T) {
	r := newTestRegistry()

	_, err := r.Scrape(context.Background(), "http://exa mple.com/%zz", "")
	assert.ErrorIs(t, err, ErrInvalidURL)
}

func TestScrape_DeadlineAbandonsMidFlightStrategy(t *testing.T) {
	slow := &stubStrategy{name: "slow", handles: true, delay: time.Second,
		md: &Metadata{Title: "late", ContentType: ContentTypeVideo}}
	r := NewRegistry([]Strategy{slow}, nil, 20*time.Millisecond, testLogger())

	start := time.Now()
	_, err := r.Scrape(context.Background(), "https://example.com/v/1", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDeadline)
	assert.Less(t, time.Since(start), 500*time.Millisecond, "must not await the slow strategy")
}

func TestScrapeWithScraper_Forced(t *testing.T) {
	a := &stubStrategy{name: "a", handles: true, md: &Metadata{Title: "from a"}}
	b := &stubStrategy{name: "b", handles: true, err: errors.New("b always fails")}
	r := newTestRegistry(a, b)

	// Forcing b surfaces b's raw failure; a is never substituted.
	_, err := r.ScrapeWithScraper(context.Background(), "https://example.com/v/1", "b")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "b always fails")
	assert.Equal(t, int32(0), a.calls.Load())

	md, err := r.ScrapeWithScraper(context.Background(), "https://example.com/v/1", "a")
	require.NoError(t, err)
	assert.Equal(t, "from a", md.Title)
}

func TestScrapeWithScraper_FallbackByName(t *testing.T) {
	r := newTestRegistry()

	md, err := r.ScrapeWithScraper(context.Background(), "https://example.com/v/some-clip.mp4", "url-fallback")
	require.NoError(t, err)
	assert.Equal(t, "Some Clip", md.Title)
}

func TestScrapeWithScraper_UnknownName(t *testing.T) {
	r := newTestRegistry()

	_, err := r.ScrapeWithScraper(context.Background(), "https://example.com/v/1", "nope")
	assert.ErrorIs(t, err, ErrUnknownScraper)
}

func TestScrapeWithEnhancement_MergesPartialResults(t *testing.T) {
	primary := &stubStrategy{name: "primary", handles: true,
		md: &Metadata{Title: "Full Title", ContentType: ContentTypeVideo}}
	secondary := &stubStrategy{name: "secondary", handles: true,
		md: &Metadata{MediaURL: "https://cdn.example.com/v.mp4", Studio: "Example Studio", ContentType: ContentTypeVideo}}
	r := newTestRegistry(primary, secondary)

	md, err := r.ScrapeWithEnhancement(context.Background(), "https://example.com/v/1", "")
	require.NoError(t, err)
	assert.Equal(t, "Full Title", md.Title)
	assert.Equal(t, "https://cdn.example.com/v.mp4", md.MediaURL, "missing fields filled from lower-confidence strategy")
	assert.Equal(t, "Example Studio", md.Studio)
}

func TestScrapeWithEnhancement_AllFail_Fallback(t *testing.T) {
	a := &stubStrategy{name: "a", handles: true, err: ErrNoSignal}
	r := newTestRegistry(a)

	md, err := r.ScrapeWithEnhancement(context.Background(), "https://example.com/v/road-trip.mp4", "")
	require.NoError(t, err)
	assert.Equal(t, "Road Trip", md.Title)
}

func TestScrape_CacheHitSkipsStrategies(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	cache := NewCache(db, time.Hour)
	require.NoError(t, cache.Init(context.Background()))

	a := &stubStrategy{name: "a", handles: true, md: &Metadata{Title: "fresh", ContentType: ContentTypeVideo}}
	r := NewRegistry([]Strategy{a}, cache, time.Minute, testLogger())

	url := "https://example.com/v/1"
	_, err = r.Scrape(context.Background(), url, "")
	require.NoError(t, err)
	require.Equal(t, int32(1), a.calls.Load())

	md, err := r.Scrape(context.Background(), url, "")
	require.NoError(t, err)
	assert.Equal(t, "fresh", md.Title)
	assert.Equal(t, int32(1), a.calls.Load(), "second scrape should be served from cache")
}

func TestRegistry_Names(t *testing.T) {
	a := &stubStrategy{name: "a"}
	b := &stubStrategy{name: "b"}
	r := newTestRegistry(a, b)

	assert.Equal(t, []string{"a", "b", "url-fallback"}, r.Names())
}

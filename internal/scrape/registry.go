package scrape

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/vmunix/stashgrab/internal/remotejob"
)

// DefaultTimeout bounds one whole registry call, across all strategies.
const DefaultTimeout = 90 * time.Second

// DefaultPluginID is the server-side extractor plugin.
const DefaultPluginID = "stash-downloader"

// CatalogAPI is everything the server-delegated strategies need from the
// catalog.
type CatalogAPI interface {
	CatalogScraperAPI
	PluginAPI
}

// Registry holds the ordered strategy chain plus the guaranteed-success
// fallback. The list is fixed at construction and safe to share across
// concurrent scrapes.
type Registry struct {
	strategies []Strategy
	fallback   Strategy
	cache      *Cache // nil disables caching
	timeout    time.Duration
	log        *slog.Logger
}

// NewRegistry creates a registry trying strategies in the given order.
// Registration order encodes confidence: most specific first.
func NewRegistry(strategies []Strategy, cache *Cache, timeout time.Duration, log *slog.Logger) *Registry {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if log == nil {
		log = slog.Default()
	}
	return &Registry{
		strategies: strategies,
		fallback:   newFallbackStrategy(),
		cache:      cache,
		timeout:    timeout,
		log:        log.With("component", "scrape"),
	}
}

// DefaultStrategies builds the strategy chain for an environment.
// Sandboxed environments register only server-delegated strategies;
// unrestricted ones add strategies that talk to third-party hosts
// directly.
func DefaultStrategies(env Environment, catalog CatalogAPI, clock remotejob.Clock, pluginID string, log *slog.Logger) []Strategy {
	if pluginID == "" {
		pluginID = DefaultPluginID
	}
	delegate := newDelegateStrategy(catalog)
	plugin := newPluginTaskStrategy(catalog, clock, pluginID, log)

	if env == EnvSandboxed {
		return []Strategy{delegate, plugin}
	}
	return []Strategy{
		newRedditStrategy(nil),
		delegate,
		plugin,
		newOpengraphStrategy(nil),
	}
}

// Names returns the registered strategy names in priority order,
// fallback last.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.strategies)+1)
	for _, s := range r.strategies {
		names = append(names, s.Name())
	}
	return append(names, r.fallback.Name())
}

// Scrape runs the fallback chain: applicable strategies in registration
// order, then the universal fallback. It fails only when the URL itself
// is unparseable or the overall deadline elapses.
func (r *Registry) Scrape(ctx context.Context, rawURL string, preferred ContentType) (*Metadata, error) {
	if _, err := url.Parse(rawURL); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}

	cacheKey := rawURL + "|" + string(preferred)
	if r.cache != nil {
		if md, ok := r.cache.Get(ctx, cacheKey); ok {
			r.log.Debug("scrape cache hit", "url", rawURL)
			return md, nil
		}
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	for _, s := range r.applicable(rawURL, preferred) {
		md, err := r.run(ctx, s, rawURL)
		if err == nil {
			r.log.Info("scrape succeeded", "url", rawURL, "scraper", s.Name())
			r.cachePut(ctx, cacheKey, md)
			return md, nil
		}
		if deadlineExceeded(ctx, err) {
			return nil, fmt.Errorf("%w after trying %s", ErrDeadline, s.Name())
		}
		r.log.Warn("strategy failed, trying next", "url", rawURL, "scraper", s.Name(), "error", err)
	}

	if ctx.Err() != nil {
		return nil, ErrDeadline
	}

	// Last resort: pure URL-token parsing. Cannot fail for a parseable URL.
	md, err := r.fallback.Scrape(ctx, rawURL)
	if err != nil {
		return nil, fmt.Errorf("fallback scrape: %w", err)
	}
	r.log.Info("scrape fell back to url parsing", "url", rawURL)
	return md, nil
}

// ScrapeWithEnhancement is the best-effort mode: when the highest-
// confidence strategy fails or returns a partial result, every other
// applicable strategy is consulted and missing fields are filled in
// before falling back.
func (r *Registry) ScrapeWithEnhancement(ctx context.Context, rawURL string, preferred ContentType) (*Metadata, error) {
	if _, err := url.Parse(rawURL); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var best *Metadata
	for _, s := range r.applicable(rawURL, preferred) {
		md, err := r.run(ctx, s, rawURL)
		if err != nil {
			if deadlineExceeded(ctx, err) {
				break
			}
			r.log.Warn("strategy failed during enhancement", "url", rawURL, "scraper", s.Name(), "error", err)
			continue
		}
		if best == nil {
			best = md.Clone()
		} else {
			best.merge(md)
		}
		if !best.incomplete() {
			return best, nil
		}
	}

	if ctx.Err() != nil && best == nil {
		return nil, ErrDeadline
	}

	fb, err := r.fallback.Scrape(ctx, rawURL)
	if err != nil {
		if best != nil {
			return best, nil
		}
		return nil, fmt.Errorf("fallback scrape: %w", err)
	}
	if best == nil {
		return fb, nil
	}
	best.merge(fb)
	return best, nil
}

// ScrapeWithScraper forces exactly one named strategy and surfaces its
// raw result or failure. No fallback, no cache.
func (r *Registry) ScrapeWithScraper(ctx context.Context, rawURL, name string) (*Metadata, error) {
	var target Strategy
	for _, s := range append(append([]Strategy{}, r.strategies...), r.fallback) {
		if s.Name() == name {
			target = s
			break
		}
	}
	if target == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScraper, name)
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	return r.run(ctx, target, rawURL)
}

// applicable filters strategies by CanHandle and content-type preference.
func (r *Registry) applicable(rawURL string, preferred ContentType) []Strategy {
	var out []Strategy
	for _, s := range r.strategies {
		if !s.CanHandle(rawURL) {
			continue
		}
		if preferred != "" && !s.ContentTypes().Has(preferred) {
			continue
		}
		out = append(out, s)
	}
	return out
}

// run executes one strategy in its own goroutine so a hung network call
// cannot outlive the registry deadline. A result arriving after the
// deadline is discarded, never applied.
func (r *Registry) run(ctx context.Context, s Strategy, rawURL string) (*Metadata, error) {
	type outcome struct {
		md  *Metadata
		err error
	}
	ch := make(chan outcome, 1)
	go func() {
		md, err := s.Scrape(ctx, rawURL)
		ch <- outcome{md, err}
	}()

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %s abandoned mid-flight", ErrDeadline, s.Name())
	case o := <-ch:
		return o.md, o.err
	}
}

// cachePut stores a successful result, logging failures only.
func (r *Registry) cachePut(ctx context.Context, key string, md *Metadata) {
	if r.cache == nil {
		return
	}
	if err := r.cache.Set(ctx, key, md); err != nil {
		r.log.Warn("failed to cache scrape result", "error", err)
	}
}

func deadlineExceeded(ctx context.Context, err error) bool {
	return ctx.Err() != nil && (errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, context.Canceled) || errors.Is(err, ErrDeadline))
}

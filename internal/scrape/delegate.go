package scrape

import (
	"context"
	"errors"
	"fmt"

	"github.com/vmunix/stashgrab/pkg/stash"
)

// CatalogScraperAPI is the slice of the catalog API the delegate strategy
// needs.
type CatalogScraperAPI interface {
	ScrapeSceneURL(ctx context.Context, url string) (*stash.ScrapedScene, error)
}

// delegateStrategy hands the URL to the catalog's own scraper subsystem,
// which matches it against its installed site scrapers. CanHandle is true
// for everything: only the server knows which sites it covers.
type delegateStrategy struct {
	api CatalogScraperAPI
}

func newDelegateStrategy(api CatalogScraperAPI) *delegateStrategy {
	return &delegateStrategy{api: api}
}

func (s *delegateStrategy) Name() string { return "catalog-scraper" }

func (s *delegateStrategy) CanHandle(rawURL string) bool { return true }

func (s *delegateStrategy) ContentTypes() ContentTypeSet {
	return Types(ContentTypeVideo)
}

func (s *delegateStrategy) Scrape(ctx context.Context, rawURL string) (*Metadata, error) {
	scraped, err := s.api.ScrapeSceneURL(ctx, rawURL)
	if err != nil {
		if errors.Is(err, stash.ErrNotFound) {
			return nil, fmt.Errorf("%w: no catalog scraper matched", ErrNoSignal)
		}
		return nil, err
	}
	if scraped.Title == "" && scraped.URL == "" && len(scraped.Performers) == 0 {
		return nil, fmt.Errorf("%w: catalog scraper returned empty result", ErrNoSignal)
	}

	md := &Metadata{
		Title:        scraped.Title,
		Description:  scraped.Details,
		Date:         scraped.Date,
		ThumbnailURL: scraped.Image,
		ContentType:  ContentTypeVideo,
		Scraper:      s.Name(),
	}
	if scraped.Studio != nil {
		md.Studio = scraped.Studio.Name
	}
	for _, p := range scraped.Performers {
		if p != nil && p.Name != "" {
			md.Performers = append(md.Performers, p.Name)
		}
	}
	for _, t := range scraped.Tags {
		if t != nil && t.Name != "" {
			md.Tags = append(md.Tags, t.Name)
		}
	}
	return md, nil
}

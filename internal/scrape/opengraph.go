package scrape

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// opengraphStrategy fetches the page and reads OpenGraph/Twitter meta
// tags. Generic: it handles any http(s) URL but only succeeds when the
// page actually carries usable tags.
type opengraphStrategy struct {
	httpClient *http.Client
}

func newOpengraphStrategy(hc *http.Client) *opengraphStrategy {
	if hc == nil {
		hc = &http.Client{Timeout: 15 * time.Second}
	}
	return &opengraphStrategy{httpClient: hc}
}

func (s *opengraphStrategy) Name() string { return "opengraph" }

func (s *opengraphStrategy) CanHandle(rawURL string) bool {
	u, err := url.Parse(rawURL)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https")
}

func (s *opengraphStrategy) ContentTypes() ContentTypeSet {
	return Types(ContentTypeVideo, ContentTypeImage, ContentTypeGallery)
}

func (s *opengraphStrategy) Scrape(ctx context.Context, rawURL string) (*Metadata, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; stashgrab)")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch page: %s", resp.Status)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "" && !strings.Contains(ct, "html") {
		return nil, fmt.Errorf("%w: not an html page (%s)", ErrNoSignal, ct)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	meta := collectMeta(doc)
	md := &Metadata{
		Title:        first(meta, "og:title", "twitter:title"),
		Description:  first(meta, "og:description", "twitter:description", "description"),
		ThumbnailURL: first(meta, "og:image", "og:image:url", "twitter:image"),
		MediaURL: first(meta,
			"og:video:secure_url", "og:video:url", "og:video",
			"twitter:player:stream"),
		Studio:      meta["og:site_name"],
		Date:        normalizeDate(first(meta, "video:release_date", "article:published_time", "uploadDate")),
		ContentType: opengraphContentType(meta),
		Scraper:     s.Name(),
	}
	if d, err := strconv.Atoi(meta["video:duration"]); err == nil {
		md.Duration = d
	}
	doc.Find(`meta[property="video:tag"], meta[property="article:tag"]`).Each(func(_ int, sel *goquery.Selection) {
		if v, ok := sel.Attr("content"); ok && v != "" {
			md.Tags = append(md.Tags, v)
		}
	})
	doc.Find(`meta[property="video:actor"]`).Each(func(_ int, sel *goquery.Selection) {
		if v, ok := sel.Attr("content"); ok && v != "" {
			md.Performers = append(md.Performers, v)
		}
	})

	if md.Title == "" {
		md.Title = strings.TrimSpace(doc.Find("title").First().Text())
	}
	if md.Title == "" && md.MediaURL == "" {
		return nil, fmt.Errorf("%w: page has no opengraph tags", ErrNoSignal)
	}
	return md, nil
}

// collectMeta gathers meta tags keyed by property or name.
func collectMeta(doc *goquery.Document) map[string]string {
	meta := make(map[string]string)
	doc.Find("meta").Each(func(_ int, sel *goquery.Selection) {
		key, ok := sel.Attr("property")
		if !ok {
			key, ok = sel.Attr("name")
		}
		if !ok {
			return
		}
		content, ok := sel.Attr("content")
		if !ok || content == "" {
			return
		}
		if _, seen := meta[key]; !seen {
			meta[key] = content
		}
	})
	return meta
}

// first returns the first non-empty value among keys.
func first(meta map[string]string, keys ...string) string {
	for _, k := range keys {
		if v := meta[k]; v != "" {
			return v
		}
	}
	return ""
}

// opengraphContentType maps og:type onto our content types.
func opengraphContentType(meta map[string]string) ContentType {
	ogType := meta["og:type"]
	switch {
	case strings.HasPrefix(ogType, "video"):
		return ContentTypeVideo
	case ogType == "image" || strings.HasPrefix(ogType, "photo"):
		return ContentTypeImage
	}
	if first(meta, "og:video:secure_url", "og:video:url", "og:video") != "" {
		return ContentTypeVideo
	}
	if meta["og:image"] != "" && meta["og:video"] == "" && strings.HasPrefix(ogType, "article") {
		return ContentTypeImage
	}
	return ContentTypeVideo
}

// normalizeDate trims an ISO timestamp down to YYYY-MM-DD.
func normalizeDate(s string) string {
	if len(s) >= 10 {
		candidate := s[:10]
		if _, err := time.Parse("2006-01-02", candidate); err == nil {
			return candidate
		}
	}
	return ""
}

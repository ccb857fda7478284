package scrape

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// videoExts and imageExts classify URLs by file extension.
var videoExts = map[string]bool{
	".mp4": true, ".webm": true, ".mkv": true, ".mov": true,
	".avi": true, ".m4v": true, ".ts": true, ".m3u8": true,
}

var imageExts = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true,
}

// galleryHints are path segments that suggest a multi-image gallery page.
var galleryHints = []string{"gallery", "album", "a", "galleries"}

// fallbackStrategy derives metadata purely from URL tokens. It is the
// guaranteed-success tail of the chain: for any parseable URL it returns
// a result and never an error.
type fallbackStrategy struct {
	titler cases.Caser
}

func newFallbackStrategy() *fallbackStrategy {
	return &fallbackStrategy{titler: cases.Title(language.English)}
}

func (s *fallbackStrategy) Name() string { return "url-fallback" }

func (s *fallbackStrategy) CanHandle(rawURL string) bool { return true }

func (s *fallbackStrategy) ContentTypes() ContentTypeSet {
	return Types(ContentTypeVideo, ContentTypeImage, ContentTypeGallery)
}

func (s *fallbackStrategy) Scrape(ctx context.Context, rawURL string) (*Metadata, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}

	segment := lastPathSegment(u)
	ext := strings.ToLower(path.Ext(segment))
	title := strings.TrimSuffix(segment, path.Ext(segment))
	title = s.titler.String(tokensToWords(title))
	if title == "" {
		title = u.Hostname()
	}

	md := &Metadata{
		Title:       title,
		ContentType: classifyURL(u, ext),
		Scraper:     s.Name(),
	}
	if videoExts[ext] || imageExts[ext] {
		// The URL already points at a file; use it as the direct media URL.
		md.MediaURL = rawURL
	}
	return md, nil
}

// lastPathSegment returns the final non-empty path segment of u.
func lastPathSegment(u *url.URL) string {
	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	for i := len(segments) - 1; i >= 0; i-- {
		if segments[i] != "" {
			seg, err := url.PathUnescape(segments[i])
			if err != nil {
				return segments[i]
			}
			return seg
		}
	}
	return ""
}

// tokensToWords replaces common URL separators with spaces and collapses
// the result.
func tokensToWords(s string) string {
	for _, sep := range []string{"-", "_", "+", "."} {
		s = strings.ReplaceAll(s, sep, " ")
	}
	return strings.Join(strings.Fields(s), " ")
}

// classifyURL infers the content type from extension and path shape.
func classifyURL(u *url.URL, ext string) ContentType {
	switch {
	case videoExts[ext]:
		return ContentTypeVideo
	case imageExts[ext]:
		return ContentTypeImage
	}
	for _, seg := range strings.Split(strings.Trim(u.Path, "/"), "/") {
		for _, hint := range galleryHints {
			if strings.EqualFold(seg, hint) {
				return ContentTypeGallery
			}
		}
	}
	return ContentTypeVideo
}

// Package scrape turns source URLs into descriptive metadata through an
// ordered chain of extraction strategies.
package scrape

// ContentType classifies what kind of media a URL points at.
type ContentType string

const (
	ContentTypeVideo   ContentType = "video"
	ContentTypeImage   ContentType = "image"
	ContentTypeGallery ContentType = "gallery"
)

// ContentTypeSet is the set of content types a strategy can produce.
type ContentTypeSet map[ContentType]bool

// Types builds a set from the given content types.
func Types(types ...ContentType) ContentTypeSet {
	s := make(ContentTypeSet, len(types))
	for _, t := range types {
		s[t] = true
	}
	return s
}

// Has reports whether t is in the set.
func (s ContentTypeSet) Has(t ContentType) bool { return s[t] }

// Metadata is the result of one extraction strategy. It is immutable once
// returned; callers copy before editing.
type Metadata struct {
	Title        string      `json:"title,omitempty"`
	Description  string      `json:"description,omitempty"`
	Date         string      `json:"date,omitempty"` // YYYY-MM-DD
	ThumbnailURL string      `json:"thumbnail_url,omitempty"`
	MediaURL     string      `json:"media_url,omitempty"`
	Performers   []string    `json:"performers,omitempty"`
	Tags         []string    `json:"tags,omitempty"`
	Studio       string      `json:"studio,omitempty"`
	Duration     int         `json:"duration,omitempty"` // seconds
	Quality      string      `json:"quality,omitempty"`  // e.g. "1080p"
	ContentType  ContentType `json:"content_type"`

	// Scraper is the name of the strategy that produced this result.
	Scraper string `json:"scraper,omitempty"`
}

// Clone returns a deep copy safe for the caller to edit.
func (m *Metadata) Clone() *Metadata {
	out := *m
	out.Performers = append([]string(nil), m.Performers...)
	out.Tags = append([]string(nil), m.Tags...)
	return &out
}

// merge fills empty fields of m from other. Used by enhancement mode to
// combine partial results from lower-confidence strategies.
func (m *Metadata) merge(other *Metadata) {
	if m.Title == "" {
		m.Title = other.Title
	}
	if m.Description == "" {
		m.Description = other.Description
	}
	if m.Date == "" {
		m.Date = other.Date
	}
	if m.ThumbnailURL == "" {
		m.ThumbnailURL = other.ThumbnailURL
	}
	if m.MediaURL == "" {
		m.MediaURL = other.MediaURL
	}
	if len(m.Performers) == 0 {
		m.Performers = append([]string(nil), other.Performers...)
	}
	if len(m.Tags) == 0 {
		m.Tags = append([]string(nil), other.Tags...)
	}
	if m.Studio == "" {
		m.Studio = other.Studio
	}
	if m.Duration == 0 {
		m.Duration = other.Duration
	}
	if m.Quality == "" {
		m.Quality = other.Quality
	}
}

// incomplete reports whether enhancement should keep looking for more
// signal after this result.
func (m *Metadata) incomplete() bool {
	return m.Title == "" || m.MediaURL == ""
}

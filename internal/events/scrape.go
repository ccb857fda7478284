package events

// Event type names for the scrape chain.
const (
	TypeScrapeStarted   = "scrape.started"
	TypeScrapeCompleted = "scrape.completed"
	TypeScrapeFailed    = "scrape.failed"
)

// ScrapeStarted is emitted when a registry call begins.
type ScrapeStarted struct {
	BaseEvent
	URL string `json:"url"`
}

// ScrapeCompleted is emitted when a strategy produced metadata.
type ScrapeCompleted struct {
	BaseEvent
	URL     string `json:"url"`
	Scraper string `json:"scraper"`
	Title   string `json:"title,omitempty"`
}

// ScrapeFailed is emitted when the whole chain failed.
type ScrapeFailed struct {
	BaseEvent
	URL    string `json:"url"`
	Reason string `json:"reason"`
}

// NewScrapeStarted builds a ScrapeStarted for url.
func NewScrapeStarted(url string) *ScrapeStarted {
	return &ScrapeStarted{BaseEvent: NewBaseEvent(TypeScrapeStarted, "scrape", url), URL: url}
}

// NewScrapeCompleted builds a ScrapeCompleted for url.
func NewScrapeCompleted(url, scraper, title string) *ScrapeCompleted {
	return &ScrapeCompleted{
		BaseEvent: NewBaseEvent(TypeScrapeCompleted, "scrape", url),
		URL:       url, Scraper: scraper, Title: title,
	}
}

// NewScrapeFailed builds a ScrapeFailed for url.
func NewScrapeFailed(url, reason string) *ScrapeFailed {
	return &ScrapeFailed{
		BaseEvent: NewBaseEvent(TypeScrapeFailed, "scrape", url),
		URL:       url, Reason: reason,
	}
}

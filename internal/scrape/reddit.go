package scrape

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// redditStrategy reads post metadata from Reddit's public JSON endpoint.
// Site-specific and high confidence for reddit.com links.
type redditStrategy struct {
	httpClient *http.Client
}

func newRedditStrategy(hc *http.Client) *redditStrategy {
	if hc == nil {
		hc = &http.Client{Timeout: 15 * time.Second}
	}
	return &redditStrategy{httpClient: hc}
}

func (s *redditStrategy) Name() string { return "reddit" }

func (s *redditStrategy) CanHandle(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	host := strings.TrimPrefix(u.Hostname(), "www.")
	host = strings.TrimPrefix(host, "old.")
	return host == "reddit.com" || host == "redd.it"
}

func (s *redditStrategy) ContentTypes() ContentTypeSet {
	return Types(ContentTypeVideo, ContentTypeImage, ContentTypeGallery)
}

// redditPost is the slice of Reddit's post JSON we care about.
type redditPost struct {
	Title       string  `json:"title"`
	Subreddit   string  `json:"subreddit_name_prefixed"`
	Author      string  `json:"author"`
	Flair       string  `json:"link_flair_text"`
	CreatedUTC  float64 `json:"created_utc"`
	IsGallery   bool    `json:"is_gallery"`
	IsVideo     bool    `json:"is_video"`
	DestURL     string  `json:"url_overridden_by_dest"`
	Thumbnail   string  `json:"thumbnail"`
	SecureMedia *struct {
		RedditVideo *struct {
			FallbackURL string `json:"fallback_url"`
			Duration    int    `json:"duration"`
			Height      int    `json:"height"`
		} `json:"reddit_video"`
	} `json:"secure_media"`
	Preview *struct {
		Images []struct {
			Source struct {
				URL string `json:"url"`
			} `json:"source"`
		} `json:"images"`
	} `json:"preview"`
}

func (s *redditStrategy) Scrape(ctx context.Context, rawURL string) (*Metadata, error) {
	jsonURL := strings.TrimSuffix(rawURL, "/") + ".json?raw_json=1"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, jsonURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	// Reddit rejects default Go user agents.
	req.Header.Set("User-Agent", "stashgrab/1.0 (media import tool)")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch post: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch post: %s", resp.Status)
	}

	// The listing endpoint returns [postListing, commentListing].
	var listings []struct {
		Data struct {
			Children []struct {
				Data redditPost `json:"data"`
			} `json:"children"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&listings); err != nil {
		return nil, fmt.Errorf("decode post json: %w", err)
	}
	if len(listings) == 0 || len(listings[0].Data.Children) == 0 {
		return nil, fmt.Errorf("%w: post not found", ErrNoSignal)
	}
	post := listings[0].Data.Children[0].Data

	md := &Metadata{
		Title:       post.Title,
		Studio:      post.Subreddit,
		Scraper:     s.Name(),
		ContentType: ContentTypeImage,
	}
	if post.Author != "" && post.Author != "[deleted]" {
		md.Performers = []string{post.Author}
	}
	if post.Flair != "" {
		md.Tags = []string{post.Flair}
	}
	if post.CreatedUTC > 0 {
		md.Date = time.Unix(int64(post.CreatedUTC), 0).UTC().Format("2006-01-02")
	}
	if post.Preview != nil && len(post.Preview.Images) > 0 {
		md.ThumbnailURL = post.Preview.Images[0].Source.URL
	}

	switch {
	case post.IsVideo && post.SecureMedia != nil && post.SecureMedia.RedditVideo != nil:
		v := post.SecureMedia.RedditVideo
		md.ContentType = ContentTypeVideo
		md.MediaURL = v.FallbackURL
		md.Duration = v.Duration
		if v.Height > 0 {
			md.Quality = fmt.Sprintf("%dp", v.Height)
		}
	case post.IsGallery:
		md.ContentType = ContentTypeGallery
		md.MediaURL = post.DestURL
	case post.DestURL != "":
		md.MediaURL = post.DestURL
		if videoExts[strings.ToLower(extOf(post.DestURL))] {
			md.ContentType = ContentTypeVideo
		}
	}

	if md.Title == "" && md.MediaURL == "" {
		return nil, fmt.Errorf("%w: post carries no media", ErrNoSignal)
	}
	return md, nil
}

// extOf returns the lowercase extension of a URL path, query stripped.
func extOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	p := u.Path
	if i := strings.LastIndex(p, "."); i >= 0 {
		return p[i:]
	}
	return ""
}

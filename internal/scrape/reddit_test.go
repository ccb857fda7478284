package scrape

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const redditVideoPost = `[
	{"data": {"children": [{"data": {
		"title": "Sunrise over the bay",
		"subreddit_name_prefixed": "r/CityViews",
		"author": "someuser",
		"link_flair_text": "OC",
		"created_utc": 1710489600,
		"is_video": true,
		"secure_media": {"reddit_video": {
			"fallback_url": "https://v.redd.it/abc/DASH_1080.mp4",
			"duration": 34,
			"height": 1080
		}},
		"preview": {"images": [{"source": {"url": "https://preview.redd.it/abc.jpg"}}]}
	}}]}},
	{"data": {"children": []}}
]`

func redditServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, r.Header.Get("User-Agent"), "reddit requires a user agent")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
}

func TestReddit_VideoPost(t *testing.T) {
	srv := redditServer(t, redditVideoPost)
	defer srv.Close()

	s := newRedditStrategy(srv.Client())
	md, err := s.Scrape(context.Background(), srv.URL+"/r/CityViews/comments/abc/sunrise")
	require.NoError(t, err)

	assert.Equal(t, "Sunrise over the bay", md.Title)
	assert.Equal(t, ContentTypeVideo, md.ContentType)
	assert.Equal(t, "https://v.redd.it/abc/DASH_1080.mp4", md.MediaURL)
	assert.Equal(t, "r/CityViews", md.Studio)
	assert.Equal(t, []string{"someuser"}, md.Performers)
	assert.Equal(t, []string{"OC"}, md.Tags)
	assert.Equal(t, 34, md.Duration)
	assert.Equal(t, "1080p", md.Quality)
	assert.Equal(t, "2024-03-15", md.Date)
	assert.Equal(t, "https://preview.redd.it/abc.jpg", md.ThumbnailURL)
}

func TestReddit_GalleryPost(t *testing.T) {
	srv := redditServer(t, `[
		{"data": {"children": [{"data": {
			"title": "Trip photos",
			"subreddit_name_prefixed": "r/travel",
			"author": "traveler",
			"is_gallery": true,
			"url_overridden_by_dest": "https://www.reddit.com/gallery/xyz"
		}}]}}
	]`)
	defer srv.Close()

	s := newRedditStrategy(srv.Client())
	md, err := s.Scrape(context.Background(), srv.URL+"/r/travel/comments/xyz/trip")
	require.NoError(t, err)
	assert.Equal(t, ContentTypeGallery, md.ContentType)
	assert.Equal(t, "https://www.reddit.com/gallery/xyz", md.MediaURL)
}

func TestReddit_ImageLinkPost(t *testing.T) {
	srv := redditServer(t, `[
		{"data": {"children": [{"data": {
			"title": "A single photo",
			"subreddit_name_prefixed": "r/pics",
			"author": "[deleted]",
			"url_overridden_by_dest": "https://i.redd.it/photo.jpg"
		}}]}}
	]`)
	defer srv.Close()

	s := newRedditStrategy(srv.Client())
	md, err := s.Scrape(context.Background(), srv.URL+"/r/pics/comments/q/photo")
	require.NoError(t, err)
	assert.Equal(t, ContentTypeImage, md.ContentType)
	assert.Equal(t, "https://i.redd.it/photo.jpg", md.MediaURL)
	assert.Empty(t, md.Performers, "deleted authors are not performers")
}

func TestReddit_EmptyListing(t *testing.T) {
	srv := redditServer(t, `[{"data": {"children": []}}]`)
	defer srv.Close()

	s := newRedditStrategy(srv.Client())
	_, err := s.Scrape(context.Background(), srv.URL+"/r/x/comments/1/gone")
	assert.ErrorIs(t, err, ErrNoSignal)
}

func TestReddit_CanHandle(t *testing.T) {
	s := newRedditStrategy(nil)

	assert.True(t, s.CanHandle("https://www.reddit.com/r/pics/comments/abc/title/"))
	assert.True(t, s.CanHandle("https://old.reddit.com/r/pics/comments/abc/title/"))
	assert.True(t, s.CanHandle("https://redd.it/abc"))
	assert.False(t, s.CanHandle("https://example.com/reddit.com"))
	assert.False(t, s.CanHandle("https://notreddit.com/r/pics"))
}

package scrape

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFallback_VideoFile(t *testing.T) {
	s := newFallbackStrategy()

	md, err := s.Scrape(context.Background(), "https://cdn.example.com/clips/summer-beach_day.mp4")
	require.NoError(t, err)

	assert.Equal(t, "Summer Beach Day", md.Title)
	assert.Equal(t, ContentTypeVideo, md.ContentType)
	assert.Equal(t, "https://cdn.example.com/clips/summer-beach_day.mp4", md.MediaURL,
		"direct file URLs double as the media URL")
}

func TestFallback_ImageFile(t *testing.T) {
	s := newFallbackStrategy()

	md, err := s.Scrape(context.Background(), "https://img.example.com/photos/red+sunset.jpg")
	require.NoError(t, err)

	assert.Equal(t, "Red Sunset", md.Title)
	assert.Equal(t, ContentTypeImage, md.ContentType)
}

func TestFallback_GalleryPath(t *testing.T) {
	s := newFallbackStrategy()

	md, err := s.Scrape(context.Background(), "https://example.com/gallery/vacation-2024")
	require.NoError(t, err)

	assert.Equal(t, "Vacation 2024", md.Title)
	assert.Equal(t, ContentTypeGallery, md.ContentType)
	assert.Empty(t, md.MediaURL, "page URLs are not media URLs")
}

func TestFallback_NoPath_UsesHostname(t *testing.T) {
	s := newFallbackStrategy()

	md, err := s.Scrape(context.Background(), "https://example.com/")
	require.NoError(t, err)
	assert.Equal(t, "example.com", md.Title)
	assert.Equal(t, ContentTypeVideo, md.ContentType)
}

func TestFallback_EscapedSegment(t *testing.T) {
	s := newFallbackStrategy()

	md, err := s.Scrape(context.Background(), "https://example.com/v/hello%20world.mp4")
	require.NoError(t, err)
	assert.Equal(t, "Hello World", md.Title)
}

func TestFallback_NeverFailsForParseableURLs(t *testing.T) {
	s := newFallbackStrategy()

	urls := []string{
		"https://example.com/a/b/c",
		"http://example.com",
		"https://example.com/???",
		"https://example.com/v/....",
		"ftp://example.com/files/thing.bin",
	}
	for _, u := range urls {
		md, err := s.Scrape(context.Background(), u)
		require.NoError(t, err, u)
		assert.NotEmpty(t, md.Title, u)
	}
}

func TestClassifyURL_ExtensionWinsOverGalleryHint(t *testing.T) {
	s := newFallbackStrategy()

	md, err := s.Scrape(context.Background(), "https://example.com/album/cover.jpg")
	require.NoError(t, err)
	assert.Equal(t, ContentTypeImage, md.ContentType)
}

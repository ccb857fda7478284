package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vmunix/stashgrab/internal/scrape"
)

func TestLocalFilename(t *testing.T) {
	md := &scrape.Metadata{
		Title:    "Sunset Session",
		MediaURL: "https://cdn.example.com/v/sunset.mp4?token=abc",
	}

	// An explicit hint wins over everything else.
	assert.Equal(t, "my-clip.mp4", localFilename("my-clip.mp4", md))

	// Otherwise the media URL's basename, without the query string.
	assert.Equal(t, "sunset.mp4", localFilename("", md))

	// No usable URL path falls back to the title, slashes sanitized.
	md.MediaURL = "https://cdn.example.com/"
	md.Title = "a/b"
	assert.Equal(t, "a_b", localFilename("", md))

	// Nothing at all still yields a name.
	md.Title = ""
	assert.Equal(t, "stashgrab-media", localFilename("", md))
}

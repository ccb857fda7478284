package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmunix/stashgrab/internal/importer"
	"github.com/vmunix/stashgrab/internal/scrape"
)

func TestParseContentType(t *testing.T) {
	ct, err := parseContentType("")
	require.NoError(t, err)
	assert.Empty(t, ct)

	ct, err = parseContentType("video")
	require.NoError(t, err)
	assert.Equal(t, scrape.ContentTypeVideo, ct)

	ct, err = parseContentType("gallery")
	require.NoError(t, err)
	assert.Equal(t, scrape.ContentTypeGallery, ct)

	_, err = parseContentType("audio")
	assert.Error(t, err)
}

func TestValidateOutputDir(t *testing.T) {
	libraries := []string{"/media/stash", "/mnt/archive/"}

	assert.NoError(t, validateOutputDir("/media/stash/downloads", libraries))
	assert.NoError(t, validateOutputDir("/media/stash", libraries))
	assert.NoError(t, validateOutputDir("/mnt/archive/new", libraries))

	// Sibling directories with a shared prefix do not count.
	assert.Error(t, validateOutputDir("/media/stash2", libraries))
	assert.Error(t, validateOutputDir("/tmp/out", libraries))

	// Unknown libraries or an unset destination skip the check.
	assert.NoError(t, validateOutputDir("/tmp/out", nil))
	assert.NoError(t, validateOutputDir("", libraries))
}

func TestParsePostImport(t *testing.T) {
	action, err := parsePostImport("none")
	require.NoError(t, err)
	assert.Equal(t, importer.ActionNone, action)

	action, err = parsePostImport("run-identify")
	require.NoError(t, err)
	assert.Equal(t, importer.ActionIdentify, action)

	action, err = parsePostImport("rescrape-by-url")
	require.NoError(t, err)
	assert.Equal(t, importer.ActionRescrape, action)

	_, err = parsePostImport("reindex")
	assert.Error(t, err)
}

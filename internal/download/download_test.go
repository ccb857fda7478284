package download_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmunix/stashgrab/internal/download"
	"github.com/vmunix/stashgrab/internal/importer"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestDirect_Acquire(t *testing.T) {
	var gotReferer, gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotReferer = r.Header.Get("Referer")
		gotUA = r.Header.Get("User-Agent")
		w.Write([]byte("media bytes"))
	}))
	defer server.Close()

	var fractions []float64
	d := download.NewDirect(server.Client(), testLogger())
	result, err := d.Acquire(context.Background(), importer.AcquireRequest{
		URL: server.URL + "/v/clip.mp4",
		OnProgress: func(f float64) {
			fractions = append(fractions, f)
		},
	})

	require.NoError(t, err)
	assert.Equal(t, []byte("media bytes"), result.Data)
	assert.False(t, result.ServerPlaced())

	assert.Equal(t, server.URL+"/", gotReferer, "referer should be the origin")
	assert.Contains(t, gotUA, "Mozilla/5.0")

	require.NotEmpty(t, fractions)
	assert.Equal(t, 1.0, fractions[len(fractions)-1])
}

func TestDirect_FallsBackOnPrimaryFailure(t *testing.T) {
	primary := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "denied", http.StatusForbidden)
	}))
	defer primary.Close()

	fallback := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("from fallback"))
	}))
	defer fallback.Close()

	d := download.NewDirect(nil, testLogger())
	result, err := d.Acquire(context.Background(), importer.AcquireRequest{
		URL:         primary.URL + "/hotlinked.mp4",
		FallbackURL: fallback.URL + "/page",
	})

	require.NoError(t, err)
	assert.Equal(t, []byte("from fallback"), result.Data)
}

func TestDirect_BothURLsFailing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer server.Close()

	d := download.NewDirect(server.Client(), testLogger())
	_, err := d.Acquire(context.Background(), importer.AcquireRequest{
		URL:         server.URL + "/a",
		FallbackURL: server.URL + "/b",
	})

	assert.ErrorIs(t, err, download.ErrDownloadFailed)
}

func TestDirect_EmptyResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer server.Close()

	d := download.NewDirect(server.Client(), testLogger())
	_, err := d.Acquire(context.Background(), importer.AcquireRequest{URL: server.URL})

	assert.ErrorIs(t, err, download.ErrDownloadFailed)
}

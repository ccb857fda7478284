package download_test

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmunix/stashgrab/internal/download"
	"github.com/vmunix/stashgrab/internal/importer"
	"github.com/vmunix/stashgrab/pkg/stash"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) After(d time.Duration) <-chan time.Time {
	c.mu.Lock()
	c.now = c.now.Add(d)
	now := c.now
	c.mu.Unlock()

	ch := make(chan time.Time, 1)
	ch <- now
	return ch
}

// fakePluginAPI scripts one plugin task run end to end.
type fakePluginAPI struct {
	jobStatus  stash.JobStatus
	result     map[string]any
	resultErr  error
	gotTask    string
	gotArgs    map[string]string
	resultID   string
}

func (f *fakePluginAPI) RunPluginTask(_ context.Context, pluginID, taskName string, args map[string]string) (string, error) {
	f.gotTask = taskName
	f.gotArgs = args
	f.resultID = args["result_id"]
	return "job-1", nil
}

func (f *fakePluginAPI) PluginResult(_ context.Context, pluginID, resultID string, out any) error {
	if f.resultErr != nil {
		return f.resultErr
	}
	raw, _ := json.Marshal(f.result)
	return json.Unmarshal(raw, out)
}

func (f *fakePluginAPI) FindJob(_ context.Context, id string) (*stash.Job, error) {
	return &stash.Job{ID: id, Status: f.jobStatus}, nil
}

func (f *fakePluginAPI) StopJob(_ context.Context, id string) error { return nil }

func TestServerTask_Acquire(t *testing.T) {
	api := &fakePluginAPI{
		jobStatus: stash.JobStatusFinished,
		result: map[string]any{
			"file_path": "/data/media/clip.mp4",
			"file_size": 1024,
			"success":   true,
		},
	}

	s := download.NewServerTask(api, &fakeClock{now: time.Now()}, "stash-downloader", "/data/media", testLogger())
	result, err := s.Acquire(context.Background(), importer.AcquireRequest{
		URL:         "https://cdn.example.com/clip.mp4",
		FallbackURL: "https://example.com/watch/1",
		Filename:    "clip",
	})

	require.NoError(t, err)
	assert.True(t, result.ServerPlaced())
	assert.Equal(t, "/data/media/clip.mp4", result.ServerPath)
	assert.Equal(t, "/data/media", result.LibraryPath)

	assert.Equal(t, "download", api.gotTask)
	assert.Equal(t, "https://cdn.example.com/clip.mp4", api.gotArgs["url"])
	assert.Equal(t, "https://example.com/watch/1", api.gotArgs["fallback_url"])
	assert.Equal(t, "clip", api.gotArgs["filename"])
	assert.Equal(t, "/data/media", api.gotArgs["output_dir"])
	assert.NotEmpty(t, api.resultID, "every run must carry a result id")
}

func TestServerTask_TaskReportsFailure(t *testing.T) {
	api := &fakePluginAPI{
		jobStatus: stash.JobStatusFinished,
		result: map[string]any{
			"success":      false,
			"result_error": "yt-dlp is not installed",
		},
	}

	s := download.NewServerTask(api, &fakeClock{now: time.Now()}, "stash-downloader", "", testLogger())
	_, err := s.Acquire(context.Background(), importer.AcquireRequest{URL: "https://example.com/x"})

	require.ErrorIs(t, err, download.ErrTaskFailed)
	assert.Contains(t, err.Error(), "yt-dlp is not installed")
}

func TestServerTask_JobFailure(t *testing.T) {
	api := &fakePluginAPI{jobStatus: stash.JobStatusFailed}

	s := download.NewServerTask(api, &fakeClock{now: time.Now()}, "stash-downloader", "", testLogger())
	_, err := s.Acquire(context.Background(), importer.AcquireRequest{URL: "https://example.com/x"})

	assert.ErrorIs(t, err, download.ErrTaskFailed)
}

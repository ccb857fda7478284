package scrape

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/vmunix/stashgrab/internal/remotejob"
	"github.com/vmunix/stashgrab/pkg/stash"
)

// PluginAPI is the slice of the catalog API the plugin-task strategy
// needs: start the extractor task, wait on its job, read its result file.
type PluginAPI interface {
	remotejob.JobAPI
	RunPluginTask(ctx context.Context, pluginID, taskName string, args map[string]string) (string, error)
	PluginResult(ctx context.Context, pluginID, resultID string, out any) error
}

// extractResult is the JSON the server-side extractor writes for us.
type extractResult struct {
	Success     bool     `json:"success"`
	Error       string   `json:"error"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Date        string   `json:"upload_date"` // YYYYMMDD per yt-dlp
	Thumbnail   string   `json:"thumbnail"`
	MediaURL    string   `json:"media_url"`
	Uploader    string   `json:"uploader"`
	Tags        []string `json:"tags"`
	Duration    int      `json:"duration"`
	Height      int      `json:"height"`
}

// pluginTaskStrategy delegates extraction to a general-purpose extractor
// running server-side as a plugin task. The extractor picks the best
// format by resolution itself; we only translate its result.
type pluginTaskStrategy struct {
	api      PluginAPI
	jobs     *remotejob.Client
	pluginID string
	maxWait  time.Duration
	log      *slog.Logger
}

func newPluginTaskStrategy(api PluginAPI, clock remotejob.Clock, pluginID string, log *slog.Logger) *pluginTaskStrategy {
	return &pluginTaskStrategy{
		api:      api,
		jobs:     remotejob.New(api, clock, log),
		pluginID: pluginID,
		maxWait:  45 * time.Second,
		log:      log,
	}
}

func (s *pluginTaskStrategy) Name() string { return "server-extractor" }

func (s *pluginTaskStrategy) CanHandle(rawURL string) bool {
	u, err := url.Parse(rawURL)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https")
}

func (s *pluginTaskStrategy) ContentTypes() ContentTypeSet {
	return Types(ContentTypeVideo)
}

func (s *pluginTaskStrategy) Scrape(ctx context.Context, rawURL string) (*Metadata, error) {
	resultID := uuid.NewString()

	res := s.jobs.RunAndWait(ctx, func(ctx context.Context) (string, error) {
		return s.api.RunPluginTask(ctx, s.pluginID, "extract", map[string]string{
			"url":       rawURL,
			"result_id": resultID,
		})
	}, remotejob.WaitOptions{PollInterval: time.Second, MaxWait: s.maxWait})
	if !res.Success {
		return nil, fmt.Errorf("extractor task: %s", res.Error)
	}

	var out extractResult
	if err := s.api.PluginResult(ctx, s.pluginID, resultID, &out); err != nil {
		if errors.Is(err, stash.ErrNotFound) {
			return nil, fmt.Errorf("%w: extractor wrote no result", ErrNoSignal)
		}
		return nil, fmt.Errorf("read extractor result: %w", err)
	}
	if !out.Success {
		if out.Error == "" {
			out.Error = "extractor reported failure"
		}
		return nil, fmt.Errorf("extractor: %s", out.Error)
	}
	if out.Title == "" && out.MediaURL == "" {
		return nil, fmt.Errorf("%w: extractor found nothing", ErrNoSignal)
	}

	md := &Metadata{
		Title:        out.Title,
		Description:  out.Description,
		Date:         ytdlpDate(out.Date),
		ThumbnailURL: out.Thumbnail,
		MediaURL:     out.MediaURL,
		Studio:       out.Uploader,
		Tags:         out.Tags,
		Duration:     out.Duration,
		ContentType:  ContentTypeVideo,
		Scraper:      s.Name(),
	}
	if out.Height > 0 {
		md.Quality = fmt.Sprintf("%dp", out.Height)
	}
	return md, nil
}

// ytdlpDate converts yt-dlp's YYYYMMDD form to YYYY-MM-DD.
func ytdlpDate(s string) string {
	t, err := time.Parse("20060102", s)
	if err != nil {
		return ""
	}
	return t.Format("2006-01-02")
}

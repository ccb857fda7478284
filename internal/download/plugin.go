package download

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/vmunix/stashgrab/internal/importer"
	"github.com/vmunix/stashgrab/internal/remotejob"
)

// PluginAPI is the slice of the catalog API the server-side acquirer
// needs: plugin task control plus job polling.
type PluginAPI interface {
	remotejob.JobAPI
	RunPluginTask(ctx context.Context, pluginID, taskName string, args map[string]string) (string, error)
	PluginResult(ctx context.Context, pluginID, resultID string, out any) error
}

// taskResult is the JSON the downloader plugin publishes per result id.
type taskResult struct {
	FilePath string `json:"file_path"`
	FileSize int64  `json:"file_size"`
	Success  bool   `json:"success"`
	Error    string `json:"result_error"`
}

// ServerTask delegates acquisition to the catalog's downloader plugin,
// which runs yt-dlp next to the library. Implements importer.Acquirer
// for sandboxed deployments and extractor-only sources.
type ServerTask struct {
	api       PluginAPI
	jobs      *remotejob.Client
	pluginID  string
	outputDir string
	wait      remotejob.WaitOptions
	log       *slog.Logger
}

// NewServerTask creates a server-side acquirer. outputDir is the library
// directory the plugin downloads into, used as the scan root later.
func NewServerTask(api PluginAPI, clock remotejob.Clock, pluginID, outputDir string, log *slog.Logger) *ServerTask {
	if log == nil {
		log = slog.Default()
	}
	return &ServerTask{
		api:       api,
		jobs:      remotejob.New(api, clock, log),
		pluginID:  pluginID,
		outputDir: outputDir,
		wait:      remotejob.DefaultWaitOptions(),
		log:       log.With("component", "download"),
	}
}

// Acquire runs the plugin's download task and waits for it to publish a
// result. The file lands on the server's filesystem; only its path comes
// back.
func (s *ServerTask) Acquire(ctx context.Context, req importer.AcquireRequest) (*importer.AcquireResult, error) {
	resultID := uuid.NewString()
	args := map[string]string{
		"url":       req.URL,
		"result_id": resultID,
	}
	if req.FallbackURL != "" {
		args["fallback_url"] = req.FallbackURL
	}
	if req.Filename != "" {
		args["filename"] = req.Filename
	}
	if s.outputDir != "" {
		args["output_dir"] = s.outputDir
	}

	res := s.jobs.RunAndWait(ctx, func(ctx context.Context) (string, error) {
		return s.api.RunPluginTask(ctx, s.pluginID, "download", args)
	}, s.wait)
	if !res.Success {
		reason := res.Error
		if res.TimedOut {
			reason = "task timed out"
		}
		return nil, fmt.Errorf("%w: %s", ErrTaskFailed, reason)
	}

	var result taskResult
	if err := s.api.PluginResult(ctx, s.pluginID, resultID, &result); err != nil {
		return nil, fmt.Errorf("%w: fetching result: %v", ErrTaskFailed, err)
	}
	if !result.Success || result.FilePath == "" {
		reason := result.Error
		if reason == "" {
			reason = "no file produced"
		}
		return nil, fmt.Errorf("%w: %s", ErrTaskFailed, reason)
	}

	s.log.Info("server download complete", "path", result.FilePath, "bytes", result.FileSize)
	if req.OnProgress != nil {
		req.OnProgress(1.0)
	}
	return &importer.AcquireResult{
		ServerPath:  result.FilePath,
		LibraryPath: s.outputDir,
	}, nil
}

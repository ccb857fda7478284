package importer

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/vmunix/stashgrab/internal/remotejob"
	"github.com/vmunix/stashgrab/internal/scrape"
	"github.com/vmunix/stashgrab/pkg/stash"
)

// importServerSide finishes an import whose file was placed on the
// server's filesystem. The catalog has to scan the file into a record
// before metadata can be applied, so this branch waits on the scan,
// locates the record by path, and updates it. When the record cannot be
// located within the retry budget the import still succeeds, degraded,
// with a synthetic pending id.
func (i *Importer) importServerSide(ctx context.Context, req *Request, acq *AcquireResult, log *slog.Logger) (*Result, error) {
	i.phase(req, PhaseAwaitingScan, log)
	i.awaitScan(ctx, req, acq, log)

	recordID, ok := i.locateByPath(ctx, req, acq.ServerPath, log)
	if !ok {
		result := &Result{
			RecordID: "pending:" + uuid.NewString(),
			Path:     acq.ServerPath,
			Degraded: true,
		}
		i.warn(req, log, "record not located after scan, completing degraded",
			"path", acq.ServerPath)
		i.complete(req, result, log)
		return result, nil
	}
	log = log.With("record_id", recordID)

	i.phase(req, PhaseProcessing, log)
	performerIDs, tagIDs, studioID := i.resolveEntities(ctx, req, log)

	i.phase(req, PhaseCreating, log)
	if err := i.updateRecord(ctx, req, recordID, performerIDs, tagIDs, studioID); err != nil {
		return i.fail(req, log, fmt.Errorf("%w: %v", ErrCreateFailed, err))
	}

	if err := i.postImport(ctx, req, recordID, log); err != nil {
		return i.fail(req, log, err)
	}

	result := &Result{RecordID: recordID, Path: acq.ServerPath, Updated: true}
	i.complete(req, result, log)
	return result, nil
}

// awaitScan blocks until the catalog scan covering the placed file
// reaches a terminal state. A failed or timed-out scan is only a
// warning; the locate loop below decides the real outcome.
func (i *Importer) awaitScan(ctx context.Context, req *Request, acq *AcquireResult, log *slog.Logger) {
	opts := remotejob.WaitOptions{
		PollInterval: i.cfg.ScanPollInterval,
		MaxWait:      i.cfg.ScanMaxWait,
	}

	var res remotejob.Result
	if acq.ScanJobID != "" {
		res = i.jobs.Wait(ctx, acq.ScanJobID, opts)
	} else {
		path := acq.LibraryPath
		if path == "" {
			path = filepath.Dir(acq.ServerPath)
		}
		res = i.jobs.RunAndWait(ctx, func(ctx context.Context) (string, error) {
			return i.catalog.MetadataScan(ctx, []string{path})
		}, opts)
	}

	switch {
	case res.Success:
	case res.TimedOut:
		i.warn(req, log, "scan did not finish within budget", "job_id", res.JobID)
	default:
		i.warn(req, log, "scan job did not succeed", "job_id", res.JobID, "error", res.Error)
	}
}

// locateByPath polls the catalog for the record backing path, with
// doubling backoff between attempts.
func (i *Importer) locateByPath(ctx context.Context, req *Request, path string, log *slog.Logger) (string, bool) {
	backoff := i.cfg.LocateBackoff
	for attempt := 0; attempt < i.cfg.LocateRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return "", false
			case <-i.clock.After(backoff):
			}
			if backoff *= 2; backoff > locateBackoffCap {
				backoff = locateBackoffCap
			}
		}

		id, err := i.findByPath(ctx, req.Metadata.ContentType, path)
		if err != nil {
			log.Debug("locate attempt failed", "attempt", attempt, "error", err)
			continue
		}
		if id != "" {
			log.Info("located record by path", "record_id", id, "attempts", attempt+1)
			return id, true
		}
	}
	return "", false
}

func (i *Importer) findByPath(ctx context.Context, ct scrape.ContentType, path string) (string, error) {
	switch ct {
	case scrape.ContentTypeImage, scrape.ContentTypeGallery:
		images, err := i.catalog.FindImagesByPath(ctx, path)
		if err != nil {
			return "", err
		}
		for _, img := range images {
			if fileMatches(img.Files, path) {
				return img.ID, nil
			}
		}
	default:
		scenes, err := i.catalog.FindScenesByPath(ctx, path)
		if err != nil {
			return "", err
		}
		for _, sc := range scenes {
			if fileMatches(sc.Files, path) {
				return sc.ID, nil
			}
		}
	}
	return "", nil
}

func fileMatches(files []stash.File, path string) bool {
	for _, f := range files {
		if f.Path == path {
			return true
		}
	}
	return false
}

// postImport runs the requested enrichment against the updated record.
// A failed identify job fails the import; a failed rescrape only warns,
// the record already holds the approved metadata.
func (i *Importer) postImport(ctx context.Context, req *Request, recordID string, log *slog.Logger) error {
	switch req.PostImport {
	case ActionIdentify:
		i.phase(req, PhaseAwaitingEnrichment, log)
		res := i.jobs.RunAndWait(ctx, func(ctx context.Context) (string, error) {
			return i.catalog.MetadataIdentify(ctx, []string{recordID})
		}, remotejob.WaitOptions{
			PollInterval: i.cfg.ScanPollInterval,
			MaxWait:      i.cfg.IdentifyMaxWait,
		})
		if !res.Success {
			reason := res.Error
			if res.TimedOut {
				reason = "timed out"
			}
			return fmt.Errorf("%w: identify job: %s", ErrEnrichmentFailed, reason)
		}

	case ActionRescrape:
		i.phase(req, PhaseAwaitingEnrichment, log)
		scraped, err := i.catalog.ScrapeSceneURL(ctx, req.URL)
		if err != nil {
			i.warn(req, log, "post-import rescrape failed", "error", err)
			return nil
		}
		if err := i.applyRescrape(ctx, recordID, scraped); err != nil {
			i.warn(req, log, "failed to apply rescrape result", "error", err)
		}
	}
	return nil
}

// applyRescrape layers non-empty rescraped fields over the record.
func (i *Importer) applyRescrape(ctx context.Context, recordID string, scraped *stash.ScrapedScene) error {
	input := stash.SceneUpdateInput{ID: recordID}
	changed := false
	if scraped.Title != "" {
		input.Title = scraped.Title
		changed = true
	}
	if scraped.Details != "" {
		input.Details = scraped.Details
		changed = true
	}
	if scraped.Date != "" {
		input.Date = scraped.Date
		changed = true
	}
	if !changed {
		return nil
	}
	_, err := i.catalog.UpdateScene(ctx, input)
	return err
}

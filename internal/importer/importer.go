// Package importer drives the end-to-end import of scraped media into
// the catalog: acquire the file, resolve entities, create or update the
// record, then run optional server-side enrichment.
package importer

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/vmunix/stashgrab/internal/events"
	"github.com/vmunix/stashgrab/internal/remotejob"
	"github.com/vmunix/stashgrab/internal/scrape"
	"github.com/vmunix/stashgrab/pkg/stash"
)

//go:generate mockgen -destination=mocks/mock_catalog.go -package=mocks github.com/vmunix/stashgrab/internal/importer Catalog

// Catalog is the slice of the remote catalog API the orchestrator needs.
type Catalog interface {
	CreatePerformer(ctx context.Context, name string) (*stash.Entity, error)
	CreateTag(ctx context.Context, name string) (*stash.Entity, error)
	CreateStudio(ctx context.Context, name string) (*stash.Entity, error)
	CreateScene(ctx context.Context, input stash.SceneCreateInput) (*stash.Scene, error)
	UpdateScene(ctx context.Context, input stash.SceneUpdateInput) (*stash.Scene, error)
	CreateImage(ctx context.Context, input stash.ImageCreateInput) (*stash.Image, error)
	UpdateImage(ctx context.Context, input stash.ImageUpdateInput) (*stash.Image, error)
	FindScenesByPath(ctx context.Context, path string) ([]stash.Scene, error)
	FindImagesByPath(ctx context.Context, path string) ([]stash.Image, error)
	MetadataScan(ctx context.Context, paths []string) (string, error)
	MetadataIdentify(ctx context.Context, sceneIDs []string) (string, error)
	ScrapeSceneURL(ctx context.Context, url string) (*stash.ScrapedScene, error)
	FindJob(ctx context.Context, id string) (*stash.Job, error)
	StopJob(ctx context.Context, id string) error
}

// Config for the orchestrator.
type Config struct {
	// HotlinkHosts lists source hosts whose direct media URLs need a
	// specialized extractor to resolve hotlink protection. For these the
	// page URL stays primary and the scraped URL is only an acquisition
	// fallback.
	HotlinkHosts []string

	// ScanPollInterval and ScanMaxWait bound the wait on the catalog
	// scan job after a server-side placement.
	ScanPollInterval time.Duration
	ScanMaxWait      time.Duration

	// LocateRetries and LocateBackoff bound the search for the newly
	// scanned record by path. Backoff doubles per attempt, capped at
	// locateBackoffCap.
	LocateRetries int
	LocateBackoff time.Duration

	// IdentifyMaxWait bounds the post-import identify job.
	IdentifyMaxWait time.Duration
}

const locateBackoffCap = 30 * time.Second

func (c *Config) withDefaults() {
	if c.ScanPollInterval <= 0 {
		c.ScanPollInterval = time.Second
	}
	if c.ScanMaxWait <= 0 {
		c.ScanMaxWait = 2 * time.Minute
	}
	if c.LocateRetries <= 0 {
		c.LocateRetries = 10
	}
	if c.LocateBackoff <= 0 {
		c.LocateBackoff = 2 * time.Second
	}
	if c.IdentifyMaxWait <= 0 {
		c.IdentifyMaxWait = 2 * time.Minute
	}
}

// Importer orchestrates imports. One Import call per request; requests
// are consumed exactly once. Independent imports may run concurrently.
type Importer struct {
	catalog  Catalog
	acquirer Acquirer
	jobs     *remotejob.Client
	clock    remotejob.Clock
	bus      *events.Bus   // may be nil
	history  *HistoryStore // may be nil
	cfg      Config
	log      *slog.Logger
}

// New creates an importer. Bus and history may be nil; a nil clock uses
// the wall clock.
func New(catalog Catalog, acquirer Acquirer, cfg Config, clock remotejob.Clock,
	bus *events.Bus, history *HistoryStore, log *slog.Logger) *Importer {

	cfg.withDefaults()
	if clock == nil {
		clock = remotejob.RealClock()
	}
	if log == nil {
		log = slog.Default()
	}
	return &Importer{
		catalog:  catalog,
		acquirer: acquirer,
		jobs:     remotejob.New(catalog, clock, log),
		clock:    clock,
		bus:      bus,
		history:  history,
		cfg:      cfg,
		log:      log.With("component", "importer"),
	}
}

// Import runs one request to a terminal outcome. The caller always gets
// either a Result (possibly degraded) or a structured failure, never an
// indeterminate state.
func (i *Importer) Import(ctx context.Context, req *Request) (*Result, error) {
	switch {
	case req.consumed:
		return nil, ErrAlreadyConsumed
	case req.URL == "":
		return nil, ErrNoURL
	case req.Metadata == nil:
		return nil, ErrNoMetadata
	}
	req.consumed = true
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	if req.PostImport == "" {
		req.PostImport = ActionNone
	}

	log := i.log.With("import_id", req.ID, "url", req.URL)
	i.phase(req, PhasePending, log)

	primary, fallbackURL := i.selectSourceURL(req, log)

	i.phase(req, PhaseDownloading, log)
	acq, err := i.acquirer.Acquire(ctx, AcquireRequest{
		URL:         primary,
		FallbackURL: fallbackURL,
		Filename:    req.Filename,
		OnProgress: func(fraction float64) {
			i.publish(events.NewImportProgress(req.ID, fraction))
		},
	})
	if err != nil {
		return i.fail(req, log, fmt.Errorf("%w: %v", ErrAcquireFailed, err))
	}

	if acq.ServerPlaced() {
		return i.importServerSide(ctx, req, acq, log)
	}

	i.phase(req, PhaseProcessing, log)
	performerIDs, tagIDs, studioID := i.resolveEntities(ctx, req, log)

	i.phase(req, PhaseCreating, log)
	recordID, err := i.createRecord(ctx, req, performerIDs, tagIDs, studioID)
	if err != nil {
		return i.fail(req, log, fmt.Errorf("%w: %v", ErrCreateFailed, err))
	}

	result := &Result{RecordID: recordID, Data: acq.Data}
	i.complete(req, result, log)
	return result, nil
}

// selectSourceURL prefers the scraped direct media URL over the page
// URL. Hotlink-protected hosts keep the page URL primary; a malformed or
// relative scraped URL silently falls back to the page URL.
func (i *Importer) selectSourceURL(req *Request, log *slog.Logger) (primary, fallback string) {
	mediaURL := req.Metadata.MediaURL
	if !isAbsoluteHTTP(mediaURL) {
		if mediaURL != "" {
			log.Debug("scraped media url unusable, using page url", "media_url", mediaURL)
		}
		return req.URL, ""
	}
	if i.isHotlinkHost(req.URL) {
		log.Debug("hotlink-protected host, page url stays primary")
		return req.URL, mediaURL
	}
	return mediaURL, req.URL
}

func (i *Importer) isHotlinkHost(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	host := u.Hostname()
	for _, h := range i.cfg.HotlinkHosts {
		if host == h || hasSuffixDomain(host, h) {
			return true
		}
	}
	return false
}

func hasSuffixDomain(host, domain string) bool {
	return len(host) > len(domain)+1 && host[len(host)-len(domain)-1] == '.' &&
		host[len(host)-len(domain):] == domain
}

func isAbsoluteHTTP(rawURL string) bool {
	if rawURL == "" {
		return false
	}
	u, err := url.Parse(rawURL)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// createRecord issues the content-type-appropriate create mutation.
func (i *Importer) createRecord(ctx context.Context, req *Request,
	performerIDs, tagIDs []string, studioID string) (string, error) {

	md := req.Metadata
	switch md.ContentType {
	case scrape.ContentTypeImage, scrape.ContentTypeGallery:
		image, err := i.catalog.CreateImage(ctx, stash.ImageCreateInput{
			Title:        md.Title,
			Details:      md.Description,
			Date:         md.Date,
			URLs:         []string{req.URL},
			StudioID:     studioID,
			PerformerIDs: performerIDs,
			TagIDs:       tagIDs,
		})
		if err != nil {
			return "", err
		}
		return image.ID, nil
	default:
		scene, err := i.catalog.CreateScene(ctx, stash.SceneCreateInput{
			Title:        md.Title,
			Details:      md.Description,
			Date:         md.Date,
			URLs:         []string{req.URL},
			StudioID:     studioID,
			PerformerIDs: performerIDs,
			TagIDs:       tagIDs,
			CoverImage:   md.ThumbnailURL,
		})
		if err != nil {
			return "", err
		}
		return scene.ID, nil
	}
}

// updateRecord applies the approved metadata to an existing record.
func (i *Importer) updateRecord(ctx context.Context, req *Request, recordID string,
	performerIDs, tagIDs []string, studioID string) error {

	md := req.Metadata
	switch md.ContentType {
	case scrape.ContentTypeImage, scrape.ContentTypeGallery:
		_, err := i.catalog.UpdateImage(ctx, stash.ImageUpdateInput{
			ID:           recordID,
			Title:        md.Title,
			Details:      md.Description,
			Date:         md.Date,
			URLs:         []string{req.URL},
			StudioID:     studioID,
			PerformerIDs: performerIDs,
			TagIDs:       tagIDs,
		})
		return err
	default:
		_, err := i.catalog.UpdateScene(ctx, stash.SceneUpdateInput{
			ID:           recordID,
			Title:        md.Title,
			Details:      md.Description,
			Date:         md.Date,
			URLs:         []string{req.URL},
			StudioID:     studioID,
			PerformerIDs: performerIDs,
			TagIDs:       tagIDs,
			CoverImage:   md.ThumbnailURL,
		})
		return err
	}
}

// phase records a state transition.
func (i *Importer) phase(req *Request, p Phase, log *slog.Logger) {
	log.Info("import phase", "phase", string(p))
	i.publish(events.NewImportPhaseChanged(req.ID, string(p)))
}

// warn logs and emits a recoverable problem.
func (i *Importer) warn(req *Request, log *slog.Logger, msg string, args ...any) {
	log.Warn(msg, args...)
	i.publish(events.NewImportLog(req.ID, "warn", msg))
}

// complete finishes the import in a successful terminal state.
func (i *Importer) complete(req *Request, result *Result, log *slog.Logger) {
	i.phase(req, PhaseComplete, log)
	i.publish(events.NewImportCompleted(req.ID, result.RecordID, result.Degraded))
	i.record(req, result, "")
	log.Info("import complete", "record_id", result.RecordID, "degraded", result.Degraded)
}

// fail converts err into the failed terminal state.
func (i *Importer) fail(req *Request, log *slog.Logger, err error) (*Result, error) {
	log.Error("import failed", "error", err)
	i.phase(req, PhaseFailed, log)
	i.publish(events.NewImportFailed(req.ID, err.Error()))
	i.record(req, nil, err.Error())
	return nil, err
}

// record appends the terminal outcome to history, when configured.
func (i *Importer) record(req *Request, result *Result, failure string) {
	if i.history == nil {
		return
	}
	entry := &HistoryEntry{ImportID: req.ID, URL: req.URL}
	switch {
	case failure != "":
		entry.Outcome = OutcomeFailed
		entry.Message = failure
	case result.Degraded:
		entry.Outcome = OutcomeDegraded
		entry.RecordID = result.RecordID
		entry.Message = "record not located after scan; file at " + result.Path
	default:
		entry.Outcome = OutcomeImported
		entry.RecordID = result.RecordID
	}
	if err := i.history.Add(entry); err != nil {
		i.log.Warn("failed to record import history", "import_id", req.ID, "error", err)
	}
}

func (i *Importer) publish(e events.Event) {
	if i.bus != nil {
		i.bus.Publish(e)
	}
}

package importer

import (
	"github.com/vmunix/stashgrab/internal/scrape"
	"github.com/vmunix/stashgrab/pkg/stash"
)

// PostImportAction selects optional server-side enrichment after the
// record exists.
type PostImportAction string

const (
	ActionNone     PostImportAction = "none"
	ActionIdentify PostImportAction = "run-identify"
	ActionRescrape PostImportAction = "rescrape-by-url"
)

// Phase is one step of the import state machine.
type Phase string

const (
	PhasePending             Phase = "pending"
	PhaseDownloading         Phase = "downloading"
	PhaseProcessing          Phase = "processing"
	PhaseCreating            Phase = "creating"
	PhaseAwaitingScan        Phase = "awaiting-scan"
	PhaseAwaitingEnrichment  Phase = "awaiting-enrichment"
	PhaseComplete            Phase = "complete"
	PhaseFailed              Phase = "failed"
)

// Request is a user-approved import: the edited metadata plus the
// reviewed entity sets. Entities may be real catalog entities or
// session-local placeholders; placeholders are created during the
// import, never before. A request is consumed exactly once.
type Request struct {
	// ID identifies the import chain in events and history. Assigned
	// when empty.
	ID string

	// URL is the source page URL the metadata was scraped from.
	URL string

	// Metadata is the approved (possibly edited) scrape result.
	Metadata *scrape.Metadata

	// Performers and Tags are the reviewed entity sets. Placeholder ids
	// mark entities that do not exist in the catalog yet.
	Performers []stash.Entity
	Tags       []stash.Entity

	// Studio is the reviewed studio, or nil when cleared.
	Studio *stash.Entity

	// Filename is an optional name hint for acquisition.
	Filename string

	// PostImport selects optional enrichment. Defaults to none.
	PostImport PostImportAction

	consumed bool
}

// Result is the caller-facing terminal outcome of a successful import.
type Result struct {
	// RecordID is the catalog record id, or a synthetic "pending:" id
	// for a degraded success.
	RecordID string

	// Path is the on-disk path of the media file, when known. For
	// server-side placements this is the server path.
	Path string

	// Data holds the fetched file bytes when acquisition ran in this
	// process. The caller decides where to persist them; the orchestrator
	// never drops them.
	Data []byte `json:"-"`

	// Updated is true when an existing record was updated rather than a
	// new one created.
	Updated bool

	// Degraded marks a server-side placement whose record could not be
	// located within the retry budget. The file is on disk; metadata
	// application is left to external collaborators.
	Degraded bool
}

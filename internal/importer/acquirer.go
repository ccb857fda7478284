package importer

import "context"

// ProgressFunc reports acquisition progress as a 0..1 fraction.
type ProgressFunc func(fraction float64)

// AcquireRequest asks the acquisition collaborator for the bytes behind
// a URL.
type AcquireRequest struct {
	// URL is the primary location to fetch.
	URL string

	// FallbackURL, when set, is tried if the primary fails.
	FallbackURL string

	// Filename is a hint for server-side placement.
	Filename string

	// OnProgress is forwarded verbatim from the caller. May be nil.
	OnProgress ProgressFunc
}

// AcquireResult is either in-memory bytes or a server-side placement.
type AcquireResult struct {
	// Data holds the file bytes for an in-memory result. Nil when the
	// file was placed server-side instead.
	Data []byte

	// ServerPath is the on-disk path of a server-side placement.
	ServerPath string

	// LibraryPath is the catalog library root containing ServerPath,
	// when the collaborator knows it.
	LibraryPath string

	// ScanJobID tracks a catalog scan the collaborator already
	// triggered, when any.
	ScanJobID string
}

// ServerPlaced reports whether the file was materialized on the server's
// filesystem rather than returned as bytes.
func (r *AcquireResult) ServerPlaced() bool { return r.ServerPath != "" }

// Acquirer obtains media files. Implementations live outside the core;
// the orchestrator only depends on this contract.
type Acquirer interface {
	Acquire(ctx context.Context, req AcquireRequest) (*AcquireResult, error)
}

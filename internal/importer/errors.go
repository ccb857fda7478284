package importer

import "errors"

var (
	// ErrNoMetadata indicates the request carries no approved metadata.
	ErrNoMetadata = errors.New("import request has no metadata")

	// ErrNoURL indicates the request carries no source URL.
	ErrNoURL = errors.New("import request has no source url")

	// ErrAlreadyConsumed indicates the request was imported before.
	// Requests are consumed exactly once.
	ErrAlreadyConsumed = errors.New("import request already consumed")

	// ErrAcquireFailed indicates file acquisition failed. Fatal to the
	// import; no retry at this layer.
	ErrAcquireFailed = errors.New("file acquisition failed")

	// ErrCreateFailed indicates the catalog create/update call failed.
	ErrCreateFailed = errors.New("record create/update failed")

	// ErrEnrichmentFailed indicates the post-import identify job failed.
	ErrEnrichmentFailed = errors.New("post-import enrichment failed")
)

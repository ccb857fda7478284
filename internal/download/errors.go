package download

import "errors"

// Sentinel errors for the download package.
var (
	// ErrDownloadFailed is returned when a fetch fails for any reason
	// other than size.
	ErrDownloadFailed = errors.New("download failed")

	// ErrTooLarge is returned when the response exceeds the in-memory
	// size budget.
	ErrTooLarge = errors.New("download too large")

	// ErrTaskFailed is returned when the server-side download task
	// reports failure.
	ErrTaskFailed = errors.New("server download task failed")
)

package scrape

import "context"

// Strategy is one pluggable technique for deriving metadata from a URL.
//
// CanHandle must be cheap and side-effect free (no network). Scrape must
// return an error rather than a half-filled silent success when it finds
// no usable signal, so the registry can move on to the next strategy. The
// universal fallback is the one exception: it has nothing to defer to and
// always succeeds for a well-formed URL.
type Strategy interface {
	Name() string
	CanHandle(rawURL string) bool
	ContentTypes() ContentTypeSet
	Scrape(ctx context.Context, rawURL string) (*Metadata, error)
}

// Environment selects which strategies a registry constructs.
type Environment string

const (
	// EnvSandboxed registers only server-delegated strategies. Used when
	// the process may not talk to third-party hosts directly.
	EnvSandboxed Environment = "sandboxed"

	// EnvUnrestricted additionally registers strategies that fetch from
	// third-party hosts themselves.
	EnvUnrestricted Environment = "unrestricted"
)

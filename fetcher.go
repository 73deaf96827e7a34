package skigv

import "context"

// Fetcher retrieves HTML pages from the resort site.
// Implementations send realistic browser headers: the site rejects default
// client user-agents.
type Fetcher interface {
	// Fetch retrieves the page at url and returns its HTML.
	// The context controls timeout and cancellation. A transport failure,
	// timeout, or non-2xx status is reported as a *FetchError.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases client resources.
	// Must be called when the Fetcher is no longer needed.
	Close() error
}

// PacingLimiter enforces a minimum delay between requests to a host.
// Multi-page crawls are intentionally sequential with pacing to respect the
// upstream site's implicit rate limits.
type PacingLimiter interface {
	// Wait blocks until the rate limit allows a request to the host.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, host string) error
}

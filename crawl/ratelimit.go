// Package crawl orchestrates multi-page extraction: the zone crawl that
// walks one page per zone, the restaurant crawl over discovered company
// pages, and the concurrent single-page snapshot of the remaining domains.
//
// Multi-page crawls are sequential with enforced pacing between fetches.
// That is a deliberate backpressure policy toward the upstream site, not an
// accidental bottleneck; the minimum delay is configurable but never removed.
package crawl

import (
	"context"
	"sync"
	"time"

	"github.com/dkashin/skigv"
	"golang.org/x/time/rate"
)

// DefaultPacingDelay is the minimum delay between fetches within one crawl,
// matching the pause the site has tolerated for years.
const DefaultPacingDelay = time.Second

var _ skigv.PacingLimiter = (*Pacer)(nil)

// Pacer enforces a minimum delay between requests per host using token
// buckets. Crawls of different hosts do not pace each other; requests within
// one host are spaced by at least the configured delay.
type Pacer struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	delay    time.Duration
}

// NewPacer creates a Pacer with the given minimum inter-request delay.
// A non-positive delay falls back to DefaultPacingDelay. Each host gets its
// own limiter with a burst of 1, so the first request passes immediately.
func NewPacer(minDelay time.Duration) *Pacer {
	if minDelay <= 0 {
		minDelay = DefaultPacingDelay
	}
	return &Pacer{
		limiters: make(map[string]*rate.Limiter),
		delay:    minDelay,
	}
}

// Wait blocks until the pacing delay allows a request to the host.
// Returns an error if the context is canceled before the wait completes.
func (p *Pacer) Wait(ctx context.Context, host string) error {
	p.mu.Lock()
	limiter, ok := p.limiters[host]
	if !ok {
		limiter = rate.NewLimiter(rate.Every(p.delay), 1)
		p.limiters[host] = limiter
	}
	p.mu.Unlock()

	return limiter.Wait(ctx)
}

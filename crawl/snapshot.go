package crawl

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/dkashin/skigv"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Single-page domain paths on the resort site.
const (
	DefaultWeatherPath  = "/weather/"
	DefaultSchedulePath = "/about-us/schedule/"
	DefaultTrailsPath   = "/navigate/eko-tropyi/"
	DefaultPricesPath   = "/skipass-info/"
)

// Snapshot aggregates the single-page domains of the site: current weather,
// lift schedules, eco-trails, and price plans. Each domain is independent;
// a failed domain leaves its field nil and is recorded in Failures.
type Snapshot struct {
	TakenAt  time.Time              `json:"takenAt"`
	Weather  *skigv.WeatherSnapshot `json:"weather,omitempty"`
	Lifts    []skigv.Lift           `json:"lifts,omitempty"`
	Trails   []skigv.EcoTrail       `json:"trails,omitempty"`
	Prices   *skigv.PriceList       `json:"prices,omitempty"`
	Failures []PageFailure          `json:"failures,omitempty"`
}

// SnapshotCrawler fetches the four single-page domains concurrently and
// assembles them into one Snapshot. Pages live on the same host, so the
// shared Limiter still spaces the requests.
type SnapshotCrawler struct {
	Fetcher skigv.Fetcher
	Limiter skigv.PacingLimiter

	Weather skigv.WeatherExtractor
	Lifts   skigv.LiftExtractor
	Trails  skigv.TrailExtractor
	Prices  skigv.PriceExtractor

	// BaseURL is the site root. Defaults to DefaultBaseURL.
	BaseURL string

	// Page path overrides. Empty means the default path.
	WeatherPath  string
	SchedulePath string
	TrailsPath   string
	PricesPath   string

	// RetryDelays overrides the fetch retry backoff. Nil means defaults.
	RetryDelays []time.Duration

	// Now is the clock for TakenAt. Nil means time.Now.
	Now func() time.Time

	Logger *slog.Logger
}

// TakeSnapshot fetches and extracts all configured domains concurrently.
// Domains whose extractor is nil are skipped. Per-domain failures are
// recorded in the snapshot; the returned error is non-nil only on
// cancellation.
func (c *SnapshotCrawler) TakeSnapshot(ctx context.Context) (*Snapshot, error) {
	logger := c.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	logger = logger.With("crawl", uuid.NewString())

	baseURL := c.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	now := c.Now
	if now == nil {
		now = time.Now
	}

	snap := &Snapshot{TakenAt: now()}
	var mu sync.Mutex

	fail := func(url string, err error) {
		mu.Lock()
		snap.Failures = append(snap.Failures, PageFailure{URL: url, Err: err})
		mu.Unlock()
	}

	g, gctx := errgroup.WithContext(ctx)

	if c.Weather != nil {
		url := baseURL + orDefault(c.WeatherPath, DefaultWeatherPath)
		g.Go(func() error {
			html, err := c.fetch(gctx, url, logger)
			if err != nil {
				fail(url, err)
				return nil
			}
			weather, err := c.Weather.ExtractWeather(html, baseURL)
			if err != nil {
				fail(url, err)
				return nil
			}
			snap.Weather = weather
			return nil
		})
	}

	if c.Lifts != nil {
		url := baseURL + orDefault(c.SchedulePath, DefaultSchedulePath)
		g.Go(func() error {
			html, err := c.fetch(gctx, url, logger)
			if err != nil {
				fail(url, err)
				return nil
			}
			lifts, err := c.Lifts.ExtractLifts(html)
			if err != nil {
				fail(url, err)
				return nil
			}
			snap.Lifts = lifts
			return nil
		})
	}

	if c.Trails != nil {
		url := baseURL + orDefault(c.TrailsPath, DefaultTrailsPath)
		g.Go(func() error {
			html, err := c.fetch(gctx, url, logger)
			if err != nil {
				fail(url, err)
				return nil
			}
			trails, err := c.Trails.ExtractTrails(html)
			if err != nil {
				fail(url, err)
				return nil
			}
			snap.Trails = trails
			return nil
		})
	}

	if c.Prices != nil {
		url := baseURL + orDefault(c.PricesPath, DefaultPricesPath)
		g.Go(func() error {
			html, err := c.fetch(gctx, url, logger)
			if err != nil {
				fail(url, err)
				return nil
			}
			prices, err := c.Prices.ExtractPrices(html)
			if err != nil {
				fail(url, err)
				return nil
			}
			snap.Prices = prices
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	// Cancellation surfaces as a failure on every in-flight domain; report
	// it as the crawl error instead of a degraded snapshot.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	logger.Info("snapshot taken", "failures", len(snap.Failures))
	return snap, nil
}

func (c *SnapshotCrawler) fetch(ctx context.Context, url string, logger *slog.Logger) (string, error) {
	if c.Limiter != nil {
		if err := c.Limiter.Wait(ctx, hostOf(url)); err != nil {
			return "", err
		}
	}
	return fetchWithRetry(ctx, url, c.Fetcher.Fetch, logger, c.RetryDelays)
}

func orDefault(path, fallback string) string {
	if path == "" {
		return fallback
	}
	return path
}

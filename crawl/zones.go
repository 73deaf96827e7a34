package crawl

import (
	"context"
	"io"
	"log/slog"
	"net/url"
	"regexp"
	"time"

	"github.com/dkashin/skigv"
	"github.com/google/uuid"
)

// Default locations on the resort site.
const (
	DefaultBaseURL   = "https://ski-gv.ru"
	DefaultHillsPath = "/hills/1/1/"
)

// hillsLinkRe matches a hills index link on the home page, used when the
// fixed index path is not configured.
var hillsLinkRe = regexp.MustCompile(`/hills/\d+/\d+/`)

// ZoneFailure records a zone whose page could not be fetched or parsed.
type ZoneFailure struct {
	Zone skigv.ZoneLink `json:"zone"`
	Err  error          `json:"-"`
}

// ZoneResult is the outcome of a zone crawl. A failure on one zone does not
// abort the crawl: Zones holds every zone that succeeded and Failures records
// the rest, so a single bad page degrades the result instead of zeroing it.
type ZoneResult struct {
	Season   skigv.Season  `json:"season"`
	Zones    []skigv.Zone  `json:"zones"`
	Failures []ZoneFailure `json:"failures,omitempty"`
}

// ZoneCrawler walks the hills index page and each linked zone page,
// producing one Zone per link. Zone pages are fetched sequentially with
// pacing between requests.
type ZoneCrawler struct {
	Fetcher skigv.Fetcher
	Tracks  skigv.TrackExtractor
	Limiter skigv.PacingLimiter

	// BaseURL is the site root. Defaults to DefaultBaseURL.
	BaseURL string

	// HillsPath is the path of the hills index page. When empty, the home
	// page is fetched and scanned for the first hills link instead.
	HillsPath string

	// Season tags the result; the Fetcher's session cookie selects the
	// actual page variant.
	Season skigv.Season

	// RetryDelays overrides the fetch retry backoff. Nil means defaults.
	RetryDelays []time.Duration

	Logger *slog.Logger
}

// CrawlZones fetches the hills index, extracts the zone links, and fetches
// each zone page in turn. Per-zone fetch or parse failures are recorded in
// the result; the returned error is non-nil only when the index itself
// cannot be fetched or parsed.
func (c *ZoneCrawler) CrawlZones(ctx context.Context) (*ZoneResult, error) {
	logger := c.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	logger = logger.With("crawl", uuid.NewString())

	baseURL := c.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	indexURL, err := c.indexURL(ctx, baseURL, logger)
	if err != nil {
		return nil, err
	}

	if err := c.wait(ctx, indexURL); err != nil {
		return nil, err
	}
	html, err := fetchWithRetry(ctx, indexURL, c.Fetcher.Fetch, logger, c.RetryDelays)
	if err != nil {
		return nil, err
	}

	links, err := c.Tracks.ExtractZoneLinks(html, baseURL)
	if err != nil {
		return nil, err
	}
	logger.Info("zone crawl started", "index", indexURL, "zones", len(links))

	result := &ZoneResult{Season: c.Season, Zones: []skigv.Zone{}}
	var seen SeenSet

	for _, link := range links {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		zone, err := c.crawlZone(ctx, link, baseURL, &seen, logger)
		if err != nil {
			logger.Warn("zone failed", "zone", link.Name, "url", link.URL, "err", err)
			result.Failures = append(result.Failures, ZoneFailure{Zone: link, Err: err})
			continue
		}
		if zone == nil {
			// Aliased link serving an already-processed page.
			continue
		}
		result.Zones = append(result.Zones, *zone)
	}

	logger.Info("zone crawl finished", "zones", len(result.Zones), "failures", len(result.Failures))
	return result, nil
}

func (c *ZoneCrawler) crawlZone(ctx context.Context, link skigv.ZoneLink, baseURL string, seen *SeenSet, logger *slog.Logger) (*skigv.Zone, error) {
	if err := c.wait(ctx, link.URL); err != nil {
		return nil, err
	}

	html, err := fetchWithRetry(ctx, link.URL, c.Fetcher.Fetch, logger, c.RetryDelays)
	if err != nil {
		return nil, err
	}
	if !seen.Add(html) {
		logger.Debug("duplicate zone page skipped", "zone", link.Name, "url", link.URL)
		return nil, nil
	}

	tracks, err := c.Tracks.ExtractTracks(html, baseURL)
	if err != nil {
		return nil, err
	}

	zone := &skigv.Zone{Name: link.Name, URL: link.URL, Tracks: tracks}
	if err := zone.Validate(); err != nil {
		return nil, err
	}
	return zone, nil
}

// indexURL resolves the hills index page URL, scanning the home page for a
// hills link when no fixed path is configured.
func (c *ZoneCrawler) indexURL(ctx context.Context, baseURL string, logger *slog.Logger) (string, error) {
	if c.HillsPath != "" {
		return baseURL + c.HillsPath, nil
	}

	if err := c.wait(ctx, baseURL); err != nil {
		return "", err
	}
	html, err := fetchWithRetry(ctx, baseURL, c.Fetcher.Fetch, logger, c.RetryDelays)
	if err != nil {
		return "", err
	}

	match := hillsLinkRe.FindString(html)
	if match == "" {
		return "", skigv.Errorf(skigv.ESTRUCTURE, "no hills link on home page %s", baseURL)
	}
	return baseURL + match, nil
}

func (c *ZoneCrawler) wait(ctx context.Context, rawURL string) error {
	if c.Limiter == nil {
		return nil
	}
	return c.Limiter.Wait(ctx, hostOf(rawURL))
}

func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return rawURL
	}
	return u.Host
}

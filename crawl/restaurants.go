package crawl

import (
	"context"
	"io"
	"fmt"
	"log/slog"
	"regexp"
	"time"

	"github.com/dkashin/skigv"
	"github.com/google/uuid"
)

// DefaultRestaurantIDs are the known company page IDs, used when sitemap
// discovery yields nothing.
var DefaultRestaurantIDs = []int{4, 5, 7}

// restaurantPageFilter selects restaurant company pages in the sitemap.
// The sitemap also lists archived copies of closed venues under the same
// path; those never carry a current profile and are dropped.
var restaurantPageFilter = &skigv.URLFilter{
	Include: []*regexp.Regexp{regexp.MustCompile(`/restaurants/company/\d+`)},
	Exclude: []*regexp.Regexp{regexp.MustCompile(`/restaurants/company/\d+/(?:archive|draft)/`)},
}

// PageFailure records a page that could not be fetched or parsed.
type PageFailure struct {
	URL string `json:"url"`
	Err error  `json:"-"`
}

// CrawledRestaurant pairs a restaurant profile with the page it came from.
type CrawledRestaurant struct {
	URL        string            `json:"url"`
	Restaurant *skigv.Restaurant `json:"restaurant"`
}

// RestaurantResult is the outcome of a restaurant crawl, with per-page
// failures recorded rather than aborting the crawl.
type RestaurantResult struct {
	Restaurants []CrawledRestaurant `json:"restaurants"`
	Failures    []PageFailure       `json:"failures,omitempty"`
}

// RestaurantCrawler discovers restaurant company pages through the site's
// sitemap and extracts a profile from each. When the sitemap is missing or
// lists no company pages, the crawler falls back to the known page IDs.
// Pages are fetched sequentially with pacing between requests.
type RestaurantCrawler struct {
	Fetcher  skigv.Fetcher
	Profiles skigv.RestaurantExtractor
	Sitemaps skigv.SitemapService
	Limiter  skigv.PacingLimiter

	// BaseURL is the site root. Defaults to DefaultBaseURL.
	BaseURL string

	// FallbackIDs overrides the company page IDs used when discovery yields
	// nothing. Nil means DefaultRestaurantIDs.
	FallbackIDs []int

	// RetryDelays overrides the fetch retry backoff. Nil means defaults.
	RetryDelays []time.Duration

	Logger *slog.Logger
}

// CrawlRestaurants discovers the company pages and extracts a profile from
// each. Per-page failures are recorded in the result; the returned error is
// non-nil only on cancellation.
func (c *RestaurantCrawler) CrawlRestaurants(ctx context.Context) (*RestaurantResult, error) {
	logger := c.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	logger = logger.With("crawl", uuid.NewString())

	baseURL := c.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	urls := c.discoverPages(ctx, baseURL, logger)
	logger.Info("restaurant crawl started", "pages", len(urls))

	result := &RestaurantResult{Restaurants: []CrawledRestaurant{}}
	var seen SeenSet

	for _, pageURL := range urls {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		restaurant, err := c.crawlPage(ctx, pageURL, baseURL, &seen, logger)
		if err != nil {
			logger.Warn("restaurant page failed", "url", pageURL, "err", err)
			result.Failures = append(result.Failures, PageFailure{URL: pageURL, Err: err})
			continue
		}
		if restaurant == nil {
			continue
		}
		result.Restaurants = append(result.Restaurants, CrawledRestaurant{URL: pageURL, Restaurant: restaurant})
	}

	logger.Info("restaurant crawl finished", "restaurants", len(result.Restaurants), "failures", len(result.Failures))
	return result, nil
}

func (c *RestaurantCrawler) crawlPage(ctx context.Context, pageURL, baseURL string, seen *SeenSet, logger *slog.Logger) (*skigv.Restaurant, error) {
	if c.Limiter != nil {
		if err := c.Limiter.Wait(ctx, hostOf(pageURL)); err != nil {
			return nil, err
		}
	}

	html, err := fetchWithRetry(ctx, pageURL, c.Fetcher.Fetch, logger, c.RetryDelays)
	if err != nil {
		return nil, err
	}
	if !seen.Add(html) {
		logger.Debug("duplicate restaurant page skipped", "url", pageURL)
		return nil, nil
	}

	return c.Profiles.ExtractRestaurant(html, baseURL)
}

// discoverPages lists the company page URLs, preferring the sitemap and
// falling back to the known IDs. Discovery failure is not fatal: the known
// IDs have been stable for years.
func (c *RestaurantCrawler) discoverPages(ctx context.Context, baseURL string, logger *slog.Logger) []string {
	if c.Sitemaps != nil {
		urls, err := c.Sitemaps.DiscoverURLs(ctx, baseURL, restaurantPageFilter)
		if err != nil {
			logger.Warn("sitemap discovery failed", "err", err)
		} else if len(urls) > 0 {
			logger.Debug("restaurant pages discovered via sitemap", "count", len(urls))
			return urls
		}
	}

	ids := c.FallbackIDs
	if ids == nil {
		ids = DefaultRestaurantIDs
	}
	urls := make([]string, 0, len(ids))
	for _, id := range ids {
		urls = append(urls, fmt.Sprintf("%s/restaurants/company/%d/", baseURL, id))
	}
	return urls
}

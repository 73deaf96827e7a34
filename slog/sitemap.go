package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/dkashin/skigv"
)

// Ensure LoggingSitemapService implements skigv.SitemapService.
var _ skigv.SitemapService = (*LoggingSitemapService)(nil)

// LoggingSitemapService wraps a SitemapService and logs each company-page
// discovery: the site queried, how many pages survived the filter, and how
// long the sitemap walk took. A zero count is the signal to watch for — it
// means the crawl fell back to the fixed ID list.
type LoggingSitemapService struct {
	next   skigv.SitemapService
	logger *slog.Logger
}

// NewLoggingSitemapService creates a new LoggingSitemapService.
func NewLoggingSitemapService(next skigv.SitemapService, logger *slog.Logger) *LoggingSitemapService {
	return &LoggingSitemapService{next: next, logger: logger}
}

// DiscoverURLs delegates to the wrapped service and logs the outcome.
func (s *LoggingSitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *skigv.URLFilter) (urls []string, err error) {
	defer func(begin time.Time) {
		s.logger.Info("sitemap discovery",
			"site", baseURL,
			"count", len(urls),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.DiscoverURLs(ctx, baseURL, filter)
}

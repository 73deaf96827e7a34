package mock

import (
	"context"

	"github.com/dkashin/skigv"
)

var _ skigv.SitemapService = (*SitemapService)(nil)

// SitemapService is a mock implementation of skigv.SitemapService. Crawl
// tests hand it a fixed URL list and apply the filter themselves when the
// test cares about filtering.
type SitemapService struct {
	DiscoverURLsFn func(ctx context.Context, baseURL string, filter *skigv.URLFilter) ([]string, error)
}

func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *skigv.URLFilter) ([]string, error) {
	return s.DiscoverURLsFn(ctx, baseURL, filter)
}

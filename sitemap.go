package skigv

import (
	"context"
	"regexp"
)

// SitemapService lists page URLs published by the resort site's sitemap.
// Restaurant company pages are discovered this way: their numeric IDs shift
// as venues open and close, so a crawl asks the sitemap instead of carrying
// a hardcoded ID list.
type SitemapService interface {
	// DiscoverURLs returns the sitemap URLs of the site at baseURL, in
	// first-seen order. Implementations honor robots.txt Sitemap directives
	// and recurse through sitemap indexes; a path carried by baseURL scopes
	// the result to pages under that path.
	//
	// A nil filter passes every URL through.
	DiscoverURLs(ctx context.Context, baseURL string, filter *URLFilter) ([]string, error)
}

// URLFilter narrows a discovered URL set by regular expression.
// Include selects candidate pages (company pages, say); Exclude then drops
// unwanted variants of those pages, such as archived copies.
type URLFilter struct {
	// Include patterns. When non-empty, a URL must match at least one.
	Include []*regexp.Regexp

	// Exclude patterns. A URL matching any of them is dropped, even when
	// an Include pattern selected it.
	Exclude []*regexp.Regexp
}

// Match reports whether the URL passes the filter. A nil filter matches
// everything.
func (f *URLFilter) Match(url string) bool {
	if f == nil {
		return true
	}

	if len(f.Include) > 0 && !matchAny(f.Include, url) {
		return false
	}
	return !matchAny(f.Exclude, url)
}

func matchAny(patterns []*regexp.Regexp, url string) bool {
	for _, re := range patterns {
		if re.MatchString(url) {
			return true
		}
	}
	return false
}

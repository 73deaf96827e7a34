package http

import (
	"bufio"
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/beevik/etree"
	"github.com/dkashin/skigv"
)

// Ensure SitemapService implements skigv.SitemapService at compile time.
var _ skigv.SitemapService = (*SitemapService)(nil)

// SitemapService discovers page URLs from the site's sitemap. It is used to
// find the restaurant company pages, whose numeric IDs change as venues open
// and close; a fixed ID list is only a fallback for sites without a sitemap.
type SitemapService struct {
	client    *http.Client
	userAgent string
}

// NewSitemapService creates a SitemapService. If client is nil,
// http.DefaultClient is used.
func NewSitemapService(client *http.Client) *SitemapService {
	if client == nil {
		client = http.DefaultClient
	}
	return &SitemapService{client: client, userAgent: DefaultUserAgent}
}

// DiscoverURLs finds URLs from the site's sitemap, trying robots.txt
// Sitemap directives first and /sitemap.xml second. Sitemap indexes are
// resolved recursively; URLs are deduplicated in first-seen order. When
// baseURL carries a path, only URLs under that path are returned. Returns
// an empty slice (not nil) when the site publishes no sitemap.
func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *skigv.URLFilter) ([]string, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, skigv.Errorf(skigv.EINVALID, "invalid base URL %q: %v", baseURL, err)
	}

	pathPrefix := base.Path
	if pathPrefix == "/" {
		pathPrefix = ""
	}
	root := *base
	root.Path = ""

	sitemapURLs := s.sitemapLocations(ctx, &root)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	seenSitemaps := make(map[string]bool)
	seenURLs := make(map[string]bool)
	urls := []string{}

	for _, sitemapURL := range sitemapURLs {
		found, err := s.walkSitemap(ctx, sitemapURL, seenSitemaps)
		if err != nil {
			return nil, err
		}
		for _, u := range found {
			if seenURLs[u] {
				continue
			}
			seenURLs[u] = true
			if !underPath(u, pathPrefix) || !filter.Match(u) {
				continue
			}
			urls = append(urls, u)
		}
	}

	return urls, nil
}

// sitemapLocations returns candidate sitemap URLs: robots.txt directives
// when present, /sitemap.xml otherwise.
func (s *SitemapService) sitemapLocations(ctx context.Context, root *url.URL) []string {
	robots := root.ResolveReference(&url.URL{Path: "/robots.txt"})
	if body, err := s.get(ctx, robots.String()); err == nil {
		defer body.Close()
		var locations []string
		scanner := bufio.NewScanner(body)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if strings.HasPrefix(strings.ToLower(line), "sitemap:") {
				if loc := strings.TrimSpace(line[len("sitemap:"):]); loc != "" {
					locations = append(locations, loc)
				}
			}
		}
		if len(locations) > 0 {
			return locations
		}
	}

	return []string{root.ResolveReference(&url.URL{Path: "/sitemap.xml"}).String()}
}

// walkSitemap fetches one sitemap document and returns its page URLs,
// recursing into <sitemapindex> entries.
func (s *SitemapService) walkSitemap(ctx context.Context, sitemapURL string, seen map[string]bool) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if seen[sitemapURL] {
		return nil, nil
	}
	seen[sitemapURL] = true

	body, err := s.get(ctx, sitemapURL)
	if err != nil {
		// A missing sitemap is not an error for discovery: the caller
		// falls back to its fixed URL list.
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, nil
	}
	defer body.Close()

	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(body); err != nil {
		return nil, skigv.Errorf(skigv.EINVALID, "parsing sitemap %s: %v", sitemapURL, err)
	}
	root := doc.Root()
	if root == nil {
		return nil, nil
	}

	if root.Tag == "sitemapindex" {
		var urls []string
		for _, entry := range root.SelectElements("sitemap") {
			loc := entry.SelectElement("loc")
			if loc == nil {
				continue
			}
			nested, err := s.walkSitemap(ctx, strings.TrimSpace(loc.Text()), seen)
			if err != nil {
				return nil, err
			}
			urls = append(urls, nested...)
		}
		return urls, nil
	}

	var urls []string
	for _, entry := range root.SelectElements("url") {
		loc := entry.SelectElement("loc")
		if loc == nil {
			continue
		}
		if u := strings.TrimSpace(loc.Text()); u != "" {
			urls = append(urls, u)
		}
	}
	return urls, nil
}

// underPath reports whether the URL's path sits under the given prefix,
// respecting path boundaries.
func underPath(rawURL string, prefix string) bool {
	if prefix == "" {
		return true
	}
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return strings.HasPrefix(parsed.Path, prefix)
}

// get fetches a URL with the browser user-agent and returns the body on 200.
func (s *SitemapService) get(ctx context.Context, targetURL string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, skigv.Errorf(skigv.EINVALID, "invalid URL %q: %v", targetURL, err)
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, &skigv.FetchError{URL: targetURL, Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, &skigv.FetchError{URL: targetURL, StatusCode: resp.StatusCode}
	}
	return resp.Body, nil
}

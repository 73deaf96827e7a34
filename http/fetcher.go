// Package http provides the HTTP implementation of skigv.Fetcher and the
// sitemap-based URL discovery service.
//
// The resort site serves different markup depending on a session "season"
// cookie and rejects requests that look like default library clients, so the
// fetcher always sends a realistic browser identity and can carry the season
// selection for a whole crawl session.
package http

import (
	"context"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"

	"github.com/dkashin/skigv"
)

// DefaultFetchTimeout bounds a single page retrieval. A hung upstream
// connection must not block a crawl worker indefinitely.
const DefaultFetchTimeout = 10 * time.Second

// DefaultUserAgent is the browser identity sent with every request.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Ensure Fetcher implements skigv.Fetcher at compile time.
var _ skigv.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML pages with browser-like headers.
type Fetcher struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
	headers   map[string]string
	season    skigv.Season
	seasonURL string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent overrides the default browser identity.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithHeader adds a header sent with every request.
func WithHeader(name string, value string) Option {
	return func(f *Fetcher) {
		f.headers[name] = value
	}
}

// WithSeason sets the session-scoped season cookie for the given site.
// The site keys its summer/winter markup variants off this cookie.
func WithSeason(siteURL string, season skigv.Season) Option {
	return func(f *Fetcher) {
		f.seasonURL = siteURL
		f.season = season
	}
}

// NewFetcher creates an HTTP Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:   DefaultFetchTimeout,
		userAgent: DefaultUserAgent,
		headers: map[string]string{
			"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8",
			"Accept-Language": "ru-RU,ru;q=0.8,en-US;q=0.5,en;q=0.3",
		},
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	if f.season != "" && f.seasonURL != "" {
		if u, err := url.Parse(f.seasonURL); err == nil {
			if jar, err := cookiejar.New(nil); err == nil {
				jar.SetCookies(u, []*http.Cookie{{Name: "season", Value: string(f.season)}})
				f.client.Jar = jar
			}
		}
	}

	return f
}

// Fetch retrieves the HTML content at the given URL.
// Transport failures and non-2xx responses are reported as *skigv.FetchError.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", skigv.Errorf(skigv.EINVALID, "invalid fetch URL %q: %v", url, err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	for name, value := range f.headers {
		req.Header.Set(name, value)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", &skigv.FetchError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &skigv.FetchError{URL: url, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &skigv.FetchError{URL: url, Err: err}
	}

	return string(body), nil
}

// Close releases resources. For the HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}

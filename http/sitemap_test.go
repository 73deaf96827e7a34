package http_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"

	"github.com/dkashin/skigv"
	skihttp "github.com/dkashin/skigv/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sitemapXML(urls ...string) string {
	body := `<?xml version="1.0" encoding="UTF-8"?><urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">`
	for _, u := range urls {
		body += "<url><loc>" + u + "</loc></url>"
	}
	return body + "</urlset>"
}

func TestSitemapService_DiscoverURLs(t *testing.T) {
	t.Parallel()

	t.Run("discovers URLs from /sitemap.xml", func(t *testing.T) {
		t.Parallel()

		var srvURL string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/sitemap.xml":
				fmt.Fprint(w, sitemapXML(
					srvURL+"/restaurants/company/4/",
					srvURL+"/restaurants/company/7/",
					srvURL+"/weather/",
				))
			default:
				http.NotFound(w, r)
			}
		}))
		defer srv.Close()
		srvURL = srv.URL

		s := skihttp.NewSitemapService(nil)
		urls, err := s.DiscoverURLs(context.Background(), srv.URL+"/restaurants/", nil)

		require.NoError(t, err)
		assert.Equal(t, []string{
			srv.URL + "/restaurants/company/4/",
			srv.URL + "/restaurants/company/7/",
		}, urls)
	})

	t.Run("follows robots.txt sitemap directive", func(t *testing.T) {
		t.Parallel()

		var srvURL string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/robots.txt":
				fmt.Fprintf(w, "User-agent: *\nSitemap: %s/custom-map.xml\n", srvURL)
			case "/custom-map.xml":
				fmt.Fprint(w, sitemapXML(srvURL+"/page/"))
			default:
				http.NotFound(w, r)
			}
		}))
		defer srv.Close()
		srvURL = srv.URL

		s := skihttp.NewSitemapService(nil)
		urls, err := s.DiscoverURLs(context.Background(), srv.URL, nil)

		require.NoError(t, err)
		assert.Equal(t, []string{srv.URL + "/page/"}, urls)
	})

	t.Run("resolves sitemap indexes recursively", func(t *testing.T) {
		t.Parallel()

		var srvURL string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/sitemap.xml":
				fmt.Fprintf(w, `<?xml version="1.0"?><sitemapindex><sitemap><loc>%s/sub.xml</loc></sitemap></sitemapindex>`, srvURL)
			case "/sub.xml":
				fmt.Fprint(w, sitemapXML(srvURL+"/a/", srvURL+"/a/"))
			default:
				http.NotFound(w, r)
			}
		}))
		defer srv.Close()
		srvURL = srv.URL

		s := skihttp.NewSitemapService(nil)
		urls, err := s.DiscoverURLs(context.Background(), srv.URL, nil)

		require.NoError(t, err)
		// Duplicate locs collapse to one entry.
		assert.Equal(t, []string{srv.URL + "/a/"}, urls)
	})

	t.Run("no sitemap yields empty slice, not error", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.NotFoundHandler())
		defer srv.Close()

		s := skihttp.NewSitemapService(nil)
		urls, err := s.DiscoverURLs(context.Background(), srv.URL, nil)

		require.NoError(t, err)
		assert.Empty(t, urls)
	})

	t.Run("applies the user filter", func(t *testing.T) {
		t.Parallel()

		var srvURL string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/sitemap.xml" {
				fmt.Fprint(w, sitemapXML(srvURL+"/restaurants/company/4/", srvURL+"/news/1/"))
				return
			}
			http.NotFound(w, r)
		}))
		defer srv.Close()
		srvURL = srv.URL

		filter := &skigv.URLFilter{Include: []*regexp.Regexp{regexp.MustCompile(`/restaurants/company/`)}}

		s := skihttp.NewSitemapService(nil)
		urls, err := s.DiscoverURLs(context.Background(), srv.URL, filter)

		require.NoError(t, err)
		assert.Equal(t, []string{srvURL + "/restaurants/company/4/"}, urls)
	})
}

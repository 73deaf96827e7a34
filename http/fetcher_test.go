package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dkashin/skigv"
	skihttp "github.com/dkashin/skigv/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("returns body and sends browser headers", func(t *testing.T) {
		t.Parallel()

		var gotUA, gotAccept string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotUA = r.Header.Get("User-Agent")
			gotAccept = r.Header.Get("Accept-Language")
			_, _ = w.Write([]byte("<html>ok</html>"))
		}))
		defer srv.Close()

		f := skihttp.NewFetcher()
		defer f.Close()

		html, err := f.Fetch(context.Background(), srv.URL)

		require.NoError(t, err)
		assert.Equal(t, "<html>ok</html>", html)
		assert.Contains(t, gotUA, "Mozilla/5.0")
		assert.Contains(t, gotAccept, "ru-RU")
	})

	t.Run("non-2xx status yields a FetchError with the status", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		f := skihttp.NewFetcher()
		defer f.Close()

		_, err := f.Fetch(context.Background(), srv.URL)

		var fe *skigv.FetchError
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, http.StatusServiceUnavailable, fe.StatusCode)
		assert.Equal(t, skigv.EUNAVAILABLE, skigv.ErrorCode(err))
	})

	t.Run("timeout yields a FetchError, not a hang", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
		}))
		defer srv.Close()

		f := skihttp.NewFetcher(skihttp.WithTimeout(20 * time.Millisecond))
		defer f.Close()

		_, err := f.Fetch(context.Background(), srv.URL)

		var fe *skigv.FetchError
		require.ErrorAs(t, err, &fe)
		assert.Zero(t, fe.StatusCode)
	})

	t.Run("season cookie sent for the configured site", func(t *testing.T) {
		t.Parallel()

		var gotSeason string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if c, err := r.Cookie("season"); err == nil {
				gotSeason = c.Value
			}
			_, _ = w.Write([]byte("ok"))
		}))
		defer srv.Close()

		f := skihttp.NewFetcher(skihttp.WithSeason(srv.URL, skigv.SeasonSummer))
		defer f.Close()

		_, err := f.Fetch(context.Background(), srv.URL)

		require.NoError(t, err)
		assert.Equal(t, "summer", gotSeason)
	})

	t.Run("custom header option", func(t *testing.T) {
		t.Parallel()

		var got string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got = r.Header.Get("X-Requested-With")
			_, _ = w.Write([]byte("ok"))
		}))
		defer srv.Close()

		f := skihttp.NewFetcher(skihttp.WithHeader("X-Requested-With", "skigv"))
		defer f.Close()

		_, err := f.Fetch(context.Background(), srv.URL)

		require.NoError(t, err)
		assert.Equal(t, "skigv", got)
	})
}

package crawl_test

import (
	"context"
	"testing"
	"time"

	"github.com/dkashin/skigv"
	"github.com/dkashin/skigv/crawl"
	"github.com/dkashin/skigv/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotCrawler_TakeSnapshot(t *testing.T) {
	t.Parallel()

	fetcher := &mock.Fetcher{
		FetchFn: func(ctx context.Context, url string) (string, error) {
			return "<html>" + url + "</html>", nil
		},
	}

	now := time.Date(2026, time.February, 10, 9, 0, 0, 0, time.UTC)

	crawler := &crawl.SnapshotCrawler{
		Fetcher: fetcher,
		Weather: &mock.WeatherExtractor{
			ExtractWeatherFn: func(html, baseURL string) (*skigv.WeatherSnapshot, error) {
				return &skigv.WeatherSnapshot{Temperature: "-8°", ObservedAt: now}, nil
			},
		},
		Lifts: &mock.LiftExtractor{
			ExtractLiftsFn: func(html string) ([]skigv.Lift, error) {
				return []skigv.Lift{{Name: "Подъемник «Северный»"}}, nil
			},
		},
		Trails: &mock.TrailExtractor{
			ExtractTrailsFn: func(html string) ([]skigv.EcoTrail, error) {
				return []skigv.EcoTrail{{Name: "Северная энергия"}}, nil
			},
		},
		Prices: &mock.PriceExtractor{
			ExtractPricesFn: func(html string) (*skigv.PriceList, error) {
				return &skigv.PriceList{Name: "Разовые подъемы"}, nil
			},
		},
		RetryDelays: noRetries,
		Now:         func() time.Time { return now },
	}

	snap, err := crawler.TakeSnapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, now, snap.TakenAt)
	require.NotNil(t, snap.Weather)
	assert.Equal(t, "-8°", snap.Weather.Temperature)
	require.Len(t, snap.Lifts, 1)
	require.Len(t, snap.Trails, 1)
	require.NotNil(t, snap.Prices)
	assert.Empty(t, snap.Failures)
}

func TestSnapshotCrawler_DomainFailureIsolated(t *testing.T) {
	t.Parallel()

	fetcher := &mock.Fetcher{
		FetchFn: func(ctx context.Context, url string) (string, error) {
			if url == "https://ski-gv.ru/weather/" {
				return "", &skigv.FetchError{URL: url, StatusCode: 500}
			}
			return "<html></html>", nil
		},
	}

	crawler := &crawl.SnapshotCrawler{
		Fetcher: fetcher,
		Weather: &mock.WeatherExtractor{
			ExtractWeatherFn: func(html, baseURL string) (*skigv.WeatherSnapshot, error) {
				t.Error("extractor must not run for a failed fetch")
				return nil, nil
			},
		},
		Lifts: &mock.LiftExtractor{
			ExtractLiftsFn: func(html string) ([]skigv.Lift, error) {
				return []skigv.Lift{{Name: "Подъемник"}}, nil
			},
		},
		RetryDelays: noRetries,
	}

	snap, err := crawler.TakeSnapshot(context.Background())
	require.NoError(t, err)
	assert.Nil(t, snap.Weather)
	assert.Len(t, snap.Lifts, 1)
	require.Len(t, snap.Failures, 1)
	assert.Equal(t, "https://ski-gv.ru/weather/", snap.Failures[0].URL)
	assert.Equal(t, skigv.EUNAVAILABLE, skigv.ErrorCode(snap.Failures[0].Err))
}

func TestSnapshotCrawler_ExtractorFailureRecorded(t *testing.T) {
	t.Parallel()

	fetcher := &mock.Fetcher{
		FetchFn: func(ctx context.Context, url string) (string, error) {
			return "<html></html>", nil
		},
	}

	crawler := &crawl.SnapshotCrawler{
		Fetcher: fetcher,
		Prices: &mock.PriceExtractor{
			ExtractPricesFn: func(html string) (*skigv.PriceList, error) {
				return nil, &skigv.StructureError{URL: "", Container: "table"}
			},
		},
		RetryDelays: noRetries,
	}

	snap, err := crawler.TakeSnapshot(context.Background())
	require.NoError(t, err)
	assert.Nil(t, snap.Prices)
	require.Len(t, snap.Failures, 1)
	assert.Equal(t, skigv.ESTRUCTURE, skigv.ErrorCode(snap.Failures[0].Err))
}

func TestSnapshotCrawler_NilExtractorsSkipped(t *testing.T) {
	t.Parallel()

	var fetched int
	fetcher := &mock.Fetcher{
		FetchFn: func(ctx context.Context, url string) (string, error) {
			fetched++
			return "<html></html>", nil
		},
	}

	crawler := &crawl.SnapshotCrawler{
		Fetcher:     fetcher,
		RetryDelays: noRetries,
	}

	snap, err := crawler.TakeSnapshot(context.Background())
	require.NoError(t, err)
	assert.Zero(t, fetched)
	assert.Nil(t, snap.Weather)
	assert.Nil(t, snap.Lifts)
	assert.Nil(t, snap.Trails)
	assert.Nil(t, snap.Prices)
}

func TestSnapshotCrawler_PathOverrides(t *testing.T) {
	t.Parallel()

	var urls []string
	fetcher := &mock.Fetcher{
		FetchFn: func(ctx context.Context, url string) (string, error) {
			urls = append(urls, url)
			return "<html></html>", nil
		},
	}

	crawler := &crawl.SnapshotCrawler{
		Fetcher: fetcher,
		Trails: &mock.TrailExtractor{
			ExtractTrailsFn: func(html string) ([]skigv.EcoTrail, error) {
				return nil, nil
			},
		},
		BaseURL:     "https://staging.ski-gv.ru",
		TrailsPath:  "/navigate/trails-v2/",
		RetryDelays: noRetries,
	}

	_, err := crawler.TakeSnapshot(context.Background())
	require.NoError(t, err)
	require.Len(t, urls, 1)
	assert.Equal(t, "https://staging.ski-gv.ru/navigate/trails-v2/", urls[0])
}

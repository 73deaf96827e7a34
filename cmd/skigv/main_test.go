package main_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/dkashin/skigv"
	main "github.com/dkashin/skigv/cmd/skigv"
	"github.com/dkashin/skigv/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_NoCommand(t *testing.T) {
	t.Parallel()

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	m := main.NewMain()
	err := m.Run(context.Background(), nil, stdout, stderr)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no command specified")
	assert.Contains(t, stdout.String(), "skigv")
}

func TestRun_Help(t *testing.T) {
	t.Parallel()

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	m := main.NewMain()
	err := m.Run(context.Background(), []string{"--help"}, stdout, stderr)

	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "zones")
	assert.Contains(t, stdout.String(), "snapshot")
}

func TestRun_Trails(t *testing.T) {
	t.Parallel()

	page := `<html><body><div data-formatted-text="true">
		<h2>Тропа здоровья - лесной маршрут</h2>
		<p>Маршрут протяженностью 5 км вдоль склона.</p>
		<p><iframe src="https://yandex.ru/map-widget/v1/?um=constructor:abc123"></iframe></p>
	</div></body></html>`

	var fetched []string
	m := main.NewMain()
	m.Fetcher = &mock.Fetcher{
		FetchFn: func(ctx context.Context, url string) (string, error) {
			fetched = append(fetched, url)
			return page, nil
		},
	}

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := m.Run(context.Background(), []string{"trails"}, stdout, stderr)

	require.NoError(t, err)
	require.Len(t, fetched, 1)
	assert.Equal(t, "https://ski-gv.ru/navigate/eko-tropyi/", fetched[0])

	out := stdout.String()
	assert.Contains(t, out, `"Тропа здоровья"`)
	assert.Contains(t, out, "constructor:abc123")
}

func TestRun_WeatherFetchError(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	m.Fetcher = &mock.Fetcher{
		FetchFn: func(ctx context.Context, url string) (string, error) {
			return "", &skigv.FetchError{URL: url, StatusCode: 503}
		},
	}

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := m.Run(context.Background(), []string{"weather"}, stdout, stderr)

	require.Error(t, err)
	assert.Equal(t, skigv.EUNAVAILABLE, skigv.ErrorCode(err))
	assert.Empty(t, stdout.String())
}

func TestRun_BaseURLOverride(t *testing.T) {
	t.Parallel()

	var fetched string
	m := main.NewMain()
	m.Fetcher = &mock.Fetcher{
		FetchFn: func(ctx context.Context, url string) (string, error) {
			fetched = url
			return `<html><body><table><caption>Подъемник «Тест»</caption></table></body></html>`, nil
		},
	}

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := m.Run(context.Background(), []string{"lifts", "--base-url", "https://staging.ski-gv.ru"}, stdout, stderr)

	require.NoError(t, err)
	assert.Equal(t, "https://staging.ski-gv.ru/about-us/schedule/", fetched)
}

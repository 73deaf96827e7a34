package goquery_test

import (
	"testing"

	"github.com/dkashin/skigv"
	sq "github.com/dkashin/skigv/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemeExtractor_ExtractScheme(t *testing.T) {
	t.Parallel()

	t.Run("extracts hill and layers with data attributes", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<div class="scheme__layers map" style="transform: scale(0.5); width: 2048px">
	<img class="scheme__hill" src="/upload/hill.png" data-width="2048" data-height="1024" data-top="0" data-left="0">
	<img class="scheme__layer" src="/upload/track1.png" data-scheme-layer="1" data-left="120" data-top="80" data-width="300" data-height="200">
	<img class="scheme__layer" src="/upload/track2.png" data-scheme-layer="2" data-left="400" data-top="90" data-width="280" data-height="190">
</div>
</body></html>`

		e := sq.NewSchemeExtractor()
		scheme, err := e.ExtractScheme(html, "https://ski-gv.ru")

		require.NoError(t, err)
		assert.Equal(t, "https://ski-gv.ru/upload/hill.png", scheme.Hill.URL)
		assert.Equal(t, "2048", scheme.Hill.Width)

		require.Len(t, scheme.Layers, 2)
		assert.Equal(t, skigv.SchemeImage{
			URL:    "https://ski-gv.ru/upload/track1.png",
			Layer:  "1",
			Left:   "120",
			Top:    "80",
			Width:  "300",
			Height: "200",
		}, scheme.Layers[0])
		assert.Equal(t, "2", scheme.Layers[1].Layer)
	})

	t.Run("falls back to the bare layers container", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<div class="scheme__layers">
	<img class="scheme__layer" src="/upload/only.png" data-scheme-layer="1">
</div>
</body></html>`

		e := sq.NewSchemeExtractor()
		scheme, err := e.ExtractScheme(html, "https://ski-gv.ru")

		require.NoError(t, err)
		require.Len(t, scheme.Layers, 1)
		assert.Equal(t, "https://ski-gv.ru/upload/only.png", scheme.Layers[0].URL)
	})

	t.Run("missing container is a structure failure", func(t *testing.T) {
		t.Parallel()

		e := sq.NewSchemeExtractor()
		_, err := e.ExtractScheme(`<html><body></body></html>`, "https://ski-gv.ru/hills/1/1/")

		require.Error(t, err)
		assert.Equal(t, skigv.ESTRUCTURE, skigv.ErrorCode(err))
	})
}

package skigv_test

import (
	"errors"
	"regexp"
	"testing"

	"github.com/dkashin/skigv"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := skigv.Errorf(skigv.ENOTFOUND, "zone %q not found", "Запад")

	assert.Equal(t, skigv.ENOTFOUND, skigv.ErrorCode(err))
	assert.Equal(t, "zone \"Запад\" not found", skigv.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, skigv.ErrorCode(nil))
}

func TestErrorCode_FetchError(t *testing.T) {
	t.Parallel()

	err := &skigv.FetchError{URL: "https://ski-gv.ru/weather/", StatusCode: 503}

	assert.Equal(t, skigv.EUNAVAILABLE, skigv.ErrorCode(err))
	assert.Contains(t, err.Error(), "HTTP 503")
}

func TestErrorCode_StructureError(t *testing.T) {
	t.Parallel()

	err := &skigv.StructureError{URL: "https://ski-gv.ru/weather/", Container: "weather__current-part"}

	assert.Equal(t, skigv.ESTRUCTURE, skigv.ErrorCode(err))
	assert.Contains(t, err.Error(), "weather__current-part")
}

func TestErrorCode_GenericError(t *testing.T) {
	t.Parallel()

	assert.Equal(t, skigv.EINTERNAL, skigv.ErrorCode(errors.New("boom")))
	assert.Equal(t, "Internal error.", skigv.ErrorMessage(errors.New("boom")))
}

func TestURLFilter_Match(t *testing.T) {
	t.Parallel()

	filter := &skigv.URLFilter{
		Include: []*regexp.Regexp{regexp.MustCompile(`/restaurants/company/\d+`)},
		Exclude: []*regexp.Regexp{regexp.MustCompile(`/archive/`)},
	}

	assert.True(t, filter.Match("https://ski-gv.ru/restaurants/company/4/"))
	assert.False(t, filter.Match("https://ski-gv.ru/weather/"))
	// Exclude wins over a matching Include.
	assert.False(t, filter.Match("https://ski-gv.ru/restaurants/company/4/archive/"))
}

func TestURLFilter_NilMatchesEverything(t *testing.T) {
	t.Parallel()

	var filter *skigv.URLFilter
	assert.True(t, filter.Match("https://ski-gv.ru/anything/"))
}

func TestURLFilter_ExcludeOnly(t *testing.T) {
	t.Parallel()

	filter := &skigv.URLFilter{
		Exclude: []*regexp.Regexp{regexp.MustCompile(`/draft/`)},
	}

	assert.True(t, filter.Match("https://ski-gv.ru/restaurants/company/4/"))
	assert.False(t, filter.Match("https://ski-gv.ru/restaurants/company/4/draft/"))
}

// Package normalize provides text and value normalization shared by the
// domain extractors: whitespace and unicode cleanup, localized number and
// time-range parsing, price cleanup, and URL resolution.
//
// All parse functions fail closed: malformed input yields an absent value,
// never an error or panic.
package normalize

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	timeRangeRe  = regexp.MustCompile(`с\s*(\d{1,2}:\d{2})\s*до\s*(\d{1,2}:\d{2})`)
	decimalRe    = regexp.MustCompile(`(\d+(?:[.,]\s*\d+)?)`)
	nonDigitRe   = regexp.MustCompile(`[^\d]`)
)

// CleanText replaces non-breaking spaces with ordinary spaces, collapses
// runs of whitespace into single spaces, and trims the result.
func CleanText(s string) string {
	s = strings.ReplaceAll(s, " ", " ")
	s = whitespaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// ParseTimeRange extracts an operating-hours range from a phrase of the form
// "с HH:MM до HH:MM" and returns it as "HH:MM-HH:MM". The second return
// value is false when no such phrase is present.
func ParseTimeRange(s string) (string, bool) {
	m := timeRangeRe.FindStringSubmatch(s)
	if m == nil {
		return "", false
	}
	return m[1] + "-" + m[2], true
}

// ParseDecimal extracts the first localized decimal number from s. Both "."
// and "," are accepted as the decimal separator; internal spaces are
// stripped. The second return value is false when no number is present.
func ParseDecimal(s string) (float64, bool) {
	m := decimalRe.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	cleaned := strings.ReplaceAll(m[1], " ", "")
	cleaned = strings.ReplaceAll(cleaned, ",", ".")
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// ResolveURL resolves href against base. Absolute hrefs are returned
// unchanged; unparseable input yields the empty string.
func ResolveURL(base string, href string) string {
	if href == "" {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if ref.IsAbs() {
		return href
	}
	b, err := url.Parse(base)
	if err != nil {
		return ""
	}
	return b.ResolveReference(ref).String()
}

// ParsePrice converts a price cell's text into an integer number of rubles.
// All non-digit characters (currency signs, thousands separators) are
// stripped. The literal "-" marker and cells with no digits yield an absent
// value, not zero.
func ParsePrice(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "-" {
		return 0, false
	}
	digits := nonDigitRe.ReplaceAllString(s, "")
	if digits == "" {
		return 0, false
	}
	v, err := strconv.Atoi(digits)
	if err != nil {
		return 0, false
	}
	return v, true
}

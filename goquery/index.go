// Package goquery implements the domain extractors of the skigv module on
// top of github.com/PuerkitoBio/goquery.
//
// The resort site carries the same information under different class names
// across page template generations. Every extractor therefore queries the
// document through ordered fallback selector chains: selectors are tried in
// sequence and the first one that matches wins. The Index type centralizes
// that primitive so each extractor states its selector vocabulary as data.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/dkashin/skigv"
	"github.com/dkashin/skigv/normalize"
)

// Index wraps one parsed document and exposes fallback-chained structural
// queries over it.
type Index struct {
	doc *goquery.Document
}

// Parse builds an Index from raw HTML.
func Parse(html string) (*Index, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, skigv.Errorf(skigv.EINVALID, "failed to parse HTML: %v", err)
	}
	return &Index{doc: doc}, nil
}

// First tries each selector in order against the whole document and returns
// the first element of the first selector that matches. Returns an empty
// selection when nothing matches.
func (ix *Index) First(selectors ...string) *goquery.Selection {
	return FirstIn(ix.doc.Selection, selectors...)
}

// All tries each selector in order and returns the full match set of the
// first selector that matches anything. It is the first non-empty match set,
// not a union across selectors: a page is produced by exactly one template
// generation, so mixing match sets would double-count elements.
func (ix *Index) All(selectors ...string) *goquery.Selection {
	return AllIn(ix.doc.Selection, selectors...)
}

// Find exposes a plain single-selector query for callers that need goquery
// traversal beyond the fallback chains.
func (ix *Index) Find(selector string) *goquery.Selection {
	return ix.doc.Find(selector)
}

// FirstIn is First scoped to a selection, used for per-block field queries.
func FirstIn(s *goquery.Selection, selectors ...string) *goquery.Selection {
	return AllIn(s, selectors...).First()
}

// AllIn is All scoped to a selection.
func AllIn(s *goquery.Selection, selectors ...string) *goquery.Selection {
	for _, sel := range selectors {
		if found := s.Find(sel); found.Length() > 0 {
			return found
		}
	}
	return s.Find(selectors[len(selectors)-1])
}

// Text returns the cleaned concatenated descendant text of a selection.
func Text(s *goquery.Selection) string {
	return normalize.CleanText(s.Text())
}

// Attr returns the named attribute of the selection's first element, or the
// empty string when absent.
func Attr(s *goquery.Selection, name string) string {
	v, _ := s.Attr(name)
	return strings.TrimSpace(v)
}

// HasClassToken reports whether any class token of the selection's first
// element contains the given substring.
func HasClassToken(s *goquery.Selection, substr string) bool {
	for _, c := range strings.Fields(Attr(s, "class")) {
		if strings.Contains(c, substr) {
			return true
		}
	}
	return false
}

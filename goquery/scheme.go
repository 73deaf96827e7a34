package goquery

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/dkashin/skigv"
	"github.com/dkashin/skigv/normalize"
)

// Ensure SchemeExtractor implements skigv.SchemeExtractor at compile time.
var _ skigv.SchemeExtractor = (*SchemeExtractor)(nil)

// SchemeExtractor extracts the layered slope scheme from a zone page.
// Layer geometry lives in data-* attributes on the scheme images.
type SchemeExtractor struct{}

// NewSchemeExtractor creates a SchemeExtractor.
func NewSchemeExtractor() *SchemeExtractor {
	return &SchemeExtractor{}
}

// ExtractScheme parses a zone page's slope scheme. The layers container is
// load-bearing.
func (e *SchemeExtractor) ExtractScheme(html string, baseURL string) (*skigv.Scheme, error) {
	ix, err := Parse(html)
	if err != nil {
		return nil, err
	}

	container := ix.First("div.scheme__layers.map", "div.scheme__layers")
	if container.Length() == 0 {
		return nil, &skigv.StructureError{URL: baseURL, Container: "scheme__layers"}
	}

	scheme := &skigv.Scheme{}

	if hill := container.Find("img.scheme__hill"); hill.Length() > 0 {
		scheme.Hill = schemeImage(hill, baseURL)
	}

	container.Find("img.scheme__layer").Each(func(_ int, img *goquery.Selection) {
		scheme.Layers = append(scheme.Layers, schemeImage(img, baseURL))
	})

	return scheme, nil
}

func schemeImage(img *goquery.Selection, baseURL string) skigv.SchemeImage {
	return skigv.SchemeImage{
		URL:    normalize.ResolveURL(baseURL, Attr(img, "src")),
		Layer:  Attr(img, "data-scheme-layer"),
		Left:   Attr(img, "data-left"),
		Top:    Attr(img, "data-top"),
		Width:  Attr(img, "data-width"),
		Height: Attr(img, "data-height"),
	}
}

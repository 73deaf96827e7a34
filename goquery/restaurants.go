package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/dkashin/skigv"
	"github.com/dkashin/skigv/normalize"
)

// Ensure RestaurantExtractor implements skigv.RestaurantExtractor.
var _ skigv.RestaurantExtractor = (*RestaurantExtractor)(nil)

// RestaurantExtractor extracts a restaurant profile from a company page.
// The company pages are the least consistent part of the site, so every
// field is located through a chain of heuristics: structured-data
// attributes, class-name substrings, then free-text patterns.
type RestaurantExtractor struct{}

// NewRestaurantExtractor creates a RestaurantExtractor.
func NewRestaurantExtractor() *RestaurantExtractor {
	return &RestaurantExtractor{}
}

// Selector chains for the scalar fields.
var (
	restaurantNameSelectors = []string{
		`h1[class*="title"]`, `h1[class*="heading"]`,
		`div[class*="title"]`, `div[class*="heading"]`,
		".page__title", ".title", "h1",
	}
	restaurantAddressSelectors = []string{
		`div[itemprop="address"]`, `div[itemprop="location"]`,
		`div[class*="address"]`, `div[class*="location"]`,
	}
	restaurantPhoneSelectors = []string{
		`div[itemprop="telephone"]`, `div[itemprop="phone"]`,
		`div[class*="phone"]`, `div[class*="tel"]`,
		`a[href^="tel:"]`,
	}
	restaurantScheduleSelectors = []string{
		`div[itemprop="openingHours"]`, `div[itemprop="workingHours"]`,
		`div[class*="schedule"]`, `div[class*="time"]`, `div[class*="hour"]`,
		`[class*="schedule"]`, `[class*="time"]`, `[class*="hour"]`,
	}
)

// noiseMarkers drop boilerplate paragraphs from descriptions.
var noiseMarkers = []string{"©", "®", "™", "cookies"}

// ExtractRestaurant parses a restaurant company page. Fields that no
// heuristic locates stay absent; the page itself has no single load-bearing
// container, so an empty profile is a valid result.
func (e *RestaurantExtractor) ExtractRestaurant(html string, baseURL string) (*skigv.Restaurant, error) {
	ix, err := Parse(html)
	if err != nil {
		return nil, err
	}

	r := &skigv.Restaurant{
		Name:     Text(ix.First(restaurantNameSelectors...)),
		Address:  Text(ix.First(restaurantAddressSelectors...)),
		Phone:    Text(ix.First(restaurantPhoneSelectors...)),
		Schedule: Text(ix.First(restaurantScheduleSelectors...)),
	}

	if r.Address == "" {
		r.Address = findByText(ix, "div", "станция", "адрес")
	}
	if r.Phone == "" {
		r.Phone = findByText(ix, "div, span, a", "+7")
	}
	if r.Schedule == "" {
		r.Schedule = findByText(ix, "div", "Пн-", "Пн–", "время работы")
	}

	r.Description = e.extractDescriptions(ix)
	r.Images = e.extractImages(ix, baseURL)
	r.Breadcrumbs = e.extractBreadcrumbs(ix, baseURL)

	return r, nil
}

// findByText returns the cleaned text of the first element matching the
// selector whose text contains any of the given markers. Case matters for
// markers that are case-sensitive on the site ("+7", "Пн-"); lowercase
// markers are compared case-insensitively.
func findByText(ix *Index, selector string, markers ...string) string {
	var found string
	ix.Find(selector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := Text(s)
		lower := strings.ToLower(text)
		for _, m := range markers {
			if strings.Contains(text, m) || strings.Contains(lower, strings.ToLower(m)) {
				found = text
				return false
			}
		}
		return true
	})
	return found
}

// extractDescriptions collects paragraphs from the candidate description
// containers, deduplicated by exact text, noise paragraphs dropped,
// first-seen order preserved.
func (e *RestaurantExtractor) extractDescriptions(ix *Index) []string {
	seen := make(map[string]bool)
	var out []string

	add := func(text string) {
		if text == "" || seen[text] {
			return
		}
		lower := strings.ToLower(text)
		for _, marker := range noiseMarkers {
			if strings.Contains(lower, marker) {
				return
			}
		}
		seen[text] = true
		out = append(out, text)
	}

	collect := func(block *goquery.Selection) {
		if block.Is("p") {
			add(Text(block))
			return
		}
		block.Find("p").Each(func(_ int, p *goquery.Selection) {
			add(Text(p))
		})
	}

	ix.Find("div[data-formatted-text]").Each(func(_ int, block *goquery.Selection) { collect(block) })
	ix.Find(`div[itemprop="description"], p[itemprop="description"]`).Each(func(_ int, block *goquery.Selection) { collect(block) })
	ix.Find(`div.description, p.description`).Each(func(_ int, block *goquery.Selection) { collect(block) })
	ix.Find("div.page__content").Each(func(_ int, block *goquery.Selection) { collect(block) })

	return out
}

// extractImages collects image URLs from the main image and the gallery
// containers, deduplicated by resolved absolute URL, first-seen order
// preserved.
func (e *RestaurantExtractor) extractImages(ix *Index, baseURL string) []string {
	seen := make(map[string]bool)
	var out []string

	add := func(src string) {
		if src == "" {
			return
		}
		resolved := normalize.ResolveURL(baseURL, src)
		if resolved == "" || seen[resolved] {
			return
		}
		seen[resolved] = true
		out = append(out, resolved)
	}

	add(Attr(ix.Find("img.page__main-image"), "src"))

	ix.Find(`img.center, img[class*="photo"], img[class*="image"]`).Each(func(_ int, img *goquery.Selection) {
		add(Attr(img, "src"))
	})

	ix.Find(`div[class*="gallery"], div[class*="image"]`).Each(func(_ int, block *goquery.Selection) {
		if link := block.Find("a").First(); link.Length() > 0 {
			add(Attr(link, "href"))
			return
		}
		if img := block.Find("img").First(); img.Length() > 0 {
			add(Attr(img, "src"))
		}
	})

	return out
}

// extractBreadcrumbs collects the ordered (label, URL) breadcrumb pairs.
func (e *RestaurantExtractor) extractBreadcrumbs(ix *Index, baseURL string) []skigv.Breadcrumb {
	var crumbs []skigv.Breadcrumb
	ix.Find(`a[class*="breadcrumb"], a[class*="bread"], a[class*="nav"]`).Each(func(_ int, a *goquery.Selection) {
		href := Attr(a, "href")
		if href == "" {
			return
		}
		crumbs = append(crumbs, skigv.Breadcrumb{
			Label: Text(a),
			URL:   normalize.ResolveURL(baseURL, href),
		})
	})
	return crumbs
}

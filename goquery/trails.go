package goquery

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/dkashin/skigv"
	"github.com/dkashin/skigv/normalize"
)

// Ensure TrailExtractor implements skigv.TrailExtractor at compile time.
var _ skigv.TrailExtractor = (*TrailExtractor)(nil)

// DefaultMapOverrides lists trails whose map URL cannot be found by the
// generic iframe/widget search. The "Северная энергия" section embeds its
// map through a construct the search does not reach, so its URL is pinned.
func DefaultMapOverrides() []skigv.MapOverride {
	return []skigv.MapOverride{
		{
			Name: "Северная энергия",
			URL:  "https://yandex.ru/maps/80/yuzhno-sakhalinsk/?from=mapframe&l=sat&ll=142.793450%2C46.957413&mode=usermaps&source=mapframe&um=constructor%3A97f3eaa38d056b248e8b2119cb211a5410992ad4c5b2a9decccaa07f43b2defc&utm_source=mapframe&z=16",
		},
	}
}

// TrailExtractor extracts eco-trails from the navigation page. The page is
// one formatted-text container where each h2 heading starts a trail and the
// following paragraphs describe it.
type TrailExtractor struct {
	overrides []skigv.MapOverride
}

// NewTrailExtractor creates a TrailExtractor with the given map overrides.
// Pass DefaultMapOverrides() for the site's known exceptions.
func NewTrailExtractor(overrides []skigv.MapOverride) *TrailExtractor {
	return &TrailExtractor{overrides: overrides}
}

var (
	headingSplitRe  = regexp.MustCompile(`^([^-]+)-\s*(.+)$`)
	trailLengthRe   = regexp.MustCompile(`протяженностью\s*(\d+(?:[.,]\s*\d*)?)\s*км`)
	constructorIDRe = regexp.MustCompile(`um=constructor(?:%3A|:)([^&]+)`)
)

// ExtractTrails parses the eco-trails page.
func (e *TrailExtractor) ExtractTrails(html string) ([]skigv.EcoTrail, error) {
	ix, err := Parse(html)
	if err != nil {
		return nil, err
	}

	container := ix.First("div[data-formatted-text]")
	if container.Length() == 0 {
		return nil, &skigv.StructureError{Container: "data-formatted-text"}
	}

	var trails []skigv.EcoTrail
	var current *skigv.EcoTrail

	container.Children().Each(func(_ int, el *goquery.Selection) {
		switch goquery.NodeName(el) {
		case "h2":
			if current != nil {
				trails = append(trails, *current)
			}
			name, description := splitHeading(Text(el))
			current = &skigv.EcoTrail{Name: name, Description: description}
		case "p":
			if current == nil {
				return
			}
			text := Text(el)
			if m := trailLengthRe.FindStringSubmatch(text); m != nil {
				if v, ok := normalize.ParseDecimal(m[1]); ok {
					current.LengthKM = v
				}
			}
		}
	})
	if current != nil {
		trails = append(trails, *current)
	}

	for i := range trails {
		trails[i].MapURL = e.mapURL(ix, trails[i].Name)
	}

	return trails, nil
}

// splitHeading splits a trail heading into name and description on the
// first hyphen, falling back to a " - " token split.
func splitHeading(text string) (name string, description string) {
	if m := headingSplitRe.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1]), strings.TrimSpace(m[2])
	}
	parts := strings.SplitN(text, " - ", 2)
	name = strings.TrimSpace(parts[0])
	if len(parts) > 1 {
		description = strings.TrimSpace(parts[1])
	}
	return name, description
}

// mapURL resolves the map link for a trail. Overrides are consulted first
// and bypass the generic search entirely.
func (e *TrailExtractor) mapURL(ix *Index, name string) string {
	for _, o := range e.overrides {
		if o.Name == name {
			return o.URL
		}
	}
	return e.findMapURL(ix, name)
}

// findMapURL scans the paragraphs following the trail's heading for an
// embedded map iframe. When the paragraph holds a map-widget placeholder
// instead, the widget identifier is cross-referenced from the constructor
// script tag and turned into a widget URL.
func (e *TrailExtractor) findMapURL(ix *Index, name string) string {
	var mapURL string
	ix.Find("h2").EachWithBreak(func(_ int, h2 *goquery.Selection) bool {
		if !strings.Contains(Text(h2), name) {
			return true
		}
		h2.NextAll().Filter("p").EachWithBreak(func(_ int, p *goquery.Selection) bool {
			if src := Attr(p.Find("iframe"), "src"); src != "" {
				mapURL = src
				return false
			}
			if p.Find("ymaps").Length() > 0 {
				mapURL = e.widgetURLFromScripts(ix)
				if mapURL != "" {
					return false
				}
			}
			return true
		})
		return false
	})
	return mapURL
}

// widgetURLFromScripts finds the map-constructor script and extracts the
// embedded widget identifier from its URL.
func (e *TrailExtractor) widgetURLFromScripts(ix *Index) string {
	var widgetURL string
	ix.Find(`script[src*="constructor"]`).EachWithBreak(func(_ int, script *goquery.Selection) bool {
		src := Attr(script, "src")
		if m := constructorIDRe.FindStringSubmatch(src); m != nil {
			widgetURL = "https://yandex.ru/map-widget/v1/?um=constructor:" + m[1]
			return false
		}
		return true
	})
	return widgetURL
}

package goquery

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/dkashin/skigv"
	"github.com/dkashin/skigv/normalize"
)

// Ensure TrackExtractor implements skigv.TrackExtractor at compile time.
var _ skigv.TrackExtractor = (*TrackExtractor)(nil)

// TrackConfig selects the optional field sets of the track extractor.
// The site serves three variants of the option block (winter tracks, winter
// scheme, summer lifts); one extractor covers all of them, parameterized by
// which extras the caller wants.
type TrackConfig struct {
	// Color adds the scheme color derived from the number style class.
	Color bool

	// LiftParams adds the summer-only lift-type and capacity icons.
	LiftParams bool

	// DetailURL adds the info-button link, resolved to an absolute URL.
	DetailURL bool
}

// TrackExtractor extracts track and lift option blocks from zone pages.
type TrackExtractor struct {
	cfg TrackConfig
}

// NewTrackExtractor creates a TrackExtractor with the given configuration.
func NewTrackExtractor(cfg TrackConfig) *TrackExtractor {
	return &TrackExtractor{cfg: cfg}
}

// Selector chains for the option blocks and their fields. Each chain lists
// the current template's class first and older variants after it.
var (
	trackBlockSelectors  = []string{"div.scheme-select__option.track-option", "div.track-option", "div.lift-option"}
	trackNameSelectors   = []string{"div.track-option__name", "div.lift-option__name"}
	trackNumberSelectors = []string{"div.track-option__number", "div.lift-option__number"}
	trackParamSelectors  = []string{"div.track-option__info span.track-param", "span.track-param", "span.lift-param"}
	trackStatusSelectors = []string{"p.track-status", "p.lift-status"}
	trackLinkSelectors   = []string{"a.button.button_style_default.button_type_2"}

	zoneLinkSelectors = []string{"a.gv-select__option.option", "a.gv-selectoption.option", "div.gv-select a.option"}
)

// iconField maps an icon class token to the parameter field it labels.
// Each icon is evaluated independently, so a block may yield any subset.
type iconField struct {
	class    string
	liftOnly bool
	assign   func(*skigv.TrackParams, string)
}

var iconFields = []iconField{
	{class: "icon_image_track-length", assign: func(p *skigv.TrackParams, v string) { p.Length = v }},
	{class: "icon_image_clock", assign: func(p *skigv.TrackParams, v string) { p.Time = v }},
	{class: "icon_image_hourglass", assign: func(p *skigv.TrackParams, v string) { p.Time = v }},
	{class: "icon_image_track-height", assign: func(p *skigv.TrackParams, v string) { p.Height = v }},
	{class: "icon_image_lamp", assign: func(p *skigv.TrackParams, v string) { p.Lighting = v }},
	{class: "icon_image_snowmachine", assign: func(p *skigv.TrackParams, v string) { p.Snow = v }},
	{class: "icon_image_cabine", liftOnly: true, assign: func(p *skigv.TrackParams, v string) { p.LiftType = v }},
	{class: "icon_image_people", liftOnly: true, assign: func(p *skigv.TrackParams, v string) { p.Capacity = v }},
}

// numberStyleDifficulty maps the style-suffix class on the number element to
// a difficulty tier. Older templates carry difficulty only in this class.
var numberStyleDifficulty = map[string]skigv.Difficulty{
	"track-option__number_style_1": skigv.DifficultyEasy,
	"track-option__number_style_2": skigv.DifficultyMedium,
	"track-option__number_style_3": skigv.DifficultyHard,
	"track-option__number_style_4": skigv.DifficultyExpert,
}

// numberStyleColor maps the same style classes to the scheme's track colors.
// Style 2 has no color on the site.
var numberStyleColor = map[string]string{
	"track-option__number_style_1": "#429867",
	"track-option__number_style_3": "#cd0b0b",
	"track-option__number_style_4": "#000",
}

// ExtractTracks parses a zone page and returns its track records.
func (e *TrackExtractor) ExtractTracks(html string, baseURL string) ([]skigv.Track, error) {
	ix, err := Parse(html)
	if err != nil {
		return nil, err
	}

	var tracks []skigv.Track
	ix.All(trackBlockSelectors...).Each(func(_ int, block *goquery.Selection) {
		name := Text(FirstIn(block, trackNameSelectors...))
		if name == "" {
			// A block without a name is a decorative template artifact.
			return
		}

		numberSel := FirstIn(block, trackNumberSelectors...)
		number := Text(numberSel)

		track := skigv.Track{
			Name:       name,
			Number:     number,
			Difficulty: classifyDifficulty(numberSel, number),
			Params:     e.extractParams(block, numberSel),
			Status:     Text(FirstIn(block, trackStatusSelectors...)),
		}

		if e.cfg.DetailURL {
			if href := Attr(FirstIn(block, trackLinkSelectors...), "href"); href != "" {
				track.URL = normalize.ResolveURL(baseURL, href)
			}
		}

		tracks = append(tracks, track)
	})

	return tracks, nil
}

// extractParams reads the icon-labeled parameter spans of one option block.
func (e *TrackExtractor) extractParams(block *goquery.Selection, numberSel *goquery.Selection) skigv.TrackParams {
	var params skigv.TrackParams

	AllIn(block, trackParamSelectors...).Each(func(_ int, param *goquery.Selection) {
		icon := param.Find("span.icon")
		if icon.Length() == 0 {
			return
		}
		value := Text(param)
		if value == "" {
			return
		}
		for _, f := range iconFields {
			if f.liftOnly && !e.cfg.LiftParams {
				continue
			}
			if icon.HasClass(f.class) {
				f.assign(&params, value)
				break
			}
		}
	})

	if e.cfg.Color {
		for class, color := range numberStyleColor {
			if numberSel.HasClass(class) {
				params.Color = color
				break
			}
		}
	}

	return params
}

// classifyDifficulty applies the two-stage difficulty policy: the number
// element's style-suffix class decides when present; otherwise a parseable
// display number falls back to numeric banding; otherwise unknown.
func classifyDifficulty(numberSel *goquery.Selection, number string) skigv.Difficulty {
	for class, d := range numberStyleDifficulty {
		if numberSel.HasClass(class) {
			return d
		}
	}

	if n, err := strconv.Atoi(number); err == nil {
		switch {
		case n <= 4:
			return skigv.DifficultyEasy
		case n <= 8:
			return skigv.DifficultyMedium
		case n <= 12:
			return skigv.DifficultyHard
		default:
			return skigv.DifficultyExpert
		}
	}

	return skigv.DifficultyUnknown
}

// ExtractZoneLinks parses the hills index page and returns the zone links.
func (e *TrackExtractor) ExtractZoneLinks(html string, baseURL string) ([]skigv.ZoneLink, error) {
	ix, err := Parse(html)
	if err != nil {
		return nil, err
	}

	options := ix.All(zoneLinkSelectors...)
	if options.Length() == 0 {
		if ix.Find("div.gv-select").Length() == 0 {
			return nil, &skigv.StructureError{URL: baseURL, Container: "gv-select"}
		}
		return nil, skigv.Errorf(skigv.ENOTFOUND, "zone selector is present but lists no zones")
	}

	var links []skigv.ZoneLink
	options.Each(func(_ int, opt *goquery.Selection) {
		href := Attr(opt, "href")
		if href == "" {
			return
		}
		name := Text(opt)
		// The option label carries the open-track counter in parentheses.
		if i := strings.Index(name, "("); i >= 0 {
			name = strings.TrimSpace(name[:i])
		}
		links = append(links, skigv.ZoneLink{
			Name: name,
			URL:  normalize.ResolveURL(baseURL, href),
		})
	})

	return links, nil
}

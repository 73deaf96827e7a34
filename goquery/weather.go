package goquery

import (
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/dkashin/skigv"
	"github.com/dkashin/skigv/normalize"
)

// Ensure WeatherExtractor implements skigv.WeatherExtractor at compile time.
var _ skigv.WeatherExtractor = (*WeatherExtractor)(nil)

// WeatherExtractor extracts the current-weather card from the weather page.
type WeatherExtractor struct {
	// Now supplies the snapshot observation time. Defaults to time.Now.
	Now func() time.Time
}

// NewWeatherExtractor creates a WeatherExtractor.
func NewWeatherExtractor() *WeatherExtractor {
	return &WeatherExtractor{Now: time.Now}
}

// paramKeywords routes the labeled key/value list of the weather card to
// snapshot fields by lowercased label substring.
var paramKeywords = []struct {
	keyword string
	assign  func(*skigv.WeatherSnapshot, string)
}{
	{keyword: "восход", assign: func(w *skigv.WeatherSnapshot, v string) { w.Sunrise = v }},
	{keyword: "заход", assign: func(w *skigv.WeatherSnapshot, v string) { w.Sunset = v }},
	{keyword: "влажность", assign: func(w *skigv.WeatherSnapshot, v string) { w.Humidity = v }},
	{keyword: "давление", assign: func(w *skigv.WeatherSnapshot, v string) { w.Pressure = v }},
}

// ExtractWeather parses the weather page. The current-weather card is
// load-bearing: without it the data domain is unusable and an ESTRUCTURE
// failure is returned. Every field inside the card is optional.
func (e *WeatherExtractor) ExtractWeather(html string, baseURL string) (*skigv.WeatherSnapshot, error) {
	ix, err := Parse(html)
	if err != nil {
		return nil, err
	}

	card := ix.First("div.weather__current-part")
	if card.Length() == 0 {
		return nil, &skigv.StructureError{URL: baseURL, Container: "weather__current-part"}
	}

	now := e.Now
	if now == nil {
		now = time.Now
	}
	snapshot := &skigv.WeatherSnapshot{ObservedAt: now()}

	if src := Attr(card.Find("img.weather-card__icon"), "src"); src != "" {
		snapshot.IconURL = normalize.ResolveURL(baseURL, src)
	}
	snapshot.Temperature = Text(card.Find("p.weather-card__temp"))
	snapshot.Condition = Text(card.Find("span.weather-condition"))

	card.Find("p").EachWithBreak(func(_ int, p *goquery.Selection) bool {
		if text := Text(p); strings.Contains(text, "Ветер") {
			snapshot.Wind = text
			return false
		}
		return true
	})

	card.Find("ul.weather-card__params li").Each(func(_ int, li *goquery.Selection) {
		items := li.Find("p")
		if items.Length() < 2 {
			return
		}
		label := strings.ToLower(Text(items.Eq(0)))
		value := Text(items.Eq(1))
		for _, k := range paramKeywords {
			if strings.Contains(label, k.keyword) {
				k.assign(snapshot, value)
				break
			}
		}
	})

	return snapshot, nil
}

package skigv

import "time"

// WeatherSnapshot is the current-weather card of the resort site at the time
// of extraction. Every field is optional; ObservedAt is the extraction time.
type WeatherSnapshot struct {
	Temperature string    `json:"temperature,omitempty"`
	Condition   string    `json:"condition,omitempty"`
	Wind        string    `json:"wind,omitempty"`
	Sunrise     string    `json:"sunrise,omitempty"`
	Sunset      string    `json:"sunset,omitempty"`
	Humidity    string    `json:"humidity,omitempty"`
	Pressure    string    `json:"pressure,omitempty"`
	IconURL     string    `json:"iconUrl,omitempty"`
	ObservedAt  time.Time `json:"observedAt"`
}

// WeatherExtractor extracts the current-weather snapshot.
// The weather card itself is load-bearing: its absence is an ESTRUCTURE
// failure, while any individual missing field is folded into the snapshot
// as an absent value.
type WeatherExtractor interface {
	ExtractWeather(html string, baseURL string) (*WeatherSnapshot, error)
}

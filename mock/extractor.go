package mock

import "github.com/dkashin/skigv"

var (
	_ skigv.TrackExtractor      = (*TrackExtractor)(nil)
	_ skigv.RestaurantExtractor = (*RestaurantExtractor)(nil)
	_ skigv.WeatherExtractor    = (*WeatherExtractor)(nil)
	_ skigv.LiftExtractor       = (*LiftExtractor)(nil)
	_ skigv.TrailExtractor      = (*TrailExtractor)(nil)
	_ skigv.PriceExtractor      = (*PriceExtractor)(nil)
)

// TrackExtractor is a mock implementation of skigv.TrackExtractor.
type TrackExtractor struct {
	ExtractTracksFn    func(html string, baseURL string) ([]skigv.Track, error)
	ExtractZoneLinksFn func(html string, baseURL string) ([]skigv.ZoneLink, error)
}

func (e *TrackExtractor) ExtractTracks(html string, baseURL string) ([]skigv.Track, error) {
	return e.ExtractTracksFn(html, baseURL)
}

func (e *TrackExtractor) ExtractZoneLinks(html string, baseURL string) ([]skigv.ZoneLink, error) {
	return e.ExtractZoneLinksFn(html, baseURL)
}

// RestaurantExtractor is a mock implementation of skigv.RestaurantExtractor.
type RestaurantExtractor struct {
	ExtractRestaurantFn func(html string, baseURL string) (*skigv.Restaurant, error)
}

func (e *RestaurantExtractor) ExtractRestaurant(html string, baseURL string) (*skigv.Restaurant, error) {
	return e.ExtractRestaurantFn(html, baseURL)
}

// WeatherExtractor is a mock implementation of skigv.WeatherExtractor.
type WeatherExtractor struct {
	ExtractWeatherFn func(html string, baseURL string) (*skigv.WeatherSnapshot, error)
}

func (e *WeatherExtractor) ExtractWeather(html string, baseURL string) (*skigv.WeatherSnapshot, error) {
	return e.ExtractWeatherFn(html, baseURL)
}

// LiftExtractor is a mock implementation of skigv.LiftExtractor.
type LiftExtractor struct {
	ExtractLiftsFn func(html string) ([]skigv.Lift, error)
}

func (e *LiftExtractor) ExtractLifts(html string) ([]skigv.Lift, error) {
	return e.ExtractLiftsFn(html)
}

// TrailExtractor is a mock implementation of skigv.TrailExtractor.
type TrailExtractor struct {
	ExtractTrailsFn func(html string) ([]skigv.EcoTrail, error)
}

func (e *TrailExtractor) ExtractTrails(html string) ([]skigv.EcoTrail, error) {
	return e.ExtractTrailsFn(html)
}

// PriceExtractor is a mock implementation of skigv.PriceExtractor.
type PriceExtractor struct {
	ExtractPricesFn func(html string) (*skigv.PriceList, error)
}

func (e *PriceExtractor) ExtractPrices(html string) (*skigv.PriceList, error) {
	return e.ExtractPricesFn(html)
}

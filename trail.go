package skigv

// EcoTrail represents one eco-trail described on the navigation page.
// LengthKM is zero when the length phrase was not found in the trail's
// paragraphs.
type EcoTrail struct {
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	LengthKM    float64 `json:"lengthKm,omitempty"`
	MapURL      string  `json:"mapUrl,omitempty"`
}

// MapOverride substitutes a fixed map URL for a trail matched by exact name.
// The generic iframe/widget search is known not to work for some trails;
// overrides are consulted before the generic search.
type MapOverride struct {
	Name string
	URL  string
}

// TrailExtractor extracts eco-trails from the eco-trails page.
type TrailExtractor interface {
	ExtractTrails(html string) ([]EcoTrail, error)
}

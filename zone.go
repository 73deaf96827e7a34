package skigv

// Season selects which variant of the resort's pages the upstream site
// serves. The selection is session-scoped: the site reads it from a cookie.
type Season string

// Season values accepted by ski-gv.ru.
const (
	SeasonWinter Season = "winter"
	SeasonSummer Season = "summer"
)

// Difficulty is the classified difficulty tier of a track.
type Difficulty string

// Difficulty tiers. DifficultyUnknown is used when neither the style-class
// suffix nor the numeric display value identifies a tier.
const (
	DifficultyEasy    Difficulty = "easy"
	DifficultyMedium  Difficulty = "medium"
	DifficultyHard    Difficulty = "hard"
	DifficultyExpert  Difficulty = "expert"
	DifficultyUnknown Difficulty = "unknown"
)

// TrackParams holds the optional parameter set of a track or lift.
// A field is present only if its icon was found in the markup; an absent
// field is the empty string and is omitted from serialized output.
type TrackParams struct {
	Length   string `json:"length,omitempty"`
	Time     string `json:"time,omitempty"`
	Height   string `json:"height,omitempty"`
	Lighting string `json:"lighting,omitempty"`
	Snow     string `json:"snow,omitempty"`
	LiftType string `json:"liftType,omitempty"`
	Capacity string `json:"capacity,omitempty"`
	Color    string `json:"color,omitempty"`
}

// Track represents one track or lift option on a zone page.
type Track struct {
	Name       string      `json:"name"`
	Number     string      `json:"number,omitempty"`
	Difficulty Difficulty  `json:"difficulty"`
	Params     TrackParams `json:"params,omitzero"`
	Status     string      `json:"status,omitempty"`
	URL        string      `json:"url,omitempty"`
}

// Zone represents one resort zone with its tracks.
type Zone struct {
	Name   string  `json:"name"`
	URL    string  `json:"url"`
	Tracks []Track `json:"tracks"`
}

// Validate returns an error if the zone contains invalid fields.
func (z *Zone) Validate() error {
	if z.Name == "" {
		return Errorf(EINVALID, "zone name required")
	}
	if z.URL == "" {
		return Errorf(EINVALID, "zone URL required")
	}
	return nil
}

// ZoneLink is a resolved link to a zone page, found on the hills index page.
type ZoneLink struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// TrackExtractor extracts track records from a zone page.
type TrackExtractor interface {
	// ExtractTracks parses a zone page and returns its tracks.
	// A track block without a name is skipped, not reported as an error.
	ExtractTracks(html string, baseURL string) ([]Track, error)

	// ExtractZoneLinks parses the hills index page and returns the zone
	// links, resolved against baseURL. Returns ENOTFOUND when the zone
	// selector is present but empty, ESTRUCTURE when it is absent entirely.
	ExtractZoneLinks(html string, baseURL string) ([]ZoneLink, error)
}

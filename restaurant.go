package skigv

// Breadcrumb is one (label, URL) pair of a page's breadcrumb trail.
type Breadcrumb struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// Restaurant represents one restaurant profile page. Absent fields are
// omitted from serialized output. Description and Images never contain
// repeated elements and preserve first-seen order.
type Restaurant struct {
	Name        string       `json:"name,omitempty"`
	Address     string       `json:"address,omitempty"`
	Phone       string       `json:"phone,omitempty"`
	Schedule    string       `json:"schedule,omitempty"`
	Description []string     `json:"description,omitempty"`
	Images      []string     `json:"images,omitempty"`
	Breadcrumbs []Breadcrumb `json:"breadcrumbs,omitempty"`
}

// RestaurantExtractor extracts a restaurant profile from a company page.
type RestaurantExtractor interface {
	ExtractRestaurant(html string, baseURL string) (*Restaurant, error)
}

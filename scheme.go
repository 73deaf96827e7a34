package skigv

// SchemeImage is one positioned image of the slope scheme. Position and size
// come from data-* attributes and are kept as strings: the site serves them
// as CSS-unit values.
type SchemeImage struct {
	URL    string `json:"url"`
	Layer  string `json:"layer,omitempty"`
	Left   string `json:"left,omitempty"`
	Top    string `json:"top,omitempty"`
	Width  string `json:"width,omitempty"`
	Height string `json:"height,omitempty"`
}

// Scheme is the layered slope scheme of a zone page: the hill base image
// plus overlay layers in document order.
type Scheme struct {
	Hill   SchemeImage   `json:"hill"`
	Layers []SchemeImage `json:"layers"`
}

// SchemeExtractor extracts the slope scheme from a zone page.
type SchemeExtractor interface {
	ExtractScheme(html string, baseURL string) (*Scheme, error)
}

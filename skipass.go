package skigv

// PricePlan is one ski-pass offering within a category. A nil price means
// the source cell carried the "no value" marker, not a zero price.
type PricePlan struct {
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	RegularPrice *int   `json:"regularPrice,omitempty"`
	CardPrice    *int   `json:"cardPrice,omitempty"`
}

// Category groups price plans under a heading row of the price table.
type Category struct {
	Name  string      `json:"name"`
	Plans []PricePlan `json:"plans"`
}

// PriceList is the full price-plan catalog. Categories are sorted by name
// for deterministic output.
type PriceList struct {
	Name       string     `json:"name"`
	Categories []Category `json:"categories"`
}

// PriceExtractor extracts the ski-pass price catalog from the skipass page.
type PriceExtractor interface {
	ExtractPrices(html string) (*PriceList, error)
}

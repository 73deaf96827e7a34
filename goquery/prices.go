package goquery

import (
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/dkashin/skigv"
	"github.com/dkashin/skigv/normalize"
)

// Ensure PriceExtractor implements skigv.PriceExtractor at compile time.
var _ skigv.PriceExtractor = (*PriceExtractor)(nil)

// RootCategoryName names the price catalog on the skipass page.
const RootCategoryName = "Разовые подъемы"

// PriceExtractor extracts the ski-pass catalog from the skipass page table.
// A single-cell row spanning all columns starts a category; the multi-cell
// rows under it are that category's plans.
type PriceExtractor struct{}

// NewPriceExtractor creates a PriceExtractor.
func NewPriceExtractor() *PriceExtractor {
	return &PriceExtractor{}
}

// ExtractPrices parses the skipass page. The price table is load-bearing.
func (e *PriceExtractor) ExtractPrices(html string) (*skigv.PriceList, error) {
	ix, err := Parse(html)
	if err != nil {
		return nil, err
	}

	table := ix.First("table")
	if table.Length() == 0 {
		return nil, &skigv.StructureError{Container: "table"}
	}

	byName := make(map[string]*skigv.Category)
	var order []string
	var currentCategory string
	firstRow := true

	table.Find("tr").Each(func(_ int, row *goquery.Selection) {
		// The table opens with a gradient banner row that carries styling
		// only, no data.
		if firstRow {
			firstRow = false
			if rowHTML, err := goquery.OuterHtml(row); err == nil && strings.Contains(rowHTML, "background") {
				return
			}
		}

		cells := row.Find("th, td")

		if cells.Length() == 1 && Attr(cells, "colspan") != "" {
			currentCategory = Text(cells)
			if currentCategory != "" && byName[currentCategory] == nil {
				byName[currentCategory] = &skigv.Category{Name: currentCategory}
				order = append(order, currentCategory)
			}
			return
		}

		if cells.Length() < 3 || currentCategory == "" {
			return
		}

		nameCell := cells.Eq(0)
		name := Text(nameCell.Find("h3"))
		if name == "" {
			name = Text(nameCell)
		}

		// Only the first div is the description; later divs are markup
		// variants that must not be glued onto it.
		plan := skigv.PricePlan{
			Name:        name,
			Description: Text(nameCell.Find("div").First()),
		}
		if v, ok := normalize.ParsePrice(Text(cells.Eq(1))); ok {
			plan.RegularPrice = &v
		}
		if v, ok := normalize.ParsePrice(Text(cells.Eq(2))); ok {
			plan.CardPrice = &v
		}

		cat := byName[currentCategory]
		cat.Plans = append(cat.Plans, plan)
	})

	categories := make([]skigv.Category, 0, len(order))
	for _, name := range order {
		categories = append(categories, *byName[name])
	}
	sort.Slice(categories, func(i, j int) bool {
		return categories[i].Name < categories[j].Name
	})

	return &skigv.PriceList{Name: RootCategoryName, Categories: categories}, nil
}

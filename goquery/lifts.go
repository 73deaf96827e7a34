package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/dkashin/skigv"
	"github.com/dkashin/skigv/normalize"
)

// Ensure LiftExtractor implements skigv.LiftExtractor at compile time.
var _ skigv.LiftExtractor = (*LiftExtractor)(nil)

// DefaultScheduleOverrides lists the known lifts whose weekend rows are
// missing from the schedule page even though the lifts run. The "Запад"
// stations publish weekend hours elsewhere on the site.
func DefaultScheduleOverrides() []skigv.ScheduleOverride {
	return []skigv.ScheduleOverride{
		{NameContains: "Запад", Saturday: "09:00-22:00", Sunday: "09:00-21:00"},
	}
}

// LiftExtractor extracts lift operating schedules from the schedule page.
// Each captioned table describes one lift; the caption text is its name.
type LiftExtractor struct {
	overrides []skigv.ScheduleOverride
}

// NewLiftExtractor creates a LiftExtractor with the given schedule overrides.
// Pass DefaultScheduleOverrides() for the site's known exceptions.
func NewLiftExtractor(overrides []skigv.ScheduleOverride) *LiftExtractor {
	return &LiftExtractor{overrides: overrides}
}

// Row phrase markers of the schedule tables. A row matches at most one.
const (
	phraseWorkdays = "Понедельник-пятница"
	phraseWeekend  = "Суббота и воскресенье"
	phraseSaturday = "Суббота:"
	phraseSunday   = "Воскресенье:"
)

// ExtractLifts parses the schedule page and returns the lifts.
func (e *LiftExtractor) ExtractLifts(html string) ([]skigv.Lift, error) {
	ix, err := Parse(html)
	if err != nil {
		return nil, err
	}

	var lifts []skigv.Lift
	ix.Find("table").Each(func(_ int, table *goquery.Selection) {
		caption := table.Find("caption")
		if caption.Length() == 0 {
			return
		}
		name := Text(FirstIn(caption, "p"))
		if name == "" {
			name = Text(caption)
		}

		schedule := e.extractSchedule(table, name)
		lifts = append(lifts, skigv.Lift{Name: name, Schedule: schedule})
	})

	return lifts, nil
}

// extractSchedule scans the table rows for the four phrase patterns and
// applies weekend defaults for override-listed lifts afterwards.
func (e *LiftExtractor) extractSchedule(table *goquery.Selection, liftName string) skigv.Schedule {
	var s skigv.Schedule

	table.Find("tr").Each(func(_ int, row *goquery.Selection) {
		text := normalize.CleanText(row.Text())
		rng, ok := normalize.ParseTimeRange(text)
		if !ok {
			return
		}
		switch {
		case strings.Contains(text, phraseWorkdays):
			s.Workdays = rng
		case strings.Contains(text, phraseWeekend):
			s.Saturday = rng
			s.Sunday = rng
		case strings.Contains(text, phraseSaturday):
			s.Saturday = rng
		case strings.Contains(text, phraseSunday):
			s.Sunday = rng
		}
	})

	// Overrides fill only fields that row scanning left absent.
	for _, o := range e.overrides {
		if !strings.Contains(liftName, o.NameContains) {
			continue
		}
		if s.Saturday == "" && o.Saturday != "" {
			s.Saturday = o.Saturday
		}
		if s.Sunday == "" && o.Sunday != "" {
			s.Sunday = o.Sunday
		}
	}

	return s
}

package skigv

// Schedule holds the operating hours of a lift. Each field is either the
// empty string (absent) or a validated "HH:MM-HH:MM" range.
type Schedule struct {
	Workdays string `json:"workdays,omitempty"`
	Saturday string `json:"saturday,omitempty"`
	Sunday   string `json:"sunday,omitempty"`
}

// Lift represents one lift with its weekly operating schedule.
type Lift struct {
	Name     string   `json:"name"`
	Schedule Schedule `json:"schedule"`
}

// ScheduleOverride injects default weekend hours for lifts whose name
// contains a given substring. The schedule page omits weekend rows for some
// lifts even though they run; the override fills only fields that row
// scanning left absent.
type ScheduleOverride struct {
	NameContains string
	Saturday     string
	Sunday       string
}

// LiftExtractor extracts lift schedules from the resort schedule page.
type LiftExtractor interface {
	ExtractLifts(html string) ([]Lift, error)
}

package calendar

import "time"

// Selection is the optional selected day. The zero value selects nothing.
type Selection struct {
	day time.Time
	set bool
}

// Select returns a Selection holding day.
func Select(day time.Time, cfg Config) Selection {
	return Selection{day: cfg.StartOfDay(day), set: true}
}

// Date returns the selected day, if any.
func (s Selection) Date() (time.Time, bool) {
	return s.day, s.set
}

// IsSelected reports whether day is the selected day.
func (s Selection) IsSelected(day time.Time, cfg Config) bool {
	return s.set && cfg.SameDay(s.day, day)
}

// Clear drops the selection.
func (s Selection) Clear() Selection {
	return Selection{}
}

// ToggleSelection selects clicked, unless clicked is already the selected
// day, in which case the selection is cleared.
func ToggleSelection(current Selection, clicked time.Time, cfg Config) Selection {
	if current.IsSelected(clicked, cfg) {
		return Selection{}
	}
	return Select(clicked, cfg)
}

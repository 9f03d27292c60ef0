package tasks

import (
	"time"

	"github.com/lululau/dashcal/internal/calendar"
)

// Index answers per-day task queries. Tasks are bucketed by their calendar
// day in the configured location; insertion order is kept within a day.
type Index struct {
	cfg   calendar.Config
	tasks []Task
	byDay map[string][]int
}

// NewIndex builds an Index over list.
func NewIndex(cfg calendar.Config, list ...Task) *Index {
	idx := &Index{
		cfg:   cfg,
		tasks: make([]Task, len(list)),
		byDay: make(map[string][]int),
	}
	copy(idx.tasks, list)
	for i, t := range idx.tasks {
		key := cfg.DayKey(t.Date)
		idx.byDay[key] = append(idx.byDay[key], i)
	}
	return idx
}

// AllTasks returns every task in insertion order.
func (idx *Index) AllTasks() []Task {
	out := make([]Task, len(idx.tasks))
	copy(out, idx.tasks)
	return out
}

// TasksOn returns the tasks falling on day's calendar day. The result is
// empty, never nil, when nothing matches.
func (idx *Index) TasksOn(day time.Time) []Task {
	positions := idx.byDay[idx.cfg.DayKey(day)]
	out := make([]Task, 0, len(positions))
	for _, i := range positions {
		out = append(out, idx.tasks[i])
	}
	return out
}

// CountOn returns how many tasks fall on day. Callers cap it for display.
func (idx *Index) CountOn(day time.Time) int {
	return len(idx.byDay[idx.cfg.DayKey(day)])
}

// Len returns the number of indexed tasks.
func (idx *Index) Len() int {
	return len(idx.tasks)
}

// Visible returns the tasks for the list view: those on the selected day,
// or all tasks when nothing is selected.
func (idx *Index) Visible(sel calendar.Selection) []Task {
	if day, ok := sel.Date(); ok {
		return idx.TasksOn(day)
	}
	return idx.AllTasks()
}

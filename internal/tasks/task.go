package tasks

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrEmptyTitle is returned when a task is created without a title.
var ErrEmptyTitle = errors.New("task title must not be empty")

// Task is a dated item shown in the dashboard. Only its calendar day is
// meaningful; the time of day is ignored everywhere.
type Task struct {
	ID    uuid.UUID
	Date  time.Time
	Title string
}

// New creates a Task with a fresh ID.
func New(date time.Time, title string) (Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return Task{}, ErrEmptyTitle
	}
	return Task{
		ID:    uuid.New(),
		Date:  date,
		Title: title,
	}, nil
}

// Seed returns the built-in sample tasks.
func Seed(loc *time.Location) []Task {
	if loc == nil {
		loc = time.Local
	}
	seed := []struct {
		date  string
		title string
	}{
		{"2025-04-01", "Team meeting"},
		{"2025-04-01", "Team meeting"},
		{"2025-05-04", "Team meeting"},
		{"2025-04-08", "Team meeting"},
	}
	out := make([]Task, 0, len(seed))
	for _, s := range seed {
		date, _ := time.ParseInLocation(time.DateOnly, s.date, loc)
		task, _ := New(date, s.title)
		out = append(out, task)
	}
	return out
}

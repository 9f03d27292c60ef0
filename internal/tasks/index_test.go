package tasks

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/lululau/dashcal/internal/calendar"
)

func utcConfig() calendar.Config {
	return calendar.Config{FirstWeekday: time.Sunday, Location: time.UTC}
}

func day(s string) time.Time {
	d, _ := time.ParseInLocation(time.DateOnly, s, time.UTC)
	return d
}

func TestTasksOnMatchesSeedScenario(t *testing.T) {
	idx := NewIndex(utcConfig(), Seed(time.UTC)...)

	got := idx.TasksOn(day("2025-04-01"))
	if len(got) != 2 {
		t.Fatalf("expected 2 tasks on 2025-04-01, got %d", len(got))
	}
	all := idx.AllTasks()
	if got[0].ID != all[0].ID || got[1].ID != all[1].ID {
		t.Fatalf("expected the first two seed tasks in insertion order")
	}

	empty := idx.TasksOn(day("2025-04-02"))
	if empty == nil || len(empty) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", empty)
	}
	if n := idx.CountOn(day("2025-04-08").Add(18 * time.Hour)); n != 1 {
		t.Fatalf("expected 1 task on 2025-04-08 regardless of time of day, got %d", n)
	}
}

func TestTasksOnIsSubsetOfAllTasks(t *testing.T) {
	idx := NewIndex(utcConfig(), Seed(time.UTC)...)
	for d := day("2025-03-25"); d.Before(day("2025-05-10")); d = d.AddDate(0, 0, 1) {
		var want []uuid.UUID
		for _, task := range idx.AllTasks() {
			if utcConfig().SameDay(task.Date, d) {
				want = append(want, task.ID)
			}
		}
		got := idx.TasksOn(d)
		if len(got) != len(want) || idx.CountOn(d) != len(want) {
			t.Fatalf("%s: got %d tasks want %d", d.Format(time.DateOnly), len(got), len(want))
		}
		for i := range got {
			if got[i].ID != want[i] {
				t.Fatalf("%s: order mismatch at %d", d.Format(time.DateOnly), i)
			}
		}
	}
}

func TestIndexUsesConfiguredLocation(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*3600)
	cfg := calendar.Config{FirstWeekday: time.Sunday, Location: tokyo}
	// 20:00 UTC on April 1 is already April 2 in Tokyo.
	task, err := New(time.Date(2025, 4, 1, 20, 0, 0, 0, time.UTC), "Call")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	idx := NewIndex(cfg, task)
	if idx.CountOn(time.Date(2025, 4, 2, 0, 0, 0, 0, tokyo)) != 1 {
		t.Fatalf("expected task on April 2 in Tokyo")
	}
	if idx.CountOn(time.Date(2025, 4, 1, 0, 0, 0, 0, tokyo)) != 0 {
		t.Fatalf("expected no task on April 1 in Tokyo")
	}
}

func TestIndexIsImmutable(t *testing.T) {
	list := Seed(time.UTC)
	idx := NewIndex(utcConfig(), list...)
	list[0].Title = "changed"
	all := idx.AllTasks()
	all[1].Title = "changed"
	for _, task := range idx.AllTasks() {
		if task.Title != "Team meeting" {
			t.Fatalf("index was mutated through a caller slice")
		}
	}
	if idx.Len() != 4 {
		t.Fatalf("expected 4 tasks, got %d", idx.Len())
	}
}

func TestVisibleFollowsSelection(t *testing.T) {
	cfg := utcConfig()
	idx := NewIndex(cfg, Seed(time.UTC)...)
	if got := idx.Visible(calendar.Selection{}); len(got) != 4 {
		t.Fatalf("expected all tasks without selection, got %d", len(got))
	}
	sel := calendar.Select(day("2025-05-04"), cfg)
	if got := idx.Visible(sel); len(got) != 1 {
		t.Fatalf("expected 1 task on selected day, got %d", len(got))
	}
}

func TestNewRejectsEmptyTitle(t *testing.T) {
	if _, err := New(day("2025-04-01"), "   "); !errors.Is(err, ErrEmptyTitle) {
		t.Fatalf("expected ErrEmptyTitle, got %v", err)
	}
	a, _ := New(day("2025-04-01"), "a")
	b, _ := New(day("2025-04-01"), "a")
	if a.ID == b.ID {
		t.Fatalf("expected unique IDs")
	}
}

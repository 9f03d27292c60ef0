package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/lululau/dashcal/internal/calendar"
)

func TestParseRequest(t *testing.T) {
	now := time.Date(2025, 4, 8, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name     string
		showYear bool
		args     []string
		want     calendar.Request
		wantErr  bool
	}{
		{"current month", false, nil, calendar.Request{Year: 2025, Month: 4, Mode: calendar.ModeMonth}, false},
		{"month only", false, []string{"9"}, calendar.Request{Year: 2025, Month: 9, Mode: calendar.ModeMonth}, false},
		{"bare year", false, []string{"1983"}, calendar.Request{Year: 1983, Month: 4, Mode: calendar.ModeYear}, false},
		{"year month", false, []string{"2012", "12"}, calendar.Request{Year: 2012, Month: 12, Mode: calendar.ModeMonth}, false},
		{"year flag", true, []string{"9"}, calendar.Request{Year: 9, Month: 4, Mode: calendar.ModeYear}, false},
		{"bad month", false, []string{"2012", "13"}, calendar.Request{}, true},
		{"year flag two args", true, []string{"2012", "1"}, calendar.Request{}, true},
		{"not a number", false, []string{"april"}, calendar.Request{}, true},
		{"too many", false, []string{"1", "2", "3"}, calendar.Request{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseRequest(tt.showYear, tt.args, now)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %+v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseRequest returned error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("parseRequest=%+v want %+v", got, tt.want)
			}
		})
	}
}

func TestLoadTasksFallsBackToSeed(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "tasks.yaml")
	for _, path := range []string{"", missing} {
		got, err := loadTasks(path, time.UTC)
		if err != nil {
			t.Fatalf("loadTasks(%q) returned error: %v", path, err)
		}
		if len(got) != 4 {
			t.Fatalf("loadTasks(%q): expected 4 sample tasks, got %d", path, len(got))
		}
	}
}

func TestLoadTasksRejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.yaml")
	if err := os.WriteFile(path, []byte("tasks:\n  - date: April 1\n    title: x\n"), 0o600); err != nil {
		t.Fatalf("write tasks: %v", err)
	}
	got, err := loadTasks(path, time.UTC)
	if err == nil {
		t.Fatalf("expected error for malformed tasks file, got %d tasks", len(got))
	}
}

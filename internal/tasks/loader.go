package tasks

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
	"gopkg.in/yaml.v3"

	appLog "github.com/lululau/dashcal/internal/log"
)

var (
	// ErrUnsupportedFormat is returned for task files with an unknown extension.
	ErrUnsupportedFormat = errors.New("unsupported task file format")
	// ErrInvalidDate is returned when a task date is not YYYY-MM-DD.
	ErrInvalidDate = errors.New("invalid task date")
)

// document is the on-disk shape shared by the YAML and JSON formats.
type document struct {
	Tasks []entry `yaml:"tasks" json:"tasks"`
}

type entry struct {
	Date  string `yaml:"date" json:"date"`
	Title string `yaml:"title" json:"title"`
}

// LoadFile reads tasks from a .yaml/.yml, .json or .ics file. Dates are
// interpreted in loc.
func LoadFile(path string, loc *time.Location) ([]Task, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tasks file: %w", err)
	}
	if loc == nil {
		loc = time.Local
	}

	var list []Task
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		list, err = ParseYAML(data, loc)
	case ".json":
		list, err = ParseJSON(data, loc)
	case ".ics":
		list, err = ParseICS(data, loc)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	appLog.Info("tasks loaded", "path", path, "count", len(list))
	return list, nil
}

// ParseYAML decodes a YAML task document.
func ParseYAML(data []byte, loc *time.Location) ([]Task, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse tasks YAML: %w", err)
	}
	return doc.tasks(loc)
}

// ParseJSON decodes a JSON task document.
func ParseJSON(data []byte, loc *time.Location) ([]Task, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse tasks JSON: %w", err)
	}
	return doc.tasks(loc)
}

func (d document) tasks(loc *time.Location) ([]Task, error) {
	out := make([]Task, 0, len(d.Tasks))
	for i, e := range d.Tasks {
		date, err := time.ParseInLocation(time.DateOnly, strings.TrimSpace(e.Date), loc)
		if err != nil {
			return nil, fmt.Errorf("task %d: %w %q", i+1, ErrInvalidDate, e.Date)
		}
		task, err := New(date, e.Title)
		if err != nil {
			return nil, fmt.Errorf("task %d: %w", i+1, err)
		}
		out = append(out, task)
	}
	return out, nil
}

// ParseICS turns every VEVENT into a task on its start day. Recurrence rules
// are not expanded; only the first occurrence is kept.
func ParseICS(data []byte, loc *time.Location) ([]Task, error) {
	cal, err := ical.ParseCalendar(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse ICS: %w", err)
	}

	out := make([]Task, 0)
	for _, ev := range cal.Events() {
		task, err := taskFromEvent(ev, loc)
		if err != nil {
			appLog.Error("skipping ics event", err)
			continue
		}
		out = append(out, task)
	}
	return out, nil
}

func taskFromEvent(ev *ical.VEvent, loc *time.Location) (Task, error) {
	var title string
	if p := ev.GetProperty(ical.ComponentPropertySummary); p != nil {
		title = p.Value
	}

	dtStart := ev.GetProperty(ical.ComponentPropertyDtStart)
	if dtStart == nil {
		return Task{}, fmt.Errorf("%w: missing DTSTART", ErrInvalidDate)
	}

	value := strings.TrimSpace(dtStart.Value)
	var date time.Time
	switch {
	case !strings.Contains(value, "T"):
		// All-day events carry a floating date: pin it to loc.
		d, err := time.ParseInLocation("20060102", value, loc)
		if err != nil {
			return Task{}, fmt.Errorf("%w %q", ErrInvalidDate, value)
		}
		date = d
	case !strings.HasSuffix(value, "Z") && !hasTZID(dtStart):
		// Floating date-time: wall clock in loc.
		d, err := time.ParseInLocation("20060102T150405", value, loc)
		if err != nil {
			return Task{}, fmt.Errorf("%w %q", ErrInvalidDate, value)
		}
		date = d
	default:
		start, err := ev.GetStartAt()
		if err != nil {
			return Task{}, fmt.Errorf("%w: %v", ErrInvalidDate, err)
		}
		date = start
	}
	return New(startOfDay(date, loc), title)
}

func hasTZID(p *ical.IANAProperty) bool {
	tzs, ok := p.ICalParameters["TZID"]
	return ok && len(tzs) > 0 && tzs[0] != ""
}

// startOfDay drops the time of day, keeping t's calendar day in loc.
func startOfDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

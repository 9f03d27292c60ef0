package calendar

import (
	"strings"
	"testing"
	"time"
)

func TestNewConfigDerivesFirstWeekday(t *testing.T) {
	tests := []struct {
		locale string
		want   time.Weekday
	}{
		{"en_IN", time.Sunday},
		{"en-US", time.Sunday},
		{"ja_JP", time.Sunday},
		{"de_DE", time.Monday},
		{"en_GB", time.Monday},
		{"ar_EG", time.Saturday},
		{"", time.Sunday},
	}
	for _, tt := range tests {
		t.Run(tt.locale, func(t *testing.T) {
			cfg, err := NewConfig(tt.locale, "UTC")
			if err != nil {
				t.Fatalf("NewConfig(%q) returned error: %v", tt.locale, err)
			}
			if cfg.FirstWeekday != tt.want {
				t.Fatalf("NewConfig(%q) first weekday=%v want %v", tt.locale, cfg.FirstWeekday, tt.want)
			}
		})
	}
}

func TestNewConfigErrors(t *testing.T) {
	if _, err := NewConfig("en_IN", "Mars/Olympus_Mons"); err == nil {
		t.Fatalf("expected error for unknown timezone")
	}
	if _, err := NewConfig("!!", ""); err == nil {
		t.Fatalf("expected error for malformed locale")
	}
}

func TestWeekdaySymbolsRotate(t *testing.T) {
	cfg := Config{FirstWeekday: time.Monday, Location: time.UTC}
	got := strings.Join(cfg.WeekdaySymbols(), " ")
	if got != "Mon Tue Wed Thu Fri Sat Sun" {
		t.Fatalf("unexpected symbols %q", got)
	}
	cfg = cfg.WithFirstWeekday(time.Sunday)
	if syms := cfg.WeekdaySymbols(); len(syms) != 7 || syms[0] != "Sun" {
		t.Fatalf("unexpected sunday symbols %v", syms)
	}
}

func TestParseWeekday(t *testing.T) {
	for in, want := range map[string]time.Weekday{
		"sunday": time.Sunday,
		"Mon":    time.Monday,
		" SAT ":  time.Saturday,
	} {
		got, err := ParseWeekday(in)
		if err != nil || got != want {
			t.Fatalf("ParseWeekday(%q)=%v, %v want %v", in, got, err, want)
		}
	}
	if _, err := ParseWeekday("su"); err == nil {
		t.Fatalf("expected error for ambiguous abbreviation")
	}
}

func TestSameDayIgnoresTimeOfDay(t *testing.T) {
	cfg := Config{FirstWeekday: time.Sunday, Location: time.UTC}
	a := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	b := time.Date(2025, 4, 1, 23, 59, 59, 0, time.UTC)
	if !cfg.SameDay(a, b) {
		t.Fatalf("expected same day")
	}
	// 2025-04-01 23:00 in UTC-5 is April 2 in UTC.
	c := time.Date(2025, 4, 1, 23, 0, 0, 0, time.FixedZone("UTC-5", -5*3600))
	if cfg.SameDay(a, c) {
		t.Fatalf("expected comparison in configured location")
	}
	if got := cfg.DayKey(c); got != "2025-04-02" {
		t.Fatalf("DayKey=%s want 2025-04-02", got)
	}
}

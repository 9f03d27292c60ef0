package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadCreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Locale != "en_IN" || cfg.Theme != ThemeClassic || cfg.MaxDots != 5 {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("expected config file to be written: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Fatalf("expected 0600 permissions, got %o", perm)
	}
}

func TestLoadReadsYAMLAndNormalizes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "locale: de_DE\ntimezone: UTC\ntheme: neon\nmax_dots: 0\nlunar: true\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Locale != "de_DE" || !cfg.Lunar {
		t.Fatalf("file values not applied: %+v", cfg)
	}
	if cfg.Theme != ThemeClassic || cfg.MaxDots != 5 {
		t.Fatalf("invalid values not normalized: %+v", cfg)
	}
	cal, err := cfg.Calendar()
	if err != nil {
		t.Fatalf("Calendar returned error: %v", err)
	}
	if cal.FirstWeekday != time.Monday || cal.Location.String() != "UTC" {
		t.Fatalf("unexpected calendar config %+v", cal)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("theme: classic\nweek_start: monday\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("DASHCAL_THEME", "rounded")
	t.Setenv("DASHCAL_WEEK_START", "saturday")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Theme != ThemeRounded {
		t.Fatalf("expected env theme, got %q", cfg.Theme)
	}
	cal, err := cfg.Calendar()
	if err != nil {
		t.Fatalf("Calendar returned error: %v", err)
	}
	if cal.FirstWeekday != time.Saturday {
		t.Fatalf("expected saturday from env, got %v", cal.FirstWeekday)
	}
}

func TestCalendarRejectsBadWeekStart(t *testing.T) {
	cfg := DefaultConfig()
	cfg.WeekStart = "someday"
	if _, err := cfg.Calendar(); err == nil {
		t.Fatalf("expected error for unknown week_start")
	}
}

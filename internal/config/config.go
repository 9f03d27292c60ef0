package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ilyakaznacheev/cleanenv"
	"gopkg.in/yaml.v3"

	"github.com/lululau/dashcal/internal/calendar"
)

const (
	ThemeClassic = "classic"
	ThemeRounded = "rounded"

	defaultMaxDots = 5
)

// Config is the dashboard configuration. Every field may be overridden by
// the DASHCAL_* environment variable named in its env tag.
type Config struct {
	// Locale selects the first weekday, e.g. "en_IN" or "de_DE".
	Locale string `yaml:"locale" env:"DASHCAL_LOCALE"`

	// Timezone is an IANA name. Empty means the system zone.
	Timezone string `yaml:"timezone" env:"DASHCAL_TIMEZONE"`

	// WeekStart overrides the locale's first weekday ("sunday", "monday", ...).
	WeekStart string `yaml:"week_start" env:"DASHCAL_WEEK_START"`

	// Theme is "classic" or "rounded".
	Theme string `yaml:"theme" env:"DASHCAL_THEME"`

	// MaxDots caps the task indicator dots drawn per cell.
	MaxDots int `yaml:"max_dots" env:"DASHCAL_MAX_DOTS"`

	// Lunar adds Chinese lunar labels beneath day numbers.
	Lunar bool `yaml:"lunar" env:"DASHCAL_LUNAR"`

	// TasksFile is a .yaml, .json or .ics file. Empty uses the built-in sample tasks.
	TasksFile string `yaml:"tasks_file" env:"DASHCAL_TASKS_FILE"`

	NoColor  bool   `yaml:"no_color" env:"DASHCAL_NO_COLOR"`
	LogLevel string `yaml:"log_level" env:"DASHCAL_LOG_LEVEL"`
}

// DefaultConfig returns an in-memory default configuration.
func DefaultConfig() *Config {
	return &Config{
		Locale:   calendar.DefaultLocale,
		Theme:    ThemeClassic,
		MaxDots:  defaultMaxDots,
		LogLevel: "info",
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/dashcal/config.yaml.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get config directory: %w", err)
	}
	return filepath.Join(dir, "dashcal", "config.yaml"), nil
}

// Normalize fills in missing or unknown values with defaults.
func (c *Config) Normalize() {
	if c.Locale == "" {
		c.Locale = calendar.DefaultLocale
	}
	switch c.Theme {
	case ThemeClassic, ThemeRounded:
	default:
		c.Theme = ThemeClassic
	}
	if c.MaxDots <= 0 {
		c.MaxDots = defaultMaxDots
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

// Load reads the YAML file at path and applies environment overrides.
// A missing file is created with the defaults on first run.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		if err := Save(path, cfg); err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("read env: %w", err)
	}
	cfg.Normalize()
	return cfg, nil
}

// Save writes cfg to path atomically with 0600 permissions.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}
	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".dashcal-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}

// Calendar builds the calendar conventions described by c.
func (c *Config) Calendar() (calendar.Config, error) {
	cal, err := calendar.NewConfig(c.Locale, c.Timezone)
	if err != nil {
		return calendar.Config{}, err
	}
	if c.WeekStart != "" {
		day, err := calendar.ParseWeekday(c.WeekStart)
		if err != nil {
			return calendar.Config{}, fmt.Errorf("week_start: %w", err)
		}
		cal = cal.WithFirstWeekday(day)
	}
	return cal, nil
}

package calendar

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"
)

// DefaultLocale is used when no locale is configured.
const DefaultLocale = "en_IN"

// Config carries the calendar conventions every grid and day comparison is
// evaluated against. It is built once by the caller and passed by value.
type Config struct {
	FirstWeekday time.Weekday
	Location     *time.Location
	Locale       language.Tag
}

// Regions whose week starts on a day other than Monday (CLDR weekData).
var (
	sundayRegions = map[string]bool{
		"AG": true, "AS": true, "AU": true, "BD": true, "BR": true, "BS": true, "BT": true,
		"BW": true, "BZ": true, "CA": true, "CN": true, "CO": true, "DM": true, "DO": true,
		"ET": true, "GT": true, "GU": true, "HK": true, "HN": true, "ID": true, "IL": true,
		"IN": true, "JM": true, "JP": true, "KE": true, "KH": true, "KR": true, "LA": true,
		"MH": true, "MM": true, "MO": true, "MT": true, "MX": true, "MZ": true, "NI": true,
		"NP": true, "PA": true, "PE": true, "PH": true, "PK": true, "PR": true, "PT": true,
		"PY": true, "SA": true, "SG": true, "SV": true, "TH": true, "TT": true, "TW": true,
		"UM": true, "US": true, "VE": true, "VI": true, "WS": true, "YE": true, "ZA": true,
		"ZW": true,
	}
	saturdayRegions = map[string]bool{
		"AE": true, "AF": true, "BH": true, "DJ": true, "DZ": true, "EG": true, "IQ": true,
		"IR": true, "JO": true, "KW": true, "LY": true, "OM": true, "QA": true, "SD": true,
		"SY": true,
	}
)

// NewConfig builds a Config from a locale identifier such as "en_IN" or
// "de-DE" and an IANA timezone name. An empty timezone means time.Local.
func NewConfig(locale, timezone string) (Config, error) {
	if strings.TrimSpace(locale) == "" {
		locale = DefaultLocale
	}
	tag, err := language.Parse(strings.ReplaceAll(locale, "_", "-"))
	if err != nil {
		return Config{}, fmt.Errorf("parse locale %q: %w", locale, err)
	}

	loc := time.Local
	if timezone != "" {
		loc, err = time.LoadLocation(timezone)
		if err != nil {
			return Config{}, fmt.Errorf("load timezone %q: %w", timezone, err)
		}
	}

	return Config{
		FirstWeekday: FirstWeekdayFor(tag),
		Location:     loc,
		Locale:       tag,
	}, nil
}

// FirstWeekdayFor returns the first day of the week used in the tag's region.
// Tags without any region information fall back to Monday.
func FirstWeekdayFor(tag language.Tag) time.Weekday {
	region, conf := tag.Region()
	if conf == language.No {
		return time.Monday
	}
	code := region.String()
	switch {
	case sundayRegions[code]:
		return time.Sunday
	case saturdayRegions[code]:
		return time.Saturday
	default:
		return time.Monday
	}
}

// ParseWeekday accepts English weekday names ("sunday", "Mon", ...).
func ParseWeekday(s string) (time.Weekday, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) >= 3 {
		for d := time.Sunday; d <= time.Saturday; d++ {
			name := strings.ToLower(d.String())
			if strings.HasPrefix(name, s) {
				return d, nil
			}
		}
	}
	return time.Sunday, fmt.Errorf("unknown weekday %q", s)
}

// WithFirstWeekday returns a copy of c that starts weeks on d.
func (c Config) WithFirstWeekday(d time.Weekday) Config {
	c.FirstWeekday = d
	return c
}

func (c Config) location() *time.Location {
	if c.Location == nil {
		return time.Local
	}
	return c.Location
}

func (c Config) validate() error {
	if c.FirstWeekday < time.Sunday || c.FirstWeekday > time.Saturday {
		return fmt.Errorf("%w: first weekday %d", ErrInvalidDateRange, int(c.FirstWeekday))
	}
	return nil
}

// StartOfDay returns midnight of t's calendar day in the configured location.
func (c Config) StartOfDay(t time.Time) time.Time {
	y, m, d := t.In(c.location()).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, c.location())
}

// SameDay reports whether a and b fall on the same calendar day in the
// configured location, regardless of time-of-day.
func (c Config) SameDay(a, b time.Time) bool {
	y1, m1, d1 := a.In(c.location()).Date()
	y2, m2, d2 := b.In(c.location()).Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// DayKey formats t's calendar day as 2006-01-02 in the configured location.
func (c Config) DayKey(t time.Time) string {
	return t.In(c.location()).Format(time.DateOnly)
}

// Now returns now in the configured location.
func (c Config) Now() time.Time {
	return time.Now().In(c.location())
}

// Weekdays lists the seven weekdays in display order.
func (c Config) Weekdays() []time.Weekday {
	days := make([]time.Weekday, 7)
	for i := range days {
		days[i] = time.Weekday((int(c.FirstWeekday) + i) % 7)
	}
	return days
}

// WeekdaySymbols returns short weekday names in display order.
func (c Config) WeekdaySymbols() []string {
	days := c.Weekdays()
	symbols := make([]string, len(days))
	for i, d := range days {
		symbols[i] = d.String()[:3]
	}
	return symbols
}

// column returns the grid column (0..6) of weekday d.
func (c Config) column(d time.Weekday) int {
	return (int(d) - int(c.FirstWeekday) + 7) % 7
}

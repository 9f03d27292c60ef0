package calendar

import (
	"errors"
	"time"

	calendarlib "github.com/Lofanmi/chinese-calendar-golang/calendar"
)

// Lunar metadata is only available inside the upstream library's range.
const (
	MinLunarYear = 1900
	MaxLunarYear = 3000
)

// ViewMode indicates whether we display a single month or an entire year.
type ViewMode int

const (
	ModeMonth ViewMode = iota
	ModeYear
)

// Request captures the year/month/mode that should be rendered.
type Request struct {
	Year  int
	Month int
	Mode  ViewMode
}

// RequestFor returns a month request for the month containing t.
func RequestFor(t time.Time) Request {
	return Request{Year: t.Year(), Month: int(t.Month()), Mode: ModeMonth}
}

// Normalize keeps the month within 1..12 by rolling the year value.
func (r Request) Normalize() Request {
	for r.Month > 12 {
		r.Month -= 12
		r.Year++
	}
	for r.Month < 1 {
		r.Month += 12
		r.Year--
	}
	return r
}

// NextMonth moves the request to the following month.
func (r Request) NextMonth() Request {
	r.Month++
	return r.Normalize()
}

// PreviousMonth moves the request to the preceding month.
func (r Request) PreviousMonth() Request {
	r.Month--
	return r.Normalize()
}

// NextYear moves to the following year.
func (r Request) NextYear() Request {
	r.Year++
	return r
}

// PreviousYear moves to the preceding year.
func (r Request) PreviousYear() Request {
	r.Year--
	return r
}

// Anchor returns the first day of the requested month.
func (r Request) Anchor(cfg Config) time.Time {
	r = r.Normalize()
	return time.Date(r.Year, time.Month(r.Month), 1, 0, 0, 0, 0, cfg.location())
}

// Day is one cell of the month grid.
type Day struct {
	Date            time.Time
	InMonth         bool
	IsToday         bool
	TaskCount       int
	LunarDayAlias   string
	LunarMonthAlias string
	SolarTerm       string
	hasLunarData    bool
}

// SecondaryLabel selects the string rendered beneath the day number. Solar
// terms take precedence, followed by the lunar month name on the first day
// of a lunar month.
func (d Day) SecondaryLabel() string {
	if d.SolarTerm != "" {
		return d.SolarTerm
	}
	if d.LunarDayAlias == "初一" && d.LunarMonthAlias != "" {
		return d.LunarMonthAlias
	}
	return d.LunarDayAlias
}

// HasLunarData reports whether lunar metadata was calculated.
func (d Day) HasLunarData() bool {
	return d.hasLunarData
}

// MonthView describes a month laid out into whole weeks.
type MonthView struct {
	Year     int
	Month    time.Month
	Title    string
	Weekdays []string
	Weeks    [][]Day
}

// Days flattens the weeks back into grid order.
func (v MonthView) Days() []Day {
	out := make([]Day, 0, len(v.Weeks)*7)
	for _, week := range v.Weeks {
		out = append(out, week...)
	}
	return out
}

// TaskCounter reports how many tasks fall on a day.
type TaskCounter interface {
	CountOn(day time.Time) int
}

// Service materialises month/year views.
type Service struct {
	now   func() time.Time
	cfg   Config
	tasks TaskCounter
	lunar bool
}

// Option configures the Service.
type Option func(*Service)

// WithNow overrides the clock, which is useful for tests.
func WithNow(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// WithConfig sets the calendar conventions.
func WithConfig(cfg Config) Option {
	return func(s *Service) {
		s.cfg = cfg
	}
}

// WithTasks attaches a task source used for per-day counts.
func WithTasks(tasks TaskCounter) Option {
	return func(s *Service) {
		s.tasks = tasks
	}
}

// WithLunar enables lunar labels on cells.
func WithLunar(enabled bool) Option {
	return func(s *Service) {
		s.lunar = enabled
	}
}

// NewService constructs a Service. Without WithConfig weeks start on
// Sunday in time.Local.
func NewService(opts ...Option) *Service {
	s := &Service{
		now: time.Now,
		cfg: Config{FirstWeekday: time.Sunday, Location: time.Local},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Config returns the calendar conventions of the service.
func (s *Service) Config() Config {
	return s.cfg
}

// Today returns the service clock's current day.
func (s *Service) Today() time.Time {
	return s.cfg.StartOfDay(s.now())
}

// ErrInvalidMonth indicates the month is not in the 1..12 range.
var ErrInvalidMonth = errors.New("month must be between 1 and 12")

// Month builds a MonthView.
func (s *Service) Month(year, month int) (MonthView, error) {
	if month < 1 || month > 12 {
		return MonthView{}, ErrInvalidMonth
	}
	return s.MonthOf(time.Date(year, time.Month(month), 1, 12, 0, 0, 0, s.cfg.location()))
}

// MonthOf builds the MonthView of the month containing anchor.
func (s *Service) MonthOf(anchor time.Time) (MonthView, error) {
	grid, err := BuildMonthGrid(anchor, s.cfg)
	if err != nil {
		return MonthView{}, err
	}
	local := anchor.In(s.cfg.location())
	now := s.now()

	weeks := make([][]Day, 0, len(grid)/7)
	for i := 0; i < len(grid); i += 7 {
		week := make([]Day, 7)
		for j := range week {
			week[j] = s.buildDay(grid[i+j], local.Month(), now)
		}
		weeks = append(weeks, week)
	}

	return MonthView{
		Year:     local.Year(),
		Month:    local.Month(),
		Title:    local.Format("January 2006"),
		Weekdays: s.cfg.WeekdaySymbols(),
		Weeks:    weeks,
	}, nil
}

// Year returns the MonthView list for an entire year.
func (s *Service) Year(year int) ([]MonthView, error) {
	months := make([]MonthView, 0, 12)
	for m := 1; m <= 12; m++ {
		view, err := s.Month(year, m)
		if err != nil {
			return nil, err
		}
		months = append(months, view)
	}
	return months, nil
}

func (s *Service) buildDay(day time.Time, currentMonth time.Month, now time.Time) Day {
	d := Day{
		Date:    day,
		InMonth: day.Month() == currentMonth,
		IsToday: s.cfg.SameDay(day, now),
	}
	if s.tasks != nil {
		d.TaskCount = s.tasks.CountOn(day)
	}
	if !s.lunar || day.Year() < MinLunarYear || day.Year() > MaxLunarYear {
		return d
	}

	cal := calendarlib.BySolar(
		int64(day.Year()),
		int64(day.Month()),
		int64(day.Day()),
		12, 0, 0,
	)
	d.LunarDayAlias = cal.Lunar.DayAlias()
	d.LunarMonthAlias = cal.Lunar.MonthAlias()
	d.hasLunarData = true
	if solarterm := cal.Solar.CurrentSolarterm; solarterm != nil {
		if solarterm.IsInDay(&day) {
			d.SolarTerm = solarterm.Alias()
		}
	}
	return d
}

package calendar

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidDateRange means month or week boundaries could not be resolved
// for the requested anchor date.
var ErrInvalidDateRange = errors.New("invalid date range")

// BuildMonthGrid returns every day of the whole weeks overlapping the month
// that contains anchor. Days are midnights in cfg's location, strictly
// increasing by one day; the length is a multiple of 7 between 28 and 42.
func BuildMonthGrid(anchor time.Time, cfg Config) ([]time.Time, error) {
	if anchor.IsZero() {
		return nil, fmt.Errorf("%w: zero anchor date", ErrInvalidDateRange)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	loc := cfg.location()
	local := anchor.In(loc)
	if y := local.Year(); y < 1 || y > 9999 {
		return nil, fmt.Errorf("%w: year %d", ErrInvalidDateRange, y)
	}

	first := time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, loc)
	// Last day is the exclusive month end minus one day, so the trailing
	// week never spills past the month's own final row.
	last := time.Date(local.Year(), local.Month()+1, 0, 0, 0, 0, 0, loc)

	lead := cfg.column(first.Weekday())
	trail := 6 - cfg.column(last.Weekday())
	total := lead + last.Day() + trail

	days := make([]time.Time, total)
	for i := range days {
		days[i] = time.Date(first.Year(), first.Month(), 1-lead+i, 0, 0, 0, 0, loc)
	}
	return days, nil
}

// ShiftMonth moves t by n months, clamping the day to the length of the
// target month (Jan 31 + 1 month is the last day of February).
func ShiftMonth(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	target := time.Date(y, m+time.Month(n), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	if last := daysIn(target.Year(), target.Month(), t.Location()); d > last {
		d = last
	}
	return time.Date(target.Year(), target.Month(), d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func daysIn(year int, month time.Month, loc *time.Location) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
}

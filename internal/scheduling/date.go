package scheduling

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Date is a calendar date with no time-of-day or zone attached.
// Appointment dates are compared field by field instead of through
// time.Time so that a client's "2025-03-10" can never shift a day
// during local-zone conversion.
type Date struct {
	Year  int
	Month int
	Day   int
}

// ParseDate parses a YYYY-MM-DD string into a Date. The components are
// split and converted manually, never routed through time.Parse.
func ParseDate(s string) (Date, error) {
	parts := strings.Split(s, "-")
	if len(parts) != 3 || len(parts[0]) != 4 || len(parts[1]) != 2 || len(parts[2]) != 2 {
		return Date{}, fmt.Errorf("date must be YYYY-MM-DD: %q", s)
	}
	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return Date{}, fmt.Errorf("invalid year in %q", s)
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil {
		return Date{}, fmt.Errorf("invalid month in %q", s)
	}
	day, err := strconv.Atoi(parts[2])
	if err != nil {
		return Date{}, fmt.Errorf("invalid day in %q", s)
	}
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return Date{}, fmt.Errorf("date out of range: %q", s)
	}
	// time.Date normalizes overflow (Feb 30 -> Mar 2), so a round-trip
	// mismatch means the calendar day does not exist.
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return Date{}, fmt.Errorf("no such calendar day: %q", s)
	}
	return Date{Year: year, Month: month, Day: day}, nil
}

// DateOf truncates a time.Time to its calendar date in that time's
// location.
func DateOf(t time.Time) Date {
	return Date{Year: t.Year(), Month: int(t.Month()), Day: t.Day()}
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// ordinal gives a totally ordered integer form for date-only comparison.
func (d Date) ordinal() int {
	return d.Year*10000 + d.Month*100 + d.Day
}

// Before reports whether d is strictly earlier than other.
func (d Date) Before(other Date) bool {
	return d.ordinal() < other.ordinal()
}

// After reports whether d is strictly later than other.
func (d Date) After(other Date) bool {
	return d.ordinal() > other.ordinal()
}

// AddMonths returns the date n calendar months later, normalized the
// way time.AddDate normalizes (Jan 31 + 1 month = Mar 2/3).
func (d Date) AddMonths(n int) Date {
	t := time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC).AddDate(0, n, 0)
	return DateOf(t)
}

// Weekday returns the day of week for the date.
func (d Date) Weekday() time.Weekday {
	return time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC).Weekday()
}

// IsWeekend reports whether the date falls on Saturday or Sunday.
func (d Date) IsWeekend() bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// At combines the date with an HH:MM:SS time of day in the local zone,
// for wall-clock arithmetic such as the cancellation window.
func (d Date) At(clock string) (time.Time, error) {
	h, m, sec, err := ParseClock(clock)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(d.Year, time.Month(d.Month), d.Day, h, m, sec, 0, time.Local), nil
}

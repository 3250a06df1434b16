// Package biztime provides calendar-day utilities for license expiry and
// billing period calculations. All storage and comparison happen in UTC;
// time-of-day is never significant for expiry decisions, so the package
// exposes DateOnly as a distinct value type instead of raw time.Time.
package biztime

import (
	"fmt"
	"time"
)

// DateOnly is a calendar date in UTC. The zero value is the zero date.
// It is comparable with == and usable as a map key.
type DateOnly struct {
	year  int
	month time.Month
	day   int
}

// DateOf truncates t to its UTC calendar date.
func DateOf(t time.Time) DateOnly {
	u := t.UTC()
	return DateOnly{year: u.Year(), month: u.Month(), day: u.Day()}
}

// NewDate builds a DateOnly from components. Out-of-range components are
// normalized the same way time.Date normalizes them.
func NewDate(year int, month time.Month, day int) DateOnly {
	return DateOf(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (DateOnly, error) {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return DateOnly{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return DateOf(t), nil
}

// Time returns the date as UTC midnight.
func (d DateOnly) Time() time.Time {
	return time.Date(d.year, d.month, d.day, 0, 0, 0, 0, time.UTC)
}

// IsZero reports whether d is the zero date.
func (d DateOnly) IsZero() bool {
	return d == DateOnly{}
}

// Before reports whether d is strictly before other.
func (d DateOnly) Before(other DateOnly) bool {
	return d.Time().Before(other.Time())
}

// After reports whether d is strictly after other.
func (d DateOnly) After(other DateOnly) bool {
	return d.Time().After(other.Time())
}

// Equal reports whether d and other are the same calendar day.
func (d DateOnly) Equal(other DateOnly) bool {
	return d == other
}

// AddDays returns the date n days after d (n may be negative).
func (d DateOnly) AddDays(n int) DateOnly {
	return DateOf(d.Time().AddDate(0, 0, n))
}

// DaysUntil returns the number of whole days from d to other.
// Negative when other is in the past relative to d.
func (d DateOnly) DaysUntil(other DateOnly) int {
	return int(other.Time().Sub(d.Time()) / (24 * time.Hour))
}

// String formats the date as YYYY-MM-DD.
func (d DateOnly) String() string {
	return d.Time().Format(time.DateOnly)
}

// MonthPeriod returns the first and last calendar day of the UTC month
// containing t. Both bounds are inclusive.
func MonthPeriod(t time.Time) (DateOnly, DateOnly) {
	u := t.UTC()
	return DateOf(StartOfMonthUTC(u.Year(), u.Month())), DateOf(EndOfMonthUTC(u.Year(), u.Month()))
}

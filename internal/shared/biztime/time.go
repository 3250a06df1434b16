package biztime

import "time"

// NowUTC returns current time in UTC.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// StartOfDayUTC returns UTC midnight of the day containing t.
func StartOfDayUTC(t time.Time) time.Time {
	return DateOf(t).Time()
}

// StartOfMonthUTC returns UTC midnight on the first day of the month.
func StartOfMonthUTC(year int, month time.Month) time.Time {
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
}

// EndOfMonthUTC returns the last instant of the month in UTC.
func EndOfMonthUTC(year int, month time.Month) time.Time {
	return time.Date(year, month+1, 1, 0, 0, 0, 0, time.UTC).Add(-time.Nanosecond)
}

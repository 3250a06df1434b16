package biztime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateOf_TruncatesToUTCDay(t *testing.T) {
	// 23:30 in UTC-5 is 04:30 the next day in UTC
	loc := time.FixedZone("UTC-5", -5*3600)
	local := time.Date(2026, 3, 10, 23, 30, 0, 0, loc)

	d := DateOf(local)

	assert.Equal(t, "2026-03-11", d.String())
}

func TestDateOf_IgnoresTimeOfDay(t *testing.T) {
	morning := time.Date(2026, 3, 10, 0, 0, 1, 0, time.UTC)
	night := time.Date(2026, 3, 10, 23, 59, 59, 0, time.UTC)

	assert.Equal(t, DateOf(morning), DateOf(night))
}

func TestDateOnly_Comparisons(t *testing.T) {
	yesterday := NewDate(2026, 3, 9)
	today := NewDate(2026, 3, 10)

	assert.True(t, yesterday.Before(today))
	assert.True(t, today.After(yesterday))
	assert.False(t, today.Before(today))
	assert.True(t, today.Equal(NewDate(2026, 3, 10)))
}

func TestDateOnly_AddDays(t *testing.T) {
	d := NewDate(2026, 2, 27)

	assert.Equal(t, "2026-03-01", d.AddDays(2).String(), "crosses month boundary (non-leap)")
	assert.Equal(t, "2026-02-26", d.AddDays(-1).String())
}

func TestDateOnly_DaysUntil(t *testing.T) {
	today := NewDate(2026, 3, 10)

	assert.Equal(t, 5, today.DaysUntil(NewDate(2026, 3, 15)))
	assert.Equal(t, 0, today.DaysUntil(today))
	assert.Equal(t, -3, today.DaysUntil(NewDate(2026, 3, 7)))
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-12-31")
	require.NoError(t, err)
	assert.Equal(t, NewDate(2026, 12, 31), d)

	_, err = ParseDate("31/12/2026")
	assert.Error(t, err)
}

func TestMonthPeriod(t *testing.T) {
	first, last := MonthPeriod(time.Date(2026, 2, 14, 18, 0, 0, 0, time.UTC))

	assert.Equal(t, "2026-02-01", first.String())
	assert.Equal(t, "2026-02-28", last.String())

	first, last = MonthPeriod(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, "2024-02-01", first.String())
	assert.Equal(t, "2024-02-29", last.String(), "leap year february")

	first, last = MonthPeriod(time.Date(2026, 12, 31, 23, 59, 0, 0, time.UTC))
	assert.Equal(t, "2026-12-01", first.String())
	assert.Equal(t, "2026-12-31", last.String())
}

func TestStartOfDayUTC(t *testing.T) {
	start := StartOfDayUTC(time.Date(2026, 3, 10, 11, 42, 7, 0, time.UTC))

	assert.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), start)
}

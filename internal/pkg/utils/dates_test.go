package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDateOf(t *testing.T) {
	madrid, err := time.LoadLocation("Europe/Madrid")
	if err != nil {
		t.Skip("tzdata not available")
	}
	// 23:30 UTC on the 5th is already the 6th in Madrid
	instant := time.Date(2024, time.May, 5, 23, 30, 0, 0, time.UTC)
	assert.Equal(t, date(2024, time.May, 6), DateOf(instant, madrid))
	assert.Equal(t, date(2024, time.May, 5), DateOf(instant, time.UTC))
}

func TestEachDay(t *testing.T) {
	days := EachDay(date(2024, time.February, 27), date(2024, time.March, 2))
	assert.Len(t, days, 5)
	assert.Equal(t, date(2024, time.February, 29), days[2])
	assert.Nil(t, EachDay(date(2024, time.March, 2), date(2024, time.March, 1)))
}

func TestDaysInclusive(t *testing.T) {
	assert.Equal(t, 1, DaysInclusive(date(2024, time.May, 1), date(2024, time.May, 1)))
	assert.Equal(t, 31, DaysInclusive(date(2024, time.May, 1), date(2024, time.May, 31)))
	assert.Equal(t, 0, DaysInclusive(date(2024, time.May, 2), date(2024, time.May, 1)))
}

func TestMonthBounds(t *testing.T) {
	first, last := MonthBounds(2024, time.February)
	assert.Equal(t, date(2024, time.February, 1), first)
	assert.Equal(t, date(2024, time.February, 29), last)
}

func TestClampRange(t *testing.T) {
	lo, hi := MonthBounds(2024, time.May)

	start, end, ok := ClampRange(date(2024, time.April, 28), date(2024, time.May, 3), lo, hi)
	assert.True(t, ok)
	assert.Equal(t, date(2024, time.May, 1), start)
	assert.Equal(t, date(2024, time.May, 3), end)

	_, _, ok = ClampRange(date(2024, time.June, 1), date(2024, time.June, 3), lo, hi)
	assert.False(t, ok)
}

func TestIsWeekend(t *testing.T) {
	assert.True(t, IsWeekend(date(2024, time.May, 4)))
	assert.True(t, IsWeekend(date(2024, time.May, 5)))
	assert.False(t, IsWeekend(date(2024, time.May, 6)))
}

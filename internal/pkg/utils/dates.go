package utils

import "time"

// DateOf truncates t to its calendar day in loc. The result is midnight UTC so
// it compares cleanly with DATE columns scanned by pgx.
func DateOf(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
}

// Day normalizes a date value that already carries the right calendar day.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// EachDay returns every calendar day in [start, end], inclusive on both ends.
func EachDay(start, end time.Time) []time.Time {
	start, end = Day(start), Day(end)
	if end.Before(start) {
		return nil
	}
	days := make([]time.Time, 0, DaysInclusive(start, end))
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// DaysInclusive counts the days in [start, end]. Inverted ranges count zero.
func DaysInclusive(start, end time.Time) int {
	start, end = Day(start), Day(end)
	if end.Before(start) {
		return 0
	}
	return int(end.Sub(start).Hours()/24) + 1
}

// MonthBounds returns the first and last day of the given month.
func MonthBounds(year int, month time.Month) (time.Time, time.Time) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return first, first.AddDate(0, 1, -1)
}

func IsWeekend(day time.Time) bool {
	wd := day.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// ClampRange intersects [start, end] with [lo, hi]. ok is false when they do not overlap.
func ClampRange(start, end, lo, hi time.Time) (time.Time, time.Time, bool) {
	start, end, lo, hi = Day(start), Day(end), Day(lo), Day(hi)
	if start.Before(lo) {
		start = lo
	}
	if end.After(hi) {
		end = hi
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}

package ledger

import "time"

// =============================================================================
// PERIOD BOUNDARIES - Used by the weekly/monthly breakdown
// =============================================================================

// WeekStart returns Monday 00:00 of the week containing t, in t's location.
// Sunday belongs to the week that started six days earlier.
func WeekStart(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7 // Monday=0 ... Sunday=6
	day := StartOfDay(t)
	return time.Date(day.Year(), day.Month(), day.Day()-offset, 0, 0, 0, 0, t.Location())
}

// MonthStart returns the first day of t's month at 00:00, in t's location.
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EndOfDay returns the last nanosecond of t's day.
func EndOfDay(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

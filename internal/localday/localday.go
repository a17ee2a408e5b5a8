// Package localday converts process-clock instants into a tenant's local
// calendar date and derives the window boundaries used for visit bucketing.
package localday

import (
	"fmt"
	"time"

	"foodbanked/internal/common"
)

// TrendDays is the length of the daily visit-count series shown on the
// stats dashboard.
const TrendDays = 30

// Today returns the calendar date (midnight, in tz) for the given instant
// in the named IANA zone. An unrecognized zone name fails with
// common.ErrInvalidTimezone; a previously stored bad value must never
// silently corrupt date bucketing.
func Today(tz string, now time.Time) (time.Time, error) {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", common.ErrInvalidTimezone, tz)
	}
	local := now.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc), nil
}

// StartOfWeek returns the Monday of the week containing day.
func StartOfWeek(day time.Time) time.Time {
	offset := int(day.Weekday()) - int(time.Monday)
	if offset < 0 {
		offset += 7 // Sunday
	}
	return day.AddDate(0, 0, -offset)
}

// StartOfMonth returns the first day of the month containing day.
func StartOfMonth(day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, day.Location())
}

// StartOfYear returns January 1st of the year containing day.
func StartOfYear(day time.Time) time.Time {
	return time.Date(day.Year(), time.January, 1, 0, 0, 0, 0, day.Location())
}

// TrendWindow returns the first day of the TrendDays-day window ending on
// day, inclusive of both endpoints.
func TrendWindow(day time.Time) time.Time {
	return day.AddDate(0, 0, -(TrendDays - 1))
}

// SameDate reports whether two instants fall on the same calendar date,
// ignoring location-independent clock time.
func SameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

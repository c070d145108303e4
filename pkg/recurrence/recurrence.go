// Package recurrence implements the cadence arithmetic behind periodic
// reminders: advancing a fire time by (interval, unit) steps, rewinding it
// for snoozes, and catching a stale fire time up to the present.
package recurrence

import (
	"strings"
	"time"
)

// Unit is a cadence unit. The short spellings double as the stored column
// values and as prefixes for matching the user's wording ("min" matches
// "minutes", "h" matches "hours").
type Unit string

const (
	Minute Unit = "min"
	Hour   Unit = "h"
	Day    Unit = "day"
	Week   Unit = "week"
	Month  Unit = "month"
	Year   Unit = "year"
)

// units in matching order; keep "min" before "month" so "minutes" does not
// hit the month prefix check first.
var units = []Unit{Minute, Hour, Day, Week, Month, Year}

// ParseUnit matches a single word against the cadence units by prefix.
func ParseUnit(word string) (Unit, bool) {
	lower := strings.ToLower(word)
	for _, u := range units {
		if strings.HasPrefix(lower, string(u)) {
			return u, true
		}
	}
	return "", false
}

// Readable spells a unit out for display.
func (u Unit) Readable(singular bool) string {
	var word string
	switch u {
	case Minute:
		word = "minute"
	case Hour:
		word = "hour"
	default:
		word = string(u)
	}
	if singular {
		return word
	}
	return word + "s"
}

// Advance moves t by exactly interval units forward (direction +1) or
// backward (direction -1). Minute through week steps are fixed durations
// and exactly reversible. Month and year steps are calendar arithmetic
// with day-of-month clamping, so a round trip across a clamp lands on
// the clamped day rather than the original one.
func Advance(t time.Time, unit Unit, interval, direction int) time.Time {
	n := interval * direction
	switch unit {
	case Minute:
		return t.Add(time.Duration(n) * time.Minute)
	case Hour:
		return t.Add(time.Duration(n) * time.Hour)
	case Day:
		return t.Add(time.Duration(n) * 24 * time.Hour)
	case Week:
		return t.Add(time.Duration(n) * 7 * 24 * time.Hour)
	case Month:
		return addMonths(t, n)
	case Year:
		return addMonths(t, 12*n)
	default:
		return t
	}
}

// CatchUp advances t one cadence step at a time until it is strictly after
// now. A t already in the future is returned unchanged.
func CatchUp(t time.Time, unit Unit, interval int, now time.Time) time.Time {
	for !t.After(now) {
		t = Advance(t, unit, interval, +1)
	}
	return t
}

// ClampDay caps a day-of-month at the hard limit for the given month:
// 30 for the short months and 28 for February. Leap years are deliberately
// ignored, so a reminder anchored on the 29th never fires in February.
func ClampDay(day int, month time.Month) int {
	switch month {
	case time.April, time.June, time.September, time.November:
		if day > 30 {
			return 30
		}
	case time.February:
		if day > 28 {
			return 28
		}
	}
	return day
}

func addMonths(t time.Time, months int) time.Time {
	month := int(t.Month()) + months
	year := t.Year()
	for month > 12 {
		month -= 12
		year++
	}
	for month < 1 {
		month += 12
		year--
	}

	day := ClampDay(t.Day(), time.Month(month))

	return time.Date(year, time.Month(month), day,
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

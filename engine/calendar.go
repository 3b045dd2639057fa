/*
calendar.go - Day classification and public-holiday calendars

PURPOSE:
  Classifies a calendar date as weekday / saturday / sunday / holiday for
  rate selection. Holidays come from two sources, either of which wins
  over the weekend classification:
    1. A user-supplied custom holiday set (regional days, employer closures)
    2. The built-in public-holiday calendar for the configured jurisdiction

CLASSIFICATION ORDER:
  holiday > sunday > saturday > weekday

CALENDAR-DATE ONLY:
  Everything here compares calendar dates, never instants. A shift on
  "2026-01-26" is Australia Day for every caller on the planet.

SEE ALSO:
  - date.go: Date type
  - pay.go: Uses Classifier for rate selection
*/
package engine

import "time"

// =============================================================================
// HOLIDAY CALENDAR - Built-in public holidays per jurisdiction
// =============================================================================

// HolidayCalendar answers whether a date is a public holiday in some
// jurisdiction. Implementations must be pure.
type HolidayCalendar interface {
	IsPublicHoliday(d Date) bool
}

type Jurisdiction string

const (
	JurisdictionAU   Jurisdiction = "AU"
	JurisdictionNone Jurisdiction = ""
)

// CalendarFor returns the built-in calendar for a jurisdiction.
// Unknown jurisdictions get a calendar with no holidays; the custom
// holiday set still applies.
func CalendarFor(j Jurisdiction) HolidayCalendar {
	switch j {
	case JurisdictionAU:
		return auCalendar{}
	default:
		return noHolidays{}
	}
}

type noHolidays struct{}

func (noHolidays) IsPublicHoliday(Date) bool { return false }

// auCalendar covers the Australian national public holidays: the fixed
// dates plus the Easter-derived pair. State-specific days (Labour Day,
// show days) vary too much to bake in and belong in the custom set.
type auCalendar struct{}

func (auCalendar) IsPublicHoliday(d Date) bool {
	switch {
	case d.Month() == time.January && d.Day() == 1: // New Year's Day
		return true
	case d.Month() == time.January && d.Day() == 26: // Australia Day
		return true
	case d.Month() == time.April && d.Day() == 25: // Anzac Day
		return true
	case d.Month() == time.December && (d.Day() == 25 || d.Day() == 26): // Christmas, Boxing Day
		return true
	}

	easter := easterSunday(d.Year())
	return d.Equal(easter.AddDays(-2)) || d.Equal(easter.AddDays(1)) // Good Friday, Easter Monday
}

// easterSunday computes Easter for a year using the anonymous Gregorian
// computus.
func easterSunday(year int) Date {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := (h+l-7*m+114)%31 + 1
	return NewDate(year, time.Month(month), day)
}

// =============================================================================
// HOLIDAY SET - User-supplied custom holidays
// =============================================================================

// HolidaySet is a set of custom holiday dates.
type HolidaySet map[Date]struct{}

// NewHolidaySet builds a set from ISO date strings, skipping malformed
// entries (they cannot match any shift date anyway).
func NewHolidaySet(dates []string) HolidaySet {
	set := make(HolidaySet, len(dates))
	for _, s := range dates {
		if d, ok := ParseDate(s); ok {
			set[d] = struct{}{}
		}
	}
	return set
}

func (h HolidaySet) Contains(d Date) bool {
	_, ok := h[d]
	return ok
}

// =============================================================================
// CLASSIFIER
// =============================================================================

// Classifier classifies dates using a custom holiday set plus a
// jurisdiction calendar. The zero value classifies weekdays and weekends
// only.
type Classifier struct {
	Custom   HolidaySet
	Calendar HolidayCalendar
}

// Classify returns the day type for a date.
// The zero Date (from a malformed date string) classifies as a
// non-holiday weekday so pay remains computable for display.
func (c Classifier) Classify(d Date) DayType {
	if d.IsZero() {
		return DayWeekday
	}
	if c.Custom.Contains(d) {
		return DayHoliday
	}
	if c.Calendar != nil && c.Calendar.IsPublicHoliday(d) {
		return DayHoliday
	}
	switch d.Weekday() {
	case time.Sunday:
		return DaySunday
	case time.Saturday:
		return DaySaturday
	default:
		return DayWeekday
	}
}

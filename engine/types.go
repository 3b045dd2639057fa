/*
Package engine provides the core shift pay and compliance calculation engine.

PURPOSE:
  This package contains the types and algorithms for turning raw shift
  records into money: resolving time-varying hourly rates, classifying
  calendar days, computing per-shift and aggregate gross pay, and tracking
  rolling fortnightly hour caps for visa compliance.

KEY CONCEPTS IN THIS FILE (types.go):
  - Shift: One logged work period (date, job, hours, optional break)
  - JobConfig: A job with current rates and an effective-dated rate history
  - RateSet: Hourly rates keyed by day type (closed enum, no string lookups)
  - VacationPeriod: Date range that suspends compliance-cap enforcement

DESIGN PRINCIPLES:
  1. Purity: Every calculation is a pure function over immutable inputs.
     Callers own all mutation and supply a consistent snapshot per call.
  2. Precision: Uses decimal.Decimal to avoid floating-point errors.
  3. Calendar dates only: Shift dates are pure calendar dates; no
     timezone-sensitive instant comparison anywhere in the engine.
  4. Closed day-type enum: rates are looked up through an exhaustive
     switch, so an unrecognized day type cannot silently resolve to zero.

USAGE:
  calc := engine.PayCalculator{
      Jobs:       map[engine.JobID]engine.JobConfig{job.ID: job},
      Classifier: engine.Classifier{Calendar: engine.CalendarFor(engine.JurisdictionAU)},
  }
  pay := calc.ShiftPay(shift)

SEE ALSO:
  - rates.go: Effective-dated rate resolution
  - calendar.go: Day classification and public-holiday calendars
  - pay.go: Per-shift pay and aggregation
  - compliance.go: Rolling fortnightly hour caps
*/
package engine

import (
	"math"

	"github.com/shopspring/decimal"
)

// =============================================================================
// IDENTIFIERS
// =============================================================================

type ShiftID string
type JobID string

// =============================================================================
// DAY TYPE - Closed enum for rate lookup
// =============================================================================

// DayType classifies a calendar date for rate selection.
type DayType int

const (
	DayWeekday DayType = iota
	DaySaturday
	DaySunday
	DayHoliday
)

func (d DayType) String() string {
	switch d {
	case DaySaturday:
		return "saturday"
	case DaySunday:
		return "sunday"
	case DayHoliday:
		return "holiday"
	default:
		return "weekday"
	}
}

// =============================================================================
// AMOUNTS
// =============================================================================

// NewAmount converts a float into a decimal amount.
// Non-finite inputs are rejected rather than coerced: a NaN hour count or
// rate means an upstream validation bug, and coercing it would produce
// silently wrong pay figures.
func NewAmount(v float64) (decimal.Decimal, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return decimal.Zero, ErrNonFiniteAmount
	}
	return decimal.NewFromFloat(v), nil
}

// MustAmount is NewAmount for literals in configuration and tests.
func MustAmount(v float64) decimal.Decimal {
	d, err := NewAmount(v)
	if err != nil {
		panic(err)
	}
	return d
}

// =============================================================================
// RATES
// =============================================================================

// RateSet holds the hourly rates for each day type.
type RateSet struct {
	Weekday  decimal.Decimal
	Saturday decimal.Decimal
	Sunday   decimal.Decimal
	Holiday  decimal.Decimal
}

// For returns the rate for a day type. Exhaustive over the enum.
func (r RateSet) For(dt DayType) decimal.Decimal {
	switch dt {
	case DaySaturday:
		return r.Saturday
	case DaySunday:
		return r.Sunday
	case DayHoliday:
		return r.Holiday
	default:
		return r.Weekday
	}
}

// RateChange is one entry in a job's rate history. The rates apply to
// every date at or after EffectiveFrom, until superseded by a later entry.
type RateChange struct {
	EffectiveFrom Date
	Rates         RateSet
}

// =============================================================================
// JOB CONFIGURATION
// =============================================================================

// JobConfig describes one job: its current rates, its rate history for
// retroactive recomputation, and shift defaults.
//
// Invariants (enforced by Validate):
//   - rates are non-negative
//   - at most one RateHistory entry per effective date
type JobConfig struct {
	ID   JobID
	Name string

	// Default shift lengths used by scheduling UIs when creating shifts.
	DefaultWeekdayHours decimal.Decimal
	DefaultWeekendHours decimal.Decimal

	// Current rates, in force for dates at or after the most recent
	// non-future history entry (or all dates, if history is empty).
	Rates RateSet

	// Past and scheduled rate changes, any order.
	RateHistory []RateChange

	// Unpaid break deducted from every shift unless the shift overrides it.
	DefaultBreakMinutes int
}

// Validate checks the JobConfig invariants.
func (j JobConfig) Validate() error {
	for _, r := range []decimal.Decimal{j.Rates.Weekday, j.Rates.Saturday, j.Rates.Sunday, j.Rates.Holiday} {
		if r.IsNegative() {
			return ErrNegativeRate
		}
	}
	seen := make(map[Date]bool, len(j.RateHistory))
	for _, change := range j.RateHistory {
		if seen[change.EffectiveFrom] {
			return ErrDuplicateRateChange
		}
		seen[change.EffectiveFrom] = true
		for _, r := range []decimal.Decimal{change.Rates.Weekday, change.Rates.Saturday, change.Rates.Sunday, change.Rates.Holiday} {
			if r.IsNegative() {
				return ErrNegativeRate
			}
		}
	}
	return nil
}

// =============================================================================
// SHIFT
// =============================================================================

// Shift is one logged work period. Immutable once computed against;
// only the external scheduling UI mutates shifts.
type Shift struct {
	ID    ShiftID
	Date  Date
	JobID JobID

	// Raw shift length in hours, before break deduction.
	Hours decimal.Decimal

	// Break override in minutes. nil means use the job's default.
	BreakMinutes *int
}

// Validate checks the Shift invariants.
func (s Shift) Validate() error {
	if s.Hours.IsNegative() {
		return ErrNegativeHours
	}
	if s.BreakMinutes != nil && *s.BreakMinutes < 0 {
		return ErrNegativeHours
	}
	return nil
}

// =============================================================================
// VACATION PERIOD
// =============================================================================

// VacationPeriod is an inclusive date range during which the fortnightly
// compliance cap is not enforced (e.g., official study breaks).
type VacationPeriod struct {
	Start Date
	End   Date
}

// Overlaps reports whether the vacation shares any day with [from, to].
func (v VacationPeriod) Overlaps(from, to Date) bool {
	return !v.End.Before(from) && !v.Start.After(to)
}

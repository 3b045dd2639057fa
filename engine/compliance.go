/*
compliance.go - Rolling fortnightly hour caps

PURPOSE:
  Student and working-holiday visas cap work hours over rolling two-week
  periods, not fixed calendar fortnights. This file groups shifts into
  Sunday-anchored weeks and evaluates every overlapping fortnight window
  against the cap.

ALGORITHM:
  1. Bucket shift hours into Sunday-anchored weekly totals.
  2. For every observed week start w, the fortnight starting at w totals
     weekHours[w] + weekHours[w+7d]. Each week therefore participates in
     exactly two overlapping windows - the one it starts and the one it
     ends - which is how the compliance periods actually overlap.
  3. remaining = max(0, cap - total)
  4. A period overlapping any vacation day is exempt from the over/near
     flags (any-day overlap, not full containment).

  Near-limit threshold is cap*5/6 (40 of a 48-hour cap), giving workers
  warning one ordinary shift before the line.

DETERMINISM:
  All grouping is calendar-date arithmetic. Timestamp arithmetic would
  let a daylight-saving transition shift a shift into the wrong week.
*/
package engine

import (
	"sort"

	"github.com/shopspring/decimal"
)

var (
	nearLimitNum = decimal.NewFromInt(5)
	nearLimitDen = decimal.NewFromInt(6)
)

// FortnightPeriod is the evaluation of one rolling two-week window.
// Derived value: recomputed from shifts on every query.
type FortnightPeriod struct {
	Start          Date // Sunday anchoring the window
	End            Date // Saturday 13 days later
	Week1Hours     decimal.Decimal
	Week2Hours     decimal.Decimal
	TotalHours     decimal.Decimal
	RemainingHours decimal.Decimal
	Exempt         bool
	OverLimit      bool
	NearLimit      bool
}

// ComplianceTracker evaluates rolling fortnightly windows against a cap.
type ComplianceTracker struct {
	CapHours  decimal.Decimal
	Vacations []VacationPeriod
}

// Fortnights returns one period per observed week start, ordered by date.
// Shifts with malformed (zero) dates are skipped; they cannot be placed
// in any week.
func (ct ComplianceTracker) Fortnights(shifts []Shift) []FortnightPeriod {
	weekHours := make(map[Date]decimal.Decimal)
	for _, s := range shifts {
		if s.Date.IsZero() {
			continue
		}
		week := s.Date.WeekStart()
		weekHours[week] = weekHours[week].Add(s.Hours)
	}

	starts := make([]Date, 0, len(weekHours))
	for w := range weekHours {
		starts = append(starts, w)
	}
	sort.Slice(starts, func(i, j int) bool { return starts[i].Before(starts[j]) })

	nearThreshold := ct.CapHours.Mul(nearLimitNum).Div(nearLimitDen)

	periods := make([]FortnightPeriod, 0, len(starts))
	for _, w := range starts {
		week1 := weekHours[w]
		week2 := weekHours[w.AddDays(7)]
		total := week1.Add(week2)

		remaining := ct.CapHours.Sub(total)
		if remaining.IsNegative() {
			remaining = decimal.Zero
		}

		p := FortnightPeriod{
			Start:          w,
			End:            w.AddDays(13),
			Week1Hours:     week1,
			Week2Hours:     week2,
			TotalHours:     total,
			RemainingHours: remaining,
			Exempt:         ct.exempt(w, w.AddDays(13)),
		}
		if !p.Exempt {
			p.OverLimit = total.GreaterThan(ct.CapHours)
			p.NearLimit = total.GreaterThan(nearThreshold)
		}
		periods = append(periods, p)
	}
	return periods
}

func (ct ComplianceTracker) exempt(from, to Date) bool {
	for _, v := range ct.Vacations {
		if v.Overlaps(from, to) {
			return true
		}
	}
	return false
}

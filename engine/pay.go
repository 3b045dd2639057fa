/*
pay.go - Per-shift pay and aggregation

PURPOSE:
  Computes paid hours and gross pay for one shift, and sums shift pay over
  arbitrary shift collections (monthly, per-job, year-to-date).

PER-SHIFT CONTRACT:
  paidHours = max(0, round2(hours - breakMinutes/60))
  rate      = ResolveRates(job, date)[Classify(date)]
  gross     = round2(paidHours * rate)

  The break is deducted whenever one is configured - there is no
  minimum-shift-length threshold. A shift referencing an unknown job
  contributes zero pay: the roster-mapping step upstream surfaces unmapped
  shifts, the engine just keeps totals computable.

AGGREGATION:
  Aggregate is a pure reduction: associative and order-independent, so
  any partition of a shift set sums to the same totals. That makes
  chunked or parallel computation safe and testing via permutation
  invariance trivial.
*/
package engine

import "github.com/shopspring/decimal"

var minutesPerHour = decimal.NewFromInt(60)

// =============================================================================
// PER-SHIFT PAY
// =============================================================================

// ShiftPay is the computed pay for one shift. Derived value: recomputed
// on every query, never persisted.
type ShiftPay struct {
	ShiftID   ShiftID
	JobID     JobID
	Date      Date
	DayType   DayType
	PaidHours decimal.Decimal
	Rate      decimal.Decimal
	Gross     decimal.Decimal
}

// PayCalculator computes pay from a snapshot of jobs and a day classifier.
type PayCalculator struct {
	Jobs       map[JobID]JobConfig
	Classifier Classifier
}

// ShiftPay computes paid hours and gross pay for one shift.
func (pc PayCalculator) ShiftPay(s Shift) ShiftPay {
	dayType := pc.Classifier.Classify(s.Date)
	result := ShiftPay{
		ShiftID: s.ID,
		JobID:   s.JobID,
		Date:    s.Date,
		DayType: dayType,
	}

	job, ok := pc.Jobs[s.JobID]
	if !ok {
		// Unknown job: zero pay until the mapping is fixed upstream.
		return result
	}

	breakMinutes := job.DefaultBreakMinutes
	if s.BreakMinutes != nil {
		breakMinutes = *s.BreakMinutes
	}

	paidHours := s.Hours.Sub(decimal.NewFromInt(int64(breakMinutes)).Div(minutesPerHour)).Round(2)
	if paidHours.IsNegative() {
		paidHours = decimal.Zero
	}

	rate := ResolveRates(job, s.Date).For(dayType)

	result.PaidHours = paidHours
	result.Rate = rate
	result.Gross = paidHours.Mul(rate).Round(2)
	return result
}

// =============================================================================
// AGGREGATION
// =============================================================================

// Totals is a (hours, gross) pair.
type Totals struct {
	Hours decimal.Decimal
	Gross decimal.Decimal
}

func (t Totals) add(hours, gross decimal.Decimal) Totals {
	return Totals{Hours: t.Hours.Add(hours), Gross: t.Gross.Add(gross)}
}

// PaySummary is the aggregate over a shift set.
type PaySummary struct {
	Total     Totals
	ByDayType map[DayType]Totals
	ByJob     map[JobID]Totals
	Shifts    []ShiftPay
}

// Aggregate computes per-shift pay plus totals over a shift collection.
// Order-independent: summation over a commutative group.
func (pc PayCalculator) Aggregate(shifts []Shift) PaySummary {
	summary := PaySummary{
		ByDayType: make(map[DayType]Totals),
		ByJob:     make(map[JobID]Totals),
		Shifts:    make([]ShiftPay, 0, len(shifts)),
	}

	for _, s := range shifts {
		pay := pc.ShiftPay(s)
		summary.Shifts = append(summary.Shifts, pay)
		summary.Total = summary.Total.add(pay.PaidHours, pay.Gross)
		summary.ByDayType[pay.DayType] = summary.ByDayType[pay.DayType].add(pay.PaidHours, pay.Gross)
		summary.ByJob[pay.JobID] = summary.ByJob[pay.JobID].add(pay.PaidHours, pay.Gross)
	}
	return summary
}

// AggregateRange aggregates only the shifts within [from, to].
func (pc PayCalculator) AggregateRange(shifts []Shift, from, to Date) PaySummary {
	period := Period{Start: from, End: to}
	var inRange []Shift
	for _, s := range shifts {
		if period.Contains(s.Date) {
			inRange = append(inRange, s)
		}
	}
	return pc.Aggregate(inRange)
}

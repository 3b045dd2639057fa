/*
fiscal.go - Fiscal-year withholding reconciliation

PURPOSE:
  Reconciles "tax withheld incrementally throughout the year" against
  "true tax owed on total year-to-date income" - the same reconciliation
  a tax return performs.

TWO-PATH COMPUTATION (deliberate):
  Path 1 - withholding simulation: shifts inside the fiscal window are
  bucketed into successive, non-overlapping pay cycles (distinct from the
  rolling compliance fortnights). Each non-empty cycle's gross is run
  through ConvertPeriod alone, because real payroll withholding is
  computed paycheck-by-paycheck with no knowledge of the full year.

  Path 2 - annual liability: total YTD gross is taxed once at the annual
  level, as if the whole year's income were known in advance.

  refund = sum of cycle withholding - annual liability
  Positive means refund, negative means an amount owed. This is exactly
  why the fiscal-year numbers differ from calling ConvertPeriod once on
  the YTD total.

SEE ALSO:
  - calculator.go: ConvertPeriod, IncomeTax, FlatLevy
  - engine/pay.go: Produces the gross-pay events consumed here
*/
package tax

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/warp/shiftpay-engine/engine"
)

// =============================================================================
// INPUT / OUTPUT
// =============================================================================

// PayEvent is one dated gross-pay amount, typically a computed shift pay.
type PayEvent struct {
	Date  engine.Date
	Gross decimal.Decimal
}

// CycleWithholding is the simulated withholding for one pay cycle.
type CycleWithholding struct {
	Period   engine.Period
	Gross    decimal.Decimal
	Withheld decimal.Decimal
}

// FiscalYearSummary is the reconciliation result. Derived value with no
// persisted identity: recomputed from shifts on every query.
type FiscalYearSummary struct {
	FiscalYear       engine.Period
	GrossPay         decimal.Decimal
	WithheldEstimate decimal.Decimal
	AnnualLiability  decimal.Decimal
	RefundEstimate   decimal.Decimal
	SuperEstimate    decimal.Decimal
	Cycles           []CycleWithholding
}

// =============================================================================
// RECONCILER
// =============================================================================

// Reconciler buckets pay events per fiscal year and pay cycle.
type Reconciler struct {
	Calc *Calculator
}

// FiscalYear returns the fiscal-year window containing the given date,
// per the calculator's configured start month/day. The window spans
// exactly one year.
func (r *Reconciler) FiscalYear(asOf engine.Date) engine.Period {
	cfg := r.Calc.Config()
	start := engine.NewDate(asOf.Year(), time.Month(cfg.FiscalYearStartMonth), cfg.FiscalYearStartDay)
	if asOf.Before(start) {
		start = start.AddYears(-1)
	}
	return engine.Period{Start: start, End: start.AddYears(1).AddDays(-1)}
}

// Reconcile computes the fiscal-year summary for the year containing asOf.
// Events outside the window are ignored; events with malformed (zero)
// dates cannot be placed in a cycle and are likewise skipped.
func (r *Reconciler) Reconcile(events []PayEvent, asOf engine.Date) (FiscalYearSummary, error) {
	fy := r.FiscalYear(asOf)
	cfg := r.Calc.Config()

	// Path 1: bucket into sequential pay cycles and simulate per-cycle
	// withholding.
	cycleGross := make(map[int]decimal.Decimal)
	ytdGross := decimal.Zero
	for _, e := range events {
		if e.Date.IsZero() || !fy.Contains(e.Date) {
			continue
		}
		idx := r.cycleIndex(fy.Start, e.Date)
		cycleGross[idx] = cycleGross[idx].Add(e.Gross)
		ytdGross = ytdGross.Add(e.Gross)
	}

	withheld := decimal.Zero
	var cycles []CycleWithholding
	for idx := 0; idx <= maxIndex(cycleGross); idx++ {
		gross, ok := cycleGross[idx]
		if !ok || gross.IsZero() {
			// Empty cycles withhold nothing; payroll never runs for them.
			continue
		}
		pt, err := r.Calc.ConvertPeriod(gross, cfg.PayCycle)
		if err != nil {
			return FiscalYearSummary{}, err
		}
		withheld = withheld.Add(pt.TotalTax)
		cycles = append(cycles, CycleWithholding{
			Period:   r.cyclePeriod(fy.Start, idx),
			Gross:    gross,
			Withheld: pt.TotalTax,
		})
	}

	// Path 2: one annual-level calculation on the YTD total.
	liability := r.Calc.IncomeTax(ytdGross).Add(r.Calc.FlatLevy(ytdGross))

	return FiscalYearSummary{
		FiscalYear:       fy,
		GrossPay:         ytdGross,
		WithheldEstimate: withheld.Round(2),
		AnnualLiability:  liability.Round(2),
		RefundEstimate:   withheld.Sub(liability).Round(2),
		SuperEstimate:    ytdGross.Mul(cfg.SuperRate).Round(2),
		Cycles:           cycles,
	}, nil
}

// cycleIndex maps a date to its sequential pay cycle within the fiscal
// year. Cycles are anchored at the fiscal year start.
func (r *Reconciler) cycleIndex(fyStart, d engine.Date) int {
	switch r.Calc.Config().PayCycle {
	case PeriodWeekly:
		return engine.DaysBetween(fyStart, d) / 7
	case PeriodMonthly:
		return (d.Year()-fyStart.Year())*12 + int(d.Month()) - int(fyStart.Month())
	case PeriodAnnual:
		return 0
	default: // fortnightly
		return engine.DaysBetween(fyStart, d) / 14
	}
}

// cyclePeriod returns the date range of cycle idx.
func (r *Reconciler) cyclePeriod(fyStart engine.Date, idx int) engine.Period {
	switch r.Calc.Config().PayCycle {
	case PeriodWeekly:
		start := fyStart.AddDays(idx * 7)
		return engine.Period{Start: start, End: start.AddDays(6)}
	case PeriodMonthly:
		start := fyStart.AddMonths(idx)
		return engine.Period{Start: start, End: start.AddMonths(1).AddDays(-1)}
	case PeriodAnnual:
		return engine.Period{Start: fyStart, End: fyStart.AddYears(1).AddDays(-1)}
	default: // fortnightly
		start := fyStart.AddDays(idx * 14)
		return engine.Period{Start: start, End: start.AddDays(13)}
	}
}

func maxIndex(m map[int]decimal.Decimal) int {
	max := -1
	for k := range m {
		if k > max {
			max = k
		}
	}
	return max
}

/*
Package tax implements progressive income tax estimation and fiscal-year
withholding reconciliation.

PURPOSE:
  Converts gross pay into tax figures: walking a progressive bracket
  table, applying a flat levy above a low-income threshold, converting
  between pay periods, and reconciling simulated per-paycheck withholding
  against the single annual liability to estimate a refund or bill.

KEY CONCEPTS IN THIS FILE (brackets.go):
  - Bracket: One band of the progressive table, with a precomputed base
    tax for all income below its lower bound
  - BracketTable: The ordered table, validated once at load time

PUBLISHED-TABLE SEMANTICS:
  Official tables publish integer dollar boundaries and rounded base
  amounts, which leaves sub-dollar seams between bands (the 2024-25
  Australian table is off by ~$0.16 at the 45,000 boundary under the
  continuous formula). The authored base amounts are treated as
  authoritative and continuity is validated within a $0.50 rounding
  tolerance. Anything outside that tolerance, or any gap/overlap/ordering
  problem, is a configuration-time integrity error rejected loudly -
  a broken table would silently corrupt every tax computation.

SEE ALSO:
  - calculator.go: Income tax, levy, and period conversion
  - fiscal.go: Fiscal-year withholding reconciliation
  - presets.go: Ready-made jurisdiction configurations
*/
package tax

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// =============================================================================
// BRACKETS
// =============================================================================

// Bracket is one band of a progressive tax table.
// Tax for income I in the band is BaseTax + (I - Min) * Rate.
type Bracket struct {
	Min decimal.Decimal
	Max decimal.Decimal // ignored when Unbounded
	// Unbounded marks the top band.
	Unbounded bool
	// Rate is the marginal rate within the band, in [0, 1].
	Rate decimal.Decimal
	// BaseTax is the published cumulative tax for all income below Min.
	BaseTax decimal.Decimal
}

// BracketTable is an ordered progressive tax table.
type BracketTable []Bracket

// continuityTolerance accepts published rounding at band seams; see the
// package comment.
var continuityTolerance = decimal.NewFromFloat(0.50)

var one = decimal.NewFromInt(1)

// Validate checks the table invariants: ascending contiguous integer-dollar
// bands, first band starting at zero, exactly one unbounded top band,
// rates in [0, 1], and base-tax continuity within tolerance.
func (bt BracketTable) Validate() error {
	if len(bt) == 0 {
		return fmt.Errorf("%w: empty table", ErrInvalidBrackets)
	}
	if !bt[0].Min.IsZero() {
		return fmt.Errorf("%w: first bracket must start at 0, got %s", ErrInvalidBrackets, bt[0].Min)
	}
	if !bt[0].BaseTax.IsZero() {
		return fmt.Errorf("%w: first bracket must carry zero base tax", ErrInvalidBrackets)
	}

	for i, b := range bt {
		if b.Rate.IsNegative() || b.Rate.GreaterThan(one) {
			return fmt.Errorf("%w: bracket %d rate %s outside [0,1]", ErrInvalidBrackets, i, b.Rate)
		}
		if b.Unbounded != (i == len(bt)-1) {
			return fmt.Errorf("%w: only the last bracket may be unbounded", ErrInvalidBrackets)
		}
		if !b.Unbounded && !b.Max.GreaterThan(b.Min) {
			return fmt.Errorf("%w: bracket %d max %s not above min %s", ErrInvalidBrackets, i, b.Max, b.Min)
		}

		if i == 0 {
			continue
		}
		prev := bt[i-1]

		// Contiguous: next band begins one dollar above the previous max.
		if !b.Min.Equal(prev.Max.Add(one)) {
			return fmt.Errorf("%w: bracket %d min %s does not follow previous max %s",
				ErrInvalidBrackets, i, b.Min, prev.Max)
		}

		// Continuity: base tax must match the tax at the top of the
		// previous band, within published-rounding tolerance.
		expected := prev.BaseTax.Add(prev.Max.Sub(prev.Min).Mul(prev.Rate))
		if b.BaseTax.Sub(expected).Abs().GreaterThan(continuityTolerance) {
			return fmt.Errorf("%w: bracket %d base tax %s deviates from continuous value %s",
				ErrInvalidBrackets, i, b.BaseTax, expected)
		}
	}
	return nil
}

// bracketFor returns the band containing the income. Assumes a validated
// table; negative income lands in the first band.
func (bt BracketTable) bracketFor(income decimal.Decimal) Bracket {
	for _, b := range bt {
		if b.Unbounded || income.LessThanOrEqual(b.Max) {
			return b
		}
	}
	return bt[len(bt)-1]
}

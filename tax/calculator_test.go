package tax_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/shiftpay-engine/tax"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func newAUCalculator(t *testing.T) *tax.Calculator {
	calc, err := tax.NewCalculator(tax.AustralianConfig2024())
	require.NoError(t, err)
	return calc
}

func dec(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

// =============================================================================
// PROGRESSIVE INCOME TAX
// =============================================================================

func TestIncomeTax_PublishedTable(t *testing.T) {
	calc := newAUCalculator(t)

	cases := []struct {
		name   string
		income float64
		want   float64
	}{
		{"zero income", 0, 0},
		{"negative income", -5000, 0},
		{"top of tax-free band", 18200, 0},
		{"first taxed dollar", 18201, 0},
		{"top of 16% band", 45000, 4287.84},
		{"bottom of 30% band uses published base", 45001, 4288},
		{"mid band", 100000, 20787.70},
		{"top of 30% band", 135000, 31287.70},
		{"bottom of 37% band", 135001, 31288},
		{"bottom of top band", 190001, 51638},
		{"inside top band", 200000, 56137.55},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := calc.IncomeTax(dec(tc.income))
			assert.True(t, got.Equal(dec(tc.want)),
				"IncomeTax(%v) = %s, want %v", tc.income, got, tc.want)
		})
	}
}

func TestIncomeTax_MonotonicAcrossSeams(t *testing.T) {
	calc := newAUCalculator(t)

	// Tax never decreases when income increases past a band boundary.
	for _, boundary := range []float64{18200, 45000, 135000, 190000} {
		below := calc.IncomeTax(dec(boundary))
		above := calc.IncomeTax(dec(boundary + 1))
		assert.True(t, above.GreaterThanOrEqual(below),
			"tax at %v+1 (%s) below tax at %v (%s)", boundary, above, boundary, below)
	}
}

func TestMarginalRate(t *testing.T) {
	calc := newAUCalculator(t)

	assert.True(t, calc.MarginalRate(dec(10000)).IsZero())
	assert.True(t, calc.MarginalRate(dec(30000)).Equal(dec(0.16)))
	assert.True(t, calc.MarginalRate(dec(100000)).Equal(dec(0.30)))
	assert.True(t, calc.MarginalRate(dec(500000)).Equal(dec(0.45)))
}

// =============================================================================
// FLAT LEVY
// =============================================================================

func TestFlatLevy_ThresholdAndExemption(t *testing.T) {
	calc := newAUCalculator(t)

	assert.True(t, calc.FlatLevy(dec(26000)).IsZero(), "at the threshold: no levy")
	assert.True(t, calc.FlatLevy(dec(26001)).Equal(dec(520.02)),
		"above the threshold the levy applies to the whole income")
	assert.True(t, calc.FlatLevy(dec(30000)).Equal(dec(600)))
	assert.True(t, calc.FlatLevy(dec(100000)).Equal(dec(2000)))

	exemptCfg := tax.AustralianConfig2024()
	exemptCfg.LevyExempt = true
	exempt, err := tax.NewCalculator(exemptCfg)
	require.NoError(t, err)
	assert.True(t, exempt.FlatLevy(dec(100000)).IsZero(), "exempt payers owe no levy")
}

// =============================================================================
// PERIOD CONVERSION
// =============================================================================

func TestConvertPeriod_WeeklyGross(t *testing.T) {
	calc := newAUCalculator(t)

	pt, err := calc.ConvertPeriod(dec(1000), tax.PeriodWeekly)
	require.NoError(t, err)

	assert.True(t, pt.AnnualIncome.Equal(dec(52000)))
	assert.True(t, pt.IncomeTax.Equal(dec(122.84)), "weekly income tax = %s", pt.IncomeTax)
	assert.True(t, pt.Levy.Equal(dec(20)), "weekly levy = %s", pt.Levy)
	assert.True(t, pt.TotalTax.Equal(dec(142.84)))
	assert.True(t, pt.NetPay.Equal(dec(857.16)))
	assert.True(t, pt.EffectiveRate.Equal(dec(0.1428)), "effective rate = %s", pt.EffectiveRate)
}

func TestConvertPeriod_AnnualIsIdentity(t *testing.T) {
	calc := newAUCalculator(t)

	pt, err := calc.ConvertPeriod(dec(100000), tax.PeriodAnnual)
	require.NoError(t, err)

	assert.True(t, pt.AnnualIncome.Equal(dec(100000)))
	assert.True(t, pt.IncomeTax.Equal(dec(20787.70)))
	assert.True(t, pt.Levy.Equal(dec(2000)))
}

func TestConvertPeriod_ZeroGross(t *testing.T) {
	calc := newAUCalculator(t)

	pt, err := calc.ConvertPeriod(decimal.Zero, tax.PeriodFortnightly)
	require.NoError(t, err)
	assert.True(t, pt.TotalTax.IsZero())
	assert.True(t, pt.NetPay.IsZero())
	assert.True(t, pt.EffectiveRate.IsZero())
}

func TestConvertPeriod_UnknownPeriod(t *testing.T) {
	calc := newAUCalculator(t)

	_, err := calc.ConvertPeriod(dec(1000), tax.PayPeriod("hourly"))
	assert.ErrorIs(t, err, tax.ErrUnknownPeriod)
}

// =============================================================================
// CONFIGURATION VALIDATION
// =============================================================================

func bandedTable() tax.BracketTable {
	return tax.BracketTable{
		{Min: dec(0), Max: dec(18200), Rate: dec(0), BaseTax: dec(0)},
		{Min: dec(18201), Max: dec(45000), Rate: dec(0.16), BaseTax: dec(0)},
		{Min: dec(45001), Rate: dec(0.30), BaseTax: dec(4288), Unbounded: true},
	}
}

func TestNewCalculator_RejectsBrokenTables(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(tax.BracketTable) tax.BracketTable
	}{
		{"empty table", func(tax.BracketTable) tax.BracketTable { return nil }},
		{"first bracket not at zero", func(bt tax.BracketTable) tax.BracketTable {
			bt[0].Min = dec(100)
			return bt
		}},
		{"first bracket carries base tax", func(bt tax.BracketTable) tax.BracketTable {
			bt[0].BaseTax = dec(10)
			return bt
		}},
		{"gap between bands", func(bt tax.BracketTable) tax.BracketTable {
			bt[1].Min = dec(18300)
			return bt
		}},
		{"rate above 100%", func(bt tax.BracketTable) tax.BracketTable {
			bt[1].Rate = dec(1.5)
			return bt
		}},
		{"unbounded band not last", func(bt tax.BracketTable) tax.BracketTable {
			bt[0].Unbounded = true
			return bt
		}},
		{"base tax far from continuous value", func(bt tax.BracketTable) tax.BracketTable {
			bt[2].BaseTax = dec(9999)
			return bt
		}},
		{"inverted band", func(bt tax.BracketTable) tax.BracketTable {
			bt[1].Max = dec(18100)
			return bt
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := tax.AustralianConfig2024()
			cfg.Brackets = tc.mutate(bandedTable())
			_, err := tax.NewCalculator(cfg)
			assert.ErrorIs(t, err, tax.ErrInvalidBrackets)
		})
	}
}

func TestNewCalculator_PublishedRoundingTolerated(t *testing.T) {
	// The official 2024-25 table is ~$0.16 discontinuous at 45,000; the
	// authored base amounts must be accepted as-is.
	_, err := tax.NewCalculator(tax.AustralianConfig2024())
	assert.NoError(t, err)
}

func TestNewCalculator_RejectsBadConfig(t *testing.T) {
	badMonth := tax.AustralianConfig2024()
	badMonth.FiscalYearStartMonth = 13
	_, err := tax.NewCalculator(badMonth)
	assert.ErrorIs(t, err, tax.ErrInvalidConfig)

	badLevy := tax.AustralianConfig2024()
	badLevy.LevyRate = dec(-0.01)
	_, err = tax.NewCalculator(badLevy)
	assert.ErrorIs(t, err, tax.ErrInvalidConfig)

	badCycle := tax.AustralianConfig2024()
	badCycle.PayCycle = "sometimes"
	_, err = tax.NewCalculator(badCycle)
	assert.ErrorIs(t, err, tax.ErrUnknownPeriod)
}

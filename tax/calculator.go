/*
calculator.go - Progressive income tax, flat levy, and period conversion

PURPOSE:
  The arithmetic core of the tax estimate. All functions are pure over an
  explicit validated Config - there is no ambient jurisdiction state, so
  two calculators for two countries can coexist in one process.

PERIOD CONVERSION:
  Withholding tables are annualized: a weekly gross is multiplied to an
  annual income, taxed at the annual level, and the tax divided back down.
  The fixed multipliers (52/26/12/1) match how payroll software treats
  pay frequencies.

EXAMPLE:
  calc, _ := tax.NewCalculator(tax.AustralianConfig2024())
  pt, _ := calc.ConvertPeriod(decimal.NewFromInt(1000), tax.PeriodWeekly)
  // pt.NetPay ~= 857.16
*/
package tax

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// =============================================================================
// PAY PERIODS
// =============================================================================

type PayPeriod string

const (
	PeriodWeekly      PayPeriod = "weekly"
	PeriodFortnightly PayPeriod = "fortnightly"
	PeriodMonthly     PayPeriod = "monthly"
	PeriodAnnual      PayPeriod = "annual"
)

// PeriodsPerYear returns the annualization multiplier for a pay period.
func (p PayPeriod) PeriodsPerYear() (int64, error) {
	switch p {
	case PeriodWeekly:
		return 52, nil
	case PeriodFortnightly:
		return 26, nil
	case PeriodMonthly:
		return 12, nil
	case PeriodAnnual:
		return 1, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownPeriod, string(p))
	}
}

// =============================================================================
// CONFIGURATION
// =============================================================================

// Config is the complete tax configuration for one jurisdiction.
// Passed explicitly into every calculator; never global.
type Config struct {
	Brackets BracketTable

	// Flat levy (e.g. Medicare levy): LevyRate on the whole income once
	// it exceeds LevyThreshold. LevyExempt forces the levy to zero
	// regardless of income (certain visa categories).
	LevyRate      decimal.Decimal
	LevyThreshold decimal.Decimal
	LevyExempt    bool

	// Employer superannuation contribution as a fraction of gross pay.
	SuperRate decimal.Decimal

	// Fiscal year start (e.g. July 1 for Australia).
	FiscalYearStartMonth int
	FiscalYearStartDay   int

	// Pay cycle used to simulate incremental withholding.
	PayCycle PayPeriod
}

// Validate checks the configuration, rejecting loudly at load time.
func (c Config) Validate() error {
	if err := c.Brackets.Validate(); err != nil {
		return err
	}
	if c.LevyRate.IsNegative() || c.LevyRate.GreaterThan(one) {
		return fmt.Errorf("%w: levy rate %s outside [0,1]", ErrInvalidConfig, c.LevyRate)
	}
	if c.SuperRate.IsNegative() || c.SuperRate.GreaterThan(one) {
		return fmt.Errorf("%w: super rate %s outside [0,1]", ErrInvalidConfig, c.SuperRate)
	}
	if c.FiscalYearStartMonth < 1 || c.FiscalYearStartMonth > 12 {
		return fmt.Errorf("%w: fiscal year start month %d", ErrInvalidConfig, c.FiscalYearStartMonth)
	}
	if c.FiscalYearStartDay < 1 || c.FiscalYearStartDay > 28 {
		return fmt.Errorf("%w: fiscal year start day %d", ErrInvalidConfig, c.FiscalYearStartDay)
	}
	if _, err := c.PayCycle.PeriodsPerYear(); err != nil {
		return err
	}
	return nil
}

// =============================================================================
// CALCULATOR
// =============================================================================

// Calculator computes income tax figures for one validated Config.
type Calculator struct {
	cfg Config
}

// NewCalculator validates the config and returns a calculator.
// A misconfigured bracket table is fatal here, not at calculation time.
func NewCalculator(cfg Config) (*Calculator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Calculator{cfg: cfg}, nil
}

// Config returns the calculator's configuration.
func (c *Calculator) Config() Config { return c.cfg }

// IncomeTax returns the annual income tax for an annual income, using the
// published base amounts of the bracket containing the income.
func (c *Calculator) IncomeTax(annualIncome decimal.Decimal) decimal.Decimal {
	if !annualIncome.IsPositive() {
		return decimal.Zero
	}
	b := c.cfg.Brackets.bracketFor(annualIncome)
	over := annualIncome.Sub(b.Min)
	if over.IsNegative() {
		// Income in the one-dollar seam below an integer boundary.
		over = decimal.Zero
	}
	return b.BaseTax.Add(over.Mul(b.Rate)).Round(2)
}

// FlatLevy returns the flat levy on an annual income: zero at or below
// the threshold or when the payer is exempt, LevyRate on the whole income
// above it.
func (c *Calculator) FlatLevy(annualIncome decimal.Decimal) decimal.Decimal {
	if c.cfg.LevyExempt || !annualIncome.GreaterThan(c.cfg.LevyThreshold) {
		return decimal.Zero
	}
	return annualIncome.Mul(c.cfg.LevyRate).Round(2)
}

// MarginalRate returns the rate of the bracket containing the income.
// Used for visualization, not for the tax computation itself.
func (c *Calculator) MarginalRate(annualIncome decimal.Decimal) decimal.Decimal {
	if annualIncome.IsNegative() {
		annualIncome = decimal.Zero
	}
	return c.cfg.Brackets.bracketFor(annualIncome).Rate
}

// =============================================================================
// PERIOD CONVERSION
// =============================================================================

// PeriodTax is the tax estimate for one pay period's gross.
type PeriodTax struct {
	Period       PayPeriod
	GrossPay     decimal.Decimal
	AnnualIncome decimal.Decimal
	IncomeTax    decimal.Decimal
	Levy         decimal.Decimal
	TotalTax     decimal.Decimal
	NetPay       decimal.Decimal
	// EffectiveRate is annual total tax over annual income.
	EffectiveRate decimal.Decimal
}

// ConvertPeriod annualizes a period gross, computes annual tax and levy,
// and de-annualizes back to period-scoped figures.
func (c *Calculator) ConvertPeriod(gross decimal.Decimal, period PayPeriod) (PeriodTax, error) {
	periods, err := period.PeriodsPerYear()
	if err != nil {
		return PeriodTax{}, err
	}
	factor := decimal.NewFromInt(periods)

	annual := gross.Mul(factor)
	annualTax := c.IncomeTax(annual)
	annualLevy := c.FlatLevy(annual)

	periodTax := annualTax.Div(factor).Round(2)
	periodLevy := annualLevy.Div(factor).Round(2)
	total := periodTax.Add(periodLevy)

	effective := decimal.Zero
	if annual.IsPositive() {
		effective = annualTax.Add(annualLevy).Div(annual).Round(4)
	}

	return PeriodTax{
		Period:        period,
		GrossPay:      gross,
		AnnualIncome:  annual,
		IncomeTax:     periodTax,
		Levy:          periodLevy,
		TotalTax:      total,
		NetPay:        gross.Sub(total),
		EffectiveRate: effective,
	}, nil
}

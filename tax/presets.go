/*
presets.go - Ready-made jurisdiction tax configurations

PURPOSE:
  Provides complete Config values for supported jurisdictions so callers
  don't have to transcribe official tables. These are starting points;
  the factory package builds custom configs from JSON for anything else.

AVAILABLE PRESETS:
  AustralianConfig2024:  Resident rates for the 2024-25 income year

CUSTOMIZATION:
  cfg := tax.AustralianConfig2024()
  cfg.LevyExempt = true // e.g. certain temporary visa holders
  calc, err := tax.NewCalculator(cfg)
*/
package tax

import "github.com/shopspring/decimal"

// AustralianConfig2024 returns the Australian resident configuration for
// the 2024-25 income year: stage-3 brackets, 2% Medicare levy above the
// single low-income threshold, 11.5% superannuation guarantee, fiscal
// year starting July 1, fortnightly pay cycles.
//
// Base amounts are the published rounded figures, accepted under the
// table's $0.50 continuity tolerance.
func AustralianConfig2024() Config {
	return Config{
		Brackets: BracketTable{
			{Min: dec(0), Max: dec(18200), Rate: dec(0), BaseTax: dec(0)},
			{Min: dec(18201), Max: dec(45000), Rate: decimal.NewFromFloat(0.16), BaseTax: dec(0)},
			{Min: dec(45001), Max: dec(135000), Rate: decimal.NewFromFloat(0.30), BaseTax: dec(4288)},
			{Min: dec(135001), Max: dec(190000), Rate: decimal.NewFromFloat(0.37), BaseTax: dec(31288)},
			{Min: dec(190001), Unbounded: true, Rate: decimal.NewFromFloat(0.45), BaseTax: dec(51638)},
		},
		LevyRate:             decimal.NewFromFloat(0.02),
		LevyThreshold:        dec(26000),
		SuperRate:            decimal.NewFromFloat(0.115),
		FiscalYearStartMonth: 7,
		FiscalYearStartDay:   1,
		PayCycle:             PeriodFortnightly,
	}
}

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

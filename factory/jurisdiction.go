/*
Package factory provides JSON to Go jurisdiction conversion.

PURPOSE:
  Converts JSON jurisdiction definitions into validated tax configuration,
  day-classification calendars, and compliance caps. This enables
  supporting a new country or tax year without code changes - the bracket
  table, levy, fiscal-year window, and visa cap all live in one JSON
  document.

JSON SCHEMA:
  {
    "code": "AU",
    "brackets": [
      {"min": 0, "max": 18200, "rate": 0, "base_tax": 0},
      {"min": 18201, "max": 45000, "rate": 0.16, "base_tax": 0},
      {"min": 190001, "rate": 0.45, "base_tax": 51638}
    ],
    "levy_rate": 0.02,
    "levy_threshold": 26000,
    "levy_exempt": false,
    "super_rate": 0.115,
    "fiscal_year_start_month": 7,
    "fiscal_year_start_day": 1,
    "pay_cycle": "fortnightly",
    "fortnightly_cap_hours": 48,
    "custom_holidays": ["2026-03-09"]
  }

  A bracket without "max" is the unbounded top band.

VALIDATION:
  Bracket-table misconfiguration is a configuration-time integrity error:
  ParseJurisdiction rejects it loudly instead of letting a broken table
  silently corrupt every tax computation.

USAGE:
  juris, err := factory.ParseJurisdiction(jsonBytes)
  if err != nil { log.Fatal(err) }
  calc := juris.Calculator

SEE ALSO:
  - tax/brackets.go: Table invariants enforced here
  - tax/presets.go: Go-based configurations for common jurisdictions
*/
package factory

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/warp/shiftpay-engine/engine"
	"github.com/warp/shiftpay-engine/tax"
)

// =============================================================================
// JSON SCHEMA TYPES
// =============================================================================

// JurisdictionJSON is the JSON representation of a jurisdiction.
type JurisdictionJSON struct {
	Code                 string        `json:"code"`
	Brackets             []BracketJSON `json:"brackets"`
	LevyRate             float64       `json:"levy_rate,omitempty"`
	LevyThreshold        float64       `json:"levy_threshold,omitempty"`
	LevyExempt           bool          `json:"levy_exempt,omitempty"`
	SuperRate            float64       `json:"super_rate,omitempty"`
	FiscalYearStartMonth int           `json:"fiscal_year_start_month"`
	FiscalYearStartDay   int           `json:"fiscal_year_start_day"`
	PayCycle             string        `json:"pay_cycle,omitempty"`
	FortnightlyCapHours  float64       `json:"fortnightly_cap_hours,omitempty"`
	CustomHolidays       []string      `json:"custom_holidays,omitempty"`
}

// BracketJSON represents one tax bracket. Omitting "max" marks the
// unbounded top band.
type BracketJSON struct {
	Min     float64  `json:"min"`
	Max     *float64 `json:"max,omitempty"`
	Rate    float64  `json:"rate"`
	BaseTax float64  `json:"base_tax"`
}

// =============================================================================
// JURISDICTION BUNDLE
// =============================================================================

// Jurisdiction bundles everything the calculators need for one country:
// a validated tax calculator, a day classifier, and the visa-cap hours.
type Jurisdiction struct {
	Code       string
	Calculator *tax.Calculator
	Classifier engine.Classifier
	CapHours   decimal.Decimal
}

// defaultCapHours matches the Australian student-visa fortnight cap.
var defaultCapHours = decimal.NewFromInt(48)

// ParseJurisdiction converts JSON into a validated Jurisdiction.
// Any bracket-table or config problem fails here, loudly.
func ParseJurisdiction(data []byte) (*Jurisdiction, error) {
	var j JurisdictionJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return nil, fmt.Errorf("parse jurisdiction: %w", err)
	}
	return buildJurisdiction(j)
}

// Default returns the built-in Australian 2024-25 jurisdiction.
func Default() *Jurisdiction {
	calc, err := tax.NewCalculator(tax.AustralianConfig2024())
	if err != nil {
		// The preset is covered by tests; failing here means the binary
		// itself is broken.
		panic(err)
	}
	return &Jurisdiction{
		Code:       string(engine.JurisdictionAU),
		Calculator: calc,
		Classifier: engine.Classifier{Calendar: engine.CalendarFor(engine.JurisdictionAU)},
		CapHours:   defaultCapHours,
	}
}

func buildJurisdiction(j JurisdictionJSON) (*Jurisdiction, error) {
	brackets := make(tax.BracketTable, 0, len(j.Brackets))
	for i, b := range j.Brackets {
		min, err := engine.NewAmount(b.Min)
		if err != nil {
			return nil, fmt.Errorf("bracket %d min: %w", i, err)
		}
		rate, err := engine.NewAmount(b.Rate)
		if err != nil {
			return nil, fmt.Errorf("bracket %d rate: %w", i, err)
		}
		base, err := engine.NewAmount(b.BaseTax)
		if err != nil {
			return nil, fmt.Errorf("bracket %d base tax: %w", i, err)
		}
		bracket := tax.Bracket{Min: min, Rate: rate, BaseTax: base, Unbounded: b.Max == nil}
		if b.Max != nil {
			max, err := engine.NewAmount(*b.Max)
			if err != nil {
				return nil, fmt.Errorf("bracket %d max: %w", i, err)
			}
			bracket.Max = max
		}
		brackets = append(brackets, bracket)
	}

	payCycle := tax.PayPeriod(j.PayCycle)
	if j.PayCycle == "" {
		payCycle = tax.PeriodFortnightly
	}

	cfg := tax.Config{
		Brackets:             brackets,
		LevyRate:             decimal.NewFromFloat(j.LevyRate),
		LevyThreshold:        decimal.NewFromFloat(j.LevyThreshold),
		LevyExempt:           j.LevyExempt,
		SuperRate:            decimal.NewFromFloat(j.SuperRate),
		FiscalYearStartMonth: j.FiscalYearStartMonth,
		FiscalYearStartDay:   j.FiscalYearStartDay,
		PayCycle:             payCycle,
	}

	calc, err := tax.NewCalculator(cfg)
	if err != nil {
		return nil, err
	}

	cap := defaultCapHours
	if j.FortnightlyCapHours > 0 {
		cap, err = engine.NewAmount(j.FortnightlyCapHours)
		if err != nil {
			return nil, fmt.Errorf("fortnightly cap: %w", err)
		}
	}

	return &Jurisdiction{
		Code:       j.Code,
		Calculator: calc,
		Classifier: engine.Classifier{
			Custom:   engine.NewHolidaySet(j.CustomHolidays),
			Calendar: engine.CalendarFor(engine.Jurisdiction(j.Code)),
		},
		CapHours: cap,
	}, nil
}

package factory_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/shiftpay-engine/engine"
	"github.com/warp/shiftpay-engine/factory"
	"github.com/warp/shiftpay-engine/tax"
)

const validJurisdictionJSON = `{
	"code": "AU",
	"brackets": [
		{"min": 0, "max": 18200, "rate": 0, "base_tax": 0},
		{"min": 18201, "max": 45000, "rate": 0.16, "base_tax": 0},
		{"min": 45001, "rate": 0.30, "base_tax": 4288}
	],
	"levy_rate": 0.02,
	"levy_threshold": 26000,
	"super_rate": 0.115,
	"fiscal_year_start_month": 7,
	"fiscal_year_start_day": 1,
	"pay_cycle": "weekly",
	"fortnightly_cap_hours": 40,
	"custom_holidays": ["2026-03-09"]
}`

func TestParseJurisdiction_Valid(t *testing.T) {
	juris, err := factory.ParseJurisdiction([]byte(validJurisdictionJSON))
	require.NoError(t, err)

	assert.Equal(t, "AU", juris.Code)
	assert.True(t, juris.CapHours.Equal(decimal.NewFromInt(40)))
	assert.Equal(t, tax.PeriodWeekly, juris.Calculator.Config().PayCycle)

	// Custom holiday plus the built-in AU calendar.
	assert.Equal(t, engine.DayHoliday, juris.Classifier.Classify(engine.NewDate(2026, time.March, 9)))
	assert.Equal(t, engine.DayHoliday, juris.Classifier.Classify(engine.NewDate(2026, time.January, 26)))

	// The parsed table computes.
	got := juris.Calculator.IncomeTax(decimal.NewFromInt(100000))
	assert.True(t, got.Equal(decimal.NewFromFloat(20787.70)), "tax = %s", got)
}

func TestParseJurisdiction_Defaults(t *testing.T) {
	minimal := `{
		"code": "NZ",
		"brackets": [{"min": 0, "rate": 0.1, "base_tax": 0}],
		"fiscal_year_start_month": 4,
		"fiscal_year_start_day": 1
	}`

	juris, err := factory.ParseJurisdiction([]byte(minimal))
	require.NoError(t, err)

	assert.True(t, juris.CapHours.Equal(decimal.NewFromInt(48)), "cap defaults to 48")
	assert.Equal(t, tax.PeriodFortnightly, juris.Calculator.Config().PayCycle)

	// Unknown jurisdiction code: no built-in holidays.
	assert.Equal(t, engine.DayWeekday, juris.Classifier.Classify(engine.NewDate(2026, time.December, 25)))
}

func TestParseJurisdiction_RejectsBrokenBrackets(t *testing.T) {
	broken := `{
		"code": "AU",
		"brackets": [
			{"min": 0, "max": 18200, "rate": 0, "base_tax": 0},
			{"min": 20000, "rate": 0.30, "base_tax": 4288}
		],
		"fiscal_year_start_month": 7,
		"fiscal_year_start_day": 1
	}`

	_, err := factory.ParseJurisdiction([]byte(broken))
	assert.ErrorIs(t, err, tax.ErrInvalidBrackets)
}

func TestParseJurisdiction_RejectsMalformedJSON(t *testing.T) {
	_, err := factory.ParseJurisdiction([]byte(`{"code": `))
	assert.Error(t, err)
}

func TestDefault_AustralianBundle(t *testing.T) {
	juris := factory.Default()

	assert.Equal(t, "AU", juris.Code)
	assert.True(t, juris.CapHours.Equal(decimal.NewFromInt(48)))
	assert.Equal(t, engine.DayHoliday, juris.Classifier.Classify(engine.NewDate(2026, time.April, 25)))
}

/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the engine's domain model from the external API contract.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

VALIDATION:
  Request structs carry go-playground/validator tags, checked in the
  handlers. Numeric fields are additionally normalized at this boundary:
  the engine assumes well-formed non-negative numbers and does not
  re-validate (a non-finite number reaching it is rejected, not coerced).

SEE ALSO:
  - handlers.go: Uses these types
  - engine/types.go: Domain model
*/
package api

import (
	"math"

	"github.com/warp/shiftpay-engine/engine"
	"github.com/warp/shiftpay-engine/tax"
)

// =============================================================================
// REQUEST TYPES
// =============================================================================

// CreateShiftRequest logs or updates one work period.
type CreateShiftRequest struct {
	ID           string  `json:"id" validate:"required"`
	Date         string  `json:"date" validate:"required,datetime=2006-01-02"`
	JobID        string  `json:"job_id" validate:"required"`
	Hours        float64 `json:"hours" validate:"gte=0"`
	BreakMinutes *int    `json:"break_minutes,omitempty" validate:"omitempty,gte=0"`
}

// RateSetDTO carries the four day-type rates.
type RateSetDTO struct {
	Weekday  float64 `json:"weekday" validate:"gte=0"`
	Saturday float64 `json:"saturday" validate:"gte=0"`
	Sunday   float64 `json:"sunday" validate:"gte=0"`
	Holiday  float64 `json:"holiday" validate:"gte=0"`
}

// RateChangeDTO is one effective-dated entry of a job's rate history.
type RateChangeDTO struct {
	EffectiveFrom string     `json:"effective_from" validate:"required,datetime=2006-01-02"`
	Rates         RateSetDTO `json:"rates"`
}

// CreateJobRequest creates or updates a job configuration.
type CreateJobRequest struct {
	ID                  string          `json:"id" validate:"required"`
	Name                string          `json:"name" validate:"required"`
	DefaultWeekdayHours float64         `json:"default_weekday_hours" validate:"gte=0"`
	DefaultWeekendHours float64         `json:"default_weekend_hours" validate:"gte=0"`
	Rates               RateSetDTO      `json:"rates"`
	RateHistory         []RateChangeDTO `json:"rate_history,omitempty" validate:"dive"`
	DefaultBreakMinutes int             `json:"default_break_minutes,omitempty" validate:"gte=0"`
}

// CreateHolidayRequest adds a custom holiday date.
type CreateHolidayRequest struct {
	Date string `json:"date" validate:"required,datetime=2006-01-02"`
}

// CreateVacationRequest adds a cap-exemption period.
type CreateVacationRequest struct {
	Start string `json:"start" validate:"required,datetime=2006-01-02"`
	End   string `json:"end" validate:"required,datetime=2006-01-02"`
}

// =============================================================================
// RESPONSE TYPES
// =============================================================================

// ShiftPayDTO is the computed pay for one shift.
type ShiftPayDTO struct {
	ShiftID   string  `json:"shift_id"`
	JobID     string  `json:"job_id"`
	Date      string  `json:"date"`
	DayType   string  `json:"day_type"`
	PaidHours float64 `json:"paid_hours"`
	Rate      float64 `json:"rate"`
	Gross     float64 `json:"gross"`
}

// TotalsDTO is an (hours, gross) pair.
type TotalsDTO struct {
	Hours float64 `json:"hours"`
	Gross float64 `json:"gross"`
}

// PaySummaryDTO aggregates a shift set.
type PaySummaryDTO struct {
	Total     TotalsDTO            `json:"total"`
	ByDayType map[string]TotalsDTO `json:"by_day_type"`
	ByJob     map[string]TotalsDTO `json:"by_job"`
	Shifts    []ShiftPayDTO        `json:"shifts"`
}

// FortnightDTO is one rolling compliance window.
type FortnightDTO struct {
	Start          string  `json:"start"`
	End            string  `json:"end"`
	Week1Hours     float64 `json:"week1_hours"`
	Week2Hours     float64 `json:"week2_hours"`
	TotalHours     float64 `json:"total_hours"`
	RemainingHours float64 `json:"remaining_hours"`
	Exempt         bool    `json:"exempt"`
	OverLimit      bool    `json:"over_limit"`
	NearLimit      bool    `json:"near_limit"`
}

// PeriodTaxDTO is a period-scoped tax estimate.
type PeriodTaxDTO struct {
	Period        string  `json:"period"`
	GrossPay      float64 `json:"gross_pay"`
	AnnualIncome  float64 `json:"annual_income"`
	IncomeTax     float64 `json:"income_tax"`
	Levy          float64 `json:"levy"`
	TotalTax      float64 `json:"total_tax"`
	NetPay        float64 `json:"net_pay"`
	EffectiveRate float64 `json:"effective_rate"`
	MarginalRate  float64 `json:"marginal_rate"`
}

// CycleDTO is one simulated withholding cycle.
type CycleDTO struct {
	Start    string  `json:"start"`
	End      string  `json:"end"`
	Gross    float64 `json:"gross"`
	Withheld float64 `json:"withheld"`
}

// FiscalYearSummaryDTO is the refund/bill reconciliation.
type FiscalYearSummaryDTO struct {
	FiscalYearStart  string     `json:"fiscal_year_start"`
	FiscalYearEnd    string     `json:"fiscal_year_end"`
	GrossPay         float64    `json:"gross_pay"`
	WithheldEstimate float64    `json:"withheld_estimate"`
	AnnualLiability  float64    `json:"annual_liability"`
	RefundEstimate   float64    `json:"refund_estimate"`
	SuperEstimate    float64    `json:"super_estimate"`
	Cycles           []CycleDTO `json:"cycles"`
}

// ShiftDTO is a stored shift.
type ShiftDTO struct {
	ID           string  `json:"id"`
	Date         string  `json:"date"`
	JobID        string  `json:"job_id"`
	Hours        float64 `json:"hours"`
	BreakMinutes *int    `json:"break_minutes,omitempty"`
}

// JobDTO is a stored job configuration.
type JobDTO struct {
	ID                  string          `json:"id"`
	Name                string          `json:"name"`
	DefaultWeekdayHours float64         `json:"default_weekday_hours"`
	DefaultWeekendHours float64         `json:"default_weekend_hours"`
	Rates               RateSetDTO      `json:"rates"`
	RateHistory         []RateChangeDTO `json:"rate_history,omitempty"`
	DefaultBreakMinutes int             `json:"default_break_minutes,omitempty"`
}

// VacationDTO is a stored vacation period.
type VacationDTO struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// =============================================================================
// CONVERSION HELPERS
// =============================================================================

// sanitize normalizes malformed numeric input to 0 before it reaches the
// engine (which would reject it loudly).
func sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func toShiftPayDTO(p engine.ShiftPay) ShiftPayDTO {
	paidHours, _ := p.PaidHours.Float64()
	rate, _ := p.Rate.Float64()
	gross, _ := p.Gross.Float64()
	return ShiftPayDTO{
		ShiftID:   string(p.ShiftID),
		JobID:     string(p.JobID),
		Date:      p.Date.String(),
		DayType:   p.DayType.String(),
		PaidHours: paidHours,
		Rate:      rate,
		Gross:     gross,
	}
}

func toTotalsDTO(t engine.Totals) TotalsDTO {
	hours, _ := t.Hours.Float64()
	gross, _ := t.Gross.Float64()
	return TotalsDTO{Hours: hours, Gross: gross}
}

func toPaySummaryDTO(s engine.PaySummary) PaySummaryDTO {
	dto := PaySummaryDTO{
		Total:     toTotalsDTO(s.Total),
		ByDayType: make(map[string]TotalsDTO, len(s.ByDayType)),
		ByJob:     make(map[string]TotalsDTO, len(s.ByJob)),
		Shifts:    make([]ShiftPayDTO, 0, len(s.Shifts)),
	}
	for dayType, totals := range s.ByDayType {
		dto.ByDayType[dayType.String()] = toTotalsDTO(totals)
	}
	for jobID, totals := range s.ByJob {
		dto.ByJob[string(jobID)] = toTotalsDTO(totals)
	}
	for _, p := range s.Shifts {
		dto.Shifts = append(dto.Shifts, toShiftPayDTO(p))
	}
	return dto
}

func toFortnightDTO(p engine.FortnightPeriod) FortnightDTO {
	week1, _ := p.Week1Hours.Float64()
	week2, _ := p.Week2Hours.Float64()
	total, _ := p.TotalHours.Float64()
	remaining, _ := p.RemainingHours.Float64()
	return FortnightDTO{
		Start:          p.Start.String(),
		End:            p.End.String(),
		Week1Hours:     week1,
		Week2Hours:     week2,
		TotalHours:     total,
		RemainingHours: remaining,
		Exempt:         p.Exempt,
		OverLimit:      p.OverLimit,
		NearLimit:      p.NearLimit,
	}
}

func toPeriodTaxDTO(pt tax.PeriodTax, marginal float64) PeriodTaxDTO {
	gross, _ := pt.GrossPay.Float64()
	annual, _ := pt.AnnualIncome.Float64()
	incomeTax, _ := pt.IncomeTax.Float64()
	levy, _ := pt.Levy.Float64()
	total, _ := pt.TotalTax.Float64()
	net, _ := pt.NetPay.Float64()
	effective, _ := pt.EffectiveRate.Float64()
	return PeriodTaxDTO{
		Period:        string(pt.Period),
		GrossPay:      gross,
		AnnualIncome:  annual,
		IncomeTax:     incomeTax,
		Levy:          levy,
		TotalTax:      total,
		NetPay:        net,
		EffectiveRate: effective,
		MarginalRate:  marginal,
	}
}

func toFiscalYearSummaryDTO(s tax.FiscalYearSummary) FiscalYearSummaryDTO {
	gross, _ := s.GrossPay.Float64()
	withheld, _ := s.WithheldEstimate.Float64()
	liability, _ := s.AnnualLiability.Float64()
	refund, _ := s.RefundEstimate.Float64()
	super, _ := s.SuperEstimate.Float64()
	dto := FiscalYearSummaryDTO{
		FiscalYearStart:  s.FiscalYear.Start.String(),
		FiscalYearEnd:    s.FiscalYear.End.String(),
		GrossPay:         gross,
		WithheldEstimate: withheld,
		AnnualLiability:  liability,
		RefundEstimate:   refund,
		SuperEstimate:    super,
		Cycles:           make([]CycleDTO, 0, len(s.Cycles)),
	}
	for _, c := range s.Cycles {
		cycleGross, _ := c.Gross.Float64()
		cycleWithheld, _ := c.Withheld.Float64()
		dto.Cycles = append(dto.Cycles, CycleDTO{
			Start:    c.Period.Start.String(),
			End:      c.Period.End.String(),
			Gross:    cycleGross,
			Withheld: cycleWithheld,
		})
	}
	return dto
}

func toShiftDTO(s engine.Shift) ShiftDTO {
	hours, _ := s.Hours.Float64()
	return ShiftDTO{
		ID:           string(s.ID),
		Date:         s.Date.String(),
		JobID:        string(s.JobID),
		Hours:        hours,
		BreakMinutes: s.BreakMinutes,
	}
}

func toRateSetDTO(r engine.RateSet) RateSetDTO {
	weekday, _ := r.Weekday.Float64()
	saturday, _ := r.Saturday.Float64()
	sunday, _ := r.Sunday.Float64()
	holiday, _ := r.Holiday.Float64()
	return RateSetDTO{Weekday: weekday, Saturday: saturday, Sunday: sunday, Holiday: holiday}
}

func toJobDTO(j engine.JobConfig) JobDTO {
	weekdayHours, _ := j.DefaultWeekdayHours.Float64()
	weekendHours, _ := j.DefaultWeekendHours.Float64()
	dto := JobDTO{
		ID:                  string(j.ID),
		Name:                j.Name,
		DefaultWeekdayHours: weekdayHours,
		DefaultWeekendHours: weekendHours,
		Rates:               toRateSetDTO(j.Rates),
		DefaultBreakMinutes: j.DefaultBreakMinutes,
	}
	for _, change := range j.RateHistory {
		dto.RateHistory = append(dto.RateHistory, RateChangeDTO{
			EffectiveFrom: change.EffectiveFrom.String(),
			Rates:         toRateSetDTO(change.Rates),
		})
	}
	return dto
}

func fromRateSetDTO(r RateSetDTO) engine.RateSet {
	return engine.RateSet{
		Weekday:  engine.MustAmount(sanitize(r.Weekday)),
		Saturday: engine.MustAmount(sanitize(r.Saturday)),
		Sunday:   engine.MustAmount(sanitize(r.Sunday)),
		Holiday:  engine.MustAmount(sanitize(r.Holiday)),
	}
}

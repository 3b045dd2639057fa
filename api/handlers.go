/*
handlers.go - HTTP API handlers for the shift pay and compliance engine

PURPOSE:
  Exposes the pay, compliance, and tax engine via REST API. Handles HTTP
  request/response, JSON serialization, and delegates to domain logic.

ENDPOINTS:
  Jobs:
    GET    /api/jobs                   List job configurations
    POST   /api/jobs                   Create/update a job

  Shifts:
    GET    /api/shifts                 List shifts (optional from/to)
    POST   /api/shifts                 Log a shift
    DELETE /api/shifts/{id}            Delete a shift

  Holidays:
    GET    /api/holidays               List custom holidays
    POST   /api/holidays               Add a custom holiday
    DELETE /api/holidays/{date}        Remove a custom holiday

  Vacations:
    GET    /api/vacations              List vacation periods
    POST   /api/vacations              Add a vacation period

  Calculations (derived, never stored):
    GET    /api/pay/summary            Pay summary (optional from/to)
    GET    /api/compliance/fortnights  Rolling fortnight evaluations
    GET    /api/tax/estimate           Period tax estimate (gross, period)
    GET    /api/tax/fiscal-year        Fiscal-year reconciliation (as_of)

REQUEST FLOW:
  1. Parse HTTP request
  2. Validate input (go-playground/validator on request DTOs)
  3. Load input snapshot from the store
  4. Call domain logic (pay, compliance, tax)
  5. Serialize response

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input
  - 404: Resource not found
  - 500: Internal errors

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/warp/shiftpay-engine/engine"
	"github.com/warp/shiftpay-engine/factory"
	"github.com/warp/shiftpay-engine/store"
	"github.com/warp/shiftpay-engine/tax"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store store.Store
	Juris *factory.Jurisdiction

	validate *validator.Validate
}

// NewHandler creates a new handler with the given store and jurisdiction.
func NewHandler(st store.Store, juris *factory.Jurisdiction) *Handler {
	return &Handler{
		Store:    st,
		Juris:    juris,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// decodeAndValidate parses the request body into dst and runs validation.
func (h *Handler) decodeAndValidate(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	return h.validate.Struct(dst)
}

// =============================================================================
// JOB HANDLERS
// =============================================================================

// ListJobs returns all job configurations.
// GET /api/jobs
func (h *Handler) ListJobs(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.Store.Jobs(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list jobs", err)
		return
	}

	dtos := make([]JobDTO, 0, len(jobs))
	for _, j := range jobs {
		dtos = append(dtos, toJobDTO(j))
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateJob creates or updates a job configuration.
// POST /api/jobs
func (h *Handler) CreateJob(w http.ResponseWriter, r *http.Request) {
	var req CreateJobRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid job", err)
		return
	}

	job := engine.JobConfig{
		ID:                  engine.JobID(req.ID),
		Name:                req.Name,
		DefaultWeekdayHours: engine.MustAmount(sanitize(req.DefaultWeekdayHours)),
		DefaultWeekendHours: engine.MustAmount(sanitize(req.DefaultWeekendHours)),
		Rates:               fromRateSetDTO(req.Rates),
		DefaultBreakMinutes: req.DefaultBreakMinutes,
	}
	for _, change := range req.RateHistory {
		effective, ok := engine.ParseDate(change.EffectiveFrom)
		if !ok {
			writeError(w, http.StatusBadRequest, "Invalid rate history date", nil)
			return
		}
		job.RateHistory = append(job.RateHistory, engine.RateChange{
			EffectiveFrom: effective,
			Rates:         fromRateSetDTO(change.Rates),
		})
	}

	if err := h.Store.SaveJob(r.Context(), job); err != nil {
		writeError(w, http.StatusBadRequest, "Failed to save job", err)
		return
	}
	writeJSON(w, http.StatusCreated, toJobDTO(job))
}

// =============================================================================
// SHIFT HANDLERS
// =============================================================================

// ListShifts returns stored shifts, optionally limited to from/to.
// GET /api/shifts?from=2026-01-01&to=2026-01-31
func (h *Handler) ListShifts(w http.ResponseWriter, r *http.Request) {
	shifts, err := h.shiftsForRange(r)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list shifts", err)
		return
	}

	dtos := make([]ShiftDTO, 0, len(shifts))
	for _, s := range shifts {
		dtos = append(dtos, toShiftDTO(s))
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateShift logs or updates one shift.
// POST /api/shifts
func (h *Handler) CreateShift(w http.ResponseWriter, r *http.Request) {
	var req CreateShiftRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid shift", err)
		return
	}

	date, ok := engine.ParseDate(req.Date)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid shift date", nil)
		return
	}

	shift := engine.Shift{
		ID:           engine.ShiftID(req.ID),
		Date:         date,
		JobID:        engine.JobID(req.JobID),
		Hours:        engine.MustAmount(sanitize(req.Hours)),
		BreakMinutes: req.BreakMinutes,
	}
	if err := h.Store.SaveShift(r.Context(), shift); err != nil {
		writeError(w, http.StatusBadRequest, "Failed to save shift", err)
		return
	}
	writeJSON(w, http.StatusCreated, toShiftDTO(shift))
}

// DeleteShift removes a shift.
// DELETE /api/shifts/{id}
func (h *Handler) DeleteShift(w http.ResponseWriter, r *http.Request) {
	id := engine.ShiftID(chi.URLParam(r, "id"))
	if err := h.Store.DeleteShift(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Shift not found", nil)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete shift", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// HOLIDAY HANDLERS
// =============================================================================

// ListHolidays returns user-defined holidays. Jurisdiction holidays are
// computed, not stored, so they do not appear here.
// GET /api/holidays
func (h *Handler) ListHolidays(w http.ResponseWriter, r *http.Request) {
	holidays, err := h.Store.Holidays(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list holidays", err)
		return
	}

	dates := make([]string, 0, len(holidays))
	for _, d := range holidays {
		dates = append(dates, d.String())
	}
	writeJSON(w, http.StatusOK, dates)
}

// CreateHoliday adds a user-defined holiday.
// POST /api/holidays
func (h *Handler) CreateHoliday(w http.ResponseWriter, r *http.Request) {
	var req CreateHolidayRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid holiday", err)
		return
	}

	date, ok := engine.ParseDate(req.Date)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid holiday date", nil)
		return
	}
	if err := h.Store.SaveHoliday(r.Context(), date); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save holiday", err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"date": date.String()})
}

// DeleteHoliday removes a user-defined holiday.
// DELETE /api/holidays/{date}
func (h *Handler) DeleteHoliday(w http.ResponseWriter, r *http.Request) {
	date, ok := engine.ParseDate(chi.URLParam(r, "date"))
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid holiday date", nil)
		return
	}
	if err := h.Store.DeleteHoliday(r.Context(), date); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Holiday not found", nil)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete holiday", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// VACATION HANDLERS
// =============================================================================

// ListVacations returns vacation periods.
// GET /api/vacations
func (h *Handler) ListVacations(w http.ResponseWriter, r *http.Request) {
	vacations, err := h.Store.Vacations(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list vacations", err)
		return
	}

	dtos := make([]VacationDTO, 0, len(vacations))
	for _, v := range vacations {
		dtos = append(dtos, VacationDTO{Start: v.Start.String(), End: v.End.String()})
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateVacation adds a cap-exemption period.
// POST /api/vacations
func (h *Handler) CreateVacation(w http.ResponseWriter, r *http.Request) {
	var req CreateVacationRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid vacation", err)
		return
	}

	start, okStart := engine.ParseDate(req.Start)
	end, okEnd := engine.ParseDate(req.End)
	if !okStart || !okEnd || end.Before(start) {
		writeError(w, http.StatusBadRequest, "Invalid vacation period", nil)
		return
	}
	v := engine.VacationPeriod{Start: start, End: end}
	if err := h.Store.SaveVacation(r.Context(), v); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save vacation", err)
		return
	}
	writeJSON(w, http.StatusCreated, VacationDTO{Start: start.String(), End: end.String()})
}

// =============================================================================
// CALCULATION HANDLERS
// =============================================================================

// GetPaySummary computes the pay summary for the requested range.
// GET /api/pay/summary?from=2026-01-01&to=2026-01-31
func (h *Handler) GetPaySummary(w http.ResponseWriter, r *http.Request) {
	shifts, err := h.shiftsForRange(r)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load shifts", err)
		return
	}
	calc, err := h.payCalculator(r)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load configuration", err)
		return
	}

	writeJSON(w, http.StatusOK, toPaySummaryDTO(calc.Aggregate(shifts)))
}

// GetFortnights evaluates every rolling fortnight window.
// GET /api/compliance/fortnights
func (h *Handler) GetFortnights(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	shifts, err := h.Store.Shifts(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load shifts", err)
		return
	}
	vacations, err := h.Store.Vacations(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load vacations", err)
		return
	}

	tracker := engine.ComplianceTracker{
		CapHours:  h.Juris.CapHours,
		Vacations: vacations,
	}

	periods := tracker.Fortnights(shifts)
	dtos := make([]FortnightDTO, 0, len(periods))
	for _, p := range periods {
		dtos = append(dtos, toFortnightDTO(p))
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetTaxEstimate converts a gross amount for one pay period into a tax
// breakdown.
// GET /api/tax/estimate?gross=1000&period=weekly
func (h *Handler) GetTaxEstimate(w http.ResponseWriter, r *http.Request) {
	gross, err := parseAmountParam(r, "gross")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid gross amount", err)
		return
	}
	period := tax.PayPeriod(r.URL.Query().Get("period"))
	if period == "" {
		period = h.Juris.Calculator.Config().PayCycle
	}

	estimate, err := h.Juris.Calculator.ConvertPeriod(gross, period)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Failed to estimate tax", err)
		return
	}
	marginal, _ := h.Juris.Calculator.MarginalRate(estimate.AnnualIncome).Float64()
	writeJSON(w, http.StatusOK, toPeriodTaxDTO(estimate, marginal))
}

// GetFiscalYear reconciles fiscal-year withholding against the single
// annual liability.
// GET /api/tax/fiscal-year?as_of=2026-06-30
func (h *Handler) GetFiscalYear(w http.ResponseWriter, r *http.Request) {
	asOf := engine.Today()
	if raw := r.URL.Query().Get("as_of"); raw != "" {
		parsed, ok := engine.ParseDate(raw)
		if !ok {
			writeError(w, http.StatusBadRequest, "Invalid as_of date", nil)
			return
		}
		asOf = parsed
	}

	shifts, err := h.Store.Shifts(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load shifts", err)
		return
	}
	calc, err := h.payCalculator(r)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load configuration", err)
		return
	}

	events := make([]tax.PayEvent, 0, len(shifts))
	for _, s := range shifts {
		pay := calc.ShiftPay(s)
		events = append(events, tax.PayEvent{Date: pay.Date, Gross: pay.Gross})
	}

	reconciler := tax.Reconciler{Calc: h.Juris.Calculator}
	summary, err := reconciler.Reconcile(events, asOf)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reconcile fiscal year", err)
		return
	}
	writeJSON(w, http.StatusOK, toFiscalYearSummaryDTO(summary))
}

// =============================================================================
// SNAPSHOT LOADING
// =============================================================================

// payCalculator assembles a calculator from the stored jobs plus the
// jurisdiction calendar merged with stored custom holidays.
func (h *Handler) payCalculator(r *http.Request) (engine.PayCalculator, error) {
	ctx := r.Context()
	jobs, err := h.Store.Jobs(ctx)
	if err != nil {
		return engine.PayCalculator{}, err
	}
	holidays, err := h.Store.Holidays(ctx)
	if err != nil {
		return engine.PayCalculator{}, err
	}

	custom := make(engine.HolidaySet, len(h.Juris.Classifier.Custom)+len(holidays))
	for d := range h.Juris.Classifier.Custom {
		custom[d] = struct{}{}
	}
	for _, d := range holidays {
		custom[d] = struct{}{}
	}

	return engine.PayCalculator{
		Jobs: jobs,
		Classifier: engine.Classifier{
			Custom:   custom,
			Calendar: h.Juris.Classifier.Calendar,
		},
	}, nil
}

// shiftsForRange loads shifts, honoring optional from/to query params.
func (h *Handler) shiftsForRange(r *http.Request) ([]engine.Shift, error) {
	fromRaw := r.URL.Query().Get("from")
	toRaw := r.URL.Query().Get("to")
	if fromRaw == "" && toRaw == "" {
		return h.Store.Shifts(r.Context())
	}

	from, okFrom := engine.ParseDate(fromRaw)
	to, okTo := engine.ParseDate(toRaw)
	if !okFrom || !okTo {
		return nil, fmt.Errorf("invalid date range %q..%q", fromRaw, toRaw)
	}
	return h.Store.ShiftsInRange(r.Context(), from, to)
}

func parseAmountParam(r *http.Request, name string) (decimal.Decimal, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return decimal.Zero, fmt.Errorf("missing %q parameter", name)
	}
	return decimal.NewFromString(raw)
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

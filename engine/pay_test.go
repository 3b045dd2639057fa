package engine_test

import (
	"math/rand"
	"testing"
	"time"

	"github.com/warp/shiftpay-engine/engine"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func cafeJob() engine.JobConfig {
	return engine.JobConfig{
		ID:   "cafe",
		Name: "Cafe",
		Rates: engine.RateSet{
			Weekday:  engine.MustAmount(25),
			Saturday: engine.MustAmount(35),
			Sunday:   engine.MustAmount(45),
			Holiday:  engine.MustAmount(55),
		},
		DefaultBreakMinutes: 30,
	}
}

func newCalculator(jobs ...engine.JobConfig) engine.PayCalculator {
	m := make(map[engine.JobID]engine.JobConfig, len(jobs))
	for _, j := range jobs {
		m[j.ID] = j
	}
	return engine.PayCalculator{
		Jobs:       m,
		Classifier: engine.Classifier{Calendar: engine.CalendarFor(engine.JurisdictionAU)},
	}
}

func shiftOn(id string, date engine.Date, hours float64) engine.Shift {
	return engine.Shift{
		ID:    engine.ShiftID(id),
		Date:  date,
		JobID: "cafe",
		Hours: engine.MustAmount(hours),
	}
}

func intPtr(n int) *int { return &n }

// =============================================================================
// PER-SHIFT PAY TESTS
// =============================================================================

func TestShiftPay_DefaultBreakDeducted(t *testing.T) {
	calc := newCalculator(cafeJob())
	monday := engine.NewDate(2026, time.January, 5)

	pay := calc.ShiftPay(shiftOn("s1", monday, 8))

	if !pay.PaidHours.Equal(engine.MustAmount(7.5)) {
		t.Errorf("paid hours = %s, want 7.5", pay.PaidHours)
	}
	if !pay.Gross.Equal(engine.MustAmount(187.50)) {
		t.Errorf("gross = %s, want 187.50", pay.Gross)
	}
	if pay.DayType != engine.DayWeekday {
		t.Errorf("day type = %s, want weekday", pay.DayType)
	}
}

func TestShiftPay_BreakOverrideWins(t *testing.T) {
	calc := newCalculator(cafeJob())
	monday := engine.NewDate(2026, time.January, 5)

	s := shiftOn("s1", monday, 8)
	s.BreakMinutes = intPtr(0)

	pay := calc.ShiftPay(s)
	if !pay.PaidHours.Equal(engine.MustAmount(8)) {
		t.Errorf("paid hours = %s, want 8", pay.PaidHours)
	}
	if !pay.Gross.Equal(engine.MustAmount(200)) {
		t.Errorf("gross = %s, want 200", pay.Gross)
	}
}

func TestShiftPay_BreakExceedsShift_ClampedToZero(t *testing.T) {
	calc := newCalculator(cafeJob())
	monday := engine.NewDate(2026, time.January, 5)

	pay := calc.ShiftPay(shiftOn("s1", monday, 0.25))

	if !pay.PaidHours.IsZero() {
		t.Errorf("paid hours = %s, want 0", pay.PaidHours)
	}
	if !pay.Gross.IsZero() {
		t.Errorf("gross = %s, want 0", pay.Gross)
	}
}

func TestShiftPay_RoundsToCents(t *testing.T) {
	calc := newCalculator(cafeJob())
	monday := engine.NewDate(2026, time.January, 5)

	// 7.583 - 0.5 = 7.083 -> 7.08 paid hours, 7.08 * 25 = 177.00
	pay := calc.ShiftPay(shiftOn("s1", monday, 7.583))

	if !pay.PaidHours.Equal(engine.MustAmount(7.08)) {
		t.Errorf("paid hours = %s, want 7.08", pay.PaidHours)
	}
	if !pay.Gross.Equal(engine.MustAmount(177)) {
		t.Errorf("gross = %s, want 177.00", pay.Gross)
	}
}

func TestShiftPay_DayTypeSelectsRate(t *testing.T) {
	calc := newCalculator(cafeJob())

	cases := []struct {
		name string
		date engine.Date
		want float64
	}{
		{"weekday", engine.NewDate(2026, time.January, 5), 25},
		{"saturday", engine.NewDate(2026, time.January, 10), 35},
		{"sunday", engine.NewDate(2026, time.January, 11), 45},
		{"public holiday", engine.NewDate(2026, time.January, 26), 55}, // Australia Day (a Monday)
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			pay := calc.ShiftPay(shiftOn("s1", tc.date, 4))
			if !pay.Rate.Equal(engine.MustAmount(tc.want)) {
				t.Errorf("rate = %s, want %v", pay.Rate, tc.want)
			}
		})
	}
}

func TestShiftPay_UnknownJob_ZeroPay(t *testing.T) {
	calc := newCalculator(cafeJob())
	s := engine.Shift{
		ID:    "orphan",
		Date:  engine.NewDate(2026, time.January, 5),
		JobID: "no-such-job",
		Hours: engine.MustAmount(8),
	}

	pay := calc.ShiftPay(s)
	if !pay.Gross.IsZero() || !pay.PaidHours.IsZero() || !pay.Rate.IsZero() {
		t.Errorf("unknown job should contribute zero pay, got hours=%s rate=%s gross=%s",
			pay.PaidHours, pay.Rate, pay.Gross)
	}
}

func TestShiftPay_NeverNegative(t *testing.T) {
	job := cafeJob()
	job.DefaultBreakMinutes = 600
	calc := newCalculator(job)

	for hours := 0.0; hours <= 10; hours += 0.7 {
		pay := calc.ShiftPay(shiftOn("s1", engine.NewDate(2026, time.January, 5), hours))
		if pay.PaidHours.IsNegative() || pay.Gross.IsNegative() {
			t.Fatalf("negative pay for %v hours: hours=%s gross=%s", hours, pay.PaidHours, pay.Gross)
		}
	}
}

// =============================================================================
// AGGREGATION TESTS
// =============================================================================

func weekOfShifts() []engine.Shift {
	return []engine.Shift{
		shiftOn("mon", engine.NewDate(2026, time.January, 5), 8),
		shiftOn("tue", engine.NewDate(2026, time.January, 6), 6),
		shiftOn("sat", engine.NewDate(2026, time.January, 10), 5),
		shiftOn("sun", engine.NewDate(2026, time.January, 11), 4),
		shiftOn("holiday", engine.NewDate(2026, time.January, 26), 7),
	}
}

func TestAggregate_TotalsMatchShiftSum(t *testing.T) {
	calc := newCalculator(cafeJob())
	summary := calc.Aggregate(weekOfShifts())

	sumGross := engine.MustAmount(0)
	sumHours := engine.MustAmount(0)
	for _, p := range summary.Shifts {
		sumGross = sumGross.Add(p.Gross)
		sumHours = sumHours.Add(p.PaidHours)
	}
	if !summary.Total.Gross.Equal(sumGross) {
		t.Errorf("total gross %s != shift sum %s", summary.Total.Gross, sumGross)
	}
	if !summary.Total.Hours.Equal(sumHours) {
		t.Errorf("total hours %s != shift sum %s", summary.Total.Hours, sumHours)
	}

	byJob := engine.MustAmount(0)
	for _, totals := range summary.ByJob {
		byJob = byJob.Add(totals.Gross)
	}
	if !byJob.Equal(summary.Total.Gross) {
		t.Errorf("by-job sum %s != total %s", byJob, summary.Total.Gross)
	}

	byDay := engine.MustAmount(0)
	for _, totals := range summary.ByDayType {
		byDay = byDay.Add(totals.Gross)
	}
	if !byDay.Equal(summary.Total.Gross) {
		t.Errorf("by-day-type sum %s != total %s", byDay, summary.Total.Gross)
	}
}

func TestAggregate_OrderIndependent(t *testing.T) {
	calc := newCalculator(cafeJob())
	shifts := weekOfShifts()
	want := calc.Aggregate(shifts).Total

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 10; i++ {
		rng.Shuffle(len(shifts), func(a, b int) { shifts[a], shifts[b] = shifts[b], shifts[a] })
		got := calc.Aggregate(shifts).Total
		if !got.Gross.Equal(want.Gross) || !got.Hours.Equal(want.Hours) {
			t.Fatalf("permutation %d changed totals: got %s/%s want %s/%s",
				i, got.Hours, got.Gross, want.Hours, want.Gross)
		}
	}
}

func TestAggregateRange_InclusiveBounds(t *testing.T) {
	calc := newCalculator(cafeJob())
	shifts := []engine.Shift{
		shiftOn("before", engine.NewDate(2026, time.January, 4), 8),
		shiftOn("start", engine.NewDate(2026, time.January, 5), 8),
		shiftOn("end", engine.NewDate(2026, time.January, 9), 8),
		shiftOn("after", engine.NewDate(2026, time.January, 10), 8),
	}

	summary := calc.AggregateRange(shifts,
		engine.NewDate(2026, time.January, 5), engine.NewDate(2026, time.January, 9))

	if len(summary.Shifts) != 2 {
		t.Fatalf("got %d shifts in range, want 2", len(summary.Shifts))
	}
	for _, p := range summary.Shifts {
		if p.ShiftID != "start" && p.ShiftID != "end" {
			t.Errorf("unexpected shift %s in range", p.ShiftID)
		}
	}
}

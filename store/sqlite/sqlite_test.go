package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/shiftpay-engine/engine"
	"github.com/warp/shiftpay-engine/store"
	"github.com/warp/shiftpay-engine/store/sqlite"
)

func newTestStore(t *testing.T) *sqlite.Store {
	st, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func TestSQLite_ShiftRoundTrip(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	thirty := 30
	shift := engine.Shift{
		ID:           "s1",
		Date:         engine.NewDate(2026, time.January, 5),
		JobID:        "cafe",
		Hours:        engine.MustAmount(7.5),
		BreakMinutes: &thirty,
	}
	require.NoError(t, st.SaveShift(ctx, shift))

	shifts, err := st.Shifts(ctx)
	require.NoError(t, err)
	require.Len(t, shifts, 1)

	got := shifts[0]
	assert.Equal(t, engine.ShiftID("s1"), got.ID)
	assert.True(t, got.Date.Equal(shift.Date))
	assert.True(t, got.Hours.Equal(engine.MustAmount(7.5)))
	require.NotNil(t, got.BreakMinutes)
	assert.Equal(t, 30, *got.BreakMinutes)
}

func TestSQLite_ShiftUpsert(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	shift := engine.Shift{
		ID:    "s1",
		Date:  engine.NewDate(2026, time.January, 5),
		JobID: "cafe",
		Hours: engine.MustAmount(8),
	}
	require.NoError(t, st.SaveShift(ctx, shift))

	shift.Hours = engine.MustAmount(6)
	shift.BreakMinutes = nil
	require.NoError(t, st.SaveShift(ctx, shift))

	shifts, err := st.Shifts(ctx)
	require.NoError(t, err)
	require.Len(t, shifts, 1)
	assert.True(t, shifts[0].Hours.Equal(engine.MustAmount(6)))
	assert.Nil(t, shifts[0].BreakMinutes)
}

func TestSQLite_ShiftsInRange(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	for day := 1; day <= 10; day++ {
		require.NoError(t, st.SaveShift(ctx, engine.Shift{
			ID:    engine.ShiftID(engine.NewDate(2026, time.January, day).String()),
			Date:  engine.NewDate(2026, time.January, day),
			JobID: "cafe",
			Hours: engine.MustAmount(4),
		}))
	}

	shifts, err := st.ShiftsInRange(ctx,
		engine.NewDate(2026, time.January, 3), engine.NewDate(2026, time.January, 6))
	require.NoError(t, err)
	assert.Len(t, shifts, 4)
}

func TestSQLite_DeleteShift_NotFound(t *testing.T) {
	st := newTestStore(t)

	err := st.DeleteShift(context.Background(), "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestSQLite_JobRoundTrip_WithRateHistory(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	job := engine.JobConfig{
		ID:                  "cafe",
		Name:                "Cafe",
		DefaultWeekdayHours: engine.MustAmount(7.5),
		DefaultWeekendHours: engine.MustAmount(5),
		Rates: engine.RateSet{
			Weekday:  engine.MustAmount(25.50),
			Saturday: engine.MustAmount(35),
			Sunday:   engine.MustAmount(45),
			Holiday:  engine.MustAmount(55),
		},
		RateHistory: []engine.RateChange{
			{
				EffectiveFrom: engine.NewDate(2025, time.July, 1),
				Rates:         engine.RateSet{Weekday: engine.MustAmount(24)},
			},
		},
		DefaultBreakMinutes: 30,
	}
	require.NoError(t, st.SaveJob(ctx, job))

	jobs, err := st.Jobs(ctx)
	require.NoError(t, err)
	require.Contains(t, jobs, engine.JobID("cafe"))

	got := jobs[engine.JobID("cafe")]
	assert.Equal(t, "Cafe", got.Name)
	assert.True(t, got.Rates.Weekday.Equal(engine.MustAmount(25.50)), "weekday rate = %s", got.Rates.Weekday)
	assert.True(t, got.DefaultWeekdayHours.Equal(engine.MustAmount(7.5)))
	assert.Equal(t, 30, got.DefaultBreakMinutes)
	require.Len(t, got.RateHistory, 1)
	assert.True(t, got.RateHistory[0].EffectiveFrom.Equal(engine.NewDate(2025, time.July, 1)))
	assert.True(t, got.RateHistory[0].Rates.Weekday.Equal(engine.MustAmount(24)))
}

func TestSQLite_HolidayDuplicateIgnored(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	d := engine.NewDate(2026, time.March, 9)
	require.NoError(t, st.SaveHoliday(ctx, d))
	require.NoError(t, st.SaveHoliday(ctx, d))

	holidays, err := st.Holidays(ctx)
	require.NoError(t, err)
	assert.Len(t, holidays, 1)
}

func TestSQLite_Vacations(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	require.NoError(t, st.SaveVacation(ctx, engine.VacationPeriod{
		Start: engine.NewDate(2026, time.June, 20),
		End:   engine.NewDate(2026, time.July, 20),
	}))

	vacations, err := st.Vacations(ctx)
	require.NoError(t, err)
	require.Len(t, vacations, 1)
	assert.True(t, vacations[0].End.Equal(engine.NewDate(2026, time.July, 20)))
}

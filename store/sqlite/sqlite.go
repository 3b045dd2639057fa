/*
Package sqlite provides a SQLite-backed implementation of store.Store.

PURPOSE:
  Persists the engine's input snapshot (shifts, jobs, holidays, vacations)
  for the server binary. In production the same patterns apply to
  PostgreSQL - only minor SQL dialect differences.

DERIVED DATA:
  No computed value is ever written here. Pay, fortnight summaries, and
  fiscal-year figures are recomputed from these tables on every query.

KEY TABLES:
  shifts:    One row per logged work period
  jobs:      Job configs; rates and rate history stored as JSON so the
             rate schema can evolve without migrations
  holidays:  Custom holiday dates
  vacations: Cap-exemption date ranges

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging) for better concurrency:
  multiple readers don't block, single writer at a time.

USAGE:
  st, err := sqlite.New("./data/shiftpay.db")
  if err != nil {
      log.Fatal(err)
  }
  defer st.Close()

SEE ALSO:
  - store/store.go: Interface definition
  - store/memory.go: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/warp/shiftpay-engine/engine"
	"github.com/warp/shiftpay-engine/store"
)

// Store implements store.Store using SQLite.
type Store struct {
	db *sql.DB
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS shifts (
		id TEXT PRIMARY KEY,
		date TEXT NOT NULL,
		job_id TEXT NOT NULL,
		hours TEXT NOT NULL,
		break_minutes INTEGER
	);

	CREATE INDEX IF NOT EXISTS idx_shifts_date ON shifts(date);
	CREATE INDEX IF NOT EXISTS idx_shifts_job ON shifts(job_id);

	CREATE TABLE IF NOT EXISTS jobs (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		config_json TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS holidays (
		date TEXT PRIMARY KEY
	);

	CREATE TABLE IF NOT EXISTS vacations (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		start_date TEXT NOT NULL,
		end_date TEXT NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// SHIFTS
// =============================================================================

func (s *Store) SaveShift(ctx context.Context, sh engine.Shift) error {
	if err := sh.Validate(); err != nil {
		return err
	}
	var breakMinutes sql.NullInt64
	if sh.BreakMinutes != nil {
		breakMinutes = sql.NullInt64{Int64: int64(*sh.BreakMinutes), Valid: true}
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO shifts (id, date, job_id, hours, break_minutes)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			date = excluded.date,
			job_id = excluded.job_id,
			hours = excluded.hours,
			break_minutes = excluded.break_minutes`,
		string(sh.ID), sh.Date.String(), string(sh.JobID), sh.Hours.String(), breakMinutes)
	return err
}

func (s *Store) DeleteShift(ctx context.Context, id engine.ShiftID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM shifts WHERE id = ?`, string(id))
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) Shifts(ctx context.Context) ([]engine.Shift, error) {
	return s.queryShifts(ctx, `SELECT id, date, job_id, hours, break_minutes FROM shifts ORDER BY date, id`)
}

func (s *Store) ShiftsInRange(ctx context.Context, from, to engine.Date) ([]engine.Shift, error) {
	return s.queryShifts(ctx, `SELECT id, date, job_id, hours, break_minutes FROM shifts
		WHERE date >= ? AND date <= ? ORDER BY date, id`, from.String(), to.String())
}

func (s *Store) queryShifts(ctx context.Context, query string, args ...any) ([]engine.Shift, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var shifts []engine.Shift
	for rows.Next() {
		var (
			id, date, jobID, hours string
			breakMinutes           sql.NullInt64
		)
		if err := rows.Scan(&id, &date, &jobID, &hours, &breakMinutes); err != nil {
			return nil, err
		}
		sh := engine.Shift{ID: engine.ShiftID(id), JobID: engine.JobID(jobID)}
		// Malformed dates load as the zero Date; the engine classifies
		// them as plain weekdays so pay stays computable.
		sh.Date, _ = engine.ParseDate(date)
		if sh.Hours, err = decimal.NewFromString(hours); err != nil {
			return nil, fmt.Errorf("shift %s: bad hours %q: %w", id, hours, err)
		}
		if breakMinutes.Valid {
			m := int(breakMinutes.Int64)
			sh.BreakMinutes = &m
		}
		shifts = append(shifts, sh)
	}
	return shifts, rows.Err()
}

// =============================================================================
// JOBS
// =============================================================================

// jobJSON is the persisted job configuration.
type jobJSON struct {
	DefaultWeekdayHours string           `json:"default_weekday_hours"`
	DefaultWeekendHours string           `json:"default_weekend_hours"`
	Rates               rateSetJSON      `json:"rates"`
	RateHistory         []rateChangeJSON `json:"rate_history,omitempty"`
	DefaultBreakMinutes int              `json:"default_break_minutes,omitempty"`
}

type rateSetJSON struct {
	Weekday  string `json:"weekday"`
	Saturday string `json:"saturday"`
	Sunday   string `json:"sunday"`
	Holiday  string `json:"holiday"`
}

type rateChangeJSON struct {
	EffectiveFrom string      `json:"effective_from"`
	Rates         rateSetJSON `json:"rates"`
}

func (s *Store) SaveJob(ctx context.Context, j engine.JobConfig) error {
	if err := j.Validate(); err != nil {
		return err
	}
	record := jobJSON{
		DefaultWeekdayHours: j.DefaultWeekdayHours.String(),
		DefaultWeekendHours: j.DefaultWeekendHours.String(),
		Rates:               toRateSetJSON(j.Rates),
		DefaultBreakMinutes: j.DefaultBreakMinutes,
	}
	for _, change := range j.RateHistory {
		record.RateHistory = append(record.RateHistory, rateChangeJSON{
			EffectiveFrom: change.EffectiveFrom.String(),
			Rates:         toRateSetJSON(change.Rates),
		})
	}
	data, err := json.Marshal(record)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO jobs (id, name, config_json) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name, config_json = excluded.config_json`,
		string(j.ID), j.Name, string(data))
	return err
}

func (s *Store) Jobs(ctx context.Context) (map[engine.JobID]engine.JobConfig, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, config_json FROM jobs`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	jobs := make(map[engine.JobID]engine.JobConfig)
	for rows.Next() {
		var id, name, configJSON string
		if err := rows.Scan(&id, &name, &configJSON); err != nil {
			return nil, err
		}
		var record jobJSON
		if err := json.Unmarshal([]byte(configJSON), &record); err != nil {
			return nil, fmt.Errorf("job %s: bad config: %w", id, err)
		}
		job := engine.JobConfig{
			ID:                  engine.JobID(id),
			Name:                name,
			DefaultBreakMinutes: record.DefaultBreakMinutes,
		}
		if job.DefaultWeekdayHours, err = parseDecimal(record.DefaultWeekdayHours); err != nil {
			return nil, fmt.Errorf("job %s: %w", id, err)
		}
		if job.DefaultWeekendHours, err = parseDecimal(record.DefaultWeekendHours); err != nil {
			return nil, fmt.Errorf("job %s: %w", id, err)
		}
		if job.Rates, err = fromRateSetJSON(record.Rates); err != nil {
			return nil, fmt.Errorf("job %s: %w", id, err)
		}
		for _, change := range record.RateHistory {
			effective, ok := engine.ParseDate(change.EffectiveFrom)
			if !ok {
				return nil, fmt.Errorf("job %s: bad effective date %q", id, change.EffectiveFrom)
			}
			rates, err := fromRateSetJSON(change.Rates)
			if err != nil {
				return nil, fmt.Errorf("job %s: %w", id, err)
			}
			job.RateHistory = append(job.RateHistory, engine.RateChange{EffectiveFrom: effective, Rates: rates})
		}
		jobs[job.ID] = job
	}
	return jobs, rows.Err()
}

func toRateSetJSON(r engine.RateSet) rateSetJSON {
	return rateSetJSON{
		Weekday:  r.Weekday.String(),
		Saturday: r.Saturday.String(),
		Sunday:   r.Sunday.String(),
		Holiday:  r.Holiday.String(),
	}
}

func fromRateSetJSON(r rateSetJSON) (engine.RateSet, error) {
	var (
		rs  engine.RateSet
		err error
	)
	if rs.Weekday, err = parseDecimal(r.Weekday); err != nil {
		return engine.RateSet{}, err
	}
	if rs.Saturday, err = parseDecimal(r.Saturday); err != nil {
		return engine.RateSet{}, err
	}
	if rs.Sunday, err = parseDecimal(r.Sunday); err != nil {
		return engine.RateSet{}, err
	}
	if rs.Holiday, err = parseDecimal(r.Holiday); err != nil {
		return engine.RateSet{}, err
	}
	return rs, nil
}

func parseDecimal(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}

// =============================================================================
// HOLIDAYS
// =============================================================================

func (s *Store) SaveHoliday(ctx context.Context, d engine.Date) error {
	_, err := s.db.ExecContext(ctx, `INSERT OR IGNORE INTO holidays (date) VALUES (?)`, d.String())
	return err
}

func (s *Store) DeleteHoliday(ctx context.Context, d engine.Date) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM holidays WHERE date = ?`, d.String())
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) Holidays(ctx context.Context) ([]engine.Date, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT date FROM holidays ORDER BY date`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var holidays []engine.Date
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		if d, ok := engine.ParseDate(raw); ok {
			holidays = append(holidays, d)
		}
	}
	return holidays, rows.Err()
}

// =============================================================================
// VACATIONS
// =============================================================================

func (s *Store) SaveVacation(ctx context.Context, v engine.VacationPeriod) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO vacations (start_date, end_date) VALUES (?, ?)`,
		v.Start.String(), v.End.String())
	return err
}

func (s *Store) Vacations(ctx context.Context) ([]engine.VacationPeriod, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT start_date, end_date FROM vacations ORDER BY start_date`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vacations []engine.VacationPeriod
	for rows.Next() {
		var start, end string
		if err := rows.Scan(&start, &end); err != nil {
			return nil, err
		}
		var v engine.VacationPeriod
		var ok bool
		if v.Start, ok = engine.ParseDate(start); !ok {
			continue
		}
		if v.End, ok = engine.ParseDate(end); !ok {
			continue
		}
		vacations = append(vacations, v)
	}
	return vacations, rows.Err()
}

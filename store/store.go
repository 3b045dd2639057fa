/*
Package store persists the engine's input snapshot: shifts, job configs,
custom holidays, and vacation periods.

PURPOSE:
  The calculation engine is pure and owns no storage. This package is the
  external collaborator that supplies its inputs. Only raw inputs are
  persisted - computed pay, fortnight summaries, and fiscal-year figures
  are derived values, recomputed on every query, so they can never go
  stale against the data they were derived from.

IMPLEMENTATIONS:
  Memory:        In-memory, for tests and development
  sqlite.Store:  SQLite-backed, for the server binary

SEE ALSO:
  - sqlite/sqlite.go: SQLite implementation
  - api/handlers.go: Loads snapshots from here per request
*/
package store

import (
	"context"
	"errors"

	"github.com/warp/shiftpay-engine/engine"
)

// ErrNotFound is returned when deleting or fetching a missing record.
var ErrNotFound = errors.New("record not found")

// Store persists engine inputs. All reads return copies; callers may
// mutate results freely.
type Store interface {
	// Shifts
	SaveShift(ctx context.Context, s engine.Shift) error
	DeleteShift(ctx context.Context, id engine.ShiftID) error
	Shifts(ctx context.Context) ([]engine.Shift, error)
	ShiftsInRange(ctx context.Context, from, to engine.Date) ([]engine.Shift, error)

	// Jobs
	SaveJob(ctx context.Context, j engine.JobConfig) error
	Jobs(ctx context.Context) (map[engine.JobID]engine.JobConfig, error)

	// Custom holidays
	SaveHoliday(ctx context.Context, d engine.Date) error
	DeleteHoliday(ctx context.Context, d engine.Date) error
	Holidays(ctx context.Context) ([]engine.Date, error)

	// Vacation periods
	SaveVacation(ctx context.Context, v engine.VacationPeriod) error
	Vacations(ctx context.Context) ([]engine.VacationPeriod, error)

	Close() error
}

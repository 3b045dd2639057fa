/*
errors.go - Centralized error types for the engine

PURPOSE:
  All engine error types in one place. The engine's error philosophy is
  deliberately lopsided: data-quality problems (unknown job, malformed
  date) degrade to best-effort numeric results and are surfaced upstream
  at input validation, while genuine misconfiguration (non-finite numbers,
  negative rates) is rejected at the boundary so it cannot silently
  corrupt pay figures.

USAGE:
  if errors.Is(err, engine.ErrNonFiniteAmount) { ... }
*/
package engine

import "errors"

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrNonFiniteAmount is returned when a NaN or infinite value reaches
	// an amount constructor. The engine rejects these instead of coercing
	// to zero so upstream input bugs surface.
	ErrNonFiniteAmount = errors.New("non-finite amount")

	// ErrNegativeHours is returned when a shift carries negative hours or
	// a negative break override.
	ErrNegativeHours = errors.New("negative hours")

	// ErrNegativeRate is returned when a job config carries a negative rate.
	ErrNegativeRate = errors.New("negative hourly rate")

	// ErrDuplicateRateChange is returned when a rate history contains two
	// entries with the same effective date.
	ErrDuplicateRateChange = errors.New("duplicate rate change for effective date")
)

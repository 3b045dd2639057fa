package tax

import "errors"

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidBrackets is returned when a bracket table fails its
	// integrity checks (ordering, contiguity, base-tax continuity).
	// Always fatal at load time: a broken table corrupts every estimate.
	ErrInvalidBrackets = errors.New("invalid bracket table")

	// ErrInvalidConfig is returned for out-of-range levy, super, or
	// fiscal-year settings.
	ErrInvalidConfig = errors.New("invalid tax configuration")

	// ErrUnknownPeriod is returned for an unrecognized pay period name.
	ErrUnknownPeriod = errors.New("unknown pay period")
)

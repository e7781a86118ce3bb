package domain

import "errors"

// Domain errors represent error conditions in the skyview domain.
// These errors are returned by the public API and can be checked with errors.Is.
var (
	// ErrParseCoordinate is returned when numeric-looking input fails
	// coordinate parsing or range validation.
	ErrParseCoordinate = errors.New("skyview: malformed coordinate")

	// ErrNameNotResolved is returned when the name-resolution backend
	// reports no match or errors after retries.
	ErrNameNotResolved = errors.New("skyview: name not resolved")

	// ErrUnknownSurvey is returned when a requested survey ID is not in
	// the catalog.
	ErrUnknownSurvey = errors.New("skyview: unknown survey")

	// ErrNetwork marks transient transport failures against a survey or
	// resolver backend.
	ErrNetwork = errors.New("skyview: network error")

	// ErrBlankImage marks a cutout classified as blank; it drives fallback
	// progression and is recorded on per-target results.
	ErrBlankImage = errors.New("skyview: blank image")

	// ErrExhausted is returned when every candidate survey was tried
	// without a usable image.
	ErrExhausted = errors.New("skyview: all surveys exhausted")

	// ErrInvalidConfig is returned when configuration validation fails.
	ErrInvalidConfig = errors.New("skyview: invalid configuration")
)

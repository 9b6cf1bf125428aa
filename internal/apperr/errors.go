// Package apperr defines the error kinds shared across the service. Handlers
// map these to HTTP statuses; everything else wraps them with context via
// fmt.Errorf and %w.
package apperr

import "errors"

var (
	// ErrValidation covers missing or unparsable user input.
	ErrValidation = errors.New("invalid input")

	// ErrInvalidSchedule means a frequency/repeat combination cannot form a
	// valid date interval.
	ErrInvalidSchedule = errors.New("invalid schedule interval")

	ErrDuplicateUsername = errors.New("username already exists")
	ErrAuthentication    = errors.New("invalid username or password")
	ErrNotFound          = errors.New("not found")
)

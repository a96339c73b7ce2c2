package core

import (
	"errors"
	"fmt"
)

// Sentinel errors for the failure classes callers branch on. Services
// wrap these with context via fmt.Errorf("...: %w", ...), so callers
// must test with errors.Is.
var (
	// ErrNotFound means a referenced client or product does not exist
	// (or is archived) at operation time. No partial writes occur.
	ErrNotFound = errors.New("not found")

	// ErrValidation means the input failed a precondition check. It is
	// always raised before any persistence call.
	ErrValidation = errors.New("validation failed")

	// ErrInconsistentState means a financial write may have been
	// partially applied. With pgx transactions in place this should not
	// occur; it exists so the audit routine and any non-transactional
	// path can report drift distinctly from a generic failure.
	ErrInconsistentState = errors.New("inconsistent state")
)

// NotFoundf wraps ErrNotFound with a formatted message.
func NotFoundf(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrNotFound)
}

// Validationf wraps ErrValidation with a formatted message.
func Validationf(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrValidation)
}

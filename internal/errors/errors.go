package apperrors

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Application exit codes signal the outcome of a run to the OS.
const (
	ExitSuccess       = 0   // Successful execution.
	ExitErrorGeneric  = 1   // Generic failure.
	ExitErrorTimeout  = 2   // The computation exceeded its time budget.
	ExitErrorMismatch = 3   // Backends disagreed on a result.
	ExitErrorConfig   = 4   // Invalid flags or environment configuration.
	ExitErrorCanceled = 130 // The run was interrupted (e.g. SIGINT).
)

// ConfigError reports a user configuration problem such as an invalid
// flag or environment value. The application cannot proceed until the
// input is corrected.
type ConfigError struct {
	// Message explains the specific configuration error.
	Message string
}

// Error returns the error message for a ConfigError.
func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a ConfigError with a formatted message.
//
// Parameters:
//   - format: A format string (see fmt.Sprintf).
//   - a: Arguments to be formatted into the string.
//
// Returns:
//   - error: A new ConfigError instance containing the formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// ComputationError wraps a failure inside a numeric computation while
// preserving the original cause for inspection with errors.Is and
// errors.As.
type ComputationError struct {
	// Cause is the underlying error that triggered this failure.
	Cause error
}

// Error returns the message of the underlying cause.
func (e ComputationError) Error() string { return e.Cause.Error() }

// Unwrap returns the wrapped cause.
func (e ComputationError) Unwrap() error { return e.Cause }

// MismatchError reports that two backends computing the same operation
// produced different results. This is always a bug in one of the
// implementations and is surfaced rather than silently resolved.
type MismatchError struct {
	// Operation names the computation the backends disagreed on.
	Operation string
	// Backends lists the disagreeing implementations.
	Backends []string
}

// Error returns a formatted message describing the disagreement.
func (e MismatchError) Error() string {
	return fmt.Sprintf("result mismatch for %q between backends %v", e.Operation, e.Backends)
}

// TimeoutError reports that a computation exceeded its time budget. It
// carries the operation name and the limit that was exceeded.
type TimeoutError struct {
	// Operation is the name of the operation that timed out.
	Operation string
	// Limit is the duration after which the operation was abandoned.
	Limit time.Duration
}

// Error returns a formatted message describing the timeout.
func (e TimeoutError) Error() string {
	return fmt.Sprintf("operation %q timed out after %s", e.Operation, e.Limit)
}

// ValidationError reports an input validation failure, identifying the
// offending field and the reason it was rejected.
type ValidationError struct {
	// Field is the name of the field that failed validation.
	Field string
	// Message explains the validation failure.
	Message string
}

// Error returns a formatted message describing the validation failure.
func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error for %q: %s", e.Field, e.Message)
}

// MemoryError reports that a computation was refused because its
// estimated footprint exceeds the configured memory budget.
type MemoryError struct {
	// Requested is the number of bytes the operation needed.
	Requested uint64
	// Available is the number of bytes currently available.
	Available uint64
	// Limit is the configured memory limit in bytes.
	Limit uint64
}

// Error returns a formatted message describing the memory condition.
func (e MemoryError) Error() string {
	return fmt.Sprintf("memory error: requested %d bytes, available %d bytes (limit: %d)", e.Requested, e.Available, e.Limit)
}

// WrapError wraps an error with additional context using fmt.Errorf
// and %w, so the result remains inspectable with errors.Is/errors.As.
//
// Parameters:
//   - err: The error to wrap. A nil err yields nil.
//   - format: A format string for the context message.
//   - args: Arguments for the format string.
//
// Returns:
//   - error: The wrapped error, or nil if err is nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// IsContextError reports whether err stems from context cancellation
// or an exceeded deadline.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

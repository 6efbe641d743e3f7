// Package apperrors defines structured application error types,
// distinguishing error classes (configuration, computation, backend
// mismatch, timeout) and carrying the underlying cause where one
// exists.
//
// Error Wrapping Guidelines:
// This package follows Go's error wrapping conventions using fmt.Errorf with %w.
// Wrapping error types implement Unwrap() to support errors.Is() and errors.As().
package apperrors

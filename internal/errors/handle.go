package apperrors

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"
)

// ColorProvider supplies the escape codes used when reporting errors to a
// terminal. Implementations live in the presentation layers; a nil provider
// disables colorization.
type ColorProvider interface {
	// Red returns the escape code for error text.
	Red() string
	// Yellow returns the escape code for warning text.
	Yellow() string
	// Reset returns the escape code that clears formatting.
	Reset() string
}

// noColors is the fallback ColorProvider used when none is supplied.
type noColors struct{}

func (noColors) Red() string    { return "" }
func (noColors) Yellow() string { return "" }
func (noColors) Reset() string  { return "" }

// HandleComputationError reports a computation failure to the user and maps
// it to the process exit code for that failure class.
//
// Parameters:
//   - err: The error to report. A nil err yields ExitSuccess.
//   - duration: How long the computation ran before failing.
//   - out: The writer for the error report.
//   - colors: The escape-code provider, or nil for uncolored output.
//
// Returns:
//   - int: The exit code corresponding to the failure class.
func HandleComputationError(err error, duration time.Duration, out io.Writer, colors ColorProvider) int {
	if err == nil {
		return ExitSuccess
	}
	if colors == nil {
		colors = noColors{}
	}

	var (
		configErr   ConfigError
		mismatchErr MismatchError
		memoryErr   MemoryError
		timeoutErr  TimeoutError
	)

	switch {
	case errors.Is(err, context.DeadlineExceeded) || errors.As(err, &timeoutErr):
		fmt.Fprintf(out, "\n%sFATAL: computation timed out after %s: %v%s\n",
			colors.Red(), duration, err, colors.Reset())
		return ExitErrorTimeout

	case errors.Is(err, context.Canceled):
		fmt.Fprintf(out, "\n%sComputation interrupted after %s.%s\n",
			colors.Yellow(), duration, colors.Reset())
		return ExitErrorCanceled

	case errors.As(err, &mismatchErr):
		fmt.Fprintf(out, "\n%sFATAL: %v%s\n", colors.Red(), err, colors.Reset())
		return ExitErrorMismatch

	case errors.As(err, &configErr):
		fmt.Fprintf(out, "\n%sConfiguration error: %v%s\n", colors.Red(), err, colors.Reset())
		return ExitErrorConfig

	case errors.As(err, &memoryErr):
		fmt.Fprintf(out, "\n%sFATAL: %v%s\n", colors.Red(), err, colors.Reset())
		return ExitErrorGeneric

	default:
		fmt.Fprintf(out, "\n%sFATAL: computation failed after %s: %v%s\n",
			colors.Red(), duration, err, colors.Reset())
		return ExitErrorGeneric
	}
}

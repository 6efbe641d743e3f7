package cli

import (
	"fmt"
	"io"
	"sync"
	"time"

	apperrors "github.com/agbru/numcore/internal/errors"
	"github.com/agbru/numcore/internal/metrics"
	"github.com/agbru/numcore/internal/orchestration"
	"github.com/agbru/numcore/internal/ui"
)

// CLIColorProvider implements apperrors.ColorProvider using the active theme.
type CLIColorProvider struct{}

// Red returns the escape code for error text.
func (CLIColorProvider) Red() string { return ui.ColorRed() }

// Yellow returns the escape code for warning text.
func (CLIColorProvider) Yellow() string { return ui.ColorYellow() }

// Reset returns the escape code that clears formatting.
func (CLIColorProvider) Reset() string { return ui.ColorReset() }

// CLIProgressReporter implements orchestration.ProgressReporter for CLI output.
// It wraps the DisplayProgress function to provide a spinner and progress bar
// display during computations.
type CLIProgressReporter struct{}

// Verify that CLIProgressReporter implements orchestration.ProgressReporter.
var _ orchestration.ProgressReporter = CLIProgressReporter{}

// DisplayProgress displays a spinner and progress bar for ongoing computations.
func (CLIProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan orchestration.ProgressUpdate, numBackends int, out io.Writer) {
	DisplayProgress(wg, progressChan, numBackends, out)
}

// CLIResultPresenter implements orchestration.ResultPresenter for CLI output.
// It provides formatted, colorized output for computation results in the
// command-line interface.
type CLIResultPresenter struct{}

// Verify interface compliance.
var (
	_ orchestration.ResultPresenter   = CLIResultPresenter{}
	_ orchestration.DurationFormatter = CLIResultPresenter{}
)

// PresentComparisonTable displays the comparison summary table with
// backend names, durations, and status in a formatted tabular layout.
// Uses manual padding to correctly handle ANSI color codes.
func (CLIResultPresenter) PresentComparisonTable(results []orchestration.ComputationResult, out io.Writer) {
	fmt.Fprintf(out, "\n--- Comparison Summary ---\n")

	// Find the maximum backend name width for proper alignment
	maxNameLen := 7     // "Backend" header length
	maxDurationLen := 8 // "Duration" header length
	for _, res := range results {
		if len(res.Name) > maxNameLen {
			maxNameLen = len(res.Name)
		}
		duration := FormatExecutionDuration(res.Duration)
		if res.Duration == 0 {
			duration = "< 1µs"
		}
		if len(duration) > maxDurationLen {
			maxDurationLen = len(duration)
		}
	}

	// Print header with proper padding
	fmt.Fprintf(out, "%sBackend%s%s   %sDuration%s%s   %sStatus%s\n",
		ui.ColorUnderline(), ui.ColorReset(), padRight("", maxNameLen-7),
		ui.ColorUnderline(), ui.ColorReset(), padRight("", maxDurationLen-8),
		ui.ColorUnderline(), ui.ColorReset())

	// Print each result row
	for _, res := range results {
		var status string
		if res.Err != nil {
			status = fmt.Sprintf("%s❌ Failure (%v)%s", ui.ColorRed(), res.Err, ui.ColorReset())
		} else {
			status = fmt.Sprintf("%s✅ Success%s", ui.ColorGreen(), ui.ColorReset())
		}
		duration := FormatExecutionDuration(res.Duration)
		if res.Duration == 0 {
			duration = "< 1µs"
		}
		fmt.Fprintf(out, "%s%s%s%s   %s%s%s%s   %s\n",
			ui.ColorBlue(), res.Name, ui.ColorReset(), padRight("", maxNameLen-len(res.Name)),
			ui.ColorYellow(), duration, ui.ColorReset(), padRight("", maxDurationLen-len(duration)),
			status)
	}
}

// padRight returns a string of spaces with the given length.
func padRight(s string, length int) string {
	if length <= 0 {
		return s
	}
	return s + fmt.Sprintf("%*s", length, "")
}

// PresentResult displays the final computation result using the CLI's
// DisplayResult function.
func (CLIResultPresenter) PresentResult(result orchestration.ComputationResult, label string, verbose, details, showValue bool, out io.Writer) {
	DisplayResult(result.Result, label, result.Duration, verbose, details, showValue, out)
}

// FormatDuration formats a duration for display using the CLI's standard
// duration formatting.
func (CLIResultPresenter) FormatDuration(d time.Duration) string {
	return FormatExecutionDuration(d)
}

// HandleError handles computation errors and returns an appropriate exit code.
func (CLIResultPresenter) HandleError(err error, duration time.Duration, out io.Writer) int {
	return apperrors.HandleComputationError(err, duration, out, CLIColorProvider{})
}

// DisplayMemoryStats shows memory statistics after a computation.
func DisplayMemoryStats(heapAlloc, totalAlloc uint64, numGC uint32, pauseTotalNs uint64, out io.Writer) {
	fmt.Fprintf(out, "\nMemory Stats:\n")
	fmt.Fprintf(out, "  Peak heap:       %s\n", metrics.FormatBytes(heapAlloc))
	fmt.Fprintf(out, "  Total allocated: %s\n", metrics.FormatBytes(totalAlloc))
	fmt.Fprintf(out, "  GC cycles:       %d\n", numGC)
	if pauseTotalNs > 0 {
		fmt.Fprintf(out, "  GC pause total:  %.2fms\n", float64(pauseTotalNs)/1e6)
	} else {
		fmt.Fprintf(out, "  GC pause total:  0ms (GC disabled)\n")
	}
}

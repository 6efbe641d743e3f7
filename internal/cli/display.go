package cli

import (
	"fmt"
	"io"
	"math/big"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/numcore/internal/format"
	"github.com/agbru/numcore/internal/orchestration"
	"github.com/agbru/numcore/internal/ui"
)

// DisplayProgress renders a spinner and an aggregated progress bar for the
// duration of a computation. It consumes updates from progressChan until the
// channel is closed and must be started in its own goroutine.
//
// Parameters:
//   - wg: Signaled when the display loop has finished.
//   - progressChan: Channel receiving progress updates from the backends.
//   - numBackends: The number of concurrent backends being tracked.
//   - out: The writer for progress output.
func DisplayProgress(wg *sync.WaitGroup, progressChan <-chan orchestration.ProgressUpdate, numBackends int, out io.Writer) {
	defer wg.Done()

	agg := orchestration.NewProgressAggregator(numBackends)
	if agg == nil {
		orchestration.DrainChannel(progressChan)
		return
	}

	sp := newSpinner(spinner.WithWriter(out))
	sp.Start()
	defer sp.Stop()

	ticker := time.NewTicker(ProgressRefreshRate)
	defer ticker.Stop()

	for {
		select {
		case update, ok := <-progressChan:
			if !ok {
				sp.UpdateSuffix(" " + format.FormatProgressBarWithETA(1.0, 0, ProgressBarWidth))
				return
			}
			ap := agg.Update(update)
			sp.UpdateSuffix(" " + format.FormatProgressBarWithETA(ap.AverageProgress, ap.ETA, ProgressBarWidth))
		case <-ticker.C:
			// Periodic refresh keeps the ETA moving between updates.
			sp.UpdateSuffix(" " + format.FormatProgressBarWithETA(agg.CalculateAverage(), agg.GetETA(), ProgressBarWidth))
		}
	}
}

// DisplayResult prints a computed result with optional detail and value
// sections. The label names the operation, e.g. "100000!".
//
// Parameters:
//   - result: The computed value.
//   - label: The operation description.
//   - duration: The computation duration.
//   - verbose: When true, the full value is printed without truncation.
//   - details: When true, a detailed analysis section is printed.
//   - showValue: When true, the value itself is printed.
//   - out: The writer for the report.
func DisplayResult(result *big.Int, label string, duration time.Duration, verbose, details, showValue bool, out io.Writer) {
	durationStr := FormatExecutionDuration(duration)
	resultStr := result.String()
	numDigits := len(resultStr)
	if result.Sign() < 0 {
		numDigits--
	}

	fmt.Fprintf(out, "\nComputation of %s%s%s completed in %s%s%s.\n",
		ui.ColorMagenta(), label, ui.ColorReset(),
		ui.ColorYellow(), durationStr, ui.ColorReset())

	if details {
		fmt.Fprintf(out, "\n--- Detailed result analysis ---\n")
		fmt.Fprintf(out, "Calculation time:   %s%s%s\n", ui.ColorCyan(), durationStr, ui.ColorReset())
		fmt.Fprintf(out, "Result binary size: %s%d%s bits\n", ui.ColorCyan(), result.BitLen(), ui.ColorReset())
		fmt.Fprintf(out, "Number of digits:   %s%d%s\n", ui.ColorCyan(), numDigits, ui.ColorReset())
	}

	if !showValue {
		return
	}

	fmt.Fprintf(out, "\n%sCalculated value:%s\n", ui.ColorBold(), ui.ColorReset())
	if !verbose && len(resultStr) > TruncationLimit {
		fmt.Fprintf(out, "%s = %s%s...%s%s (truncated)\n",
			label, ui.ColorGreen(),
			resultStr[:DisplayEdges], resultStr[len(resultStr)-DisplayEdges:],
			ui.ColorReset())
		fmt.Fprintf(out, "Tip: use %s-v%s to display the full value.\n", ui.ColorYellow(), ui.ColorReset())
		return
	}
	fmt.Fprintf(out, "%s = %s%s%s\n", label, ui.ColorGreen(), format.FormatNumberString(resultStr), ui.ColorReset())
}

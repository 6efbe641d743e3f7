package calibration

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/agbru/numcore/internal/config"
	"github.com/agbru/numcore/internal/format"
	"github.com/agbru/numcore/internal/ui"
)

// printCalibrationResults formats and prints one calibration sweep as a table.
// unit labels the threshold column ("words" for parallelism, "bits" for FFT).
func printCalibrationResults(out io.Writer, results []calibrationResult, bestThreshold int, unit string) {
	fmt.Fprintf(out, "\n--- Calibration Summary ---\n")
	tw := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintf(tw, "  %sThreshold%s    │ %sExecution Time%s\n", ui.ColorUnderline(), ui.ColorReset(), ui.ColorUnderline(), ui.ColorReset())
	fmt.Fprintf(tw, "  %s┼%s\n", strings.Repeat("─", 14), strings.Repeat("─", 25))
	for _, res := range results {
		thresholdLabel := fmt.Sprintf("%d %s", res.Threshold, unit)
		if res.Threshold == 0 {
			thresholdLabel = "Disabled"
		}
		durationStr := fmt.Sprintf("%sN/A%s", ui.ColorRed(), ui.ColorReset())
		if res.Err == nil {
			durationStr = format.FormatExecutionDuration(res.Duration)
			if res.Duration == 0 {
				durationStr = "< 1µs"
			}
		}
		highlight := ""
		if res.Threshold == bestThreshold && res.Err == nil {
			highlight = fmt.Sprintf(" %s(Optimal)%s", ui.ColorGreen(), ui.ColorReset())
		}
		fmt.Fprintf(tw, "  %s%-12s%s │ %s%s%s%s\n", ui.ColorCyan(), thresholdLabel, ui.ColorReset(), ui.ColorYellow(), durationStr, ui.ColorReset(), highlight)
	}
	tw.Flush()
}

// printCalibrationOutput prints the thresholds the configuration ends up with.
func printCalibrationOutput(cfg config.AppConfig, out io.Writer) {
	fmt.Fprintf(out, "%sAuto-calibration%s: parallelism=%s%d%s words, FFT=%s%d%s bits\n",
		ui.ColorGreen(), ui.ColorReset(),
		ui.ColorYellow(), cfg.ParallelThreshold, ui.ColorReset(),
		ui.ColorYellow(), cfg.FFTThreshold, ui.ColorReset())
}

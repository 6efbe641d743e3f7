package cli

import (
	"fmt"
	"io"
	"runtime"

	"github.com/agbru/numcore/internal/backend"
	"github.com/agbru/numcore/internal/config"
	"github.com/agbru/numcore/internal/cpu"
	"github.com/agbru/numcore/internal/orchestration"
	"github.com/agbru/numcore/internal/ui"
)

// PrintExecutionConfig displays the current execution configuration to the user.
// It shows the requested operation, timeout, environment details, and
// optimization thresholds.
//
// Parameters:
//   - cfg: The application configuration.
//   - out: The writer for standard output.
func PrintExecutionConfig(cfg config.AppConfig, out io.Writer) {
	fmt.Fprintf(out, "--- Execution Configuration ---\n")
	fmt.Fprintf(out, "Computing %s%s%s with a timeout of %s%s%s.\n",
		ui.ColorMagenta(), orchestration.OperationLabel(cfg), ui.ColorReset(), ui.ColorYellow(), cfg.Timeout, ui.ColorReset())
	fmt.Fprintf(out, "Environment: %s%d%s logical processors, Go %s%s%s.\n",
		ui.ColorCyan(), runtime.NumCPU(), ui.ColorReset(), ui.ColorCyan(), runtime.Version(), ui.ColorReset())
	fmt.Fprintf(out, "CPU features: %s%s%s.\n",
		ui.ColorCyan(), cpu.DetectFeatures().Summary(), ui.ColorReset())
	fmt.Fprintf(out, "Optimization thresholds: Parallelism=%s%d%s words, FFT=%s%d%s bits.\n",
		ui.ColorCyan(), cfg.ParallelThreshold, ui.ColorReset(), ui.ColorCyan(), cfg.FFTThreshold, ui.ColorReset())
}

// PrintExecutionMode displays the execution mode (single backend vs comparison).
//
// Parameters:
//   - backends: The slice of backends that will be executed.
//   - out: The writer for standard output.
func PrintExecutionMode(backends []backend.Backend, out io.Writer) {
	var modeDesc string
	if len(backends) > 1 {
		modeDesc = "Parallel comparison of all backends"
	} else {
		modeDesc = fmt.Sprintf("Single computation with the %s%s%s backend",
			ui.ColorGreen(), backends[0].Name(), ui.ColorReset())
	}
	fmt.Fprintf(out, "Execution mode: %s.\n", modeDesc)
	fmt.Fprintf(out, "\n--- Starting Execution ---\n")
}

package app

import (
	"context"
	"fmt"
	"io"
	"math"
	"math/rand"
	"os/signal"
	"syscall"
	"time"

	"github.com/agbru/numcore/internal/cli"
	apperrors "github.com/agbru/numcore/internal/errors"
	"github.com/agbru/numcore/internal/fft"
	"github.com/agbru/numcore/internal/ui"
)

// maxConvolveLog2N caps the benchmark size; 2^26 points already needs
// about 2 GB of float64 buffers.
const maxConvolveLog2N = 26

// runConvolve benchmarks the real convolution path on pseudo-random
// vectors of length 2^Log2N and cross-checks sampled output points
// against the direct formula.
func (a *Application) runConvolve(ctx context.Context, out io.Writer) int {
	log2n := a.Config.Log2N
	if log2n > maxConvolveLog2N {
		fmt.Fprintf(a.ErrWriter, "Error: log2n %d exceeds the maximum %d\n", log2n, maxConvolveLog2N)
		return apperrors.ExitErrorConfig
	}
	n := 1 << log2n

	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	// Fixed seed keeps runs comparable across machines.
	rng := rand.New(rand.NewSource(1))
	input := make([]float64, n)
	kernel := make([]float64, n)
	for i := 0; i < n; i++ {
		input[i] = rng.Float64()*2 - 1
		kernel[i] = rng.Float64()*2 - 1
	}
	dst := make([]float64, n)
	scratch := fft.AcquireScratch(2 * n)
	defer fft.ReleaseScratch(scratch)

	if !a.Config.Quiet {
		fmt.Fprintf(out, "Convolving two length-%s%d%s vectors (2^%d points)...\n",
			ui.ColorMagenta(), n, ui.ColorReset(), log2n)
	}

	start := time.Now()
	fft.Conv(dst, input, kernel, scratch, log2n)
	elapsed := time.Since(start)

	if err := ctx.Err(); err != nil {
		return apperrors.HandleComputationError(err, elapsed, out, cli.CLIColorProvider{})
	}

	maxErr := sampleConvolutionError(dst, input, kernel, 8)
	tolerance := 1e-9 * float64(n)
	if maxErr > tolerance {
		fmt.Fprintf(a.ErrWriter, "Error: convolution check failed, max sampled error %.3e exceeds %.3e\n",
			maxErr, tolerance)
		return apperrors.ExitErrorMismatch
	}

	if a.Config.Quiet {
		fmt.Fprintf(out, "%d %s\n", n, elapsed)
		return apperrors.ExitSuccess
	}

	throughput := float64(n) / elapsed.Seconds() / 1e6
	fmt.Fprintf(out, "Convolution of %s%d%s points completed in %s%s%s (%.1f Mpoints/s).\n",
		ui.ColorCyan(), n, ui.ColorReset(),
		ui.ColorYellow(), elapsed.Round(time.Microsecond), ui.ColorReset(),
		throughput)
	fmt.Fprintf(out, "Max sampled error versus the direct formula: %s%.3e%s.\n",
		ui.ColorCyan(), maxErr, ui.ColorReset())
	return apperrors.ExitSuccess
}

// sampleConvolutionError recomputes `samples` evenly spaced output
// points directly and returns the largest absolute difference.
func sampleConvolutionError(dst, input, kernel []float64, samples int) float64 {
	n := len(dst)
	if samples > n {
		samples = n
	}
	step := n / samples
	if step == 0 {
		step = 1
	}
	var maxErr float64
	for i := 0; i < n; i += step {
		var direct float64
		for j := 0; j < n; j++ {
			direct += kernel[j] * input[(i-j+n)%n]
		}
		if diff := math.Abs(dst[i] - direct); diff > maxErr {
			maxErr = diff
		}
	}
	return maxErr
}

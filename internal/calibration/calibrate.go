// Package calibration benchmarks the multiplication thresholds on the
// current machine and caches the winners in a per-user profile, so that
// later runs start with measured values instead of estimates.
package calibration

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/agbru/numcore/internal/backend"
	"github.com/agbru/numcore/internal/config"
	apperrors "github.com/agbru/numcore/internal/errors"
	"github.com/agbru/numcore/internal/ui"
)

const (
	// calibrationN is the factorial operand used by the full -calibrate
	// sweep. Large enough to cross both threshold regimes.
	calibrationN uint64 = 200_000

	// quickCalibrationN keeps startup auto-calibration under a second
	// on typical hardware.
	quickCalibrationN uint64 = 50_000

	// profileMaxAge bounds how long a cached profile is trusted.
	profileMaxAge = 30 * 24 * time.Hour
)

// calibrationResult records one benchmarked candidate.
type calibrationResult struct {
	Threshold int
	Duration  time.Duration
	Err       error
}

// benchmarkThreshold times a single factorial run with the given options.
func benchmarkThreshold(ctx context.Context, bk backend.Backend, n uint64, opts backend.Options) (time.Duration, error) {
	start := time.Now()
	_, err := bk.Factorial(ctx, backend.NopProgress, n, opts)
	return time.Since(start), err
}

// sweep benchmarks every candidate produced by mkOpts and returns the
// results together with the fastest threshold. The first context error
// aborts the sweep.
func sweep(ctx context.Context, bk backend.Backend, n uint64, candidates []int, mkOpts func(threshold int) backend.Options) ([]calibrationResult, int, error) {
	results := make([]calibrationResult, 0, len(candidates))
	best := candidates[0]
	var bestDuration time.Duration
	for _, threshold := range candidates {
		d, err := benchmarkThreshold(ctx, bk, n, mkOpts(threshold))
		if apperrors.IsContextError(err) {
			return results, best, err
		}
		results = append(results, calibrationResult{Threshold: threshold, Duration: d, Err: err})
		if err == nil && (bestDuration == 0 || d < bestDuration) {
			best, bestDuration = threshold, d
		}
	}
	return results, best, nil
}

// pickBackend selects the backend to calibrate against, preferring the
// native engine since its thresholds are the ones being tuned.
func pickBackend(backends []backend.Backend) backend.Backend {
	for _, bk := range backends {
		if bk.Name() == "native" {
			return bk
		}
	}
	return backends[0]
}

// RunCalibration performs the full threshold sweep, prints the result
// tables and saves the profile. It returns a process exit code.
func RunCalibration(ctx context.Context, out io.Writer, backends []backend.Backend, profilePath string) int {
	if len(backends) == 0 {
		fmt.Fprintf(out, "%sError:%s no backend available for calibration\n", ui.ColorRed(), ui.ColorReset())
		return apperrors.ExitErrorConfig
	}
	bk := pickBackend(backends)
	baseFFT := config.EstimateOptimalFFTThreshold()

	fmt.Fprintf(out, "%sCalibrating%s thresholds with %s (n = %d), this may take a while...\n",
		ui.ColorBold(), ui.ColorReset(), bk.Name(), calibrationN)

	parallelResults, bestParallel, err := sweep(ctx, bk, calibrationN, GenerateParallelThresholds(), func(t int) backend.Options {
		return backend.Options{ParallelThreshold: t, FFTThreshold: baseFFT}
	})
	printCalibrationResults(out, parallelResults, bestParallel, "words")
	if err != nil {
		return apperrors.HandleComputationError(err, 0, out, nil)
	}

	fftResults, bestFFT, err := sweep(ctx, bk, calibrationN, GenerateFFTThresholds(), func(t int) backend.Options {
		return backend.Options{ParallelThreshold: bestParallel, FFTThreshold: t}
	})
	printCalibrationResults(out, fftResults, bestFFT, "bits")
	if err != nil {
		return apperrors.HandleComputationError(err, 0, out, nil)
	}

	profile := NewProfile()
	profile.OptimalParallelThreshold = bestParallel
	profile.OptimalFFTThreshold = bestFFT
	profile.CalibrationN = calibrationN

	if profilePath == "" {
		profilePath = GetDefaultProfilePath()
	}
	if err := profile.SaveProfile(profilePath); err != nil {
		fmt.Fprintf(out, "%sWarning:%s could not save calibration profile: %v\n", ui.ColorYellow(), ui.ColorReset(), err)
	} else {
		fmt.Fprintf(out, "\n%s✓ Calibration profile saved to:%s %s\n", ui.ColorGreen(), ui.ColorReset(), profilePath)
	}
	return apperrors.ExitSuccess
}

// AutoCalibrate resolves thresholds with the minimum work needed: a
// fresh valid profile is applied directly, otherwise a quick sweep runs
// and its winners are cached. The returned bool reports whether cfg was
// changed.
func AutoCalibrate(ctx context.Context, cfg config.AppConfig, out io.Writer, backends []backend.Backend) (config.AppConfig, bool) {
	path := cfg.CalibrationProfile
	if path == "" {
		path = GetDefaultProfilePath()
	}

	if profile, loaded := LoadOrCreateProfile(path); loaded && profile.IsValid() && !profile.IsStale(profileMaxAge) {
		return applyProfile(cfg, profile), true
	}

	if len(backends) == 0 {
		return cfg, false
	}
	bk := pickBackend(backends)
	baseFFT := config.EstimateOptimalFFTThreshold()

	parallelResults, bestParallel, err := sweep(ctx, bk, quickCalibrationN, GenerateQuickParallelThresholds(), func(t int) backend.Options {
		return backend.Options{ParallelThreshold: t, FFTThreshold: baseFFT}
	})
	if err != nil || len(parallelResults) == 0 {
		return cfg, false
	}

	_, bestFFT, err := sweep(ctx, bk, quickCalibrationN, GenerateQuickFFTThresholds(), func(t int) backend.Options {
		return backend.Options{ParallelThreshold: bestParallel, FFTThreshold: t}
	})
	if err != nil {
		return cfg, false
	}

	cfg.ParallelThreshold = bestParallel
	cfg.FFTThreshold = bestFFT

	profile := NewProfile()
	profile.OptimalParallelThreshold = bestParallel
	profile.OptimalFFTThreshold = bestFFT
	profile.CalibrationN = quickCalibrationN
	if err := profile.SaveProfile(path); err == nil {
		printCalibrationOutput(cfg, out)
	}
	return cfg, true
}

// LoadCachedCalibration applies a cached profile to cfg. Thresholds the
// user set explicitly (anything differing from the adaptive estimates
// that ParseFlags fills in) are left alone. The bool reports whether any
// value was taken from the profile.
func LoadCachedCalibration(cfg config.AppConfig, path string) (config.AppConfig, bool) {
	if path == "" {
		path = GetDefaultProfilePath()
	}
	profile, err := loadProfile(path)
	if err != nil || !profile.IsValid() || profile.IsStale(profileMaxAge) {
		return cfg, false
	}
	updated := applyProfile(cfg, profile)
	return updated, updated != cfg
}

// applyProfile overwrites thresholds still at their adaptive defaults.
func applyProfile(cfg config.AppConfig, p *CalibrationProfile) config.AppConfig {
	if p.OptimalParallelThreshold > 0 || p.OptimalFFTThreshold > 0 {
		if cfg.ParallelThreshold == config.EstimateOptimalParallelThreshold() {
			cfg.ParallelThreshold = p.OptimalParallelThreshold
		}
		if cfg.FFTThreshold == config.EstimateOptimalFFTThreshold() {
			cfg.FFTThreshold = p.OptimalFFTThreshold
		}
	}
	return cfg
}

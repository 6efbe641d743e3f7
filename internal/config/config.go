// Package config defines the application configuration and its
// resolution chain: CLI flags take priority over environment
// variables, which take priority over adaptive hardware estimation and
// static defaults.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	apperrors "github.com/agbru/numcore/internal/errors"
)

// EnvPrefix is prepended to every environment variable the application
// reads.
const EnvPrefix = "NUMCORE_"

// Operation names accepted by the --op flag.
const (
	OpFactorial = "factorial"
	OpPower     = "power"
	OpConvolve  = "convolve"
)

// AppConfig holds the resolved configuration for a run.
type AppConfig struct {
	// Operation selects the computation: factorial, power or convolve.
	Operation string

	// N is the factorial operand.
	N uint64
	// Base and Exp are the power operands.
	Base int64
	Exp  uint64
	// Log2N is the convolution transform exponent.
	Log2N uint

	// Backends is a comma-separated list of backend names to run and
	// cross-check, or "all".
	Backends string

	// Timeout bounds the whole computation.
	Timeout time.Duration

	// ParallelThreshold is the operand word count above which
	// backends may split work across goroutines. Zero selects the
	// adaptive estimate.
	ParallelThreshold int
	// FFTThreshold is the operand bit count above which
	// multiplication-heavy operations switch to transform-based
	// algorithms. Zero selects the adaptive estimate.
	FFTThreshold int

	// Calibrate forces a calibration run before computing;
	// AutoCalibrate runs one only when no cached profile exists.
	Calibrate          bool
	AutoCalibrate      bool
	CalibrationProfile string

	// MemoryLimit caps the estimated result size ("512MB", "2GB";
	// empty means no limit).
	MemoryLimit string

	// Output controls.
	Verbose    bool
	Quiet      bool
	Details    bool
	ShowValue  bool
	OutputFile string
	TUI        bool
	// Interactive starts a REPL session instead of a one-shot run.
	Interactive bool

	// Server mode.
	Server     bool
	ServerAddr string

	// Version requests the version banner and exits.
	Version bool
	// Completion names a shell to emit a completion script for.
	Completion string
}

// DefaultConfig returns the static defaults, before environment and
// adaptive overrides.
func DefaultConfig() AppConfig {
	return AppConfig{
		Operation:  OpFactorial,
		N:          100000,
		Base:       2,
		Exp:        100000,
		Log2N:      16,
		Backends:   "all",
		Timeout:    5 * time.Minute,
		ShowValue:  false,
		ServerAddr: ":8080",
	}
}

// ParseFlags parses command line arguments into an AppConfig,
// applying environment overrides for any flag not explicitly set and
// adaptive threshold estimation for thresholds left at zero.
//
// Parameters:
//   - args: The command line arguments, excluding the program name.
//   - output: Destination for flag usage output.
//
// Returns:
//   - AppConfig: The resolved configuration.
//   - error: A ConfigError if parsing or validation fails.
func ParseFlags(args []string, output io.Writer) (AppConfig, error) {
	cfg := DefaultConfig()

	fs := flag.NewFlagSet("numcalc", flag.ContinueOnError)
	fs.SetOutput(output)

	fs.StringVar(&cfg.Operation, "op", cfg.Operation, "operation to run: factorial, power or convolve")
	fs.Uint64Var(&cfg.N, "n", cfg.N, "factorial operand")
	fs.Int64Var(&cfg.Base, "base", cfg.Base, "power base")
	fs.Uint64Var(&cfg.Exp, "exp", cfg.Exp, "power exponent")
	fs.UintVar(&cfg.Log2N, "log2n", cfg.Log2N, "convolution length exponent (length = 2^log2n)")
	fs.StringVar(&cfg.Backends, "backends", cfg.Backends, "comma-separated backends to run and cross-check, or 'all'")
	fs.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "computation time budget")
	fs.IntVar(&cfg.ParallelThreshold, "threshold", cfg.ParallelThreshold, "parallelism threshold in words (0 = adaptive)")
	fs.IntVar(&cfg.FFTThreshold, "fft-threshold", cfg.FFTThreshold, "FFT switchover threshold in bits (0 = adaptive)")
	fs.BoolVar(&cfg.Calibrate, "calibrate", cfg.Calibrate, "run threshold calibration before computing")
	fs.BoolVar(&cfg.AutoCalibrate, "auto-calibrate", cfg.AutoCalibrate, "calibrate only when no cached profile exists")
	fs.StringVar(&cfg.CalibrationProfile, "calibration-profile", cfg.CalibrationProfile, "path of the calibration profile file")
	fs.StringVar(&cfg.MemoryLimit, "memory-limit", cfg.MemoryLimit, "maximum estimated result size (e.g. 512MB)")
	fs.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "enable verbose logging")
	fs.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "shorthand for -verbose")
	fs.BoolVar(&cfg.Quiet, "quiet", cfg.Quiet, "suppress progress output")
	fs.BoolVar(&cfg.Quiet, "q", cfg.Quiet, "shorthand for -quiet")
	fs.BoolVar(&cfg.Details, "details", cfg.Details, "print per-backend timing details")
	fs.BoolVar(&cfg.Details, "d", cfg.Details, "shorthand for -details")
	fs.BoolVar(&cfg.ShowValue, "print", cfg.ShowValue, "print the full decimal result")
	fs.BoolVar(&cfg.ShowValue, "c", cfg.ShowValue, "shorthand for -print")
	fs.StringVar(&cfg.OutputFile, "output", cfg.OutputFile, "write the result to a file instead of stdout")
	fs.StringVar(&cfg.OutputFile, "o", cfg.OutputFile, "shorthand for -output")
	fs.BoolVar(&cfg.TUI, "tui", cfg.TUI, "run the interactive dashboard")
	fs.BoolVar(&cfg.Interactive, "interactive", cfg.Interactive, "start an interactive arithmetic session")
	fs.BoolVar(&cfg.Interactive, "i", cfg.Interactive, "shorthand for -interactive")
	fs.BoolVar(&cfg.Server, "server", cfg.Server, "run the HTTP API server")
	fs.StringVar(&cfg.ServerAddr, "addr", cfg.ServerAddr, "HTTP server listen address")
	fs.BoolVar(&cfg.Version, "version", cfg.Version, "print version information and exit")
	fs.StringVar(&cfg.Completion, "completion", cfg.Completion, "emit a completion script for the given shell and exit")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return cfg, err
		}
		return cfg, apperrors.NewConfigError("flag parsing failed: %v", err)
	}

	applyEnvOverrides(&cfg, fs)
	cfg = ApplyAdaptiveThresholds(cfg)

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks cross-field consistency of the configuration.
func (c AppConfig) Validate() error {
	switch c.Operation {
	case OpFactorial, OpPower, OpConvolve:
	default:
		return apperrors.NewConfigError("unknown operation %q (want factorial, power or convolve)", c.Operation)
	}
	if c.Operation == OpConvolve && c.Log2N < 1 {
		return apperrors.NewConfigError("log2n must be at least 1, got %d", c.Log2N)
	}
	if c.Timeout <= 0 {
		return apperrors.NewConfigError("timeout must be positive, got %s", c.Timeout)
	}
	if c.Quiet && c.Verbose {
		return apperrors.NewConfigError("quiet and verbose are mutually exclusive")
	}
	if _, err := c.BackendList(); err != nil {
		return err
	}
	if c.MemoryLimit != "" {
		if _, err := ParseMemoryLimit(c.MemoryLimit); err != nil {
			return err
		}
	}
	return nil
}

// BackendList expands the Backends field into backend names. "all"
// expands to every compiled-in backend.
func (c AppConfig) BackendList() ([]string, error) {
	if c.Backends == "" || c.Backends == "all" {
		return nil, nil // nil means every registered backend
	}
	parts := strings.Split(c.Backends, ",")
	names := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			return nil, apperrors.NewConfigError("empty backend name in %q", c.Backends)
		}
		names = append(names, p)
	}
	return names, nil
}

// ParseMemoryLimit converts a human-readable size ("512MB", "2GB",
// "1048576") into bytes.
func ParseMemoryLimit(s string) (uint64, error) {
	units := []struct {
		suffix string
		mult   uint64
	}{
		{"GB", 1 << 30},
		{"MB", 1 << 20},
		{"KB", 1 << 10},
		{"B", 1},
	}
	upper := strings.ToUpper(strings.TrimSpace(s))
	for _, u := range units {
		if strings.HasSuffix(upper, u.suffix) {
			var value uint64
			num := strings.TrimSpace(strings.TrimSuffix(upper, u.suffix))
			if _, err := fmt.Sscanf(num, "%d", &value); err != nil {
				return 0, apperrors.NewConfigError("invalid memory limit %q", s)
			}
			return value * u.mult, nil
		}
	}
	var value uint64
	if _, err := fmt.Sscanf(upper, "%d", &value); err != nil {
		return 0, apperrors.NewConfigError("invalid memory limit %q", s)
	}
	return value, nil
}

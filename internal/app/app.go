// Package app wires configuration, backends, calibration and the
// presentation layers into the numcalc entry point.
package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/agbru/numcore/internal/backend"
	"github.com/agbru/numcore/internal/calibration"
	"github.com/agbru/numcore/internal/cli"
	"github.com/agbru/numcore/internal/config"
	apperrors "github.com/agbru/numcore/internal/errors"
	"github.com/agbru/numcore/internal/logging"
	"github.com/agbru/numcore/internal/server"
	"github.com/agbru/numcore/internal/tui"
	"github.com/agbru/numcore/internal/ui"
	"github.com/rs/zerolog"
)

// Application represents one numcalc invocation.
type Application struct {
	Config    config.AppConfig
	ErrWriter io.Writer
}

// New creates an Application by parsing command-line arguments. A valid
// cached calibration profile refines any threshold the user did not set
// explicitly.
func New(args []string, errWriter io.Writer) (*Application, error) {
	var cmdArgs []string
	if len(args) > 0 {
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseFlags(cmdArgs, errWriter)
	if err != nil {
		return nil, err
	}

	if withProfile, loaded := calibration.LoadCachedCalibration(cfg, cfg.CalibrationProfile); loaded {
		cfg = withProfile
	}

	return &Application{Config: cfg, ErrWriter: errWriter}, nil
}

// Run executes the application based on the configured mode and returns
// the process exit code.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.Version {
		PrintVersion(out)
		return apperrors.ExitSuccess
	}
	if a.Config.Completion != "" {
		return a.runCompletion(out)
	}

	a.initLogging()
	ui.InitTheme(false)

	if a.Config.Calibrate {
		return calibration.RunCalibration(ctx, out, backend.All(), a.Config.CalibrationProfile)
	}
	a.Config = a.runAutoCalibrationIfEnabled(ctx, out)

	switch {
	case a.Config.Server:
		return a.runServer(ctx)
	case a.Config.Interactive:
		return a.runREPL(out)
	case a.Config.TUI:
		return a.runTUI(ctx)
	}

	if a.Config.Operation == config.OpConvolve {
		return a.runConvolve(ctx, out)
	}
	return a.runCalculate(ctx, out)
}

// initLogging maps the verbosity flags onto the global zerolog level.
func (a *Application) initLogging() {
	switch {
	case a.Config.Verbose:
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case a.Config.Quiet:
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

// runCompletion generates shell completion scripts.
func (a *Application) runCompletion(out io.Writer) int {
	names := make([]string, 0, len(backend.All()))
	for _, bk := range backend.All() {
		names = append(names, bk.Name())
	}
	if err := cli.GenerateCompletion(out, a.Config.Completion, names); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error generating completion: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	return apperrors.ExitSuccess
}

// runAutoCalibrationIfEnabled runs auto-calibration if enabled.
func (a *Application) runAutoCalibrationIfEnabled(ctx context.Context, out io.Writer) config.AppConfig {
	if a.Config.AutoCalibrate {
		if updated, ok := calibration.AutoCalibrate(ctx, a.Config, out, backend.All()); ok {
			return updated
		}
	}
	return a.Config
}

// selectBackends resolves the configured backend names against the
// registry.
func (a *Application) selectBackends() ([]backend.Backend, error) {
	names, err := a.Config.BackendList()
	if err != nil {
		return nil, err
	}
	return backend.ByNames(names)
}

// runServer starts the HTTP API server and blocks until shutdown.
func (a *Application) runServer(ctx context.Context) int {
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	logger := logging.NewLogger(a.ErrWriter, "server")
	if err := server.New(a.Config, logger).Run(ctx); err != nil {
		fmt.Fprintf(a.ErrWriter, "Server error: %v\n", err)
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

// runREPL starts the interactive arithmetic session.
func (a *Application) runREPL(out io.Writer) int {
	registry := map[string]backend.Backend{}
	for _, bk := range backend.All() {
		registry[bk.Name()] = bk
	}

	defaultBackend := ""
	if names, err := a.Config.BackendList(); err == nil && len(names) > 0 {
		defaultBackend = names[0]
	}

	repl := cli.NewREPL(registry, cli.REPLConfig{
		DefaultBackend:    defaultBackend,
		Timeout:           a.Config.Timeout,
		ParallelThreshold: a.Config.ParallelThreshold,
		FFTThreshold:      a.Config.FFTThreshold,
	})
	repl.SetOutput(out)
	repl.Start()
	return apperrors.ExitSuccess
}

// runTUI launches the interactive TUI dashboard.
func (a *Application) runTUI(ctx context.Context) int {
	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	backendsToRun, err := a.selectBackends()
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	return tui.Run(ctx, backendsToRun, a.Config, Version)
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}

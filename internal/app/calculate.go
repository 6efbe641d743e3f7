package app

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/agbru/numcore/internal/cli"
	"github.com/agbru/numcore/internal/config"
	apperrors "github.com/agbru/numcore/internal/errors"
	"github.com/agbru/numcore/internal/metrics"
	"github.com/agbru/numcore/internal/orchestration"
	"github.com/agbru/numcore/internal/ui"
)

// runCalculate orchestrates a one-shot factorial or power computation
// across the selected backends.
func (a *Application) runCalculate(ctx context.Context, out io.Writer) int {
	if a.Config.MemoryLimit != "" {
		if code := a.validateMemoryBudget(out); code != apperrors.ExitSuccess {
			return code
		}
	}

	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	backendsToRun, err := a.selectBackends()
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
		return apperrors.ExitErrorConfig
	}

	if !a.Config.Quiet {
		cli.PrintExecutionConfig(a.Config, out)
		cli.PrintExecutionMode(backendsToRun, out)
	}

	var progressReporter orchestration.ProgressReporter
	progressOut := out
	if a.Config.Quiet {
		progressOut = io.Discard
		progressReporter = orchestration.NullProgressReporter{}
	} else {
		progressReporter = cli.CLIProgressReporter{}
	}

	results := orchestration.ExecuteComputations(ctx, backendsToRun, a.Config, progressReporter, progressOut)

	outputCfg := cli.OutputConfig{
		OutputFile: a.Config.OutputFile,
		Quiet:      a.Config.Quiet,
		Verbose:    a.Config.Verbose,
		ShowValue:  a.Config.ShowValue,
	}
	return a.analyzeResultsWithOutput(results, outputCfg, out)
}

// estimateResultBits predicts the result size of the configured
// operation.
func (a *Application) estimateResultBits() float64 {
	switch a.Config.Operation {
	case config.OpPower:
		return metrics.EstimatePowerBits(a.Config.Base, a.Config.Exp)
	case config.OpFactorial:
		return metrics.EstimateFactorialBits(a.Config.N)
	default:
		return 0
	}
}

// validateMemoryBudget checks if the estimated memory usage fits within
// the configured limit.
func (a *Application) validateMemoryBudget(out io.Writer) int {
	limit, err := config.ParseMemoryLimit(a.Config.MemoryLimit)
	if err != nil {
		fmt.Fprintf(out, "Invalid -memory-limit: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	est := metrics.EstimateMemory(a.estimateResultBits())
	if est.TotalBytes > limit {
		fmt.Fprintf(out, "Estimated memory %s exceeds limit %s.\n",
			metrics.FormatMemoryEstimate(est), a.Config.MemoryLimit)
		fmt.Fprintf(out, "Raise -memory-limit or reduce the operand.\n")
		return apperrors.ExitErrorConfig
	}
	if !a.Config.Quiet {
		fmt.Fprintf(out, "Memory estimate: %s (limit: %s)\n",
			metrics.FormatMemoryEstimate(est), a.Config.MemoryLimit)
	}
	return apperrors.ExitSuccess
}

func (a *Application) analyzeResultsWithOutput(results []orchestration.ComputationResult, outputCfg cli.OutputConfig, out io.Writer) int {
	label := orchestration.OperationLabel(a.Config)
	bestResult := findBestResult(results)

	// Quiet mode prints a single machine-friendly line.
	if outputCfg.Quiet && bestResult != nil {
		cli.DisplayQuietResult(out, bestResult.Result, label, bestResult.Duration)
		if err := a.saveResultIfNeeded(bestResult, label, outputCfg); err != nil {
			return apperrors.ExitErrorGeneric
		}
		return apperrors.ExitSuccess
	}

	exitCode := orchestration.AnalyzeComparisonResults(results, a.Config, cli.CLIResultPresenter{}, out)

	if bestResult != nil && exitCode == apperrors.ExitSuccess {
		if err := a.saveResultIfNeeded(bestResult, label, outputCfg); err != nil {
			return apperrors.ExitErrorGeneric
		}
		if outputCfg.OutputFile != "" {
			fmt.Fprintf(out, "\n%s✓ Result saved to: %s%s%s\n",
				ui.ColorGreen(), ui.ColorCyan(), outputCfg.OutputFile, ui.ColorReset())
		}
	}

	return exitCode
}

// findBestResult returns the fastest successful result, or nil.
func findBestResult(results []orchestration.ComputationResult) *orchestration.ComputationResult {
	var bestResult *orchestration.ComputationResult
	for i := range results {
		if results[i].Err == nil {
			if bestResult == nil || results[i].Duration < bestResult.Duration {
				bestResult = &results[i]
			}
		}
	}
	return bestResult
}

func (a *Application) saveResultIfNeeded(res *orchestration.ComputationResult, label string, cfg cli.OutputConfig) error {
	if cfg.OutputFile == "" {
		return nil
	}
	if err := cli.WriteResultToFile(res.Result, label, res.Duration, res.Name, cfg); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error saving result: %v\n", err)
		return err
	}
	return nil
}

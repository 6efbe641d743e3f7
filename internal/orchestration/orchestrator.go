package orchestration

import (
	"context"
	"fmt"
	"io"
	"math/big"
	"sort"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"github.com/agbru/numcore/internal/backend"
	"github.com/agbru/numcore/internal/config"
	apperrors "github.com/agbru/numcore/internal/errors"
)

// ProgressBufferMultiplier defines the buffer size multiplier for the progress
// channel. A larger buffer reduces the likelihood of blocking computation
// goroutines when the UI is slow to consume updates.
const ProgressBufferMultiplier = 5

// tracerName identifies this package's spans in trace exports.
const tracerName = "github.com/agbru/numcore/internal/orchestration"

// OperationLabel returns a short human-readable description of the requested
// operation, such as "100000!" or "3^500".
func OperationLabel(cfg config.AppConfig) string {
	switch cfg.Operation {
	case config.OpPower:
		return fmt.Sprintf("%d^%d", cfg.Base, cfg.Exp)
	default:
		return fmt.Sprintf("%d!", cfg.N)
	}
}

// ExecuteComputations orchestrates the concurrent execution of one operation
// across one or more backends.
//
// It manages the lifecycle of computation goroutines, collects their results,
// and coordinates the display of progress updates. This function is the core of
// the application's concurrency model.
//
// Parameters:
//   - ctx: The context for managing cancellation and deadlines.
//   - backends: A slice of backends to execute.
//   - cfg: The application configuration (operation, operands, thresholds).
//   - progressReporter: The progress reporter for displaying updates (use NullProgressReporter for quiet mode).
//   - out: The io.Writer for displaying progress updates.
//
// Returns:
//   - []ComputationResult: A slice containing the result from each backend.
func ExecuteComputations(ctx context.Context, backends []backend.Backend, cfg config.AppConfig, progressReporter ProgressReporter, out io.Writer) []ComputationResult {
	g, ctx := errgroup.WithContext(ctx)
	results := make([]ComputationResult, len(backends))
	progressChan := make(chan ProgressUpdate, len(backends)*ProgressBufferMultiplier)

	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go progressReporter.DisplayProgress(&displayWg, progressChan, len(backends), out)

	tracer := otel.Tracer(tracerName)
	opts := backend.Options{
		ParallelThreshold: cfg.ParallelThreshold,
		FFTThreshold:      cfg.FFTThreshold,
	}

	for i, b := range backends {
		idx, bk := i, b
		g.Go(func() error {
			spanCtx, span := tracer.Start(ctx, "orchestration.compute")
			span.SetAttributes(
				attribute.String("backend", bk.Name()),
				attribute.String("operation", cfg.Operation),
			)
			defer span.End()

			report := func(v float64) {
				select {
				case progressChan <- ProgressUpdate{BackendIndex: idx, Value: v}:
				default:
					// Drop the update rather than stall the computation.
				}
			}

			startTime := time.Now()
			res, err := dispatch(spanCtx, bk, cfg, report, opts)
			if err != nil {
				span.RecordError(err)
			}
			results[idx] = ComputationResult{
				Name: bk.Name(), Result: res, Duration: time.Since(startTime), Err: err,
			}
			return nil
		})
	}

	g.Wait()
	close(progressChan)
	displayWg.Wait()

	return results
}

// dispatch invokes the configured operation on a single backend.
func dispatch(ctx context.Context, bk backend.Backend, cfg config.AppConfig, report backend.ProgressFunc, opts backend.Options) (*big.Int, error) {
	switch cfg.Operation {
	case config.OpPower:
		return bk.Power(ctx, report, cfg.Base, cfg.Exp, opts)
	case config.OpFactorial:
		return bk.Factorial(ctx, report, cfg.N, opts)
	default:
		return nil, apperrors.ValidationError{Field: "operation", Message: fmt.Sprintf("unsupported operation %q", cfg.Operation)}
	}
}

// AnalyzeComparisonResults processes the results from multiple backends and
// generates a summary report.
//
// It sorts the results by execution time, validates consistency across
// successful computations, and displays a comparative table. It handles the
// logic for determining global success or failure based on the individual
// outcomes.
//
// Parameters:
//   - results: The slice of computation results to analyze.
//   - cfg: The application configuration.
//   - presenter: The result presenter for display formatting.
//   - out: The io.Writer for the summary report.
//
// Returns:
//   - int: An exit code indicating success (0) or the type of failure.
func AnalyzeComparisonResults(results []ComputationResult, cfg config.AppConfig, presenter ResultPresenter, out io.Writer) int {
	sort.Slice(results, func(i, j int) bool {
		if (results[i].Err == nil) != (results[j].Err == nil) {
			return results[i].Err == nil
		}
		return results[i].Duration < results[j].Duration
	})

	var firstValidResult *ComputationResult
	var firstError error
	successCount := 0

	for i := range results {
		if results[i].Err != nil {
			if firstError == nil {
				firstError = results[i].Err
			}
		} else {
			successCount++
			if firstValidResult == nil {
				firstValidResult = &results[i]
			}
		}
	}

	// Present the comparison table
	presenter.PresentComparisonTable(results, out)

	if successCount == 0 {
		fmt.Fprintf(out, "\nGlobal Status: Failure. No backend could complete the computation.\n")
		return presenter.HandleError(firstError, 0, out)
	}

	mismatch := false
	for _, res := range results {
		if res.Err == nil && res.Result.Cmp(firstValidResult.Result) != 0 {
			mismatch = true
			break
		}
	}
	if mismatch {
		fmt.Fprintf(out, "\nGlobal Status: CRITICAL ERROR! An inconsistency was detected between the results of the backends.")
		return apperrors.ExitErrorMismatch
	}

	fmt.Fprintf(out, "\nGlobal Status: Success. All valid results are consistent.\n")
	presenter.PresentResult(*firstValidResult, OperationLabel(cfg), cfg.Verbose, cfg.Details, cfg.ShowValue, out)
	return apperrors.ExitSuccess
}

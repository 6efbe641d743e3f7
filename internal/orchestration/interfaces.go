package orchestration

import (
	"io"
	"math/big"
	"sync"
	"time"
)

// ComputationResult encapsulates the outcome of a single backend computation.
// It serves as the shared domain type between orchestration and presentation layers.
type ComputationResult struct {
	// Name is the identifier of the backend used (e.g., "native").
	Name string
	// Result is the computed value. It is nil if an error occurred.
	Result *big.Int
	// Duration is the time taken to complete the computation.
	Duration time.Duration
	// Err contains any error that occurred during the computation.
	Err error
}

// ProgressUpdate carries a progress notification from one backend to the
// display layer. Value is in the range [0.0, 1.0].
type ProgressUpdate struct {
	// BackendIndex identifies which backend sent the update.
	BackendIndex int
	// Value is the fraction of work completed so far.
	Value float64
}

// ProgressReporter defines the interface for displaying computation progress.
// This interface decouples the orchestration layer from the presentation layer,
// following Clean Architecture principles where business logic should not
// depend on UI concerns.
//
// Implementations handle the visual representation of progress (spinners,
// progress bars, etc.) while the orchestration layer focuses on coordinating
// the backends.
type ProgressReporter interface {
	// DisplayProgress starts displaying progress updates from the channel.
	// It should be called in a separate goroutine and will run until the
	// progressChan is closed.
	//
	// Parameters:
	//   - wg: A WaitGroup to signal when display is complete.
	//   - progressChan: Channel receiving progress updates from backends.
	//   - numBackends: The number of concurrent backends being tracked.
	//   - out: The writer for progress output.
	DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, numBackends int, out io.Writer)
}

// ProgressReporterFunc is a function adapter that implements ProgressReporter.
// This allows passing a function directly where a ProgressReporter is expected.
type ProgressReporterFunc func(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, numBackends int, out io.Writer)

// DisplayProgress calls the underlying function.
func (f ProgressReporterFunc) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, numBackends int, out io.Writer) {
	f(wg, progressChan, numBackends, out)
}

// NullProgressReporter is a no-op implementation of ProgressReporter.
// It drains the progress channel without displaying anything.
// Useful for quiet mode or testing.
type NullProgressReporter struct{}

// DisplayProgress drains the channel without output.
func (NullProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, _ int, _ io.Writer) {
	defer wg.Done()
	for range progressChan {
		// Drain channel silently
	}
}

// ResultPresenter defines the interface for presenting computation results.
// This interface decouples the orchestration layer from presentation concerns,
// allowing different output formats (CLI, JSON, etc.) without modifying
// the orchestration logic.
type ResultPresenter interface {
	// PresentComparisonTable displays the comparison summary table.
	PresentComparisonTable(results []ComputationResult, out io.Writer)

	// PresentResult displays the final computation result. The label
	// describes the requested operation (e.g., "100000!").
	PresentResult(result ComputationResult, label string, verbose, details, showValue bool, out io.Writer)

	// HandleError reports a fatal computation error and returns the exit code.
	HandleError(err error, duration time.Duration, out io.Writer) int
}

// DurationFormatter formats durations for display.
type DurationFormatter interface {
	FormatDuration(d time.Duration) string
}

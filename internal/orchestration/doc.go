// Package orchestration coordinates concurrent execution of one operation
// across multiple arithmetic backends and aggregates results for comparison.
// It decouples business logic from presentation via ProgressReporter and
// ResultPresenter interfaces.
package orchestration

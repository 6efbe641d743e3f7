package orchestration

import (
	"time"

	"github.com/agbru/numcore/internal/format"
)

// ProgressAggregator manages multi-backend progress aggregation.
// It wraps format.ProgressWithETA and provides a higher-level API
// for consuming progress updates from a channel. Both CLI and TUI
// use this to avoid duplicating the aggregation setup and update logic.
type ProgressAggregator struct {
	state       *format.ProgressWithETA
	numBackends int
}

// NewProgressAggregator creates a new aggregator for the given number
// of backends. Returns nil if numBackends <= 0.
func NewProgressAggregator(numBackends int) *ProgressAggregator {
	if numBackends <= 0 {
		return nil
	}
	return &ProgressAggregator{
		state:       format.NewProgressWithETA(numBackends),
		numBackends: numBackends,
	}
}

// AggregatedProgress holds the result of processing a single progress update.
type AggregatedProgress struct {
	// BackendIndex is the index of the backend that sent the update.
	BackendIndex int
	// Value is the raw progress value from the update (0.0 to 1.0).
	Value float64
	// AverageProgress is the aggregated average across all backends.
	AverageProgress float64
	// ETA is the estimated time remaining based on smoothed progress rate.
	ETA time.Duration
}

// Update processes a single progress update and returns the aggregated result.
func (a *ProgressAggregator) Update(update ProgressUpdate) AggregatedProgress {
	avgProgress, eta := a.state.UpdateWithETA(update.BackendIndex, update.Value)
	return AggregatedProgress{
		BackendIndex:    update.BackendIndex,
		Value:           update.Value,
		AverageProgress: avgProgress,
		ETA:             eta,
	}
}

// CalculateAverage returns the current average progress without updating.
// Useful for periodic refresh between updates (e.g., CLI ticker).
func (a *ProgressAggregator) CalculateAverage() float64 {
	return a.state.CalculateAverage()
}

// GetETA returns the current ETA estimate without updating.
// Useful for periodic refresh between updates (e.g., CLI ticker).
func (a *ProgressAggregator) GetETA() time.Duration {
	return a.state.GetETA()
}

// NumBackends returns the number of backends being tracked.
func (a *ProgressAggregator) NumBackends() int {
	return a.numBackends
}

// IsMultiBackend returns true if tracking more than one backend.
func (a *ProgressAggregator) IsMultiBackend() bool {
	return a.numBackends > 1
}

// DrainChannel reads all updates from the channel without processing.
// Use this when numBackends <= 0 and updates should be discarded.
func DrainChannel(progressChan <-chan ProgressUpdate) {
	for range progressChan {
	}
}

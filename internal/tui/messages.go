package tui

import (
	"time"

	"github.com/agbru/numcore/internal/metrics"
	"github.com/agbru/numcore/internal/orchestration"
)

// ProgressMsg carries an aggregated progress update into the dashboard.
type ProgressMsg struct {
	BackendIndex    int
	Value           float64
	AverageProgress float64
	ETA             time.Duration
}

// ProgressDoneMsg signals that the progress channel has been closed.
type ProgressDoneMsg struct{}

// ComparisonResultsMsg delivers the per-backend comparison results.
type ComparisonResultsMsg struct {
	Results []orchestration.ComputationResult
}

// FinalResultMsg delivers the reference result once cross-checking is done.
type FinalResultMsg struct {
	Result    orchestration.ComputationResult
	Label     string
	Verbose   bool
	Details   bool
	ShowValue bool
}

// IndicatorsMsg delivers throughput indicators computed off the UI loop.
type IndicatorsMsg struct {
	Indicators *metrics.Indicators
}

// ErrorMsg reports a fatal computation error.
type ErrorMsg struct {
	Err      error
	Duration time.Duration
}

// TickMsg drives periodic refresh of the dashboard.
type TickMsg time.Time

// MemStatsMsg carries a runtime memory sample.
type MemStatsMsg struct {
	Alloc        uint64
	HeapInuse    uint64
	NumGC        uint32
	NumGoroutine int
}

// SysStatsMsg carries a system-wide CPU and memory sample.
type SysStatsMsg struct {
	CPUPercent float64
	MemPercent float64
}

// ComputationCompleteMsg signals that the orchestration run finished.
// Generation guards against messages from a superseded run.
type ComputationCompleteMsg struct {
	ExitCode   int
	Generation uint64
}

// ContextCancelledMsg signals that the run context was canceled.
type ContextCancelledMsg struct {
	Err        error
	Generation uint64
}

package format

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// maxETA caps the displayed estimate; anything beyond a day is noise.
const maxETA = 24 * time.Hour

// ProgressState tracks per-worker completion fractions and aggregates
// them into a single average. It is safe for concurrent use.
type ProgressState struct {
	mu             sync.Mutex
	progresses     []float64
	numCalculators int
}

// NewProgressState creates tracking state for n workers.
func NewProgressState(n int) *ProgressState {
	return &ProgressState{
		progresses:     make([]float64, n),
		numCalculators: n,
	}
}

// Update records the completion fraction of one worker. Out-of-range
// indexes are ignored and fractions are clamped to [0, 1].
func (ps *ProgressState) Update(index int, progress float64) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	if index < 0 || index >= len(ps.progresses) {
		return
	}
	if progress < 0 {
		progress = 0
	} else if progress > 1 {
		progress = 1
	}
	ps.progresses[index] = progress
}

// CalculateAverage returns the mean completion fraction across all
// workers, or 0 when there are none.
func (ps *ProgressState) CalculateAverage() float64 {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	if ps.numCalculators == 0 {
		return 0
	}
	var sum float64
	for _, p := range ps.progresses {
		sum += p
	}
	return sum / float64(ps.numCalculators)
}

// ProgressWithETA augments ProgressState with a completion-rate
// estimate used to project a time remaining.
type ProgressWithETA struct {
	*ProgressState
	startTime    time.Time
	progressRate float64 // completion fraction per second
}

// NewProgressWithETA creates ETA-capable tracking state for n workers.
func NewProgressWithETA(n int) *ProgressWithETA {
	return &ProgressWithETA{
		ProgressState: NewProgressState(n),
		startTime:     time.Now(),
	}
}

// UpdateWithETA records one worker's progress and returns the new
// aggregate fraction together with the projected time remaining.
func (p *ProgressWithETA) UpdateWithETA(index int, progress float64) (float64, time.Duration) {
	p.Update(index, progress)
	avg := p.CalculateAverage()

	elapsed := time.Since(p.startTime).Seconds()
	if elapsed > 0 && avg > 0 {
		p.progressRate = avg / elapsed
	}
	return avg, p.GetETA()
}

// GetETA projects the time remaining from the current aggregate
// progress and observed rate. It returns 0 when no rate has been
// established yet and caps runaway projections.
func (p *ProgressWithETA) GetETA() time.Duration {
	if p.progressRate <= 0 {
		return 0
	}
	remaining := 1 - p.CalculateAverage()
	if remaining <= 0 {
		return 0
	}
	eta := time.Duration(remaining / p.progressRate * float64(time.Second))
	if eta > maxETA {
		return maxETA
	}
	return eta
}

// FormatETA renders a time-remaining estimate compactly: "45s",
// "2m30s", "1h15m". Zero and negative estimates render as
// "calculating..." since no rate is established yet.
func FormatETA(eta time.Duration) string {
	if eta <= 0 {
		return "calculating..."
	}
	if eta < time.Second {
		return "< 1s"
	}

	h := eta / time.Hour
	m := (eta % time.Hour) / time.Minute
	s := (eta % time.Minute) / time.Second

	switch {
	case h > 0 && m > 0:
		return fmt.Sprintf("%dh%dm", h, m)
	case h > 0:
		return fmt.Sprintf("%dh", h)
	case m > 0 && s > 0:
		return fmt.Sprintf("%dm%ds", m, s)
	case m > 0:
		return fmt.Sprintf("%dm", m)
	default:
		return fmt.Sprintf("%ds", s)
	}
}

// ProgressBar renders a fixed-width bar of filled and empty blocks.
// The fraction is clamped to [0, 1].
func ProgressBar(progress float64, length int) string {
	if progress < 0 {
		progress = 0
	} else if progress > 1 {
		progress = 1
	}
	filled := int(progress * float64(length))
	return strings.Repeat("█", filled) + strings.Repeat("░", length-filled)
}

// FormatProgressBarWithETA combines a progress bar, a percentage and a
// time-remaining estimate into a single status line.
func FormatProgressBarWithETA(progress float64, eta time.Duration, width int) string {
	return fmt.Sprintf("[%s] %.1f%% ETA: %s", ProgressBar(progress, width), progress*100, FormatETA(eta))
}

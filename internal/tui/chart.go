package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/agbru/numcore/internal/format"
)

// sparklineLabelWidth is the horizontal room reserved for the sparkline
// label, percentage and panel borders.
const sparklineLabelWidth = 17

// ChartModel renders aggregated progress plus CPU and memory history.
type ChartModel struct {
	progressHistory *RingBuffer
	cpuHistory      *RingBuffer
	memHistory      *RingBuffer

	averageProgress float64
	eta             time.Duration
	done            bool
	finalDuration   time.Duration

	width  int
	height int
}

// NewChartModel creates a chart panel with default history depth.
func NewChartModel() ChartModel {
	return ChartModel{
		progressHistory: NewRingBuffer(120),
		cpuHistory:      NewRingBuffer(60),
		memHistory:      NewRingBuffer(60),
	}
}

// SetSize updates dimensions and resizes the history buffers to fit.
func (c *ChartModel) SetSize(w, h int) {
	c.width = w
	c.height = h

	histCap := w - sparklineLabelWidth
	if histCap < 1 {
		histCap = 1
	}
	c.cpuHistory.Resize(histCap)
	c.memHistory.Resize(histCap)
	// Braille cells pack two samples per character column.
	c.progressHistory.Resize(histCap * 2)
}

// AddDataPoint records a progress update. The aggregate average drives
// the bar and the history chart.
func (c *ChartModel) AddDataPoint(_, average float64, eta time.Duration) {
	c.averageProgress = average
	c.eta = eta
	c.progressHistory.Push(average * 100)
}

// UpdateSysStats records a CPU and memory sample (percentages).
func (c *ChartModel) UpdateSysStats(cpuPercent, memPercent float64) {
	c.cpuHistory.Push(cpuPercent)
	c.memHistory.Push(memPercent)
}

// SetDone freezes the chart with the total run duration.
func (c *ChartModel) SetDone(total time.Duration) {
	c.done = true
	c.finalDuration = total
}

// Reset clears all recorded history.
func (c *ChartModel) Reset() {
	c.averageProgress = 0
	c.eta = 0
	c.done = false
	c.finalDuration = 0
	c.progressHistory.Reset()
	c.cpuHistory.Reset()
	c.memHistory.Reset()
}

// renderProgressBar renders the aggregate progress bar, or an empty
// string when the panel is too narrow for one.
func (c ChartModel) renderProgressBar() string {
	barWidth := c.width - 12
	if barWidth <= 0 {
		return ""
	}
	filled := int(c.averageProgress * float64(barWidth))
	if filled > barWidth {
		filled = barWidth
	}
	if filled < 0 {
		filled = 0
	}
	bar := chartBarStyle.Render(strings.Repeat("█", filled)) +
		chartEmptyStyle.Render(strings.Repeat("░", barWidth-filled))
	return fmt.Sprintf("%s %.1f%%", bar, c.averageProgress*100)
}

// View renders the chart panel.
func (c ChartModel) View() string {
	var b strings.Builder

	b.WriteString(metricLabelStyle.Render(" Progress Chart"))
	b.WriteString("\n ")
	b.WriteString(c.renderProgressBar())
	b.WriteString("\n ")
	if c.done {
		b.WriteString(statusDoneStyle.Render("Completed in " + format.FormatExecutionDuration(c.finalDuration)))
	} else {
		b.WriteString(metricValueStyle.Render("ETA: " + format.FormatETA(c.eta)))
	}

	// Progress history as a braille chart when there is vertical room.
	chartRows := c.height - 8
	if chartRows >= 2 && c.progressHistory.Len() > 0 {
		chartWidth := c.width - 6
		if chartWidth > 0 {
			for _, row := range RenderBrailleChart(c.progressHistory.Slice(), chartWidth, chartRows) {
				b.WriteString("\n ")
				b.WriteString(chartBarStyle.Render(row))
			}
		}
	}

	if c.height >= 10 {
		b.WriteString("\n ")
		b.WriteString(cpuSparklineStyle.Render("CPU "))
		b.WriteString(RenderSparkline(c.cpuHistory.Slice()))
		b.WriteString(fmt.Sprintf(" %.0f%%", c.cpuHistory.Last()))
		b.WriteString("\n ")
		b.WriteString(memSparklineStyle.Render("MEM "))
		b.WriteString(RenderSparkline(c.memHistory.Slice()))
		b.WriteString(fmt.Sprintf(" %.0f%%", c.memHistory.Last()))
	}

	return panelStyle.
		Width(c.width - 2).
		Height(c.height - 2).
		Render(b.String())
}

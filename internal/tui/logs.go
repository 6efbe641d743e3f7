package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/agbru/numcore/internal/config"
	"github.com/agbru/numcore/internal/format"
	"github.com/agbru/numcore/internal/orchestration"
)

// LogsModel renders the event log plus one live progress line per
// backend.
type LogsModel struct {
	names      []string
	progresses []float64

	entries []string
	scroll  int

	keymap KeyMap
	width  int
	height int
}

// NewLogsModel creates the log panel for the given backend names.
func NewLogsModel(names []string) LogsModel {
	return LogsModel{
		names:      names,
		progresses: make([]float64, len(names)),
		keymap:     DefaultKeyMap(),
	}
}

// SetSize updates dimensions.
func (l *LogsModel) SetSize(w, h int) {
	l.width = w
	l.height = h
}

// Reset clears the log and per-backend progress.
func (l *LogsModel) Reset() {
	l.entries = nil
	l.scroll = 0
	for i := range l.progresses {
		l.progresses[i] = 0
	}
	l.add(logProgressStyle.Render("computation restarted"))
}

func (l *LogsModel) add(line string) {
	stamp := logTimeStyle.Render(time.Now().Format("15:04:05"))
	l.entries = append(l.entries, stamp+" "+line)
	l.scroll = 0
}

// AddExecutionConfig logs the run parameters.
func (l *LogsModel) AddExecutionConfig(cfg config.AppConfig) {
	l.add(fmt.Sprintf("computing %s with %d backend(s)",
		logAlgoStyle.Render(orchestration.OperationLabel(cfg)), len(l.names)))
	l.add(fmt.Sprintf("timeout %s", cfg.Timeout))
}

// AddProgressEntry updates the live progress line for one backend.
func (l *LogsModel) AddProgressEntry(msg ProgressMsg) {
	if msg.BackendIndex >= 0 && msg.BackendIndex < len(l.progresses) {
		l.progresses[msg.BackendIndex] = msg.Value
	}
}

// AddResults logs the per-backend comparison outcome.
func (l *LogsModel) AddResults(results []orchestration.ComputationResult) {
	for _, r := range results {
		if r.Err != nil {
			l.add(fmt.Sprintf("%s %s: %v",
				logErrorStyle.Render("FAIL"), r.Name, r.Err))
			continue
		}
		l.add(fmt.Sprintf("%s %s in %s",
			logSuccessStyle.Render("OK"), r.Name,
			format.FormatExecutionDuration(r.Duration)))
	}
}

// AddFinalResult logs the reference result summary.
func (l *LogsModel) AddFinalResult(msg FinalResultMsg) {
	if msg.Result.Result == nil {
		return
	}
	bits := msg.Result.Result.BitLen()
	l.add(fmt.Sprintf("%s = %s bits (%s)",
		logAlgoStyle.Render(msg.Label),
		format.FormatNumberString(fmt.Sprintf("%d", bits)),
		format.FormatExecutionDuration(msg.Result.Duration)))
}

// AddError logs a fatal error.
func (l *LogsModel) AddError(msg ErrorMsg) {
	l.add(logErrorStyle.Render(fmt.Sprintf("error after %s: %v", msg.Duration, msg.Err)))
}

// Update handles scroll keys.
func (l *LogsModel) Update(msg tea.KeyMsg) {
	page := l.height - 4
	if page < 1 {
		page = 1
	}
	switch {
	case key.Matches(msg, l.keymap.Up):
		l.scroll++
	case key.Matches(msg, l.keymap.Down):
		l.scroll--
	case key.Matches(msg, l.keymap.PageUp):
		l.scroll += page
	case key.Matches(msg, l.keymap.PageDown):
		l.scroll -= page
	}
	if l.scroll < 0 {
		l.scroll = 0
	}
	if l.scroll > len(l.entries) {
		l.scroll = len(l.entries)
	}
}

// renderToHeight renders the panel at exactly the given outer height.
func (l LogsModel) renderToHeight(h int) string {
	inner := h - 2
	if inner < 1 {
		inner = 1
	}

	var lines []string
	for i, name := range l.names {
		lines = append(lines, fmt.Sprintf(" %s %s",
			logAlgoStyle.Render(fmt.Sprintf("%-8s", name)),
			l.renderMiniBar(l.progresses[i])))
	}
	if len(l.names) > 0 {
		lines = append(lines, "")
	}

	// Most recent entries at the bottom, offset by the scroll position.
	visible := inner - len(lines)
	if visible < 1 {
		visible = 1
	}
	end := len(l.entries) - l.scroll
	if end < 0 {
		end = 0
	}
	start := end - visible
	if start < 0 {
		start = 0
	}
	lines = append(lines, l.entries[start:end]...)

	return panelStyle.
		Width(l.width - 2).
		Height(inner).
		Render(strings.Join(lines, "\n"))
}

// View renders at the configured height.
func (l LogsModel) View() string {
	return l.renderToHeight(l.height)
}

func (l LogsModel) renderMiniBar(p float64) string {
	barWidth := l.width - 22
	if barWidth < 5 {
		barWidth = 5
	}
	filled := int(p * float64(barWidth))
	if filled > barWidth {
		filled = barWidth
	}
	bar := chartBarStyle.Render(strings.Repeat("█", filled)) +
		chartEmptyStyle.Render(strings.Repeat("░", barWidth-filled))
	return fmt.Sprintf("%s %5.1f%%", bar, p*100)
}

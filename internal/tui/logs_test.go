package tui

import (
	"errors"
	"math/big"
	"strings"
	"testing"
	"time"

	"github.com/agbru/numcore/internal/config"
	"github.com/agbru/numcore/internal/orchestration"
)

func TestLogsModel_AddExecutionConfig(t *testing.T) {
	logs := NewLogsModel([]string{"native", "stdbig"})
	logs.SetSize(80, 20)

	cfg := config.DefaultConfig()
	cfg.N = 1000
	logs.AddExecutionConfig(cfg)

	view := logs.renderToHeight(20)
	if !strings.Contains(view, "1000!") {
		t.Error("expected view to contain the operation label")
	}
	if !strings.Contains(view, "2 backend(s)") {
		t.Error("expected view to mention the backend count")
	}
}

func TestLogsModel_ProgressLines(t *testing.T) {
	logs := NewLogsModel([]string{"native", "stdbig"})
	logs.SetSize(80, 20)

	logs.AddProgressEntry(ProgressMsg{BackendIndex: 0, Value: 0.5})
	logs.AddProgressEntry(ProgressMsg{BackendIndex: 1, Value: 1.0})

	view := logs.renderToHeight(20)
	if !strings.Contains(view, "native") {
		t.Error("expected a progress line for native")
	}
	if !strings.Contains(view, "50.0%") {
		t.Error("expected native progress at 50.0%")
	}
	if !strings.Contains(view, "100.0%") {
		t.Error("expected stdbig progress at 100.0%")
	}
}

func TestLogsModel_AddProgressEntry_OutOfRange(t *testing.T) {
	logs := NewLogsModel([]string{"native"})
	// Should not panic
	logs.AddProgressEntry(ProgressMsg{BackendIndex: 5, Value: 0.5})
	logs.AddProgressEntry(ProgressMsg{BackendIndex: -1, Value: 0.5})
}

func TestLogsModel_AddResults(t *testing.T) {
	logs := NewLogsModel([]string{"native"})
	logs.SetSize(80, 20)

	logs.AddResults([]orchestration.ComputationResult{
		{Name: "native", Result: big.NewInt(120), Duration: 3 * time.Millisecond},
		{Name: "stdbig", Err: errors.New("boom")},
	})

	view := logs.renderToHeight(20)
	if !strings.Contains(view, "OK") {
		t.Error("expected an OK entry for the successful backend")
	}
	if !strings.Contains(view, "FAIL") {
		t.Error("expected a FAIL entry for the failed backend")
	}
	if !strings.Contains(view, "boom") {
		t.Error("expected the failure message in the log")
	}
}

func TestLogsModel_AddFinalResult(t *testing.T) {
	logs := NewLogsModel([]string{"native"})
	logs.SetSize(80, 20)

	logs.AddFinalResult(FinalResultMsg{
		Result: orchestration.ComputationResult{
			Name:     "native",
			Result:   big.NewInt(3628800),
			Duration: time.Millisecond,
		},
		Label: "10!",
	})

	view := logs.renderToHeight(20)
	if !strings.Contains(view, "10!") {
		t.Error("expected the final result label in the log")
	}
}

func TestLogsModel_AddFinalResult_NilResult(t *testing.T) {
	logs := NewLogsModel([]string{"native"})
	before := len(logs.entries)
	logs.AddFinalResult(FinalResultMsg{})
	if len(logs.entries) != before {
		t.Error("nil result should not add a log entry")
	}
}

func TestLogsModel_Reset(t *testing.T) {
	logs := NewLogsModel([]string{"native"})
	logs.AddProgressEntry(ProgressMsg{BackendIndex: 0, Value: 0.7})
	logs.AddError(ErrorMsg{Err: errors.New("x"), Duration: time.Second})

	logs.Reset()

	if logs.progresses[0] != 0 {
		t.Error("expected progress cleared after reset")
	}
}

func TestFooterModel_StatusPrecedence(t *testing.T) {
	f := NewFooterModel()

	if !strings.Contains(f.View(), "RUNNING") {
		t.Error("expected RUNNING status initially")
	}

	f.SetPaused(true)
	if !strings.Contains(f.View(), "PAUSED") {
		t.Error("expected PAUSED status")
	}

	f.SetDone(true)
	if !strings.Contains(f.View(), "DONE") {
		t.Error("expected DONE to take precedence over PAUSED")
	}

	f.SetError(true)
	if !strings.Contains(f.View(), "ERROR") {
		t.Error("expected ERROR to take precedence over DONE")
	}
}

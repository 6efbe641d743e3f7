package sysmon

import (
	"context"
	"testing"
	"time"
)

func TestSample_ReturnsValidRanges(t *testing.T) {
	s := Sample()
	if s.CPUPercent < 0 || s.CPUPercent > 100 {
		t.Errorf("CPUPercent out of range: %f", s.CPUPercent)
	}
	if s.MemPercent < 0 || s.MemPercent > 100 {
		t.Errorf("MemPercent out of range: %f", s.MemPercent)
	}
}

func TestSample_MemPercentNonZero(t *testing.T) {
	s := Sample()
	if s.MemPercent == 0 {
		t.Error("expected non-zero MemPercent on a running system")
	}
}

func TestWatch_DeliversAndStops(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	got := make(chan Stats, 1)
	done := make(chan struct{})
	go func() {
		defer close(done)
		Watch(ctx, 10*time.Millisecond, func(s Stats) {
			select {
			case got <- s:
			default:
			}
		})
	}()

	select {
	case <-got:
	case <-time.After(time.Second):
		t.Fatal("Watch did not deliver an immediate sample")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Watch did not stop on context cancellation")
	}
}

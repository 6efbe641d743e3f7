package fft

import (
	"sync"
	"testing"
)

// scratchPoolIndexLinear is the reference implementation for the
// bitwise index computation.
func scratchPoolIndexLinear(size int) int {
	if size <= 0 {
		return 0
	}
	for i := range scratchPools {
		if size <= 1<<(minScratchBits+i) {
			return i
		}
	}
	return -1
}

func TestScratchPoolIndexMatchesLinear(t *testing.T) {
	t.Parallel()
	sizes := []int{0, 1, 31, 32, 33, 64, 1000, 1024, 1025, 1 << 15, 1<<23 - 1, 1 << 23, 1<<23 + 1}
	for _, size := range sizes {
		if got, want := scratchPoolIndex(size), scratchPoolIndexLinear(size); got != want {
			t.Errorf("scratchPoolIndex(%d) = %d, want %d", size, got, want)
		}
	}
	for size := 1; size <= 1<<12; size++ {
		if got, want := scratchPoolIndex(size), scratchPoolIndexLinear(size); got != want {
			t.Fatalf("scratchPoolIndex(%d) = %d, want %d", size, got, want)
		}
	}
}

func TestAcquireScratchReturnsZeroedBuffer(t *testing.T) {
	t.Parallel()
	buf := AcquireScratch(128)
	if len(buf) != 128 {
		t.Fatalf("len = %d, want 128", len(buf))
	}
	buf[0], buf[127] = 1.5, -2.5
	ReleaseScratch(buf)

	again := AcquireScratch(128)
	defer ReleaseScratch(again)
	for i, v := range again {
		if v != 0 {
			t.Fatalf("reused buffer not cleared at %d: %g", i, v)
		}
	}
}

func TestAcquireScratchOversized(t *testing.T) {
	t.Parallel()
	size := 1<<maxScratchBits + 1
	buf := AcquireScratch(size)
	if len(buf) != size {
		t.Fatalf("len = %d, want %d", len(buf), size)
	}
	// Oversized buffers bypass the pool; releasing must not panic.
	ReleaseScratch(buf)
	ReleaseScratch(nil)
}

func TestScratchPoolConcurrentUse(t *testing.T) {
	t.Parallel()
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				buf := AcquireScratch(512)
				for j := range buf {
					buf[j] = float64(j)
				}
				ReleaseScratch(buf)
			}
		}()
	}
	wg.Wait()
}

func TestConvWithPooledScratch(t *testing.T) {
	t.Parallel()
	signal := []float64{1, 0, 0, 0}
	kernel := []float64{5, 6, 7, 8}
	dst := make([]float64, 4)

	scratch := AcquireScratch(8)
	defer ReleaseScratch(scratch)
	Conv(dst, signal, kernel, scratch, 2)

	for i := range kernel {
		if diff := dst[i] - kernel[i]; diff > 1e-12 || diff < -1e-12 {
			t.Errorf("dst[%d] = %g, want %g", i, dst[i], kernel[i])
		}
	}
}

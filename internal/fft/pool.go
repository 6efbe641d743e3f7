// This file provides scratch-buffer pooling for transform callers to
// reduce GC pressure when convolutions run repeatedly.

package fft

import (
	"math/bits"
	"sync"
)

// Scratch buffers are pooled by power-of-two size class. Conv callers
// need 2n floats for a length-n transform, so every request is already
// a power of two; the classes range from 32 floats to 8M floats
// (64 MB), large enough for a 2^22-point convolution.
const (
	minScratchBits = 5
	maxScratchBits = 23
)

var scratchPools [maxScratchBits - minScratchBits + 1]sync.Pool

func init() {
	for i := range scratchPools {
		size := 1 << (minScratchBits + i)
		scratchPools[i].New = func() any { return make([]float64, size) }
	}
}

// scratchPoolIndex returns the pool index for a given size, or -1 when
// the size is too large for pooling. Classes are powers of two, so
// bits.Len maps a size directly to its class.
func scratchPoolIndex(size int) int {
	if size <= 0 {
		return 0
	}
	if size > 1<<maxScratchBits {
		return -1
	}
	idx := bits.Len(uint(size-1)) - minScratchBits
	if idx < 0 {
		idx = 0
	}
	return idx
}

// AcquireScratch returns a zeroed []float64 of at least the given
// length from the pool. Oversized requests fall back to a direct
// allocation. Release with ReleaseScratch, preferably via defer:
//
//	scratch := fft.AcquireScratch(2 * n)
//	defer fft.ReleaseScratch(scratch)
func AcquireScratch(size int) []float64 {
	idx := scratchPoolIndex(size)
	if idx < 0 {
		return make([]float64, size)
	}
	buf := scratchPools[idx].Get().([]float64)
	clear(buf)
	return buf[:size]
}

// ReleaseScratch returns a buffer obtained from AcquireScratch to the
// pool. Directly allocated oversized buffers are left to the GC. Safe
// to call with nil.
func ReleaseScratch(buf []float64) {
	if buf == nil {
		return
	}
	c := cap(buf)
	idx := scratchPoolIndex(c)
	if idx >= 0 && 1<<(minScratchBits+idx) == c {
		scratchPools[idx].Put(buf[:c])
	}
}

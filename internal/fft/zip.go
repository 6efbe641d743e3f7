package fft

import (
	"math"
	"math/bits"
)

// Zip computes an in-place complex transform of length n = 1<<log2n on
// a single split-complex buffer. log2n must be at least 1.
//
// The buffer is first put into bit-reversed order, then combined by
// iterative butterfly passes: size-8 blocks through the unrolled
// kernel, then doubling block sizes with the incremental-rotation
// butterfly. This trades the recursion's scratch traffic for a single
// permutation pass.
func Zip(dir Direction, re, im []float64, stride int, log2n uint) {
	if log2n < 1 {
		panic("fft: Zip requires log2n >= 1")
	}
	n := 1 << log2n
	checkBuffer(re, im, stride, n)

	if dir == Inverse {
		re, im = im, re
	}
	zipForward(re, im, stride, log2n)
}

func zipForward(re, im []float64, stride int, log2n uint) {
	switch log2n {
	case 1:
		fwd2(re, im, stride, re, im, stride)
		return
	case 2:
		fwd4(re, im, stride, re, im, stride)
		return
	}
	n := 1 << log2n

	bitReverse(re, im, stride, log2n)

	// Size-8 base blocks over the permuted data.
	for base := 0; base < n; base += 8 {
		dit8(re, im, base*stride, stride)
	}

	// Remaining passes with doubling block size.
	for size := 16; size <= n; size <<= 1 {
		half := size >> 1
		angle := math.Pi / float64(half)
		wr, wi := math.Cos(angle), -math.Sin(angle)

		for base := 0; base < n; base += size {
			cr, ci := 1.0, 0.0
			for k := 0; k < half; k++ {
				lo := (base + k) * stride
				hi := (base + k + half) * stride

				er, ei := re[lo], im[lo]
				or, oi := re[hi], im[hi]
				tr := or*cr - oi*ci
				ti := or*ci + oi*cr

				re[lo], im[lo] = er+tr, ei+ti
				re[hi], im[hi] = er-tr, ei-ti

				cr, ci = cr*wr-ci*wi, cr*wi+ci*wr
			}
		}
	}
}

// bitReverse permutes the buffer so element i moves to the
// bit-reversal of i within log2n bits. The reversal of the index word
// comes from the mask-and-shift word reversal, truncated to the needed
// width; each conjugate pair is swapped exactly once.
func bitReverse(re, im []float64, stride int, log2n uint) {
	n := 1 << log2n
	shift := 64 - log2n
	for i := 0; i < n; i++ {
		j := int(bits.Reverse64(uint64(i)) >> shift)
		if i < j {
			ii, jj := i*stride, j*stride
			re[ii], re[jj] = re[jj], re[ii]
			im[ii], im[jj] = im[jj], im[ii]
		}
	}
}

package fft

import "math"

// Zop computes an out-of-place complex transform of length n = 1<<log2n.
// Input and output are split-complex buffers with their own strides;
// the output must not alias the input. log2n must be at least 1.
//
// The inverse direction reuses the forward machinery with the real and
// imaginary buffer roles swapped on both input and output, which
// computes the unscaled inverse transform.
func Zop(dir Direction, inRe, inIm []float64, inStride int, outRe, outIm []float64, outStride int, log2n uint) {
	if log2n < 1 {
		panic("fft: Zop requires log2n >= 1")
	}
	n := 1 << log2n
	checkBuffer(inRe, inIm, inStride, n)
	checkBuffer(outRe, outIm, outStride, n)

	if dir == Inverse {
		inRe, inIm = inIm, inRe
		outRe, outIm = outIm, outRe
	}
	zopForward(inRe, inIm, inStride, outRe, outIm, outStride, log2n)
}

// zopForward is the recursive decimation core behind Zop.
func zopForward(inRe, inIm []float64, inStride int, outRe, outIm []float64, outStride int, log2n uint) {
	switch log2n {
	case 1:
		fwd2(inRe, inIm, inStride, outRe, outIm, outStride)
		return
	case 2:
		fwd4(inRe, inIm, inStride, outRe, outIm, outStride)
		return
	case 3:
		fwd8(inRe, inIm, inStride, outRe, outIm, outStride)
		return
	}

	// Transform the even-indexed half into the lower half of the
	// output and the odd-indexed half into the upper half, then merge
	// with the twiddle-factor butterfly.
	half := 1 << (log2n - 1)
	zopForward(inRe, inIm, 2*inStride, outRe, outIm, outStride, log2n-1)
	zopForward(inRe[inStride:], inIm[inStride:], 2*inStride,
		outRe[half*outStride:], outIm[half*outStride:], outStride, log2n-1)

	// Twiddle factors advance by the angle-addition recurrence: one
	// sin/cos evaluation per level instead of one per butterfly.
	angle := math.Pi / float64(half)
	wr, wi := math.Cos(angle), -math.Sin(angle)
	cr, ci := 1.0, 0.0
	for k := 0; k < half; k++ {
		lo := k * outStride
		hi := (k + half) * outStride

		er, ei := outRe[lo], outIm[lo]
		or, oi := outRe[hi], outIm[hi]
		tr := or*cr - oi*ci
		ti := or*ci + oi*cr

		outRe[lo], outIm[lo] = er+tr, ei+ti
		outRe[hi], outIm[hi] = er-tr, ei-ti

		cr, ci = cr*wr-ci*wi, cr*wi+ci*wr
	}
}

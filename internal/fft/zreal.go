package fft

import "math"

// The real-signal transforms store a length-n real signal as n/2
// split-complex elements: even samples in the real slots, odd samples
// in the imaginary slots. The forward spectrum occupies the same n/2
// slots, with the always-real Nyquist bin folded into the imaginary
// slot of bin 0. log2n is the exponent of the real length n, so the
// buffers hold 1<<(log2n-1) elements.

// Zrop computes an out-of-place real transform. In the forward
// direction the input holds the even/odd-packed signal and the output
// receives the packed half spectrum; in the inverse direction the
// input holds a packed spectrum and the output receives the unscaled
// (length-scaled by n) even/odd-packed signal. Output must not alias
// input. log2n must be at least 1.
func Zrop(dir Direction, inRe, inIm []float64, inStride int, outRe, outIm []float64, outStride int, log2n uint) {
	if log2n < 1 {
		panic("fft: Zrop requires log2n >= 1")
	}
	h := 1 << (log2n - 1)
	checkBuffer(inRe, inIm, inStride, h)
	checkBuffer(outRe, outIm, outStride, h)

	if log2n == 1 {
		// Length-2 closed form: DC and Nyquist directly.
		x0, x1 := inRe[0], inIm[0]
		outRe[0], outIm[0] = x0+x1, x0-x1
		return
	}

	switch dir {
	case Forward:
		Zop(Forward, inRe, inIm, inStride, outRe, outIm, outStride, log2n-1)
		realUnpack(outRe, outIm, outStride, log2n)
	default:
		realRepack(outRe, outIm, outStride, inRe, inIm, inStride, log2n)
		Zip(Inverse, outRe, outIm, outStride, log2n-1)
	}
}

// Zrip is the in-place variant of Zrop, transforming a single packed
// buffer. log2n must be at least 1.
func Zrip(dir Direction, re, im []float64, stride int, log2n uint) {
	if log2n < 1 {
		panic("fft: Zrip requires log2n >= 1")
	}
	h := 1 << (log2n - 1)
	checkBuffer(re, im, stride, h)

	if log2n == 1 {
		x0, x1 := re[0], im[0]
		re[0], im[0] = x0+x1, x0-x1
		return
	}

	switch dir {
	case Forward:
		Zip(Forward, re, im, stride, log2n-1)
		realUnpack(re, im, stride, log2n)
	default:
		realRepack(re, im, stride, re, im, stride, log2n)
		Zip(Inverse, re, im, stride, log2n-1)
	}
}

// realUnpack derives the packed half spectrum of the real signal from
// the half-length complex transform held in the buffer, using the
// Hermitian symmetry of a real signal's spectrum:
//
//	X[k]   = E[k] + W^k O[k]
//	X[h-k] = conj(E[k] - W^k O[k])
//
// where E and O come from the sum/difference of conjugate bin pairs.
func realUnpack(re, im []float64, stride int, log2n uint) {
	h := 1 << (log2n - 1)

	// Bin 0 carries DC, its imaginary slot the folded Nyquist bin.
	z0r, z0i := re[0], im[0]
	re[0], im[0] = z0r+z0i, z0r-z0i

	// The middle bin is self-conjugate: X[h/2] = conj(Z[h/2]).
	mid := (h / 2) * stride
	im[mid] = -im[mid]

	angle := 2 * math.Pi / float64(int(1)<<log2n)
	wr, wi := math.Cos(angle), -math.Sin(angle)
	cr, ci := wr, wi // W^1
	for k := 1; k < h/2; k++ {
		lo := k * stride
		hi := (h - k) * stride

		ar, ai := re[lo], im[lo]
		br, bi := re[hi], im[hi]

		er, ei := (ar+br)/2, (ai-bi)/2
		// O = (A - conj(B)) / (2i)
		or, oi := (ai+bi)/2, (br-ar)/2

		tr := or*cr - oi*ci
		ti := or*ci + oi*cr

		re[lo], im[lo] = er+tr, ei+ti
		re[hi], im[hi] = er-tr, -(ei-ti)

		cr, ci = cr*wr-ci*wi, cr*wi+ci*wr
	}
}

// realRepack is the structural mirror of realUnpack: it rebuilds the
// doubled half-length complex spectrum 2*Z[k] from a packed real
// spectrum, writing into dst (which may alias src). The doubling folds
// the two half factors of the symmetry formulas into the transform's
// overall length scaling.
func realRepack(dstRe, dstIm []float64, ds int, srcRe, srcIm []float64, ss int, log2n uint) {
	h := 1 << (log2n - 1)

	dc, ny := srcRe[0], srcIm[0]
	dstRe[0], dstIm[0] = dc+ny, dc-ny

	mid := h / 2
	mr, mi := srcRe[mid*ss], srcIm[mid*ss]
	dstRe[mid*ds], dstIm[mid*ds] = 2*mr, -2*mi

	angle := 2 * math.Pi / float64(int(1)<<log2n)
	wr, wi := math.Cos(angle), -math.Sin(angle)
	cr, ci := wr, wi
	for k := 1; k < h/2; k++ {
		lo, hiS := k*ss, (h-k)*ss
		ar, ai := srcRe[lo], srcIm[lo]
		br, bi := srcRe[hiS], -srcIm[hiS] // conj(X[h-k])

		epr, epi := ar+br, ai+bi
		fr, fi := ar-br, ai-bi

		// O' = conj(W^k) * F
		or := fr*cr + fi*ci
		oi := fi*cr - fr*ci

		loD, hiD := k*ds, (h-k)*ds
		dstRe[loD], dstIm[loD] = epr-oi, epi+or
		dstRe[hiD], dstIm[hiD] = epr+oi, -epi+or

		cr, ci = cr*wr-ci*wi, cr*wi+ci*wr
	}
}

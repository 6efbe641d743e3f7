package fft

import "math"

// sqrt2Over2 is the only irrational constant the unrolled kernels
// need: cos(pi/4) == sin(pi/4) == sqrt(2)/2.
var sqrt2Over2 = math.Sqrt2 / 2

// The size-2, size-4 and size-8 kernels are the hand-unrolled
// Cooley-Tukey base cases. Each reads the full input into locals
// before writing, so the output buffers may alias the input buffers.

// fwd2 computes a length-2 forward transform.
func fwd2(inRe, inIm []float64, is int, outRe, outIm []float64, os int) {
	x0r, x0i := inRe[0], inIm[0]
	x1r, x1i := inRe[is], inIm[is]

	outRe[0], outIm[0] = x0r+x1r, x0i+x1i
	outRe[os], outIm[os] = x0r-x1r, x0i-x1i
}

// fwd4 computes a length-4 forward transform.
func fwd4(inRe, inIm []float64, is int, outRe, outIm []float64, os int) {
	x0r, x0i := inRe[0], inIm[0]
	x1r, x1i := inRe[is], inIm[is]
	x2r, x2i := inRe[2*is], inIm[2*is]
	x3r, x3i := inRe[3*is], inIm[3*is]

	t0r, t0i := x0r+x2r, x0i+x2i
	t1r, t1i := x0r-x2r, x0i-x2i
	t2r, t2i := x1r+x3r, x1i+x3i
	t3r, t3i := x1r-x3r, x1i-x3i

	outRe[0], outIm[0] = t0r+t2r, t0i+t2i
	outRe[os], outIm[os] = t1r+t3i, t1i-t3r
	outRe[2*os], outIm[2*os] = t0r-t2r, t0i-t2i
	outRe[3*os], outIm[3*os] = t1r-t3i, t1i+t3r
}

// fwd8 computes a length-8 forward transform: two length-4 transforms
// over the even- and odd-indexed samples combined with the W8 twiddle
// factors, all of which reduce to additions and a scale by sqrt(2)/2.
func fwd8(inRe, inIm []float64, is int, outRe, outIm []float64, os int) {
	s := sqrt2Over2

	// Length-4 transform of the even-indexed samples.
	x0r, x0i := inRe[0], inIm[0]
	x2r, x2i := inRe[2*is], inIm[2*is]
	x4r, x4i := inRe[4*is], inIm[4*is]
	x6r, x6i := inRe[6*is], inIm[6*is]

	t0r, t0i := x0r+x4r, x0i+x4i
	t1r, t1i := x0r-x4r, x0i-x4i
	t2r, t2i := x2r+x6r, x2i+x6i
	t3r, t3i := x2r-x6r, x2i-x6i

	e0r, e0i := t0r+t2r, t0i+t2i
	e1r, e1i := t1r+t3i, t1i-t3r
	e2r, e2i := t0r-t2r, t0i-t2i
	e3r, e3i := t1r-t3i, t1i+t3r

	// Length-4 transform of the odd-indexed samples.
	x1r, x1i := inRe[is], inIm[is]
	x3r, x3i := inRe[3*is], inIm[3*is]
	x5r, x5i := inRe[5*is], inIm[5*is]
	x7r, x7i := inRe[7*is], inIm[7*is]

	t0r, t0i = x1r+x5r, x1i+x5i
	t1r, t1i = x1r-x5r, x1i-x5i
	t2r, t2i = x3r+x7r, x3i+x7i
	t3r, t3i = x3r-x7r, x3i-x7i

	o0r, o0i := t0r+t2r, t0i+t2i
	o1r, o1i := t1r+t3i, t1i-t3r
	o2r, o2i := t0r-t2r, t0i-t2i
	o3r, o3i := t1r-t3i, t1i+t3r

	// Combine: X[k] = E[k] + W8^k O[k], X[k+4] = E[k] - W8^k O[k].
	outRe[0], outIm[0] = e0r+o0r, e0i+o0i
	outRe[4*os], outIm[4*os] = e0r-o0r, e0i-o0i

	// W8^1 = s*(1 - i)
	wr, wi := s*(o1r+o1i), s*(o1i-o1r)
	outRe[os], outIm[os] = e1r+wr, e1i+wi
	outRe[5*os], outIm[5*os] = e1r-wr, e1i-wi

	// W8^2 = -i
	wr, wi = o2i, -o2r
	outRe[2*os], outIm[2*os] = e2r+wr, e2i+wi
	outRe[6*os], outIm[6*os] = e2r-wr, e2i-wi

	// W8^3 = -s*(1 + i)
	wr, wi = s*(o3i-o3r), -s*(o3r+o3i)
	outRe[3*os], outIm[3*os] = e3r+wr, e3i+wi
	outRe[7*os], outIm[7*os] = e3r-wr, e3i-wi
}

// dit8 runs the three butterfly stages of a length-8 transform in
// place over data that has already been bit-reversal permuted. It is
// the block kernel of the iterative in-place transform.
func dit8(re, im []float64, base, stride int) {
	s := sqrt2Over2
	i0 := base
	i1 := base + stride
	i2 := base + 2*stride
	i3 := base + 3*stride
	i4 := base + 4*stride
	i5 := base + 5*stride
	i6 := base + 6*stride
	i7 := base + 7*stride

	// Stage 1 (size-2 butterflies on adjacent pairs).
	a0r, a0i := re[i0]+re[i1], im[i0]+im[i1]
	a1r, a1i := re[i0]-re[i1], im[i0]-im[i1]
	a2r, a2i := re[i2]+re[i3], im[i2]+im[i3]
	a3r, a3i := re[i2]-re[i3], im[i2]-im[i3]
	a4r, a4i := re[i4]+re[i5], im[i4]+im[i5]
	a5r, a5i := re[i4]-re[i5], im[i4]-im[i5]
	a6r, a6i := re[i6]+re[i7], im[i6]+im[i7]
	a7r, a7i := re[i6]-re[i7], im[i6]-im[i7]

	// Stage 2 (size-4, twiddle -i on the second odd lane).
	b0r, b0i := a0r+a2r, a0i+a2i
	b2r, b2i := a0r-a2r, a0i-a2i
	b1r, b1i := a1r+a3i, a1i-a3r
	b3r, b3i := a1r-a3i, a1i+a3r
	b4r, b4i := a4r+a6r, a4i+a6i
	b6r, b6i := a4r-a6r, a4i-a6i
	b5r, b5i := a5r+a7i, a5i-a7r
	b7r, b7i := a5r-a7i, a5i+a7r

	// Stage 3 (size-8, twiddles W8^1..W8^3).
	re[i0], im[i0] = b0r+b4r, b0i+b4i
	re[i4], im[i4] = b0r-b4r, b0i-b4i

	tr, ti := s*(b5r+b5i), s*(b5i-b5r)
	re[i1], im[i1] = b1r+tr, b1i+ti
	re[i5], im[i5] = b1r-tr, b1i-ti

	tr, ti = b6i, -b6r
	re[i2], im[i2] = b2r+tr, b2i+ti
	re[i6], im[i6] = b2r-tr, b2i-ti

	tr, ti = s*(b7i-b7r), -s*(b7r+b7i)
	re[i3], im[i3] = b3r+tr, b3i+ti
	re[i7], im[i7] = b3r-tr, b3i-ti
}

package fft

// Conv computes the cyclic convolution of two real signals of length
// n = 1<<log2n into dst:
//
//	dst[i] = sum_j kernel[j] * signal[(i-j) mod n]
//
// by the convolution theorem: both inputs are forward-transformed
// through the real in-place path, the packed spectra are multiplied
// pointwise with a 1/n scale, and the product is inverse-transformed.
// scratch must hold at least 2*n elements; dst, signal and kernel must
// each hold at least n and may not overlap scratch.
func Conv(dst, signal, kernel, scratch []float64, log2n uint) {
	if log2n < 1 {
		panic("fft: Conv requires log2n >= 1")
	}
	n := 1 << log2n
	h := n / 2
	if len(dst) < n || len(signal) < n || len(kernel) < n {
		panic("fft: Conv buffers shorter than transform length")
	}
	if len(scratch) < 2*n {
		panic("fft: Conv scratch shorter than 2*n")
	}

	sigRe := scratch[0:h]
	sigIm := scratch[h : 2*h]
	kerRe := scratch[2*h : 3*h]
	kerIm := scratch[3*h : 4*h]

	for j := 0; j < h; j++ {
		sigRe[j], sigIm[j] = signal[2*j], signal[2*j+1]
		kerRe[j], kerIm[j] = kernel[2*j], kernel[2*j+1]
	}

	Zrip(Forward, sigRe, sigIm, 1, log2n)
	Zrip(Forward, kerRe, kerIm, 1, log2n)

	// Pointwise spectrum product, scaled by 1/n. Bin 0 packs the two
	// always-real bins (DC and Nyquist), which multiply independently.
	inv := 1 / float64(n)
	sigRe[0] *= kerRe[0] * inv
	sigIm[0] *= kerIm[0] * inv
	for k := 1; k < h; k++ {
		ar, ai := sigRe[k], sigIm[k]
		br, bi := kerRe[k], kerIm[k]
		sigRe[k] = (ar*br - ai*bi) * inv
		sigIm[k] = (ar*bi + ai*br) * inv
	}

	Zrip(Inverse, sigRe, sigIm, 1, log2n)

	for j := 0; j < h; j++ {
		dst[2*j], dst[2*j+1] = sigRe[j], sigIm[j]
	}
}

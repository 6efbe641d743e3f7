// Package fft implements power-of-two radix-2 Fast Fourier Transforms
// over strided split-complex buffers (separate real and imaginary
// float64 slices addressed with a common stride).
//
// Every entry point is a pure, stateless transform: the package never
// retains a buffer beyond the call, and concurrent calls on
// independent data need no synchronization. Transform lengths are
// given as the power-of-two exponent log2n. Buffer length and
// power-of-two preconditions are caller-enforced; violations are
// programmer errors and panic rather than returning an error.
//
// Transform sizes 2, 4 and 8 use hand-unrolled butterfly kernels that
// need no trigonometric calls (the only non-trivial constant is
// sqrt(2)/2). Larger sizes recurse (Zop) or iterate over bit-reversed
// data (Zip); twiddle factors are generated by an incremental complex
// rotation so the transcendental functions are evaluated once per
// recursion level rather than once per butterfly.
//
// The real-signal transforms (Zrop, Zrip) exploit Hermitian symmetry:
// a length-N real signal produces N/2+1 independent bins, stored in
// N/2 complex slots with the always-real Nyquist bin folded into the
// imaginary slot of bin 0.
//
// Forward transforms compute the unscaled DFT; inverse transforms
// compute the unscaled inverse, so a forward/inverse round trip scales
// the input by the transform length N.
package fft

package fft

import "fmt"

// Direction selects between the forward (negative exponent) and
// inverse (positive exponent, unscaled) transform.
type Direction int

const (
	// Forward computes the unscaled discrete Fourier transform.
	Forward Direction = iota
	// Inverse computes the unscaled inverse transform; applying
	// Forward then Inverse scales the input by the transform length.
	Inverse
)

// String returns the direction name.
func (d Direction) String() string {
	if d == Inverse {
		return "inverse"
	}
	return "forward"
}

// checkBuffer panics unless the strided buffer pair can hold n
// elements. This is a contract check on caller-supplied buffers, not a
// recoverable condition.
func checkBuffer(re, im []float64, stride, n int) {
	if stride < 1 {
		panic(fmt.Sprintf("fft: invalid stride %d", stride))
	}
	need := (n-1)*stride + 1
	if len(re) < need || len(im) < need {
		panic(fmt.Sprintf("fft: buffer too short for %d elements at stride %d (re=%d, im=%d)",
			n, stride, len(re), len(im)))
	}
}

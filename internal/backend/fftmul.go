package backend

import (
	"math"
	"math/big"
	"math/bits"

	"github.com/agbru/numcore/internal/bigint"
	"github.com/agbru/numcore/internal/fft"
)

// mulWithOptions multiplies two engine integers, switching from the
// schoolbook path to transform-based multiplication when both operands
// exceed fftBits bits. A zero or negative fftBits disables the
// transform path.
func mulWithOptions(a, b bigint.Int, fftBits int) bigint.Int {
	if fftBits > 0 && a.WordLen()*64 >= fftBits && b.WordLen()*64 >= fftBits {
		return bigint.FromBigInt(fftMul(a.BigInt(), b.BigInt()))
	}
	return a.Mul(b)
}

// fftMul multiplies x and y by convolving their byte-limb vectors with
// the transform engine and propagating carries in base 256.
//
// Byte limbs keep every convolution coefficient below 2^16 * n, so for
// any operand the engine supports the coefficients sit far inside
// float64's exact-integer range and round back to the true values.
func fftMul(x, y *big.Int) *big.Int {
	if x.Sign() == 0 || y.Sign() == 0 {
		return new(big.Int)
	}

	xb := x.Bytes()
	yb := y.Bytes()
	n := nextPowerOfTwo(len(xb) + len(yb))
	log2n := uint(bits.TrailingZeros(uint(n)))

	scratch := fft.AcquireScratch(2 * n)
	defer fft.ReleaseScratch(scratch)
	signal := make([]float64, n)
	kernel := make([]float64, n)
	dst := make([]float64, n)
	for i, b := range xb {
		signal[len(xb)-1-i] = float64(b)
	}
	for i, b := range yb {
		kernel[len(yb)-1-i] = float64(b)
	}

	fft.Conv(dst, signal, kernel, scratch, log2n)

	// Zero padding makes the cyclic convolution acyclic, so dst holds
	// the exact limb products. Propagate carries and reassemble.
	le := make([]byte, 0, n+8)
	var carry uint64
	for _, c := range dst {
		v := uint64(math.Round(c)) + carry
		le = append(le, byte(v))
		carry = v >> 8
	}
	for carry > 0 {
		le = append(le, byte(carry))
		carry >>= 8
	}

	be := make([]byte, len(le))
	for i, b := range le {
		be[len(le)-1-i] = b
	}
	z := new(big.Int).SetBytes(be)
	if x.Sign() != y.Sign() {
		z.Neg(z)
	}
	return z
}

func nextPowerOfTwo(v int) int {
	if v < 2 {
		return 2
	}
	return 1 << bits.Len(uint(v-1))
}

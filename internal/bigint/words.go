// This file provides the elementary multi-precision operations on word
// vectors that the arithmetic in the rest of the package is built from.
// All vectors are little-endian: index 0 holds the least-significant word.

package bigint

import "math/bits"

// signBit masks the two's-complement sign bit of a single word.
const signBit = 1 << 63

// maxWord is the all-ones word, used for sign extension of negative values.
const maxWord = ^uint64(0)

// addVV computes z = x + y element-wise and returns the final carry.
// All three slices must have the same length.
func addVV(z, x, y []uint64) (c uint64) {
	for i := range z {
		z[i], c = bits.Add64(x[i], y[i], c)
	}
	return c
}

// subVV computes z = x - y element-wise and returns the final borrow.
// All three slices must have the same length.
func subVV(z, x, y []uint64) (b uint64) {
	for i := range z {
		z[i], b = bits.Sub64(x[i], y[i], b)
	}
	return b
}

// addVW computes z = x + y for a single-word y and returns the carry.
func addVW(z, x []uint64, y uint64) (c uint64) {
	c = y
	for i := range z {
		z[i], c = bits.Add64(x[i], 0, c)
	}
	return c
}

// mulAddVWW computes z = x*y + r and returns the carry word.
// z and x must have the same length; z may alias x.
func mulAddVWW(z, x []uint64, y, r uint64) (c uint64) {
	c = r
	for i := range z {
		hi, lo := bits.Mul64(x[i], y)
		lo, carry := bits.Add64(lo, c, 0)
		z[i] = lo
		c = hi + carry
	}
	return c
}

// addMulVVW computes z += x*y and returns the carry word.
// z and x must have the same length.
func addMulVVW(z, x []uint64, y uint64) (c uint64) {
	for i := range z {
		hi, lo := bits.Mul64(x[i], y)
		lo, carry := bits.Add64(lo, z[i], 0)
		hi += carry
		lo, carry = bits.Add64(lo, c, 0)
		z[i] = lo
		c = hi + carry
	}
	return c
}

// shlVU computes z = x << s for 0 < s < 64 and returns the bits shifted
// out of the top word. z may alias x.
func shlVU(z, x []uint64, s uint) (c uint64) {
	n := len(z)
	if n == 0 {
		return 0
	}
	sr := 64 - s
	w1 := x[n-1]
	c = w1 >> sr
	for i := n - 1; i > 0; i-- {
		w := w1
		w1 = x[i-1]
		z[i] = w<<s | w1>>sr
	}
	z[0] = w1 << s
	return c
}

// shrVU computes z = x >> s for 0 < s < 64, shifting in fill at the top,
// and returns the bits shifted out of the bottom word. z may alias x.
// fill is 0 for non-negative values and maxWord for negative ones.
func shrVU(z, x []uint64, s uint, fill uint64) (c uint64) {
	n := len(z)
	if n == 0 {
		return 0
	}
	sl := 64 - s
	w1 := x[0]
	c = w1 << sl
	for i := 0; i < n-1; i++ {
		w := w1
		w1 = x[i+1]
		z[i] = w>>s | w1<<sl
	}
	z[n-1] = w1>>s | fill<<sl
	return c
}

// nlz returns the number of leading zero bits in x.
func nlz(x uint64) uint {
	return uint(bits.LeadingZeros64(x))
}

package bigint

import (
	"encoding/binary"
	"math/big"
)

// BigInt converts v to a math/big integer. The conversion goes through
// the magnitude bytes, so it is independent of math/big's word size.
func (v Int) BigInt() *big.Int {
	mag, neg := magnitude(v)
	buf := make([]byte, len(mag)*8)
	for i, w := range mag {
		binary.BigEndian.PutUint64(buf[(len(mag)-1-i)*8:], w)
	}
	z := new(big.Int).SetBytes(buf)
	if neg {
		z.Neg(z)
	}
	return z
}

// FromBigInt converts a math/big integer to an Int.
func FromBigInt(x *big.Int) Int {
	b := x.Bytes()
	n := (len(b) + 7) / 8
	if n == 0 {
		return smallCache[0]
	}
	mag := make([]uint64, n)
	for i := 0; i < len(b); i++ {
		// b is big-endian; byte i sits (len(b)-1-i) bytes above bit 0.
		shift := uint(len(b)-1-i) * 8
		mag[shift/64] |= uint64(b[i]) << (shift % 64)
	}
	return fromMagnitude(mag, x.Sign() < 0)
}

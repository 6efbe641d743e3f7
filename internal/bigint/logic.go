package bigint

// Bitwise operations work directly on the two's-complement word
// vectors: both operands are sign-extended to a common width first, so
// the asymmetric treatment of negative operands falls out of the
// representation itself.

// And returns v & u.
func (v Int) And(u Int) Int {
	x, y := signExtend(v.words, u.words, 0)
	for i := range x {
		x[i] &= y[i]
	}
	return makeInt(x)
}

// Or returns v | u.
func (v Int) Or(u Int) Int {
	x, y := signExtend(v.words, u.words, 0)
	for i := range x {
		x[i] |= y[i]
	}
	return makeInt(x)
}

// Xor returns v ^ u.
func (v Int) Xor(u Int) Int {
	x, y := signExtend(v.words, u.words, 0)
	for i := range x {
		x[i] ^= y[i]
	}
	return makeInt(x)
}

// Not returns ^v, the bitwise complement of v, which for
// two's-complement values equals -(v+1).
func (v Int) Not() Int {
	z := make([]uint64, len(v.words))
	for i, w := range v.words {
		z[i] = ^w
	}
	return makeInt(z)
}

package bigint

// Add returns v + u.
func (v Int) Add(u Int) Int {
	a, b := v.words, u.words

	// Single-word fast path. A wrapped native sum is only wrong when
	// both operands carry the same sign and the sum flipped it; a
	// mixed-sign overflow flag is spurious and the wrapped result is
	// exact.
	if len(a) == 1 && len(b) == 1 {
		s := a[0] + b[0]
		if (a[0]^s)&(b[0]^s)&signBit == 0 {
			return makeInt([]uint64{s})
		}
	}

	// General path: sign-extend both operands with one guard word so
	// the ripple-carry sum cannot misrepresent its sign, then add.
	x, y := signExtend(a, b, 1)
	addVV(x, x, y)
	return makeInt(x)
}

// Sub returns v - u. Subtraction is addition of the two's-complement
// negation.
func (v Int) Sub(u Int) Int {
	return v.Add(u.Neg())
}

// Mul returns v * u using schoolbook long multiplication on the
// operand magnitudes, negating the product when exactly one operand is
// negative.
func (v Int) Mul(u Int) Int {
	x, xNeg := magnitude(v)
	y, yNeg := magnitude(u)
	if len(x) == 0 || len(y) == 0 {
		return smallCache[0]
	}

	z := make([]uint64, len(x)+len(y)+1)
	for i, d := range y {
		if d == 0 {
			continue
		}
		z[i+len(x)] = addMulVVW(z[i:i+len(x)], x, d)
	}

	return fromMagnitude(z, xNeg != yNeg)
}

package bigint

import "math/bits"

// Div returns the quotient of v / u, truncated toward zero.
// It panics if u is zero.
func (v Int) Div(u Int) Int {
	q, _ := v.DivMod(u)
	return q
}

// Mod returns the remainder of v / u. The result takes the sign of the
// dividend v. It panics if u is zero.
func (v Int) Mod(u Int) Int {
	_, r := v.DivMod(u)
	return r
}

// DivMod returns the truncated quotient and remainder of v / u, such
// that q*u + r == v and |r| < |u|. It panics if u is zero.
func (v Int) DivMod(u Int) (q, r Int) {
	if u.IsZero() {
		panic("bigint: division by zero")
	}

	// Single-word fast path: both operands fit a machine word and the
	// one overflowing case (most negative / -1) is excluded.
	if len(v.words) == 1 && len(u.words) == 1 {
		a, b := int64(v.words[0]), int64(u.words[0])
		if !(a == -1<<63 && b == -1) {
			return FromInt64(a / b), FromInt64(a % b)
		}
	}

	x, xNeg := magnitude(v)
	y, yNeg := magnitude(u)

	qm, rm := divMag(x, y)
	return fromMagnitude(qm, xNeg != yNeg), fromMagnitude(rm, xNeg)
}

// divMag divides the unsigned magnitude u by the unsigned magnitude m,
// returning quotient and remainder magnitudes. Both inputs carry no
// leading zero words; m must be non-empty (nonzero). u is consumed.
func divMag(u, m []uint64) (q, r []uint64) {
	// Quotient is zero whenever the divisor has more words than the
	// dividend; the dividend is the remainder unchanged.
	if len(m) > len(u) {
		return nil, u
	}
	if len(m) == 1 {
		return divMagWord(u, m[0])
	}
	return divMagKnuth(u, m)
}

// divMagWord divides the magnitude u by a single nonzero word, most
// significant digit first.
func divMagWord(u []uint64, d uint64) (q, r []uint64) {
	q = make([]uint64, len(u))
	var rem uint64
	for i := len(u) - 1; i >= 0; i-- {
		q[i], rem = bits.Div64(rem, u[i], d)
	}
	return q, []uint64{rem}
}

// divMagKnuth implements Knuth's Algorithm D for len(m) >= 2.
//
// The divisor is normalized so its top word has the high bit set; this
// bounds the two-word quotient-digit estimate to within 2 of the true
// digit, and the refinement loop plus the add-back correction close
// the remaining gap.
func divMagKnuth(u, m []uint64) (q, r []uint64) {
	n := len(m)
	k := len(u) - n // number of quotient digits - 1

	// Normalize: shift both operands left so m's top word has its
	// highest bit set. The working dividend gains one extra word to
	// hold the shifted-out bits.
	s := nlz(m[n-1])
	vn := make([]uint64, n)
	un := make([]uint64, len(u)+1)
	if s > 0 {
		shlVU(vn, m, s)
		un[len(u)] = u[len(u)-1] >> (64 - s)
		shlVU(un[:len(u)], u, s)
	} else {
		copy(vn, m)
		copy(un, u)
	}

	q = make([]uint64, k+1)
	qhatv := make([]uint64, n+1)
	vTop := vn[n-1]
	vSecond := vn[n-2]

	for j := k; j >= 0; j-- {
		// Estimate the quotient digit from the top two words of the
		// current dividend window and the divisor's top word.
		qhat := maxWord
		if un[j+n] != vTop {
			var rhat uint64
			qhat, rhat = bits.Div64(un[j+n], un[j+n-1], vTop)

			// Refine: decrement qhat while qhat*vSecond exceeds
			// rhat<<64 + next dividend digit. Stops as soon as rhat
			// overflows a word, at which point the estimate is
			// provably not too large.
			for {
				hi, lo := bits.Mul64(qhat, vSecond)
				if hi < rhat || (hi == rhat && lo <= un[j+n-2]) {
					break
				}
				qhat--
				prev := rhat
				rhat += vTop
				if rhat < prev {
					break
				}
			}
		}

		// Multiply and subtract: un[j:j+n+1] -= qhat * vn.
		qhatv[n] = mulAddVWW(qhatv[:n], vn, qhat, 0)
		borrow := subVV(un[j:j+n+1], un[j:j+n+1], qhatv)

		if borrow != 0 {
			// qhat was one too large: add the divisor back once.
			c := addVV(un[j:j+n], un[j:j+n], vn)
			un[j+n] += c
			qhat--
		}
		q[j] = qhat
	}

	// Unnormalize the remainder.
	r = un[:n]
	if s > 0 {
		shrVU(r, r, s, 0)
	}
	return q, r
}

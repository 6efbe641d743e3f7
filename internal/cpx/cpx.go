// Package cpx provides a complex value type whose zero and infinity
// semantics follow the one-point compactification of the plane: every
// value with a non-finite component is the single point at infinity,
// a valid value rather than an error. Magnitude and division are
// computed with operand scaling so they neither overflow nor lose
// precision prematurely for well-conditioned inputs.
package cpx

import "math"

// Complex is a complex number with float64 components.
type Complex struct {
	Re float64
	Im float64
}

// Infinity is the canonical point at infinity. All non-finite complex
// values compare equal to it.
var Infinity = Complex{Re: math.Inf(1), Im: 0}

// New returns the complex number re + i*im.
func New(re, im float64) Complex {
	return Complex{Re: re, Im: im}
}

// IsFinite reports whether both components are finite.
func (z Complex) IsFinite() bool {
	return !math.IsInf(z.Re, 0) && !math.IsNaN(z.Re) &&
		!math.IsInf(z.Im, 0) && !math.IsNaN(z.Im)
}

// IsZero reports whether z is exactly zero.
func (z Complex) IsZero() bool {
	return z.Re == 0 && z.Im == 0
}

// Equal reports whether z and w represent the same point. Any two
// non-finite values are the same point at infinity, regardless of
// which component is non-finite or whether it is a NaN.
func (z Complex) Equal(w Complex) bool {
	zf, wf := z.IsFinite(), w.IsFinite()
	if !zf || !wf {
		return !zf && !wf
	}
	return z.Re == w.Re && z.Im == w.Im
}

// Conj returns the complex conjugate of z.
func (z Complex) Conj() Complex {
	return Complex{Re: z.Re, Im: -z.Im}
}

// Abs returns the length (Euclidean magnitude) of z. The computation
// scales by the larger component, so it does not overflow for values
// whose length is representable and does not underflow to zero for
// subnormal components. The point at infinity has infinite length.
func (z Complex) Abs() float64 {
	if !z.IsFinite() {
		return math.Inf(1)
	}
	x, y := math.Abs(z.Re), math.Abs(z.Im)
	if x < y {
		x, y = y, x
	}
	if x == 0 {
		return 0
	}
	r := y / x
	return x * math.Sqrt(1+r*r)
}

// Mul returns z * w, folding any non-finite result into the point at
// infinity.
func (z Complex) Mul(w Complex) Complex {
	return canonical(Complex{
		Re: z.Re*w.Re - z.Im*w.Im,
		Im: z.Re*w.Im + z.Im*w.Re,
	})
}

// Div returns z / w using Smith's scaled algorithm: the division is
// rearranged around the ratio of w's components so the intermediate
// products stay near the magnitude of the result instead of near the
// square of w's magnitude. Division by zero and any overflow yield the
// point at infinity.
func (z Complex) Div(w Complex) Complex {
	if w.IsZero() {
		return Infinity
	}
	if math.Abs(w.Re) >= math.Abs(w.Im) {
		r := w.Im / w.Re
		den := w.Re + w.Im*r
		return canonical(Complex{
			Re: (z.Re + z.Im*r) / den,
			Im: (z.Im - z.Re*r) / den,
		})
	}
	r := w.Re / w.Im
	den := w.Im + w.Re*r
	return canonical(Complex{
		Re: (z.Re*r + z.Im) / den,
		Im: (z.Im*r - z.Re) / den,
	})
}

// canonical folds values with a non-finite component into the single
// point at infinity.
func canonical(z Complex) Complex {
	if z.IsFinite() {
		return z
	}
	return Infinity
}

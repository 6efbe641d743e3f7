package cpx

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAbs(t *testing.T) {
	tests := []struct {
		name string
		z    Complex
		want float64
	}{
		{"zero", New(0, 0), 0},
		{"real axis", New(-5, 0), 5},
		{"imaginary axis", New(0, 12), 12},
		{"pythagorean", New(3, -4), 5},
		{"huge components", New(3e300, 4e300), 5e300},
		{"tiny components", New(3e-310, 4e-310), 5e-310},
		{"infinity", Infinity, math.Inf(1)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.z.Abs()
			if math.IsInf(tc.want, 1) {
				assert.True(t, math.IsInf(got, 1))
				return
			}
			assert.InEpsilon(t, tc.want, got, 1e-12)
		})
	}
}

func TestAbsAvoidsNaiveOverflow(t *testing.T) {
	// |3e300 + 4e300i| overflows if computed as sqrt(re²+im²).
	z := New(3e300, 4e300)
	assert.False(t, math.IsInf(z.Abs(), 0))
}

func TestDiv(t *testing.T) {
	tests := []struct {
		name string
		z, w Complex
		want Complex
	}{
		{"by one", New(3, 4), New(1, 0), New(3, 4)},
		{"by i", New(3, 4), New(0, 1), New(4, -3)},
		{"self", New(-7, 2), New(-7, 2), New(1, 0)},
		{"conjugate pair", New(1, 1), New(1, -1), New(0, 1)},
		{"zero numerator", New(0, 0), New(5, -3), New(0, 0)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.z.Div(tc.w)
			assert.InDelta(t, tc.want.Re, got.Re, 1e-15)
			assert.InDelta(t, tc.want.Im, got.Im, 1e-15)
		})
	}
}

func TestDivByZeroIsInfinity(t *testing.T) {
	got := New(1, 2).Div(New(0, 0))
	assert.True(t, got.Equal(Infinity))
}

func TestDivAvoidsIntermediateOverflow(t *testing.T) {
	// The naive denominator re²+im² overflows here; Smith's
	// rearrangement keeps the intermediates near the result.
	z := New(1e300, 1e300)
	w := New(2e300, 2e300)
	got := z.Div(w)
	assert.InDelta(t, 0.5, got.Re, 1e-15)
	assert.InDelta(t, 0.0, got.Im, 1e-15)
}

func TestDivMulRoundTrip(t *testing.T) {
	pairs := []struct{ z, w Complex }{
		{New(3, 4), New(-2, 7)},
		{New(-1.5, 0.25), New(1e-3, -1e3)},
		{New(1e150, -1e-150), New(2, 3)},
	}
	for _, p := range pairs {
		q := p.z.Div(p.w)
		back := q.Mul(p.w)
		assert.InEpsilon(t, p.z.Abs(), back.Abs(), 1e-12)
		assert.InDelta(t, p.z.Re, back.Re, math.Abs(p.z.Re)*1e-12+1e-300)
		assert.InDelta(t, p.z.Im, back.Im, math.Abs(p.z.Im)*1e-12+1e-300)
	}
}

func TestInfinityCanonicalization(t *testing.T) {
	// Any non-finite component means the single point at infinity.
	variants := []Complex{
		{Re: math.Inf(1), Im: 0},
		{Re: math.Inf(-1), Im: 5},
		{Re: 0, Im: math.Inf(1)},
		{Re: math.NaN(), Im: 1},
	}
	for _, v := range variants {
		assert.True(t, v.Equal(Infinity))
		assert.True(t, Infinity.Equal(v))
	}
	assert.False(t, New(1, 2).Equal(Infinity))

	// Overflowing operations land on the canonical representation.
	big := New(1e308, 1e308)
	prod := big.Mul(big)
	assert.True(t, prod.Equal(Infinity))
	assert.Equal(t, Infinity, prod)
}

func TestConj(t *testing.T) {
	z := New(2, -3)
	assert.Equal(t, New(2, 3), z.Conj())
	assert.Equal(t, z, z.Conj().Conj())
}

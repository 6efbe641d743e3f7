//go:build gmp

// This file provides a GMP-backed backend, conditionally compiled with
// the "gmp" build tag. The build tag architecture ensures that:
//   - The project builds without GMP by default (native and stdbig)
//   - GMP support is opt-in, requiring: go build -tags=gmp
//   - The codebase remains portable across systems without libgmp
//
// System Requirements for GMP:
//   - Linux: sudo apt-get install libgmp-dev (Debian/Ubuntu)
//   - macOS: brew install gmp

package backend

import (
	"context"
	"math/big"

	"github.com/ncw/gmp"
)

func init() {
	Register(&GMP{})
}

// GMP computes on libgmp through cgo. It wins for extremely large
// operands where GMP's assembly multiplication outpaces math/big; for
// small operands the cgo call overhead dominates.
type GMP struct{}

// Name returns the backend identifier.
func (GMP) Name() string { return "gmp" }

// Factorial computes n! with a product tree over gmp integers.
func (GMP) Factorial(ctx context.Context, report ProgressFunc, n uint64, _ Options) (*big.Int, error) {
	if report == nil {
		report = NopProgress
	}
	if n < 2 {
		report(1)
		return big.NewInt(1), nil
	}

	done := uint64(0)
	tick := func(terms uint64) {
		done += terms
		report(float64(done) / float64(n-1))
	}

	p, err := gmpRangeProduct(ctx, 2, n, tick)
	if err != nil {
		return nil, err
	}
	report(1)
	return gmpToStd(p), nil
}

func gmpRangeProduct(ctx context.Context, lo, hi uint64, tick func(uint64)) (*gmp.Int, error) {
	const leafWidth = 16
	if hi-lo < leafWidth {
		p := gmp.NewInt(int64(lo))
		t := gmp.NewInt(0)
		for k := lo + 1; k <= hi; k++ {
			p.Mul(p, t.SetInt64(int64(k)))
		}
		if err := checkCtx(ctx); err != nil {
			return nil, err
		}
		tick(hi - lo + 1)
		return p, nil
	}
	mid := lo + (hi-lo)/2
	left, err := gmpRangeProduct(ctx, lo, mid, tick)
	if err != nil {
		return nil, err
	}
	right, err := gmpRangeProduct(ctx, mid+1, hi, tick)
	if err != nil {
		return nil, err
	}
	return left.Mul(left, right), nil
}

// Power computes base**exp by binary exponentiation on gmp integers.
func (GMP) Power(ctx context.Context, report ProgressFunc, base int64, exp uint64, _ Options) (*big.Int, error) {
	if report == nil {
		report = NopProgress
	}
	result := gmp.NewInt(1)
	acc := gmp.NewInt(base)

	total := bitLen64(exp)
	for i := 0; exp > 0; i++ {
		if err := checkCtx(ctx); err != nil {
			return nil, err
		}
		if exp&1 != 0 {
			result.Mul(result, acc)
		}
		exp >>= 1
		if exp > 0 {
			acc.Mul(acc, acc)
		}
		report(float64(i+1) / float64(total))
	}

	report(1)
	return gmpToStd(result), nil
}

// gmpToStd converts a gmp integer to a standard library big.Int.
func gmpToStd(g *gmp.Int) *big.Int {
	z := new(big.Int).SetBytes(g.Bytes())
	if g.Sign() < 0 {
		z.Neg(z)
	}
	return z
}

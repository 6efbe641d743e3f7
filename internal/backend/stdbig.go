package backend

import (
	"context"
	"math/big"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

func init() {
	Register(&StdBig{})
}

// StdBig computes on math/big. It serves as the reference backend:
// battle-tested, asymptotically fast multiplication, no cgo.
type StdBig struct{}

// Name returns the backend identifier.
func (StdBig) Name() string { return "stdbig" }

// Factorial computes n! with the same product-tree shape as the
// native backend, so the two are directly comparable in benchmarks.
func (StdBig) Factorial(ctx context.Context, report ProgressFunc, n uint64, opts Options) (*big.Int, error) {
	if report == nil {
		report = NopProgress
	}
	if n < 2 {
		report(1)
		return big.NewInt(1), nil
	}

	var done atomic.Uint64
	tick := func(terms uint64) {
		report(float64(done.Add(terms)) / float64(n-1))
	}

	const shards = 4
	width := int(n - 1)
	result := new(big.Int)
	if opts.ParallelThreshold > 0 && width > opts.ParallelThreshold && width >= 2*shards {
		parts := make([]*big.Int, shards)
		g, gctx := errgroup.WithContext(ctx)
		span := (n - 1) / shards
		for i := 0; i < shards; i++ {
			i := i
			lo := 2 + uint64(i)*span
			hi := lo + span - 1
			if i == shards-1 {
				hi = n
			}
			g.Go(func() error {
				p, err := bigRangeProduct(gctx, lo, hi, tick)
				if err != nil {
					return err
				}
				parts[i] = p
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
		result.Set(parts[0])
		for _, p := range parts[1:] {
			result.Mul(result, p)
		}
	} else {
		p, err := bigRangeProduct(ctx, 2, n, tick)
		if err != nil {
			return nil, err
		}
		result = p
	}

	report(1)
	return result, nil
}

func bigRangeProduct(ctx context.Context, lo, hi uint64, tick func(uint64)) (*big.Int, error) {
	const leafWidth = 16
	if hi-lo < leafWidth {
		p := new(big.Int).SetUint64(lo)
		var t big.Int
		for k := lo + 1; k <= hi; k++ {
			p.Mul(p, t.SetUint64(k))
		}
		if err := checkCtx(ctx); err != nil {
			return nil, err
		}
		tick(hi - lo + 1)
		return p, nil
	}
	mid := lo + (hi-lo)/2
	left, err := bigRangeProduct(ctx, lo, mid, tick)
	if err != nil {
		return nil, err
	}
	right, err := bigRangeProduct(ctx, mid+1, hi, tick)
	if err != nil {
		return nil, err
	}
	return left.Mul(left, right), nil
}

// Power computes base**exp. math/big's Exp already implements binary
// exponentiation; progress is reported around the single call.
func (StdBig) Power(ctx context.Context, report ProgressFunc, base int64, exp uint64, _ Options) (*big.Int, error) {
	if report == nil {
		report = NopProgress
	}
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	report(0)
	result := new(big.Int).Exp(big.NewInt(base), new(big.Int).SetUint64(exp), nil)
	report(1)
	return result, nil
}

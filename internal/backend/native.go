package backend

import (
	"context"
	"math/big"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/agbru/numcore/internal/bigint"
)

func init() {
	Register(&Native{})
}

// Native computes on the in-house two's-complement engine. It exists
// both as a production backend and as a continuous cross-check of that
// engine against math/big and GMP on real workloads.
type Native struct{}

// Name returns the backend identifier.
func (Native) Name() string { return "native" }

// Factorial computes n! with a divide-and-conquer product tree. The
// top of the tree is split across goroutines when the range exceeds
// the parallel threshold.
func (Native) Factorial(ctx context.Context, report ProgressFunc, n uint64, opts Options) (*big.Int, error) {
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
	var result bigint.Int
	if opts.ParallelThreshold > 0 && width > opts.ParallelThreshold && width >= 2*shards {
		// Split the range once per worker; the subproducts are
		// independent and roughly balanced.
		parts := make([]bigint.Int, shards)
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
				p, err := rangeProduct(gctx, lo, hi, opts.FFTThreshold, tick)
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
		result = parts[0]
		for _, p := range parts[1:] {
			result = mulWithOptions(result, p, opts.FFTThreshold)
		}
	} else {
		p, err := rangeProduct(ctx, 2, n, opts.FFTThreshold, tick)
		if err != nil {
			return nil, err
		}
		result = p
	}

	report(1)
	return result.BigInt(), nil
}

// rangeProduct multiplies the integers lo..hi inclusive. Balanced
// splitting keeps the operand sizes of each multiplication similar,
// which is what makes the product tree fast.
func rangeProduct(ctx context.Context, lo, hi uint64, fftBits int, tick func(uint64)) (bigint.Int, error) {
	const leafWidth = 16
	if hi-lo < leafWidth {
		p := bigint.FromUint64(lo)
		for k := lo + 1; k <= hi; k++ {
			p = p.Mul(bigint.FromUint64(k))
		}
		if err := checkCtx(ctx); err != nil {
			return bigint.Int{}, err
		}
		tick(hi - lo + 1)
		return p, nil
	}
	mid := lo + (hi-lo)/2
	left, err := rangeProduct(ctx, lo, mid, fftBits, tick)
	if err != nil {
		return bigint.Int{}, err
	}
	right, err := rangeProduct(ctx, mid+1, hi, fftBits, tick)
	if err != nil {
		return bigint.Int{}, err
	}
	return mulWithOptions(left, right, fftBits), nil
}

// Power computes base**exp by binary exponentiation.
func (Native) Power(ctx context.Context, report ProgressFunc, base int64, exp uint64, opts Options) (*big.Int, error) {
	if report == nil {
		report = NopProgress
	}
	result := bigint.FromInt64(1)
	acc := bigint.FromInt64(base)

	total := bitLen64(exp)
	for i := 0; exp > 0; i++ {
		if err := checkCtx(ctx); err != nil {
			return nil, err
		}
		if exp&1 != 0 {
			result = mulWithOptions(result, acc, opts.FFTThreshold)
		}
		exp >>= 1
		if exp > 0 {
			acc = mulWithOptions(acc, acc, opts.FFTThreshold)
		}
		report(float64(i+1) / float64(total))
	}

	report(1)
	return result.BigInt(), nil
}

func bitLen64(v uint64) int {
	n := 0
	for v > 0 {
		n++
		v >>= 1
	}
	if n == 0 {
		return 1
	}
	return n
}

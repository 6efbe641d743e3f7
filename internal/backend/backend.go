// Package backend defines the computation backends and their common
// contract. Each backend computes the same operations on a different
// arbitrary-precision engine, letting the orchestrator run several in
// parallel and cross-check their results.
package backend

import (
	"context"
	"math/big"
	"sort"
	"sync"

	apperrors "github.com/agbru/numcore/internal/errors"
)

// ProgressFunc receives completion fractions in [0, 1]. Backends call
// it from the computing goroutine; implementations must be cheap and
// non-blocking.
type ProgressFunc func(float64)

// NopProgress discards progress updates.
func NopProgress(float64) {}

// Options carries tuning parameters resolved by the configuration
// layer.
type Options struct {
	// ParallelThreshold is the range width (in multiplication terms)
	// above which a backend may split work across goroutines. Zero
	// disables parallelism.
	ParallelThreshold int
	// FFTThreshold is the operand bit count above which
	// transform-based multiplication is preferred, for backends that
	// can choose.
	FFTThreshold int
}

// Backend computes big-number operations. Results are reported as
// math/big integers regardless of the internal representation, so the
// orchestrator can compare backends directly.
type Backend interface {
	// Name returns the backend identifier used in flags and reports.
	Name() string

	// Factorial computes n!.
	Factorial(ctx context.Context, report ProgressFunc, n uint64, opts Options) (*big.Int, error)

	// Power computes base**exp.
	Power(ctx context.Context, report ProgressFunc, base int64, exp uint64, opts Options) (*big.Int, error)
}

var (
	registryMu sync.RWMutex
	registry   = map[string]Backend{}
)

// Register adds a backend to the global registry. Backends register
// from init so build tags control availability.
func Register(b Backend) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[b.Name()] = b
}

// All returns every registered backend, sorted by name for stable
// ordering.
func All() []Backend {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	backends := make([]Backend, len(names))
	for i, name := range names {
		backends[i] = registry[name]
	}
	return backends
}

// ByNames resolves backend names to instances. A nil or empty list
// selects every registered backend.
func ByNames(names []string) ([]Backend, error) {
	if len(names) == 0 {
		return All(), nil
	}
	registryMu.RLock()
	defer registryMu.RUnlock()
	backends := make([]Backend, 0, len(names))
	for _, name := range names {
		b, ok := registry[name]
		if !ok {
			return nil, apperrors.ValidationError{Field: "backend", Message: "unknown backend " + name}
		}
		backends = append(backends, b)
	}
	return backends, nil
}

// checkCtx returns the context error, wrapped, if the context is done.
func checkCtx(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}

package metrics

import (
	"fmt"
	"math"
)

// MemoryEstimate approximates the footprint of a computation before it
// runs, so a memory budget can be enforced up front.
type MemoryEstimate struct {
	// ResultBytes is the size of the final integer.
	ResultBytes uint64
	// PeakBytes includes the temporaries alive during the last
	// multiplication, roughly two operands plus the product.
	PeakBytes uint64
	// TotalBytes is the value compared against a configured limit.
	TotalBytes uint64
}

// EstimateMemory derives a footprint estimate from the expected result
// size in bits.
func EstimateMemory(resultBits float64) MemoryEstimate {
	if resultBits < 64 {
		resultBits = 64
	}
	resultBytes := uint64(math.Ceil(resultBits / 8))
	peak := resultBytes * 3
	return MemoryEstimate{
		ResultBytes: resultBytes,
		PeakBytes:   peak,
		TotalBytes:  peak,
	}
}

// EstimateFactorialBits returns the bit length of n! via Stirling's
// approximation. Returns 0 for n < 2.
func EstimateFactorialBits(n uint64) float64 {
	if n < 2 {
		return 0
	}
	fn := float64(n)
	return (fn*math.Log(fn) - fn + 0.5*math.Log(2*math.Pi*fn)) / math.Ln2
}

// EstimatePowerBits returns the bit length of base**exp. Returns 0 when
// |base| < 2.
func EstimatePowerBits(base int64, exp uint64) float64 {
	abs := base
	if abs < 0 {
		abs = -abs
	}
	if abs < 2 {
		return 0
	}
	return float64(exp) * math.Log2(float64(abs))
}

// FormatMemoryEstimate renders the estimate for user-facing messages.
func FormatMemoryEstimate(e MemoryEstimate) string {
	return fmt.Sprintf("%s result, ~%s peak", FormatBytes(e.ResultBytes), FormatBytes(e.PeakBytes))
}

package metrics

import (
	"fmt"
	"math/big"
	"time"
)

// Indicators holds throughput figures derived from a finished or
// in-flight computation.
type Indicators struct {
	// Digits is the decimal length of the result (estimated while live).
	Digits int
	// Bits is the binary length of the result (estimated while live).
	Bits int
	// DigitsPerSecond is the decimal output rate.
	DigitsPerSecond float64
	// BitsPerSecond is the binary output rate.
	BitsPerSecond float64
	// Live marks figures extrapolated from progress rather than
	// measured on a final result.
	Live bool
}

const digitsPerBit = 0.30102999566398119521 // log10(2)

// Compute derives throughput indicators from a completed result.
// Returns nil when result is nil or the duration is not positive.
func Compute(result *big.Int, duration time.Duration) *Indicators {
	if result == nil || duration <= 0 {
		return nil
	}
	bits := result.BitLen()
	digits := int(float64(bits)*digitsPerBit) + 1
	secs := duration.Seconds()
	return &Indicators{
		Digits:          digits,
		Bits:            bits,
		DigitsPerSecond: float64(digits) / secs,
		BitsPerSecond:   float64(bits) / secs,
	}
}

// ComputeLive extrapolates indicators from an in-flight computation.
// totalBits is the estimated binary size of the final result and
// progress is the fraction completed in [0, 1].
func ComputeLive(totalBits float64, progress float64, elapsed time.Duration) *Indicators {
	if totalBits <= 0 || progress <= 0 || elapsed <= 0 {
		return nil
	}
	if progress > 1 {
		progress = 1
	}
	doneBits := totalBits * progress
	secs := elapsed.Seconds()
	return &Indicators{
		Digits:          int(totalBits * digitsPerBit),
		Bits:            int(totalBits),
		DigitsPerSecond: doneBits * digitsPerBit / secs,
		BitsPerSecond:   doneBits / secs,
	}
}

// FormatBitsPerSecond renders a bit rate with a metric suffix.
func FormatBitsPerSecond(v float64) string {
	return formatRate(v, "bit/s")
}

// FormatDigitsPerSecond renders a digit rate with a metric suffix.
func FormatDigitsPerSecond(v float64) string {
	return formatRate(v, "dig/s")
}

func formatRate(v float64, unit string) string {
	switch {
	case v >= 1e9:
		return fmt.Sprintf("%.1f G%s", v/1e9, unit)
	case v >= 1e6:
		return fmt.Sprintf("%.1f M%s", v/1e6, unit)
	case v >= 1e3:
		return fmt.Sprintf("%.1f k%s", v/1e3, unit)
	default:
		return fmt.Sprintf("%.1f %s", v, unit)
	}
}

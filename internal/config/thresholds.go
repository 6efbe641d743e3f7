package config

import "runtime"

// Threshold resolution chain (highest priority first):
//  1. CLI flags (--threshold, --fft-threshold)
//  2. Environment variables (NUMCORE_THRESHOLD, NUMCORE_FFT_THRESHOLD)
//  3. Cached calibration profile (~/.numcalc_calibration.json)
//  4. Adaptive hardware estimation (this file)

// ApplyAdaptiveThresholds fills in thresholds still at their zero
// default using hardware characteristics (CPU cores, word size).
// User-specified values from flags or the environment are preserved.
func ApplyAdaptiveThresholds(cfg AppConfig) AppConfig {
	if cfg.ParallelThreshold == 0 {
		cfg.ParallelThreshold = EstimateOptimalParallelThreshold()
	}
	if cfg.FFTThreshold == 0 {
		cfg.FFTThreshold = EstimateOptimalFFTThreshold()
	}
	return cfg
}

// EstimateOptimalParallelThreshold provides a heuristic estimate of
// the word count above which splitting a computation across goroutines
// pays for its overhead, without running benchmarks.
func EstimateOptimalParallelThreshold() int {
	numCPU := runtime.NumCPU()

	switch {
	case numCPU == 1:
		return 0 // No parallelism
	case numCPU <= 2:
		return 8192 // High threshold - parallelism overhead is significant
	case numCPU <= 4:
		return 4096 // Default
	case numCPU <= 8:
		return 2048 // Can use more parallelism
	case numCPU <= 16:
		return 1024 // Many cores available
	default:
		return 512 // High core count - aggressive parallelism
	}
}

// EstimateOptimalFFTThreshold provides a heuristic estimate of the
// operand bit count above which transform-based multiplication beats
// the schoolbook path, without running benchmarks.
func EstimateOptimalFFTThreshold() int {
	wordSize := 32 << (^uint(0) >> 63)

	if wordSize == 64 {
		return 500000 // 500K bits on 64-bit
	}
	return 250000 // 250K bits on 32-bit
}

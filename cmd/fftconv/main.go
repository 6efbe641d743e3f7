// fftconv cyclically convolves two real vectors read from files or
// standard input and writes the result, one value per line.
//
// Usage:
//
//	fftconv [-pad] signal.txt kernel.txt
//	echo "1 2 3 4" | fftconv - kernel.txt
//
// Vectors are whitespace-separated decimal numbers. Both vectors must
// have the same length; with -pad (the default) they are zero-padded to
// the next power of two, otherwise the length must already be one.
package main

import (
	"flag"
	"fmt"
	"io"
	"math/bits"
	"os"
	"strconv"
	"strings"

	"github.com/agbru/numcore/internal/cpu"
	"github.com/agbru/numcore/internal/fft"
)

func main() {
	pad := flag.Bool("pad", true, "zero-pad inputs to the next power of two")
	features := flag.Bool("cpu", false, "print detected CPU features and exit")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: fftconv [flags] signal kernel\n")
		fmt.Fprintf(flag.CommandLine.Output(), "Files hold whitespace-separated numbers; \"-\" reads stdin.\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *features {
		fmt.Println(cpu.DetectFeatures().Summary())
		return
	}

	if flag.NArg() != 2 {
		flag.Usage()
		os.Exit(2)
	}

	signal, err := readVector(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "fftconv: reading signal: %v\n", err)
		os.Exit(1)
	}
	kernel, err := readVector(flag.Arg(1))
	if err != nil {
		fmt.Fprintf(os.Stderr, "fftconv: reading kernel: %v\n", err)
		os.Exit(1)
	}

	result, err := convolve(signal, kernel, *pad)
	if err != nil {
		fmt.Fprintf(os.Stderr, "fftconv: %v\n", err)
		os.Exit(1)
	}

	w := os.Stdout
	for _, v := range result {
		fmt.Fprintf(w, "%g\n", v)
	}
}

// readVector parses whitespace-separated numbers from a file, or stdin
// when path is "-".
func readVector(path string) ([]float64, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, err
	}
	return parseVector(string(data))
}

// parseVector converts whitespace-separated decimal numbers into a
// slice.
func parseVector(s string) ([]float64, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return nil, fmt.Errorf("empty vector")
	}
	values := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("value %d: %w", i+1, err)
		}
		values[i] = v
	}
	return values, nil
}

// convolve cyclically convolves two equal-length vectors. With pad set,
// both are zero-extended to the next power of two first; the returned
// slice keeps the padded length since cyclic convolution wraps.
func convolve(signal, kernel []float64, pad bool) ([]float64, error) {
	if len(signal) != len(kernel) {
		return nil, fmt.Errorf("length mismatch: signal has %d values, kernel has %d", len(signal), len(kernel))
	}
	n := len(signal)
	if pad {
		n = nextPow2(n)
		if n < 2 {
			n = 2
		}
	} else if n < 2 || n&(n-1) != 0 {
		return nil, fmt.Errorf("length %d is not a power of two (drop -pad=false or pad the input)", n)
	}

	s := make([]float64, n)
	k := make([]float64, n)
	copy(s, signal)
	copy(k, kernel)

	dst := make([]float64, n)
	scratch := fft.AcquireScratch(2 * n)
	defer fft.ReleaseScratch(scratch)
	log2n := uint(bits.TrailingZeros(uint(n)))
	fft.Conv(dst, s, k, scratch, log2n)
	return dst, nil
}

// nextPow2 returns the smallest power of two >= n.
func nextPow2(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}

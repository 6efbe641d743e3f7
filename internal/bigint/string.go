package bigint

import (
	"errors"
	"fmt"
)

// ErrSyntax is returned by Parse for input that is not an optionally
// signed run of ASCII decimal digits.
var ErrSyntax = errors.New("bigint: invalid decimal syntax")

// Parse interprets s as an optionally signed decimal integer and
// returns its value. A leading '+' or '-' is accepted; the remainder
// must be one or more ASCII digits. Empty input, a lone sign, and any
// non-digit character are rejected with an error wrapping ErrSyntax;
// no partial value is ever produced.
func Parse(s string) (Int, error) {
	if s == "" {
		return Int{}, fmt.Errorf("%w: empty string", ErrSyntax)
	}

	neg := false
	digits := s
	switch s[0] {
	case '+':
		digits = s[1:]
	case '-':
		neg = true
		digits = s[1:]
	}
	if digits == "" {
		return Int{}, fmt.Errorf("%w: %q has no digits", ErrSyntax, s)
	}

	// Accumulate mag = mag*10 + digit over the magnitude words.
	mag := make([]uint64, 0, len(digits)/19+1)
	for i := 0; i < len(digits); i++ {
		c := digits[i]
		if c < '0' || c > '9' {
			return Int{}, fmt.Errorf("%w: unexpected character %q in %q", ErrSyntax, c, s)
		}
		if c := mulAddVWW(mag, mag, 10, uint64(c-'0')); c != 0 {
			mag = append(mag, c)
		}
	}

	return fromMagnitude(mag, neg), nil
}

// MustParse is like Parse but panics on malformed input. It is
// intended for literals in tests and package initialization.
func MustParse(s string) Int {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

// String formats v in decimal by repeatedly dividing the magnitude by
// ten and collecting the remainders, then reattaching the sign.
func (v Int) String() string {
	mag, neg := magnitude(v)
	if len(mag) == 0 {
		return "0"
	}

	// A 64-bit word carries at most 20 decimal digits.
	buf := make([]byte, 0, len(mag)*20+1)
	for len(mag) > 0 {
		var rem []uint64
		mag, rem = divMagWord(mag, 10)
		buf = append(buf, byte('0'+rem[0]))
		for len(mag) > 0 && mag[len(mag)-1] == 0 {
			mag = mag[:len(mag)-1]
		}
	}
	if neg {
		buf = append(buf, '-')
	}

	// Digits were collected least significant first.
	for i, j := 0, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}
	return string(buf)
}

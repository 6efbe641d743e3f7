// Package bigint implements an arbitrary-precision signed integer type
// stored as a little-endian sequence of 64-bit words interpreted in
// two's complement.
//
// The sign of a value is carried by the most-significant bit of the
// most-significant word, exactly as it would be for a fixed-width
// machine integer of the same total width. Every operation returns a
// new value in canonical form: the word sequence never carries a
// redundant leading word (a leading 0 whose neighbour already encodes a
// non-negative value, or a leading all-ones word whose neighbour
// already encodes a negative one).
//
// Values are immutable. Operand word slices are never aliased by
// results, so an Int may be shared freely between goroutines.
//
// Division implements Knuth's Algorithm D (TAOCP Vol. 2, 4.3.1) with
// divisor normalization and two-word quotient-digit estimation.
// Division and modulo follow truncated semantics: the quotient is
// rounded toward zero and the remainder takes the sign of the dividend.
package bigint

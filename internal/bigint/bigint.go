package bigint

// Int is an arbitrary-precision signed integer.
//
// The zero value of Int is not directly usable; obtain values through
// New, FromInt64, Parse, or as the result of an operation. Internally
// an Int holds at least one word and is always in canonical
// (minimal two's-complement) form.
type Int struct {
	words []uint64 // little-endian two's complement, len >= 1
}

// smallCache holds the integer literals 0 through 10. Returning cached
// word slices for these avoids an allocation on the hot construction
// path; callers never mutate result words, so sharing is safe.
var smallCache = func() [11]Int {
	var c [11]Int
	for i := range c {
		c[i] = Int{words: []uint64{uint64(i)}}
	}
	return c
}()

// New returns the Int with value v.
func New(v int64) Int {
	return FromInt64(v)
}

// FromInt64 returns the Int with value v.
func FromInt64(v int64) Int {
	if v >= 0 && v <= 10 {
		return smallCache[v]
	}
	return Int{words: []uint64{uint64(v)}}
}

// FromUint64 returns the Int with value v.
func FromUint64(v uint64) Int {
	if v <= 10 {
		return smallCache[v]
	}
	if v&signBit != 0 {
		// A guard word keeps the value non-negative.
		return Int{words: []uint64{v, 0}}
	}
	return Int{words: []uint64{v}}
}

// makeInt wraps w in an Int after normalizing. It takes ownership of w.
func makeInt(w []uint64) Int {
	w = norm(w)
	if len(w) == 1 && w[0] <= 10 {
		return smallCache[w[0]]
	}
	return Int{words: w}
}

// norm trims redundant leading words while preserving two's-complement
// polarity. A leading 0 is dropped only if the word beneath has its
// sign bit clear; a leading all-ones word only if the word beneath has
// its sign bit set. A single word is never trimmed.
func norm(w []uint64) []uint64 {
	if len(w) == 0 {
		return []uint64{0}
	}
	n := len(w)
	for n > 1 {
		top := w[n-1]
		below := w[n-2]
		if top == 0 && below&signBit == 0 {
			n--
			continue
		}
		if top == maxWord && below&signBit != 0 {
			n--
			continue
		}
		break
	}
	return w[:n]
}

// neg reports whether the two's-complement word vector w encodes a
// negative value.
func negW(w []uint64) bool {
	return w[len(w)-1]&signBit != 0
}

// fillWord returns the sign-extension word for w: 0 when non-negative,
// all ones when negative.
func fillWord(w []uint64) uint64 {
	if negW(w) {
		return maxWord
	}
	return 0
}

// signExtend returns copies of a and b padded with their respective
// fill words to a common length of max(len(a), len(b)) + guard words.
func signExtend(a, b []uint64, guard int) (x, y []uint64) {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	n += guard
	x = make([]uint64, n)
	y = make([]uint64, n)
	copy(x, a)
	copy(y, b)
	fa := fillWord(a)
	fb := fillWord(b)
	for i := len(a); i < n; i++ {
		x[i] = fa
	}
	for i := len(b); i < n; i++ {
		y[i] = fb
	}
	return x, y
}

// negWords returns the two's-complement negation of w into a fresh
// slice of the same length. The result is not normalized and, for the
// most negative representable value of a given width, wraps around;
// callers that need the true magnitude must extend w first.
func negWords(w []uint64) []uint64 {
	z := make([]uint64, len(w))
	c := uint64(1)
	for i, x := range w {
		s := ^x + c
		if c == 1 && s != 0 {
			c = 0
		}
		z[i] = s
	}
	return z
}

// magnitude returns the unsigned magnitude of v as a word vector with
// no leading zero words (an all-zero value yields an empty slice),
// together with v's sign.
func magnitude(v Int) (mag []uint64, neg bool) {
	w := v.words
	if negW(w) {
		// Extend by a sign word before negating so the magnitude of
		// the most negative value of this width survives the wrap.
		ext := make([]uint64, len(w)+1)
		copy(ext, w)
		ext[len(w)] = maxWord
		mag = negWords(ext)
		neg = true
	} else {
		mag = make([]uint64, len(w))
		copy(mag, w)
	}
	n := len(mag)
	for n > 0 && mag[n-1] == 0 {
		n--
	}
	return mag[:n], neg
}

// fromMagnitude builds a canonical Int from an unsigned magnitude and a
// sign. The magnitude is consumed and must not be used afterwards.
func fromMagnitude(mag []uint64, neg bool) Int {
	n := len(mag)
	for n > 0 && mag[n-1] == 0 {
		n--
	}
	mag = mag[:n]
	if len(mag) == 0 {
		return smallCache[0]
	}
	if mag[len(mag)-1]&signBit != 0 {
		// Top bit set: a guard word keeps the magnitude non-negative.
		mag = append(mag, 0)
	}
	if neg {
		mag = negWords(mag)
	}
	return makeInt(mag)
}

// Sign returns -1 for negative values, 0 for zero, and +1 for positive.
func (v Int) Sign() int {
	if negW(v.words) {
		return -1
	}
	for _, w := range v.words {
		if w != 0 {
			return 1
		}
	}
	return 0
}

// IsZero reports whether v == 0.
func (v Int) IsZero() bool {
	for _, w := range v.words {
		if w != 0 {
			return false
		}
	}
	return true
}

// WordLen returns the number of words of the canonical representation.
func (v Int) WordLen() int {
	return len(v.words)
}

// Int64 returns the value of v truncated to 64 bits, and whether the
// value was exactly representable as an int64.
func (v Int) Int64() (int64, bool) {
	return int64(v.words[0]), len(v.words) == 1
}

// Neg returns -v.
func (v Int) Neg() Int {
	w := v.words
	// One guard word so negating the most negative value of this width
	// cannot wrap back to itself.
	ext := make([]uint64, len(w)+1)
	copy(ext, w)
	ext[len(w)] = fillWord(w)
	return makeInt(negWords(ext))
}

// Abs returns the absolute value of v.
func (v Int) Abs() Int {
	if negW(v.words) {
		return v.Neg()
	}
	return v
}

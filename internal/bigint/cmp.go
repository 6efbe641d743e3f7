package bigint

// Cmp compares v and u, returning -1 if v < u, 0 if v == u, and +1 if
// v > u. Signs are compared first, then word counts (a longer
// canonical vector means a larger magnitude, which inverts the
// relation for negative values), and finally the words themselves,
// most significant word first.
func (v Int) Cmp(u Int) int {
	vNeg, uNeg := negW(v.words), negW(u.words)
	switch {
	case vNeg && !uNeg:
		return -1
	case !vNeg && uNeg:
		return 1
	}

	a, b := v.words, u.words
	if len(a) != len(b) {
		longer := 1
		if len(a) < len(b) {
			longer = -1
		}
		if vNeg {
			return -longer
		}
		return longer
	}

	// Same sign and width: two's-complement order coincides with
	// unsigned lexicographic order.
	for i := len(a) - 1; i >= 0; i-- {
		switch {
		case a[i] < b[i]:
			return -1
		case a[i] > b[i]:
			return 1
		}
	}
	return 0
}

// Equal reports whether v == u.
func (v Int) Equal(u Int) bool {
	return v.Cmp(u) == 0
}

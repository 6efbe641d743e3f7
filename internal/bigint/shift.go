package bigint

// Lsh returns v << k. The shift amount is split into a structural
// whole-word move plus a sub-word bit rotation across the words; a
// sign-filled guard word keeps negative values negative.
func (v Int) Lsh(k uint) Int {
	if k == 0 {
		return v
	}
	wordShift := int(k / 64)
	bitShift := k % 64

	w := v.words
	z := make([]uint64, len(w)+wordShift+1)
	copy(z[wordShift:], w)
	z[len(z)-1] = fillWord(w)

	if bitShift > 0 {
		// The sign-filled guard word shifts too, so the vacated top
		// bits keep the operand's polarity.
		shlVU(z, z, bitShift)
	}
	return makeInt(z)
}

// Rsh returns v >> k (arithmetic shift: vacated top bits take the sign
// of v). Shifting by at least the full width yields 0 or -1.
func (v Int) Rsh(k uint) Int {
	if k == 0 {
		return v
	}
	wordShift := int(k / 64)
	bitShift := k % 64

	w := v.words
	fill := fillWord(w)
	if wordShift >= len(w) {
		return makeInt([]uint64{fill})
	}

	z := make([]uint64, len(w)-wordShift)
	copy(z, w[wordShift:])
	if bitShift > 0 {
		shrVU(z, z, bitShift, fill)
	}
	return makeInt(z)
}

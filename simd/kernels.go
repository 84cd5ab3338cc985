package simd

// And stores a AND b into dst. All three slices must have the same length;
// dst may alias a or b.
func And(dst, a, b []uint64) {
	if hasWide && len(dst) >= wideMinWords {
		andWide(dst, a, b)
		return
	}
	andGeneric(dst, a, b)
}

// AndInPlace computes dst &= src.
func AndInPlace(dst, src []uint64) {
	And(dst, dst, src)
}

// AndNotInPlace computes dst &^= src (clears every bit of dst that is set in src).
func AndNotInPlace(dst, src []uint64) {
	if hasWide && len(dst) >= wideMinWords {
		andNotWide(dst, src)
		return
	}
	andNotGeneric(dst, src)
}

// OrInPlace computes dst |= src.
func OrInPlace(dst, src []uint64) {
	if hasWide && len(dst) >= wideMinWords {
		orWide(dst, src)
		return
	}
	orGeneric(dst, src)
}

// XorInPlace computes dst ^= src.
func XorInPlace(dst, src []uint64) {
	if hasWide && len(dst) >= wideMinWords {
		xorWide(dst, src)
		return
	}
	xorGeneric(dst, src)
}

// Not inverts every word of dst. Trailing bits beyond the logical size of
// the owning vector are the caller's concern.
func Not(dst []uint64) {
	for i := range dst {
		dst[i] = ^dst[i]
	}
}

// Any reports whether any word of a is non-zero.
// The scan stops at the first non-zero word.
func Any(a []uint64) bool {
	if hasWide && len(a) >= wideMinWords {
		return anyWide(a)
	}
	return anyGeneric(a)
}

// AndAny reports whether a AND b has any bit set, without materializing the
// intersection. The scan stops at the first common bit.
func AndAny(a, b []uint64) bool {
	if hasWide && len(a) >= wideMinWords {
		return andAnyWide(a, b)
	}
	return andAnyGeneric(a, b)
}

// PopCount returns the number of set bits in a.
func PopCount(a []uint64) int {
	if hasWide && len(a) >= wideMinWords {
		return popCountWide(a)
	}
	return popCountGeneric(a)
}

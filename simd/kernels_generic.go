package simd

import "math/bits"

func andGeneric(dst, a, b []uint64) {
	b = b[:len(dst)]
	a = a[:len(dst)]
	for i := range dst {
		dst[i] = a[i] & b[i]
	}
}

func andNotGeneric(dst, src []uint64) {
	src = src[:len(dst)]
	for i := range dst {
		dst[i] &^= src[i]
	}
}

func orGeneric(dst, src []uint64) {
	src = src[:len(dst)]
	for i := range dst {
		dst[i] |= src[i]
	}
}

func xorGeneric(dst, src []uint64) {
	src = src[:len(dst)]
	for i := range dst {
		dst[i] ^= src[i]
	}
}

func anyGeneric(a []uint64) bool {
	for _, w := range a {
		if w != 0 {
			return true
		}
	}
	return false
}

func andAnyGeneric(a, b []uint64) bool {
	b = b[:len(a)]
	for i := range a {
		if a[i]&b[i] != 0 {
			return true
		}
	}
	return false
}

func popCountGeneric(a []uint64) int {
	n := 0
	for _, w := range a {
		n += bits.OnesCount64(w)
	}
	return n
}

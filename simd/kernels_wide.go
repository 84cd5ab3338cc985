package simd

import "math/bits"

// The wide kernels process four words per iteration and finish the tail
// with the generic loop. Re-slicing to exact lengths up front lets the
// compiler drop bounds checks inside the unrolled body.

func andWide(dst, a, b []uint64) {
	n := len(dst)
	a = a[:n]
	b = b[:n]
	i := 0
	for ; i+4 <= n; i += 4 {
		dst[i] = a[i] & b[i]
		dst[i+1] = a[i+1] & b[i+1]
		dst[i+2] = a[i+2] & b[i+2]
		dst[i+3] = a[i+3] & b[i+3]
	}
	andGeneric(dst[i:], a[i:], b[i:])
}

func andNotWide(dst, src []uint64) {
	n := len(dst)
	src = src[:n]
	i := 0
	for ; i+4 <= n; i += 4 {
		dst[i] &^= src[i]
		dst[i+1] &^= src[i+1]
		dst[i+2] &^= src[i+2]
		dst[i+3] &^= src[i+3]
	}
	andNotGeneric(dst[i:], src[i:])
}

func orWide(dst, src []uint64) {
	n := len(dst)
	src = src[:n]
	i := 0
	for ; i+4 <= n; i += 4 {
		dst[i] |= src[i]
		dst[i+1] |= src[i+1]
		dst[i+2] |= src[i+2]
		dst[i+3] |= src[i+3]
	}
	orGeneric(dst[i:], src[i:])
}

func xorWide(dst, src []uint64) {
	n := len(dst)
	src = src[:n]
	i := 0
	for ; i+4 <= n; i += 4 {
		dst[i] ^= src[i]
		dst[i+1] ^= src[i+1]
		dst[i+2] ^= src[i+2]
		dst[i+3] ^= src[i+3]
	}
	xorGeneric(dst[i:], src[i:])
}

func anyWide(a []uint64) bool {
	n := len(a)
	i := 0
	for ; i+4 <= n; i += 4 {
		if a[i]|a[i+1]|a[i+2]|a[i+3] != 0 {
			return true
		}
	}
	return anyGeneric(a[i:])
}

func andAnyWide(a, b []uint64) bool {
	n := len(a)
	b = b[:n]
	i := 0
	for ; i+4 <= n; i += 4 {
		if (a[i]&b[i])|(a[i+1]&b[i+1])|(a[i+2]&b[i+2])|(a[i+3]&b[i+3]) != 0 {
			return true
		}
	}
	return andAnyGeneric(a[i:], b[i:])
}

func popCountWide(a []uint64) int {
	n := len(a)
	var c0, c1, c2, c3 int
	i := 0
	for ; i+4 <= n; i += 4 {
		c0 += bits.OnesCount64(a[i])
		c1 += bits.OnesCount64(a[i+1])
		c2 += bits.OnesCount64(a[i+2])
		c3 += bits.OnesCount64(a[i+3])
	}
	return c0 + c1 + c2 + c3 + popCountGeneric(a[i:])
}

// Package simd provides word-parallel kernels for the bit-vector engine.
//
// Every kernel operates on []uint64 chunks and comes in two flavours: a scalar
// loop and a wide loop that processes four words per iteration. The wide loop
// gives the compiler independent dependency chains to schedule, which pays off
// on cores with wide vector units. The flavour is selected once at package
// initialization from the CPU features reported by golang.org/x/sys/cpu
// (AVX2 on x86-64, ASIMD on arm64); both flavours produce identical results.
//
// Callers are responsible for passing slices of equal length. The kernels
// never allocate.
package simd

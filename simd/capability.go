package simd

import "golang.org/x/sys/cpu"

// CPU feature detection flags set at package initialization.
// These are used to dispatch to the fastest available kernel flavour.
var (
	// hasWide indicates that the CPU has 256-bit (AVX2) or 128-bit (ASIMD)
	// vector units, so the four-word unrolled kernels are preferred.
	hasWide = cpu.X86.HasAVX2 || cpu.ARM64.HasASIMD
)

// wideMinWords is the shortest input for which the unrolled kernels are used.
// Below this the loop prologue costs more than it saves.
const wideMinWords = 8

// Wide reports whether the unrolled kernels are active on this CPU.
func Wide() bool {
	return hasWide
}

// Features returns a short human-readable description of the selected
// kernel flavour, suitable for log output.
func Features() string {
	switch {
	case cpu.X86.HasAVX2:
		return "wide(avx2)"
	case cpu.ARM64.HasASIMD:
		return "wide(asimd)"
	default:
		return "scalar"
	}
}

// setWide overrides kernel selection. Tests use it to exercise both flavours
// on the same machine; it returns the previous value.
func setWide(v bool) bool {
	prev := hasWide
	hasWide = v
	return prev
}

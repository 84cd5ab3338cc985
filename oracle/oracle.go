// Package oracle checks comparator networks by direct simulation.
//
// It is deliberately independent of the bitset engine: every input pattern is
// pushed through the network one compare-swap at a time.
package oracle

import (
	"fmt"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/coregx/cmpnet/internal/conv"
	"github.com/coregx/cmpnet/space"
)

// Mismatch reports the first input whose output the predicate rejects.
type Mismatch struct {
	Input  uint32
	Output uint32
	Wires  int
}

// Error implements the error interface
func (m *Mismatch) Error() string {
	return fmt.Sprintf("input %s maps to rejected output %s",
		bitString(m.Input, m.Wires), bitString(m.Output, m.Wires))
}

// Run applies path to input and returns the output pattern. Bit k of a
// pattern is wire k; a swap (i, j) with i < j leaves the OR on wire i and the
// AND on wire j.
func Run(wires int, path space.Path, input uint32) uint32 {
	out := input
	for _, p := range path {
		bi := out >> p.I & 1
		bj := out >> p.J & 1
		if bi == 0 && bj == 1 {
			out |= 1 << p.I
			out &^= 1 << p.J
		}
	}
	return out & (1<<wires - 1)
}

// Verify runs every input through path and checks pred on each output.
// It returns a *Mismatch for the first rejected output in ascending input
// order, or a validation error for a bad wire count or path.
func Verify(wires int, path space.Path, pred space.Predicate) error {
	if err := space.ValidateWires(wires); err != nil {
		return err
	}
	if pred == nil {
		return space.ErrNilPredicate
	}
	if err := path.Validate(wires); err != nil {
		return err
	}
	buf := make([]bool, wires)
	for in := range conv.IntToUint32(1 << wires) {
		out := Run(wires, path, in)
		space.Decode(out, buf)
		if !pred(buf) {
			return &Mismatch{Input: in, Output: out, Wires: wires}
		}
	}
	return nil
}

// Images returns the set of outputs path produces over all inputs.
// The path must be valid for wires.
func Images(wires int, path space.Path) *roaring.Bitmap {
	images := roaring.New()
	for in := range conv.IntToUint32(1 << wires) {
		images.Add(Run(wires, path, in))
	}
	return images
}

// bitString renders a pattern wire 0 first.
func bitString(p uint32, wires int) string {
	b := make([]byte, wires)
	for k := range b {
		b[k] = '0' + byte(p>>k&1)
	}
	return string(b)
}

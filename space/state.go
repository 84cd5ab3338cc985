package space

import (
	"github.com/RoaringBitmap/roaring/v2"

	"github.com/coregx/cmpnet/bitvec"
)

// State is the set of patterns still reachable as images of the inputs.
// It is mutated in place by Space.Apply.
type State struct {
	bits *bitvec.Vector
}

func newState(size int, full bool) *State {
	return &State{bits: bitvec.New(size, full)}
}

// Vector returns the underlying bit vector.
func (s *State) Vector() *bitvec.Vector {
	return s.bits
}

// Contains reports whether pattern p is reachable.
func (s *State) Contains(p int) bool {
	return s.bits.Get(p)
}

// Count returns the number of reachable patterns.
func (s *State) Count() int {
	return s.bits.Count()
}

// CopyFrom overwrites s with o.
func (s *State) CopyFrom(o *State) {
	s.bits.CopyFrom(o.bits)
}

// Clone returns an independent copy.
func (s *State) Clone() *State {
	return &State{bits: s.bits.Clone()}
}

// Equal reports whether both states have the same reachable patterns.
func (s *State) Equal(o *State) bool {
	return s.bits.Equal(o.bits)
}

// Key returns the byte-exact transposition key of the state.
func (s *State) Key() string {
	return s.bits.Key()
}

// KeyBytes returns the key bytes without copying; valid until the next
// mutation of s.
func (s *State) KeyBytes() []byte {
	return s.bits.KeyBytes()
}

// Patterns returns the reachable patterns as a roaring bitmap.
func (s *State) Patterns() *roaring.Bitmap {
	return toBitmap(s.bits)
}

// String renders the state as a 0/1 string, pattern 0 first.
func (s *State) String() string {
	return s.bits.String()
}

package space

import "fmt"

// Space binds a mask factory to a compiled acceptance set and implements the
// state algebra on top of them. One Space serves one search run.
type Space struct {
	wires  int
	size   int
	masks  *Masks
	accept *Acceptance
	pairs  []Pair
}

// New creates a Space for the wire count of the acceptance set.
func New(accept *Acceptance) *Space {
	return &Space{
		wires:  accept.wires,
		size:   1 << accept.wires,
		masks:  NewMasks(accept.wires),
		accept: accept,
		pairs:  CanonicalPairs(accept.wires),
	}
}

// Wires returns the number of wires.
func (s *Space) Wires() int {
	return s.wires
}

// Size returns the number of patterns, 2^Wires.
func (s *Space) Size() int {
	return s.size
}

// Masks returns the mask factory of this space.
func (s *Space) Masks() *Masks {
	return s.masks
}

// Acceptance returns the compiled predicate.
func (s *Space) Acceptance() *Acceptance {
	return s.accept
}

// Pairs returns the canonical pair order. The slice is shared and must not
// be modified.
func (s *Space) Pairs() []Pair {
	return s.pairs
}

// NewState allocates a state of the right size, either full (every pattern
// reachable) or empty.
func (s *Space) NewState(full bool) *State {
	return newState(s.size, full)
}

// Full returns the initial state: every input maps to itself.
func (s *Space) Full() *State {
	return newState(s.size, true)
}

// Apply performs the compare-swap (i, j) on st in place. scratch is used as
// temporary storage and is overwritten. Panics on an invalid pair.
func (s *Space) Apply(st *State, i, j int, scratch *State) {
	below := s.masks.Below(i, j)
	st.bits.AndInto(below, scratch.bits)
	scratch.bits.ShiftLeft(1<<j - 1<<i)
	st.bits.Or(scratch.bits)
	st.bits.And(s.masks.Complement(i, j))
}

// ApplyPath applies every pair of path to st in order.
func (s *Space) ApplyPath(st *State, path Path, scratch *State) {
	for _, p := range path {
		s.Apply(st, p.I, p.J, scratch)
	}
}

// Replay validates path and returns the state it reaches from the full state.
func (s *Space) Replay(path Path) (*State, error) {
	if err := path.Validate(s.wires); err != nil {
		return nil, err
	}
	st := s.Full()
	s.ApplyPath(st, path, s.NewState(false))
	return st, nil
}

// WouldChange reports whether the compare-swap (i, j) changes st, i.e.
// whether some reachable pattern has wire i = 0 and wire j = 1.
func (s *Space) WouldChange(st *State, i, j int) bool {
	return st.bits.AndAny(s.masks.Below(i, j))
}

// IsAccepted reports whether every reachable pattern is accepted.
func (s *Space) IsAccepted(st *State) bool {
	return !st.bits.AndAny(s.accept.reject)
}

// String describes the space for diagnostics.
func (s *Space) String() string {
	return fmt.Sprintf("Space(wires=%d, patterns=%d, accepted=%d, masks=%d/%d)",
		s.wires, s.size, s.accept.Count(), s.masks.Built(), len(s.pairs))
}

package space

import (
	"errors"
	"fmt"
)

// MinWires and MaxWires bound the wire count. The state space has 2^N bits,
// so memory and time are exponential in N.
const (
	MinWires = 2
	MaxWires = 20
)

var (
	// ErrInvalidPair indicates a swap with i >= j, a negative index or an
	// index beyond the wire count.
	ErrInvalidPair = errors.New("invalid wire pair")

	// ErrInvalidWireCount indicates a wire count outside [MinWires, MaxWires].
	ErrInvalidWireCount = errors.New("invalid wire count")

	// ErrNilPredicate indicates a missing acceptance predicate.
	ErrNilPredicate = errors.New("nil acceptance predicate")
)

// PairError reports which pair of a path is invalid.
//
// The sentinel ErrInvalidPair can be matched with errors.Is.
type PairError struct {
	// Index is the position of the pair in its path, or -1 for a lone pair.
	Index int
	Pair  Pair
	Wires int
}

func (e *PairError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("invalid wire pair %s for %d wires", e.Pair, e.Wires)
	}
	return fmt.Sprintf("invalid wire pair %s at position %d for %d wires", e.Pair, e.Index, e.Wires)
}

func (e *PairError) Unwrap() error { return ErrInvalidPair }

// ValidateWires returns ErrInvalidWireCount (wrapped) if wires is out of range.
func ValidateWires(wires int) error {
	if wires < MinWires || wires > MaxWires {
		return fmt.Errorf("%w: %d (must be in [%d, %d])", ErrInvalidWireCount, wires, MinWires, MaxWires)
	}
	return nil
}

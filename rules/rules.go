// Package rules is a library of named output predicates.
//
// Each predicate reads the bits of a network's output (bits[k] is wire k) and
// reports whether that output is acceptable. Compare-swaps move 1s toward
// lower wire indices, so "sorted" means every 1 sits below every 0.
package rules

import (
	"errors"
	"fmt"
	"slices"

	"github.com/coregx/cmpnet/space"
)

// ErrUnknownRule is returned by Lookup for names not in the library.
var ErrUnknownRule = errors.New("unknown rule")

// Rule is a named predicate.
type Rule struct {
	Name string

	// Wires is the wire count the rule is defined for; 0 means the rule
	// applies to any wire count.
	Wires int

	Predicate   space.Predicate
	Description string
}

// WiresFor resolves the wire count to search with. requested == 0 selects
// the rule's own count.
func (r Rule) WiresFor(requested int) (int, error) {
	switch {
	case r.Wires == 0 && requested == 0:
		return 0, fmt.Errorf("rule %q needs an explicit wire count", r.Name)
	case r.Wires == 0:
		return requested, nil
	case requested == 0 || requested == r.Wires:
		return r.Wires, nil
	default:
		return 0, fmt.Errorf("rule %q is defined for %d wires, not %d", r.Name, r.Wires, requested)
	}
}

// ConwayNetwork is a known 19-swap network on 8 wires accepted by Conway.
var ConwayNetwork = space.Path{
	{I: 0, J: 4}, {I: 1, J: 5}, {I: 2, J: 6}, {I: 3, J: 7},
	{I: 0, J: 2}, {I: 1, J: 3}, {I: 4, J: 6}, {I: 5, J: 7},
	{I: 2, J: 4}, {I: 3, J: 5},
	{I: 0, J: 1}, {I: 2, J: 3}, {I: 4, J: 5}, {I: 6, J: 7},
	{I: 1, J: 4}, {I: 3, J: 6},
	{I: 1, J: 2}, {I: 3, J: 4}, {I: 5, J: 6},
}

var library = []Rule{
	{
		Name:        "sorted",
		Predicate:   Sorted,
		Description: "every 1 on a lower wire than every 0 (sorting network)",
	},
	{
		Name:        "conway",
		Wires:       8,
		Predicate:   Conway,
		Description: "Life read-out: n2&^n3 gives birth, n0&n1&^n3 gives survival",
	},
	{
		Name:        "evacuate-top4",
		Wires:       8,
		Predicate:   EvacuateTop4,
		Description: "wires 0-3 all 1, or wires 4-7 all 0",
	},
	{
		Name:        "three-or-pair-at-zero",
		Wires:       4,
		Predicate:   AtLeastThreeOrPairAtZero,
		Description: "at least three 1s, or exactly two with wire 0 set",
	},
	{
		Name:        "pair-at-zero-or-trivial",
		Wires:       4,
		Predicate:   PairAtZeroOrTrivial,
		Description: "fewer than two 1s, at least three, or exactly two with wire 0 set",
	},
	{
		Name:        "max-at-zero",
		Predicate:   MaxAtZero,
		Description: "wire 0 holds a 1 whenever any wire does",
	},
}

// Lookup returns the rule with the given name.
func Lookup(name string) (Rule, error) {
	for _, r := range library {
		if r.Name == name {
			return r, nil
		}
	}
	return Rule{}, fmt.Errorf("%w %q (known: %v)", ErrUnknownRule, name, Names())
}

// Names lists the rule names in library order.
func Names() []string {
	names := make([]string, 0, len(library))
	for _, r := range library {
		names = append(names, r.Name)
	}
	return names
}

// All returns a copy of the library.
func All() []Rule {
	return slices.Clone(library)
}

// Sorted accepts outputs whose 1s all sit on lower wires than their 0s.
func Sorted(b []bool) bool {
	for k := 1; k < len(b); k++ {
		if b[k] && !b[k-1] {
			return false
		}
	}
	return true
}

// Conway accepts 8-wire outputs from which the next Life cell state can be
// read with n2&^n3 (birth or survival on three) and n0&n1&^n3 (survival on
// two) for both current cell states.
func Conway(b []bool) bool {
	if len(b) != 8 {
		return false
	}
	count := popcount(b)
	eq3 := b[2] && !b[3]
	gte2lte3 := b[0] && b[1] && !b[3]
	for _, alive := range [2]bool{false, true} {
		want := count == 3 || (alive && count == 2)
		got := eq3 || (gte2lte3 && alive)
		if got != want {
			return false
		}
	}
	return true
}

// EvacuateTop4 accepts 8-wire outputs whose wires 0-3 are all 1 or whose
// wires 4-7 are all 0.
func EvacuateTop4(b []bool) bool {
	if len(b) != 8 {
		return false
	}
	return (b[0] && b[1] && b[2] && b[3]) || !(b[4] || b[5] || b[6] || b[7])
}

// AtLeastThreeOrPairAtZero accepts outputs with at least three 1s, or exactly
// two 1s with wire 0 set.
func AtLeastThreeOrPairAtZero(b []bool) bool {
	c := popcount(b)
	return c >= 3 || (c == 2 && len(b) > 0 && b[0])
}

// PairAtZeroOrTrivial is AtLeastThreeOrPairAtZero that also accepts outputs
// with fewer than two 1s, which no network can change.
func PairAtZeroOrTrivial(b []bool) bool {
	return popcount(b) < 2 || AtLeastThreeOrPairAtZero(b)
}

// MaxAtZero accepts outputs where wire 0 is set whenever any wire is.
func MaxAtZero(b []bool) bool {
	return popcount(b) == 0 || b[0]
}

func popcount(b []bool) int {
	n := 0
	for _, v := range b {
		if v {
			n++
		}
	}
	return n
}

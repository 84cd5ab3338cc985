package space

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Pair is a compare-swap between wires I and J, I < J. After the swap wire I
// holds the OR of the two inputs and wire J holds the AND.
type Pair struct {
	I, J int
}

// String formats the pair as "i-j".
func (p Pair) String() string {
	return strconv.Itoa(p.I) + "-" + strconv.Itoa(p.J)
}

// Validate reports whether the pair is usable on a network of the given width.
func (p Pair) Validate(wires int) error {
	if p.I < 0 || p.I >= p.J || p.J >= wires {
		return &PairError{Index: -1, Pair: p, Wires: wires}
	}
	return nil
}

// Path is an ordered sequence of compare-swaps, applied first to last.
type Path []Pair

// String formats the path as comma separated "i-j" pairs.
func (p Path) String() string {
	parts := make([]string, len(p))
	for k, pair := range p {
		parts[k] = pair.String()
	}
	return strings.Join(parts, ",")
}

// Validate checks every pair of the path against the wire count.
func (p Path) Validate(wires int) error {
	for k, pair := range p {
		if err := pair.Validate(wires); err != nil {
			return &PairError{Index: k, Pair: pair, Wires: wires}
		}
	}
	return nil
}

// Clone returns a copy of the path that does not share storage.
func (p Path) Clone() Path {
	if p == nil {
		return nil
	}
	c := make(Path, len(p))
	copy(c, p)
	return c
}

// ParsePath reads a path from text. Any run of non-digit characters separates
// numbers, so "0-4,1-5", "0:4 1:5" and "[(0, 4), (1, 5)]" all parse to the
// same path. The numbers must come in pairs. Pairs are not validated against
// a wire count; call Validate for that.
func ParsePath(s string) (Path, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool { return !unicode.IsDigit(r) })
	if len(fields)%2 != 0 {
		return nil, fmt.Errorf("parse path %q: odd number of wire indices (%d)", s, len(fields))
	}
	path := make(Path, 0, len(fields)/2)
	for k := 0; k < len(fields); k += 2 {
		i, err := strconv.Atoi(fields[k])
		if err != nil {
			return nil, fmt.Errorf("parse path %q: %w", s, err)
		}
		j, err := strconv.Atoi(fields[k+1])
		if err != nil {
			return nil, fmt.Errorf("parse path %q: %w", s, err)
		}
		path = append(path, Pair{I: i, J: j})
	}
	return path, nil
}

// MustParsePath is like ParsePath but panics on error. It is intended for
// package-level network literals.
func MustParsePath(s string) Path {
	p, err := ParsePath(s)
	if err != nil {
		panic(err)
	}
	return p
}

// PairCount returns the number of distinct pairs on a network of the given
// width, N(N-1)/2.
func PairCount(wires int) int {
	return wires * (wires - 1) / 2
}

// CanonicalPairs returns every pair in canonical search order: I ascending,
// then J ascending.
func CanonicalPairs(wires int) []Pair {
	pairs := make([]Pair, 0, PairCount(wires))
	for i := 0; i < wires-1; i++ {
		for j := i + 1; j < wires; j++ {
			pairs = append(pairs, Pair{I: i, J: j})
		}
	}
	return pairs
}

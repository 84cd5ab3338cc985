package space

import "github.com/coregx/cmpnet/bitvec"

// Masks builds and caches the per-pair masks of one wire count.
//
// Below(i, j) selects the patterns with wire i = 0 and wire j = 1, the ones
// a compare-swap on (i, j) moves. Complement(i, j) is its bitwise NOT.
// Masks are built on first use. After Warm returns, the factory is read-only
// and may be shared between goroutines; before that it is not safe for
// concurrent use.
type Masks struct {
	wires int
	size  int

	// below and complement are indexed by i*wires + j
	below      []*bitvec.Vector
	complement []*bitvec.Vector
}

// NewMasks creates an empty mask factory for the given wire count.
// The wire count must already be validated.
func NewMasks(wires int) *Masks {
	return &Masks{
		wires:      wires,
		size:       1 << wires,
		below:      make([]*bitvec.Vector, wires*wires),
		complement: make([]*bitvec.Vector, wires*wires),
	}
}

// Wires returns the wire count the masks were built for.
func (m *Masks) Wires() int {
	return m.wires
}

func (m *Masks) slot(i, j int) int {
	if i < 0 || i >= j || j >= m.wires {
		panic(&PairError{Index: -1, Pair: Pair{I: i, J: j}, Wires: m.wires})
	}
	return i*m.wires + j
}

// Below returns the mask of patterns with wire i = 0 and wire j = 1.
// The returned vector is shared and must not be modified.
func (m *Masks) Below(i, j int) *bitvec.Vector {
	k := m.slot(i, j)
	if v := m.below[k]; v != nil {
		return v
	}
	v := bitvec.New(m.size, false)
	lo, hi := 1<<i, 1<<j
	for p := 0; p < m.size; p++ {
		if p&lo == 0 && p&hi != 0 {
			v.Set(p, true)
		}
	}
	m.below[k] = v
	return v
}

// Complement returns the bitwise NOT of Below(i, j).
// The returned vector is shared and must not be modified.
func (m *Masks) Complement(i, j int) *bitvec.Vector {
	k := m.slot(i, j)
	if v := m.complement[k]; v != nil {
		return v
	}
	v := m.Below(i, j).Clone().Not()
	m.complement[k] = v
	return v
}

// Warm builds every mask up front.
func (m *Masks) Warm() {
	for i := 0; i < m.wires-1; i++ {
		for j := i + 1; j < m.wires; j++ {
			m.Complement(i, j)
		}
	}
}

// Built returns how many pairs have both masks cached.
func (m *Masks) Built() int {
	n := 0
	for _, v := range m.complement {
		if v != nil {
			n++
		}
	}
	return n
}

package space

import (
	"math/bits"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/coregx/cmpnet/bitvec"
	"github.com/coregx/cmpnet/internal/conv"
)

// Predicate decides whether an output assignment is acceptable. bits[k] is
// the value of wire k. The slice is reused between calls and must not be
// retained.
type Predicate func(bits []bool) bool

// PatternPredicate is a Predicate over the packed pattern integer, where
// bit k of pattern is wire k.
type PatternPredicate func(pattern uint32) bool

// Acceptance is a compiled predicate: the set of accepted patterns and its
// complement. It is immutable once compiled.
type Acceptance struct {
	wires  int
	accept *bitvec.Vector
	reject *bitvec.Vector
}

// Compile evaluates pred on every pattern of the given wire count.
// It runs in O(2^N * N) and calls pred exactly 2^N times, in ascending
// pattern order.
func Compile(wires int, pred Predicate) (*Acceptance, error) {
	if pred == nil {
		return nil, ErrNilPredicate
	}
	bits := make([]bool, wires)
	return CompileFunc(wires, func(pattern uint32) bool {
		Decode(pattern, bits)
		return pred(bits)
	})
}

// CompileFunc is like Compile for predicates over packed patterns.
func CompileFunc(wires int, pred PatternPredicate) (*Acceptance, error) {
	if err := ValidateWires(wires); err != nil {
		return nil, err
	}
	if pred == nil {
		return nil, ErrNilPredicate
	}
	size := 1 << wires
	accept := bitvec.New(size, false)
	for p := 0; p < size; p++ {
		if pred(conv.IntToUint32(p)) {
			accept.Set(p, true)
		}
	}
	return &Acceptance{
		wires:  wires,
		accept: accept,
		reject: accept.Clone().Not(),
	}, nil
}

// Decode writes bit k of pattern into bits[k] for every k < len(bits).
func Decode(pattern uint32, bits []bool) {
	for k := range bits {
		bits[k] = pattern>>k&1 == 1
	}
}

// Encode packs bits back into a pattern integer.
func Encode(bits []bool) uint32 {
	var p uint32
	for k, b := range bits {
		if b {
			p |= 1 << k
		}
	}
	return p
}

// Wires returns the wire count the predicate was compiled for.
func (a *Acceptance) Wires() int {
	return a.wires
}

// Accepts reports whether pattern p is accepted.
func (a *Acceptance) Accepts(p int) bool {
	return a.accept.Get(p)
}

// Count returns the number of accepted patterns.
func (a *Acceptance) Count() int {
	return a.accept.Count()
}

// All reports whether the predicate accepts every pattern, in which case
// the empty network already satisfies it.
func (a *Acceptance) All() bool {
	return a.reject.IsZero()
}

// Vector returns the accepted set. The vector is shared and must not be
// modified.
func (a *Acceptance) Vector() *bitvec.Vector {
	return a.accept
}

// Rejected returns the complement of the accepted set. The vector is shared
// and must not be modified.
func (a *Acceptance) Rejected() *bitvec.Vector {
	return a.reject
}

// Patterns returns the accepted patterns as a roaring bitmap.
func (a *Acceptance) Patterns() *roaring.Bitmap {
	return toBitmap(a.accept)
}

// toBitmap lists the set bits of v, ascending, into a roaring bitmap.
func toBitmap(v *bitvec.Vector) *roaring.Bitmap {
	rb := roaring.New()
	for k, w := range v.Words() {
		base := k * bitvec.ChunkBits
		for w != 0 {
			rb.Add(conv.IntToUint32(base + bits.TrailingZeros64(w)))
			w &= w - 1
		}
	}
	return rb
}

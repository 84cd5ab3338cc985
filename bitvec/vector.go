package bitvec

import (
	"strings"
	"unsafe"

	"github.com/coregx/cmpnet/simd"
)

const (
	// ChunkBits is the width of one storage chunk.
	ChunkBits = 64

	chunkShift = 6
	chunkMask  = ChunkBits - 1
)

// Vector is a fixed-size sequence of bits.
//
// The zero value is an empty vector of size 0. A Vector is not safe for
// concurrent mutation; concurrent readers are fine.
type Vector struct {
	words []uint64

	// size is the logical number of bits; immutable after construction
	size int

	// tail masks the valid bits of the last chunk
	tail uint64
}

// New creates a vector of size bits, every bit set to fill.
// Panics with ErrInvalidSize if size is negative.
func New(size int, fill bool) *Vector {
	if size < 0 {
		panic(&Error{Kind: InvalidSize, Message: "bit vector size must be >= 0"})
	}
	v := &Vector{
		words: make([]uint64, (size+chunkMask)>>chunkShift),
		size:  size,
		tail:  tailMask(size),
	}
	if fill {
		v.Fill(true)
	}
	return v
}

func tailMask(size int) uint64 {
	if r := size & chunkMask; r != 0 {
		return (uint64(1) << r) - 1
	}
	return ^uint64(0)
}

// Len returns the number of bits in the vector.
func (v *Vector) Len() int {
	return v.size
}

// Words returns the backing chunks. The slice aliases the vector and must
// be treated as read-only.
func (v *Vector) Words() []uint64 {
	return v.words
}

// clearTail restores the invariant that bits at and above size are zero.
func (v *Vector) clearTail() {
	if n := len(v.words); n > 0 {
		v.words[n-1] &= v.tail
	}
}

func (v *Vector) mustMatch(o *Vector) {
	if v.size != o.size {
		panic(sizeMismatch(v.size, o.size))
	}
}

// Clone returns an independent copy of v.
func (v *Vector) Clone() *Vector {
	c := &Vector{
		words: make([]uint64, len(v.words)),
		size:  v.size,
		tail:  v.tail,
	}
	copy(c.words, v.words)
	return c
}

// CopyFrom overwrites v with the contents of src.
func (v *Vector) CopyFrom(src *Vector) {
	v.mustMatch(src)
	copy(v.words, src.words)
}

// Fill sets every bit to value.
func (v *Vector) Fill(value bool) {
	var w uint64
	if value {
		w = ^uint64(0)
	}
	for i := range v.words {
		v.words[i] = w
	}
	v.clearTail()
}

// Reset clears every bit.
func (v *Vector) Reset() {
	clear(v.words)
}

// Get returns the bit at index i.
func (v *Vector) Get(i int) bool {
	if i < 0 || i >= v.size {
		panic(indexOutOfRange(i, v.size))
	}
	return v.words[i>>chunkShift]&(1<<(uint(i)&chunkMask)) != 0
}

// Set sets the bit at index i to value.
func (v *Vector) Set(i int, value bool) {
	if i < 0 || i >= v.size {
		panic(indexOutOfRange(i, v.size))
	}
	bit := uint64(1) << (uint(i) & chunkMask)
	if value {
		v.words[i>>chunkShift] |= bit
	} else {
		v.words[i>>chunkShift] &^= bit
	}
}

// And computes v &= o.
func (v *Vector) And(o *Vector) *Vector {
	v.mustMatch(o)
	simd.AndInPlace(v.words, o.words)
	return v
}

// AndInto stores v AND o into out and returns out. out must have the same
// size as v and o; it may alias either of them.
func (v *Vector) AndInto(o, out *Vector) *Vector {
	v.mustMatch(o)
	v.mustMatch(out)
	simd.And(out.words, v.words, o.words)
	return out
}

// Or computes v |= o.
func (v *Vector) Or(o *Vector) *Vector {
	v.mustMatch(o)
	simd.OrInPlace(v.words, o.words)
	return v
}

// Xor computes v ^= o.
func (v *Vector) Xor(o *Vector) *Vector {
	v.mustMatch(o)
	simd.XorInPlace(v.words, o.words)
	return v
}

// AndNot clears every bit of v that is set in o.
func (v *Vector) AndNot(o *Vector) *Vector {
	v.mustMatch(o)
	simd.AndNotInPlace(v.words, o.words)
	return v
}

// Not inverts every bit of v.
func (v *Vector) Not() *Vector {
	simd.Not(v.words)
	v.clearTail()
	return v
}

// ShiftLeft moves every bit n positions toward index 0: bit p ends up at
// p-n, bits below n fall off, and the top n bits become zero. A shift of
// Len() or more clears the vector.
func (v *Vector) ShiftLeft(n int) *Vector {
	if n <= 0 {
		return v
	}
	if n >= v.size {
		v.Reset()
		return v
	}

	words := v.words
	skip := n >> chunkShift
	r := uint(n) & chunkMask
	last := len(words) - skip

	if r == 0 {
		copy(words, words[skip:])
	} else {
		for k := 0; k < last-1; k++ {
			words[k] = words[k+skip]>>r | words[k+skip+1]<<(ChunkBits-r)
		}
		words[last-1] = words[len(words)-1] >> r
	}
	clear(words[last:])
	v.clearTail()
	return v
}

// IsZero reports whether no bit is set.
func (v *Vector) IsZero() bool {
	return !simd.Any(v.words)
}

// Any reports whether at least one bit is set.
func (v *Vector) Any() bool {
	return simd.Any(v.words)
}

// AndAny reports whether v and o share a set bit. It is equivalent to
// !v.Clone().And(o).IsZero() without the copy.
func (v *Vector) AndAny(o *Vector) bool {
	v.mustMatch(o)
	return simd.AndAny(v.words, o.words)
}

// Count returns the number of set bits.
func (v *Vector) Count() int {
	return simd.PopCount(v.words)
}

// Equal reports whether v and o have the same size and the same bits.
func (v *Vector) Equal(o *Vector) bool {
	if v.size != o.size {
		return false
	}
	for i, w := range v.words {
		if o.words[i] != w {
			return false
		}
	}
	return true
}

// KeyBytes returns the raw bytes of the backing storage. The slice aliases
// the vector and is only valid until the next mutation; use it for map
// lookups of the form m[string(v.KeyBytes())], which do not allocate.
func (v *Vector) KeyBytes() []byte {
	if len(v.words) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(v.words))), len(v.words)*8)
}

// Key returns a byte-exact copy of the backing storage as a string.
// Two vectors of the same size have equal keys iff they are Equal.
func (v *Vector) Key() string {
	return string(v.KeyBytes())
}

// String renders the vector as 0/1 cells, index 0 first, in groups of
// ChunkBits separated by a space.
func (v *Vector) String() string {
	var sb strings.Builder
	sb.Grow(v.size + v.size/ChunkBits)
	for i := 0; i < v.size; i++ {
		if i > 0 && i&chunkMask == 0 {
			sb.WriteByte(' ')
		}
		if v.words[i>>chunkShift]&(1<<(uint(i)&chunkMask)) != 0 {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

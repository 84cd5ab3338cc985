// Package bitvec implements a dense, fixed-size bit vector packed into uint64
// chunks.
//
// A Vector is the storage behind every candidate state and mask of the
// comparator-network search. It supports bulk boolean algebra against vectors
// of the same size, a logical shift toward index 0, population count, zero
// tests and a byte-exact key suitable for map lookups.
//
// Bits are numbered from 0. Bit i lives in chunk i/64 at position i%64. The
// String form renders index 0 first, so "shifting left" moves every bit toward
// index 0.
//
// Sizes that are not a multiple of the chunk width are supported by keeping
// the unused high bits of the last chunk at zero after every mutation. Keys,
// equality and zero tests therefore look at the full backing storage without
// any masking of their own.
//
// Bulk operations on vectors of different sizes are programming errors and
// panic with an *Error of kind SizeMismatch.
package bitvec

// Package space implements the candidate-state algebra of the comparator
// network search.
//
// A network on N wires is simulated on all 2^N inputs at once. A pattern is
// an integer p in [0, 2^N) whose bit k is the value of wire k. A State is a
// bit vector over patterns: bit p is set iff p is the image of at least one
// input under the swaps applied so far. The search starts from the full state
// (every input maps to itself) and applies compare-swaps until every
// reachable pattern lies inside the Acceptance set.
//
// A compare-swap on (i, j), i < j, moves a 1 toward the lower wire: patterns
// with wire i = 0 and wire j = 1 are "out of order" and map to the pattern
// with the two bits exchanged. On the bit vector this is a mask, a shift by
// 2^j - 2^i toward index 0, an OR and a final mask:
//
//	scratch = state & Below(i, j)
//	scratch <<= (1<<j) - (1<<i)   // toward index 0
//	state  |= scratch
//	state  &= Complement(i, j)
//
// The population of a State never grows under Apply: two images may merge,
// an image never splits.
//
// The pieces are:
//   - Masks: lazily built per-pair masks, cached by i*N + j
//   - Acceptance: the compiled predicate (accepted and rejected patterns)
//   - Space: ties masks and acceptance together and exposes Apply,
//     WouldChange and IsAccepted
package space

// Package search implements the branch-and-bound search for minimal
// comparator networks.
//
// The engine explores swap sequences depth first over a space.Space. Every
// frame hashes its candidate state and consults a transposition table whose
// entries are either exact (Success: the minimal number of further swaps from
// this state, plus the first swap of one optimal continuation) or lower
// bounds on failure (FailureBound: the largest remaining budget proven to
// contain no solution). Whenever a child succeeds the frame's ceiling is
// tightened to the new best total, so later siblings can only replace it with
// a strictly shorter continuation.
//
// Only one-hop pointers are stored; the final path is rebuilt by walking the
// Success entries forward from the start state.
//
// Two strategies are available:
//   - BranchAndBound: one pass with the caller's ceiling
//   - IterativeDeepening: ceilings from the prefix length up to the maximum,
//     sharing one table; the first successful pass is minimal
//
// With Config.Workers > 1 the children of the root are explored concurrently.
// Each worker owns its table; the global ceiling is a shared atomic cell.
// The result has the same length as a sequential run and the same first
// swap, because ties between root children are broken by canonical order.
//
// "No network within the ceiling" is a normal result (Result.Found == false),
// not an error.
package search

package search

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/coregx/cmpnet/space"
)

// pollEvery is the node interval between context polls.
const pollEvery = 1024

// noPair never equals a canonical pair; it is the "last swap" of an empty
// prefix.
var noPair = space.Pair{I: -1, J: -1}

type outcome uint8

const (
	failed outcome = iota
	found
	aborted
)

// Stats reports the work done by one Search call.
type Stats struct {
	// Nodes is the number of frames entered (states visited).
	Nodes int64

	// Passes is the number of ceilings tried (1 for BranchAndBound).
	Passes int

	// Ceiling is the ceiling of the last pass.
	Ceiling int

	// Workers is the number of goroutines used.
	Workers int

	// Table aggregates the transposition table counters of every engine
	// that took part in the search.
	Table TableStats
}

// Result is the outcome of a completed search.
type Result struct {
	// Path is the full swap sequence, prefix included. nil when !Found.
	Path space.Path

	// Found reports whether a sequence within the ceiling was found.
	Found bool

	// Stats describes the work done.
	Stats Stats
}

// Engine searches a single space. It is not safe for concurrent use; the
// transposition table is kept across Search calls.
type Engine struct {
	space *space.Space
	cfg   Config
	log   *slog.Logger
	table *Table
	pairs []space.Pair

	// Per-call state
	ctx     context.Context
	states  []*space.State // states[k] holds the state at depth base+k
	shift   *space.State
	base    int
	nodes   int64
	polled  int64
	flushed int64
	err     error
	track   *tracker
	shared  *bound
}

// New creates an engine for sp.
func New(sp *space.Space, cfg Config) (*Engine, error) {
	if sp == nil {
		return nil, invalidConfig("nil space")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Engine{
		space: sp,
		cfg:   cfg,
		log:   logger,
		table: NewTable(cfg.MaxTableEntries),
		pairs: sp.Pairs(),
		shift: sp.NewState(false),
	}, nil
}

// Space returns the space the engine searches.
func (e *Engine) Space() *space.Space {
	return e.space
}

// Table returns the engine's transposition table.
func (e *Engine) Table() *Table {
	return e.table
}

// Config returns the engine configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// Reset drops every transposition entry.
func (e *Engine) Reset() {
	e.table.Clear()
}

// Search finds a shortest continuation of prefix whose total length is at
// most maxSwaps and whose final state satisfies the acceptance set.
//
// A search that proves no such sequence exists returns a Result with
// Found == false and a nil error. Errors are reserved for invalid arguments
// (*space.PairError, ErrInvalidConfig) and aborts (ErrAborted, ErrNodeLimit);
// aborted searches still return the partial statistics.
func (e *Engine) Search(ctx context.Context, prefix space.Path, maxSwaps int) (*Result, error) {
	if maxSwaps < 0 {
		return nil, invalidConfig("maxSwaps must be >= 0, got %d", maxSwaps)
	}
	start, err := e.space.Replay(prefix)
	if err != nil {
		return nil, err
	}

	res := &Result{Stats: Stats{Workers: e.cfg.Workers}}
	base := len(prefix)
	if base > maxSwaps {
		return res, nil
	}
	if err := ctx.Err(); err != nil {
		return res, abortedBy(err)
	}
	if e.space.IsAccepted(start) {
		res.Found = true
		res.Path = append(space.Path{}, prefix...)
		return res, nil
	}

	last := noPair
	if base > 0 {
		last = prefix[base-1]
	}

	first := maxSwaps
	if e.cfg.Strategy == IterativeDeepening {
		first = base
	}

	for ceiling := first; ceiling <= maxSwaps; ceiling++ {
		res.Stats.Passes++
		res.Stats.Ceiling = ceiling

		var path space.Path
		var ok bool
		if e.cfg.Workers > 1 {
			path, ok, err = e.parallelPass(ctx, start, prefix, last, ceiling, &res.Stats)
		} else {
			path, ok, err = e.pass(ctx, start, prefix, last, ceiling, &res.Stats)
		}

		e.log.Debug("search pass",
			"strategy", e.cfg.Strategy.String(),
			"ceiling", ceiling,
			"found", ok,
			"nodes", res.Stats.Nodes,
			"entries", res.Stats.Table.Entries)

		if err != nil {
			return res, err
		}
		if ok {
			res.Found = true
			res.Path = path
			break
		}
	}
	return res, nil
}

// pass runs one sequential search with the given ceiling.
func (e *Engine) pass(ctx context.Context, start *space.State, prefix space.Path, last space.Pair, ceiling int, stats *Stats) (space.Path, bool, error) {
	base := len(prefix)
	e.prepare(ctx, base, ceiling, nil)
	e.states[0].CopyFrom(start)
	if e.cfg.OnProgress != nil {
		e.track = newTracker(&e.cfg, len(e.pairs))
	}

	_, out := e.explore(e.states[0], base, last, ceiling)

	stats.Nodes += e.nodes
	stats.Table = e.table.Stats()

	switch out {
	case aborted:
		return nil, false, e.err
	case failed:
		return nil, false, nil
	}
	path, err := e.reconstruct(start, append(space.Path{}, prefix...), ceiling)
	if err != nil {
		return nil, false, err
	}
	return path, true, nil
}

// prepare resets per-call state and makes sure there is one scratch state
// per depth in [base, ceiling].
func (e *Engine) prepare(ctx context.Context, base, ceiling int, shared *bound) {
	e.ctx = ctx
	e.base = base
	e.nodes = 0
	e.polled = 0
	e.flushed = 0
	e.err = nil
	e.track = nil
	e.shared = shared

	need := ceiling - base + 1
	for len(e.states) < need {
		e.states = append(e.states, e.space.NewState(false))
	}
}

// explore is one frame of the depth-first search. st must not be modified
// until the frame returns; children are built in the next depth's buffer.
//
// On success it returns the exact minimal number of further swaps from st.
func (e *Engine) explore(st *space.State, depth int, last space.Pair, ceiling int) (int, outcome) {
	e.nodes++
	if e.track.enabled() {
		e.track.sample(e.nodes, e.table.Len(), e.base, ceiling)
	}

	if depth > ceiling {
		return 0, failed
	}

	key := st.KeyBytes()
	if ent, ok := e.table.Lookup(key); ok {
		switch ent.Kind {
		case Success:
			if depth+ent.Height > ceiling {
				return 0, failed
			}
			return ent.Height, found
		case FailureBound:
			if ent.Budget >= ceiling-depth {
				return 0, failed
			}
		}
	}

	if e.space.IsAccepted(st) {
		return 0, found
	}

	if depth == ceiling {
		e.table.RaiseFailure(key, 0)
		return 0, failed
	}

	frame := depth - e.base
	child := e.states[frame+1]
	best := -1
	var next space.Pair

	for idx, p := range e.pairs {
		if p == last || !e.space.WouldChange(st, p.I, p.J) {
			continue
		}
		if err := e.poll(); err != nil {
			e.err = err
			return 0, aborted
		}

		// Once a best is known only a strictly shorter continuation can
		// replace it.
		limit := ceiling
		if best >= 0 {
			limit = ceiling - 1
		}
		limit = e.clamp(limit)
		if limit <= depth {
			break
		}

		if e.track.enabled() {
			e.track.enter(frame, idx, p)
		}

		child.CopyFrom(st)
		e.space.Apply(child, p.I, p.J, e.shift)
		h, out := e.explore(child, depth+1, p, limit)
		switch out {
		case aborted:
			return 0, aborted
		case found:
			if best < 0 || h+1 < best {
				best = h + 1
				next = p
				ceiling = depth + best
			}
		}
	}

	effective := e.clamp(ceiling)
	if best >= 0 && depth+best <= effective {
		e.table.RecordSuccess(key, best, next)
		return best, found
	}
	e.table.RaiseFailure(key, effective-depth)
	return 0, failed
}

// clamp lowers c to the shared ceiling of a parallel search.
func (e *Engine) clamp(c int) int {
	if e.shared != nil {
		if s := int(e.shared.ceiling.Load()); s < c {
			return s
		}
	}
	return c
}

// poll checks the abort conditions. It is called between siblings only.
func (e *Engine) poll() error {
	if e.cfg.MaxNodes > 0 {
		n := e.nodes
		if e.shared != nil {
			n = e.shared.nodes.Load() + e.nodes - e.flushed
		}
		if n >= e.cfg.MaxNodes {
			return &Error{
				Kind:    NodeLimit,
				Message: fmt.Sprintf("search node limit exceeded (%d nodes)", e.cfg.MaxNodes),
			}
		}
	}

	if e.nodes-e.polled < pollEvery {
		return nil
	}
	e.polled = e.nodes
	if e.shared != nil {
		e.shared.nodes.Add(e.nodes - e.flushed)
		e.flushed = e.nodes
	}
	if err := e.ctx.Err(); err != nil {
		return abortedBy(err)
	}
	return nil
}

// reconstruct follows Success entries from start, appending to path, until
// the state is accepted.
func (e *Engine) reconstruct(start *space.State, path space.Path, ceiling int) (space.Path, error) {
	return rebuild(e.space, e.table, start, path, ceiling)
}

func rebuild(sp *space.Space, t *Table, start *space.State, path space.Path, ceiling int) (space.Path, error) {
	st := start.Clone()
	scratch := sp.NewState(false)
	for !sp.IsAccepted(st) {
		if len(path) >= ceiling {
			return nil, &Error{
				Kind:    Internal,
				Message: fmt.Sprintf("path reconstruction exceeded ceiling %d at %s", ceiling, path),
			}
		}
		ent, ok := t.Peek(st.KeyBytes())
		if !ok || ent.Kind != Success {
			return nil, &Error{
				Kind:    Internal,
				Message: fmt.Sprintf("missing success entry after %q", path.String()),
			}
		}
		path = append(path, ent.Next)
		sp.Apply(st, ent.Next.I, ent.Next.J, scratch)
	}
	return path, nil
}

func abortedBy(err error) *Error {
	return &Error{
		Kind:    Aborted,
		Message: ErrAborted.Message,
		Cause:   err,
	}
}

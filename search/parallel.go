package search

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/coregx/cmpnet/space"
)

// bound is the state shared by the workers of one parallel pass.
type bound struct {
	ceiling atomic.Int64 // best known total length, lowered by CAS
	nodes   atomic.Int64 // flushed node counts of all workers
}

// lower sets the ceiling to v if v is smaller.
func (b *bound) lower(v int) {
	for {
		cur := b.ceiling.Load()
		if int64(v) >= cur {
			return
		}
		if b.ceiling.CompareAndSwap(cur, int64(v)) {
			return
		}
	}
}

// rootChild is one subtree handed to a worker.
type rootChild struct {
	index int // canonical pair index, used for tie-breaking
	pair  space.Pair
}

// childResult is what a worker reports for its subtree.
type childResult struct {
	found bool
	total int
	table *Table
	state *space.State
}

// parallelPass explores the root's children concurrently. Each worker owns
// a private engine and table; they communicate only through the shared
// ceiling. The winner is the shortest total, ties going to the lowest
// canonical index, which is the child a sequential pass would keep.
func (e *Engine) parallelPass(ctx context.Context, start *space.State, prefix space.Path, last space.Pair, ceiling int, stats *Stats) (space.Path, bool, error) {
	base := len(prefix)
	if base >= ceiling {
		return nil, false, nil
	}

	// Workers read the mask cache concurrently.
	e.space.Masks().Warm()

	var children []rootChild
	for idx, p := range e.pairs {
		if p == last || !e.space.WouldChange(start, p.I, p.J) {
			continue
		}
		children = append(children, rootChild{index: idx, pair: p})
	}

	shared := &bound{}
	shared.ceiling.Store(int64(ceiling))
	results := make([]childResult, len(children))

	var (
		mu    sync.Mutex
		done  int
		track *tracker
	)
	if e.cfg.OnProgress != nil {
		track = newTracker(&e.cfg, len(e.pairs))
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.cfg.Workers)

	for k, child := range children {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return abortedBy(err)
			}
			w := e.worker()
			w.prepare(gctx, base+1, ceiling, shared)

			st := w.states[0]
			st.CopyFrom(start)
			w.space.Apply(st, child.pair.I, child.pair.J, w.shift)

			h, out := 0, failed
			if limit := shared.ceiling.Load(); int64(base+1) <= limit {
				h, out = w.explore(st, base+1, child.pair, int(limit))
			}
			if out == found {
				shared.lower(base + 1 + h)
			}

			mu.Lock()
			defer mu.Unlock()
			stats.Nodes += w.nodes
			stats.Table.add(w.table.Stats())
			done++

			switch out {
			case aborted:
				return w.err
			case found:
				results[k] = childResult{found: true, total: base + 1 + h, table: w.table, state: st.Clone()}
			}

			if track.enabled() {
				track.limiter.Do(func() {
					track.fn(Progress{
						Fraction: float64(done) / float64(len(children)),
						Nodes:    stats.Nodes,
						Entries:  stats.Table.Entries,
						Depth:    base,
						Ceiling:  int(shared.ceiling.Load()),
					})
				})
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, false, err
	}

	winner := -1
	for k, r := range results {
		if !r.found {
			continue
		}
		if winner < 0 || r.total < results[winner].total {
			winner = k
		}
	}
	if winner < 0 {
		return nil, false, nil
	}

	r := results[winner]
	path := append(append(space.Path{}, prefix...), children[winner].pair)
	path, err := rebuild(e.space, r.table, r.state, path, r.total)
	if err != nil {
		return nil, false, err
	}

	e.log.Debug("parallel pass",
		slog.Int("children", len(children)),
		slog.Int("winner", children[winner].index),
		slog.Int("length", len(path)))
	return path, true, nil
}

// worker returns a fresh single-threaded engine sharing e's space and
// configuration. Progress is reported by the coordinating pass only.
func (e *Engine) worker() *Engine {
	cfg := e.cfg
	cfg.OnProgress = nil
	return &Engine{
		space: e.space,
		cfg:   cfg,
		log:   e.log,
		table: NewTable(cfg.MaxTableEntries),
		pairs: e.pairs,
		shift: e.space.NewState(false),
	}
}

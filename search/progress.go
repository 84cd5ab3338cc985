package search

import (
	"golang.org/x/time/rate"

	"github.com/coregx/cmpnet/space"
)

// Progress is an advisory snapshot of a running search.
type Progress struct {
	// Fraction estimates the explored share of the search tree in [0, 1).
	// It is Σ_k explored_k / P^(k+1) over the active path, where P is the
	// number of wire pairs and explored_k the canonical index of the pair
	// being explored at frame k. In parallel mode it is the share of root
	// children completed.
	Fraction float64

	// Nodes is the number of states visited so far.
	Nodes int64

	// Entries is the current transposition table size.
	Entries int

	// Depth is the number of swaps on the active path, prefix included.
	Depth int

	// Ceiling is the current ceiling for the total length.
	Ceiling int

	// Path is a copy of the swaps explored below the start state.
	Path space.Path
}

// tracker follows the active path of one engine and rate-limits reports.
type tracker struct {
	fn      func(Progress)
	every   int64
	limiter rate.Sometimes
	pairs   float64
	cursor  []int
	trail   space.Path
}

func newTracker(cfg *Config, pairs int) *tracker {
	t := &tracker{
		fn:    cfg.OnProgress,
		every: cfg.ProgressEvery,
		pairs: float64(pairs),
	}
	if cfg.ProgressInterval > 0 {
		t.limiter = rate.Sometimes{Interval: cfg.ProgressInterval}
	} else {
		t.limiter = rate.Sometimes{Every: 1}
	}
	return t
}

func (t *tracker) enabled() bool {
	return t != nil && t.fn != nil
}

// enter marks pair idx as the one being explored at frame.
func (t *tracker) enter(frame, idx int, p space.Pair) {
	if frame < len(t.cursor) {
		t.cursor = t.cursor[:frame]
		t.trail = t.trail[:frame]
	}
	t.cursor = append(t.cursor, idx)
	t.trail = append(t.trail, p)
}

func (t *tracker) fraction() float64 {
	f := 0.0
	scale := 1.0
	for _, idx := range t.cursor {
		scale *= t.pairs
		f += float64(idx) / scale
	}
	return f
}

// sample reports if the node count is on the sampling grid and the limiter
// allows it.
func (t *tracker) sample(nodes int64, entries, base, ceiling int) {
	if nodes%t.every != 0 {
		return
	}
	t.limiter.Do(func() {
		t.fn(Progress{
			Fraction: t.fraction(),
			Nodes:    nodes,
			Entries:  entries,
			Depth:    base + len(t.trail),
			Ceiling:  ceiling,
			Path:     t.trail.Clone(),
		})
	})
}

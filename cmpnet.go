// Package cmpnet synthesizes minimal comparator networks.
//
// A comparator network is a sequence of compare-swaps (i, j), i < j, over N
// binary wires; each swap leaves the OR of the two wires on wire i and the AND
// on wire j. Given an acceptance predicate over the output bits, cmpnet finds
// a shortest sequence, optionally continuing a fixed prefix, such that every
// one of the 2^N inputs is mapped to an accepted output.
//
// The search simulates all inputs at once: the set of outputs still reachable
// after a partial network is a 2^N-bit vector, and a compare-swap is four
// word-parallel bit operations on it. Branch-and-bound over these sets with a
// transposition table makes networks of up to about 20 swaps on 8 wires
// practical.
//
// Basic usage:
//
//	path, found, err := cmpnet.FindShortestNetwork(4, rules.Sorted, nil, 6)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if found {
//	    fmt.Println(path) // 0-1,2-3,0-2,1-3,1-2
//	}
//
// Advanced usage:
//
//	syn, err := cmpnet.New(8, rules.Conway,
//	    cmpnet.WithSearchConfig(search.DefaultConfig().WithWorkers(8)),
//	    cmpnet.WithLogger(cmpnet.NewTextLogger(slog.LevelDebug)),
//	)
//	res, err := syn.Find(ctx, rules.ConwayNetwork[:10], 19)
//
// Wire counts are limited to [2, 20]; the state of a 20-wire search is a
// 128 KiB vector.
package cmpnet

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/coregx/cmpnet/oracle"
	"github.com/coregx/cmpnet/search"
	"github.com/coregx/cmpnet/simd"
	"github.com/coregx/cmpnet/space"
)

// Result is the outcome of Synthesizer.Find.
type Result struct {
	// Path is the full network, prefix included. nil when !Found.
	Path space.Path

	// Found reports whether a network within the swap budget exists.
	Found bool

	// Stats describes the work the search did.
	Stats search.Stats

	// Elapsed is the wall time of the search.
	Elapsed time.Duration

	// RunID identifies the search in logs.
	RunID string
}

// Synthesizer searches networks for one wire count and predicate.
//
// A Synthesizer is safe for concurrent use; searches are serialized because
// they share one transposition table, which makes repeated queries with
// different budgets or prefixes cheaper.
type Synthesizer struct {
	wires   int
	pred    space.Predicate
	space   *space.Space
	logger  *Logger
	metrics MetricsCollector

	mu     sync.Mutex
	engine *search.Engine
}

// New compiles pred over wires wires and prepares a search engine.
//
// Returns ErrInvalidWireCount, ErrNilPredicate or ErrInvalidConfig
// (wrapped) on bad input.
func New(wires int, pred space.Predicate, opts ...Option) (*Synthesizer, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	acc, err := space.Compile(wires, pred)
	if err != nil {
		return nil, err
	}
	sp := space.New(acc)

	logger := o.logger.WithWires(wires)
	cfg := o.config
	if cfg.Logger == nil {
		cfg.Logger = logger.Logger
	}
	engine, err := search.New(sp, cfg)
	if err != nil {
		return nil, err
	}

	logger.Debug("synthesizer ready",
		"accepted", acc.Count(),
		"patterns", sp.Size(),
		"strategy", cfg.Strategy.String(),
		"workers", cfg.Workers,
		"kernels", simd.Features(),
		"wide", simd.Wide())

	return &Synthesizer{
		wires:   wires,
		pred:    pred,
		space:   sp,
		logger:  logger,
		metrics: o.metrics,
		engine:  engine,
	}, nil
}

// Wires returns the wire count.
func (s *Synthesizer) Wires() int {
	return s.wires
}

// Space returns the compiled search space.
func (s *Synthesizer) Space() *space.Space {
	return s.space
}

// Find searches for a shortest network that starts with prefix and has at
// most maxSwaps swaps in total.
//
// Not finding a network is reported through Result.Found, not as an error.
// Errors are *space.PairError for an invalid prefix, ErrInvalidConfig for a
// negative budget, and ErrAborted or ErrNodeLimit when the search is cut
// short; in the last two cases the partial Result is returned as well.
func (s *Synthesizer) Find(ctx context.Context, prefix space.Path, maxSwaps int) (*Result, error) {
	runID := uuid.NewString()
	log := s.logger.WithRunID(runID)
	log.InfoContext(ctx, "search started",
		"prefix", prefix.String(),
		"max_swaps", maxSwaps)

	s.mu.Lock()
	start := time.Now()
	sr, err := s.engine.Search(ctx, prefix, maxSwaps)
	elapsed := time.Since(start)
	s.mu.Unlock()

	res := &Result{Elapsed: elapsed, RunID: runID}
	if sr != nil {
		res.Path = sr.Path
		res.Found = sr.Found
		res.Stats = sr.Stats
	}

	s.metrics.RecordSearch(elapsed, res.Found, len(res.Path), res.Stats, err)
	log.LogSearch(ctx, res.Found, len(res.Path), res.Stats, elapsed, err)

	if err != nil {
		if sr == nil {
			return nil, err
		}
		return res, err
	}
	return res, nil
}

// Verify checks path against the synthesizer's predicate on every input by
// direct simulation. See oracle.Verify.
func (s *Synthesizer) Verify(path space.Path) error {
	return oracle.Verify(s.wires, path, s.pred)
}

// FindShortestNetwork finds a shortest network of at most maxSwaps swaps
// over wireCount wires that begins with startingSwaps and maps every input
// to an output accepted by pred. The returned path includes the prefix.
//
// found is false, with a nil error, when no such network exists.
func FindShortestNetwork(wireCount int, pred space.Predicate, startingSwaps space.Path, maxSwaps int) (space.Path, bool, error) {
	syn, err := New(wireCount, pred)
	if err != nil {
		return nil, false, err
	}
	res, err := syn.Find(context.Background(), startingSwaps, maxSwaps)
	if err != nil {
		return nil, false, err
	}
	return res.Path, res.Found, nil
}

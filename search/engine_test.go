package search

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coregx/cmpnet/oracle"
	"github.com/coregx/cmpnet/rules"
	"github.com/coregx/cmpnet/space"
)

func newEngine(t testing.TB, wires int, pred space.Predicate, cfg Config) *Engine {
	t.Helper()
	acc, err := space.Compile(wires, pred)
	require.NoError(t, err)
	e, err := New(space.New(acc), cfg)
	require.NoError(t, err)
	return e
}

func strategies() map[string]Config {
	return map[string]Config{
		"bnb":      DefaultConfig(),
		"id":       DefaultConfig().WithStrategy(IterativeDeepening),
		"parallel": DefaultConfig().WithWorkers(4),
		"id-par":   DefaultConfig().WithStrategy(IterativeDeepening).WithWorkers(3),
	}
}

func TestSortingNetworks(t *testing.T) {
	tests := []struct {
		wires int
		size  int
		path  string
	}{
		{3, 3, "0-1,0-2,1-2"},
		{4, 5, "0-1,2-3,0-2,1-3,1-2"},
		{5, 9, "0-1,0-2,0-3,0-4,1-2,3-4,1-3,2-4,2-3"},
	}

	for name, cfg := range strategies() {
		for _, tt := range tests {
			t.Run(fmt.Sprintf("%s/%d-wires", name, tt.wires), func(t *testing.T) {
				e := newEngine(t, tt.wires, rules.Sorted, cfg)

				res, err := e.Search(context.Background(), nil, tt.size+2)
				require.NoError(t, err)
				require.True(t, res.Found)
				assert.Len(t, res.Path, tt.size)
				assert.Equal(t, space.MustParsePath(tt.path), res.Path)
				require.NoError(t, oracle.Verify(tt.wires, res.Path, rules.Sorted))

				// One swap fewer is provably impossible.
				res, err = e.Search(context.Background(), nil, tt.size-1)
				require.NoError(t, err)
				assert.False(t, res.Found)
				assert.Nil(t, res.Path)
			})
		}
	}
}

func TestConwayFromPrefix(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping 8-wire search in short mode")
	}

	tests := []struct {
		name    string
		prefix  int
		minimal int
	}{
		{"ten swaps fixed", 10, 17},
		{"twelve swaps fixed", 12, 18},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prefix := rules.ConwayNetwork[:tt.prefix]

			for name, cfg := range strategies() {
				e := newEngine(t, 8, rules.Conway, cfg)

				res, err := e.Search(context.Background(), prefix, len(rules.ConwayNetwork))
				require.NoError(t, err, name)
				require.True(t, res.Found, name)
				assert.Len(t, res.Path, tt.minimal, name)
				assert.Equal(t, prefix, res.Path[:tt.prefix], "prefix kept (%s)", name)
				assert.NoError(t, oracle.Verify(8, res.Path, rules.Conway), name)

				res, err = e.Search(context.Background(), prefix, tt.minimal-1)
				require.NoError(t, err, name)
				assert.False(t, res.Found, name)
			}
		})
	}
}

func TestSearchTrivialCases(t *testing.T) {
	e := newEngine(t, 4, rules.Sorted, DefaultConfig())
	sort4 := space.MustParsePath("0-1,2-3,0-2,1-3,1-2")

	t.Run("accepted prefix", func(t *testing.T) {
		res, err := e.Search(context.Background(), sort4, 5)
		require.NoError(t, err)
		assert.True(t, res.Found)
		assert.Equal(t, sort4, res.Path)
		assert.Zero(t, res.Stats.Passes)
	})

	t.Run("prefix longer than ceiling", func(t *testing.T) {
		res, err := e.Search(context.Background(), sort4, 4)
		require.NoError(t, err)
		assert.False(t, res.Found)
	})

	t.Run("zero ceiling", func(t *testing.T) {
		res, err := e.Search(context.Background(), nil, 0)
		require.NoError(t, err)
		assert.False(t, res.Found)
	})

	t.Run("negative ceiling", func(t *testing.T) {
		_, err := e.Search(context.Background(), nil, -1)
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("invalid prefix", func(t *testing.T) {
		_, err := e.Search(context.Background(), space.Path{{I: 0, J: 1}, {I: 3, J: 3}}, 6)
		require.ErrorIs(t, err, space.ErrInvalidPair)
		var pe *space.PairError
		require.ErrorAs(t, err, &pe)
		assert.Equal(t, 1, pe.Index)
	})

	t.Run("all patterns accepted", func(t *testing.T) {
		all := newEngine(t, 3, func([]bool) bool { return true }, DefaultConfig())
		res, err := all.Search(context.Background(), nil, 0)
		require.NoError(t, err)
		assert.True(t, res.Found)
		assert.Empty(t, res.Path)
	})
}

func TestSearchContinuesPrefix(t *testing.T) {
	e := newEngine(t, 4, rules.Sorted, DefaultConfig())
	prefix := space.MustParsePath("0-3,1-2")

	res, err := e.Search(context.Background(), prefix, 8)
	require.NoError(t, err)
	require.True(t, res.Found)
	assert.Equal(t, prefix, res.Path[:2])
	assert.NoError(t, oracle.Verify(4, res.Path, rules.Sorted))

	// The continuation itself is minimal.
	shorter, err := e.Search(context.Background(), prefix, len(res.Path)-1)
	require.NoError(t, err)
	assert.False(t, shorter.Found)
}

func TestConcreteScenario(t *testing.T) {
	t.Run("literal rule is unsatisfiable", func(t *testing.T) {
		// The all-zero input is a fixed point of every network and the rule
		// rejects it.
		e := newEngine(t, 4, rules.AtLeastThreeOrPairAtZero, DefaultConfig())
		res, err := e.Search(context.Background(), nil, 5)
		require.NoError(t, err)
		assert.False(t, res.Found)
	})

	t.Run("trivial outputs accepted", func(t *testing.T) {
		e := newEngine(t, 4, rules.PairAtZeroOrTrivial, DefaultConfig())
		res, err := e.Search(context.Background(), nil, 5)
		require.NoError(t, err)
		require.True(t, res.Found)
		assert.Equal(t, space.MustParsePath("0-1,0-2"), res.Path)
		assert.NoError(t, oracle.Verify(4, res.Path, rules.PairAtZeroOrTrivial))

		res, err = e.Search(context.Background(), nil, 1)
		require.NoError(t, err)
		assert.False(t, res.Found)
	})
}

func TestIterativeDeepeningPasses(t *testing.T) {
	e := newEngine(t, 4, rules.Sorted, DefaultConfig().WithStrategy(IterativeDeepening))

	res, err := e.Search(context.Background(), nil, 9)
	require.NoError(t, err)
	require.True(t, res.Found)
	assert.Equal(t, 6, res.Stats.Passes, "ceilings 0 through 5")
	assert.Equal(t, 5, res.Stats.Ceiling)
}

func TestTableReusedAcrossSearches(t *testing.T) {
	e := newEngine(t, 5, rules.Sorted, DefaultConfig())

	first, err := e.Search(context.Background(), nil, 9)
	require.NoError(t, err)
	second, err := e.Search(context.Background(), nil, 9)
	require.NoError(t, err)

	assert.Equal(t, first.Path, second.Path)
	assert.Less(t, second.Stats.Nodes, first.Stats.Nodes)

	e.Reset()
	assert.Zero(t, e.Table().Len())
}

func TestMaxTableEntries(t *testing.T) {
	e := newEngine(t, 5, rules.Sorted, DefaultConfig().WithMaxTableEntries(16))

	res, err := e.Search(context.Background(), nil, 9)
	require.NoError(t, err)
	require.True(t, res.Found)
	assert.Len(t, res.Path, 9)
	assert.Positive(t, res.Stats.Table.Dropped)
	assert.LessOrEqual(t, res.Stats.Table.Failures, 16)
}

func TestSearchCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for name, cfg := range strategies() {
		e := newEngine(t, 4, rules.Sorted, cfg)
		_, err := e.Search(ctx, nil, 5)
		assert.ErrorIs(t, err, ErrAborted, name)
		assert.ErrorIs(t, err, context.Canceled, name)
	}
}

func TestSearchCancelledWhileRunning(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var once sync.Once
	cfg := DefaultConfig().WithProgress(func(Progress) { once.Do(cancel) }, 1, 0)
	e := newEngine(t, 6, rules.Sorted, cfg)

	// Proving that 11 swaps cannot sort six wires takes far longer than the
	// poll interval.
	res, err := e.Search(ctx, nil, 11)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAborted)
	assert.True(t, errors.Is(err, context.Canceled))
	require.NotNil(t, res)
	assert.False(t, res.Found)
	assert.Positive(t, res.Stats.Nodes)
}

func TestNodeLimit(t *testing.T) {
	for _, workers := range []int{1, 4} {
		e := newEngine(t, 6, rules.Sorted, DefaultConfig().WithMaxNodes(100).WithWorkers(workers))

		res, err := e.Search(context.Background(), nil, 11)
		require.ErrorIs(t, err, ErrNodeLimit)
		require.NotNil(t, res)
		assert.GreaterOrEqual(t, res.Stats.Nodes, int64(100))
	}
}

func TestProgressReports(t *testing.T) {
	var reports []Progress
	cfg := DefaultConfig().WithProgress(func(p Progress) { reports = append(reports, p) }, 1, 0)
	e := newEngine(t, 5, rules.Sorted, cfg)

	res, err := e.Search(context.Background(), nil, 9)
	require.NoError(t, err)
	require.True(t, res.Found)
	require.NotEmpty(t, reports)

	last := int64(0)
	for _, p := range reports {
		assert.GreaterOrEqual(t, p.Fraction, 0.0)
		assert.Less(t, p.Fraction, 1.0)
		assert.Greater(t, p.Nodes, last)
		assert.Equal(t, len(p.Path), p.Depth)
		assert.LessOrEqual(t, p.Depth, p.Ceiling)
		last = p.Nodes
	}
	assert.Equal(t, res.Stats.Nodes, reports[len(reports)-1].Nodes)
}

func TestParallelProgressReports(t *testing.T) {
	var (
		mu      sync.Mutex
		reports []Progress
	)
	cfg := DefaultConfig().WithWorkers(3).WithProgress(func(p Progress) {
		mu.Lock()
		reports = append(reports, p)
		mu.Unlock()
	}, 1, 0)
	e := newEngine(t, 4, rules.Sorted, cfg)

	_, err := e.Search(context.Background(), nil, 6)
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, reports, space.PairCount(4))
	assert.InDelta(t, 1.0, reports[len(reports)-1].Fraction, 1e-9)
}

func TestNewValidates(t *testing.T) {
	_, err := New(nil, DefaultConfig())
	assert.ErrorIs(t, err, ErrInvalidConfig)

	acc, err := space.Compile(3, rules.Sorted)
	require.NoError(t, err)
	_, err = New(space.New(acc), DefaultConfig().WithWorkers(0))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func BenchmarkSort5(b *testing.B) {
	for _, cfg := range []Config{DefaultConfig(), DefaultConfig().WithStrategy(IterativeDeepening)} {
		b.Run(cfg.Strategy.String(), func(b *testing.B) {
			for b.Loop() {
				e := newEngine(b, 5, rules.Sorted, cfg)
				if _, err := e.Search(context.Background(), nil, 9); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

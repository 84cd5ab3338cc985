package cmpnet

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coregx/cmpnet/oracle"
	"github.com/coregx/cmpnet/rules"
	"github.com/coregx/cmpnet/search"
	"github.com/coregx/cmpnet/space"
)

func TestFindShortestNetworkValidation(t *testing.T) {
	tests := []struct {
		name    string
		wires   int
		pred    space.Predicate
		prefix  space.Path
		max     int
		wantErr error
	}{
		{"one wire", 1, rules.Sorted, nil, 3, ErrInvalidWireCount},
		{"too many wires", 21, rules.Sorted, nil, 3, ErrInvalidWireCount},
		{"nil predicate", 4, nil, nil, 3, ErrNilPredicate},
		{"reversed pair", 4, rules.Sorted, space.Path{{I: 2, J: 1}}, 3, ErrInvalidPair},
		{"pair out of range", 4, rules.Sorted, space.Path{{I: 0, J: 1}, {I: 0, J: 4}}, 3, ErrInvalidPair},
		{"equal indices", 4, rules.Sorted, space.Path{{I: 1, J: 1}}, 3, ErrInvalidPair},
		{"negative budget", 4, rules.Sorted, nil, -1, ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path, found, err := FindShortestNetwork(tt.wires, tt.pred, tt.prefix, tt.max)
			require.ErrorIs(t, err, tt.wantErr)
			assert.False(t, found)
			assert.Nil(t, path)
		})
	}
}

func TestFindShortestNetworkPairErrorIndex(t *testing.T) {
	_, _, err := FindShortestNetwork(4, rules.Sorted, space.Path{{I: 0, J: 1}, {I: 0, J: 1}, {I: 3, J: 0}}, 6)
	var pe *space.PairError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, 2, pe.Index)
	assert.Equal(t, space.Pair{I: 3, J: 0}, pe.Pair)
}

func TestFindShortestNetworkBudgets(t *testing.T) {
	tests := []struct {
		name      string
		wires     int
		pred      space.Predicate
		prefix    string
		max       int
		wantFound bool
		wantLen   int
	}{
		{"sort3", 3, rules.Sorted, "", 3, true, 3},
		{"sort3 tight", 3, rules.Sorted, "", 2, false, 0},
		{"sort4 loose", 4, rules.Sorted, "", 10, true, 5},
		{"prefix over budget", 4, rules.Sorted, "0-1,2-3,0-2", 2, false, 0},
		{"accepted prefix", 4, rules.Sorted, "0-1,2-3,0-2,1-3,1-2", 5, true, 5},
		{"max at zero", 5, rules.MaxAtZero, "", 6, true, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prefix := space.MustParsePath(tt.prefix)
			path, found, err := FindShortestNetwork(tt.wires, tt.pred, prefix, tt.max)
			require.NoError(t, err)
			require.Equal(t, tt.wantFound, found)
			if !found {
				return
			}
			assert.Len(t, path, tt.wantLen)
			assert.NoError(t, oracle.Verify(tt.wires, path, tt.pred))
		})
	}
}

// "At least three ones, or exactly two with wire 0 set" on four wires.
func TestConcreteScenario(t *testing.T) {
	t.Run("literal rule", func(t *testing.T) {
		// The all-zero input passes through every network unchanged and is
		// rejected, so no budget helps.
		path, found, err := FindShortestNetwork(4, rules.AtLeastThreeOrPairAtZero, nil, 5)
		require.NoError(t, err)
		assert.False(t, found)
		assert.Nil(t, path)
	})

	t.Run("fewer than two ones accepted", func(t *testing.T) {
		path, found, err := FindShortestNetwork(4, rules.PairAtZeroOrTrivial, nil, 5)
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, space.MustParsePath("0-1,0-2"), path)
		assert.NoError(t, oracle.Verify(4, path, rules.PairAtZeroOrTrivial))

		_, found, err = FindShortestNetwork(4, rules.PairAtZeroOrTrivial, nil, len(path)-1)
		require.NoError(t, err)
		assert.False(t, found)
	})
}

func TestSynthesizerFind(t *testing.T) {
	metrics := &BasicMetricsCollector{}
	var buf bytes.Buffer
	logger := NewLogger(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	syn, err := New(4, rules.Sorted, WithLogger(logger), WithMetrics(metrics))
	require.NoError(t, err)
	assert.Equal(t, 4, syn.Wires())
	assert.Equal(t, 16, syn.Space().Size())

	res, err := syn.Find(context.Background(), nil, 7)
	require.NoError(t, err)
	require.True(t, res.Found)
	assert.Len(t, res.Path, 5)
	assert.NoError(t, syn.Verify(res.Path))
	assert.Positive(t, res.Stats.Nodes)
	assert.Positive(t, res.Elapsed)
	_, err = uuid.Parse(res.RunID)
	assert.NoError(t, err)

	res2, err := syn.Find(context.Background(), nil, 4)
	require.NoError(t, err)
	assert.False(t, res2.Found)
	assert.NotEqual(t, res.RunID, res2.RunID)

	st := metrics.GetStats()
	assert.Equal(t, int64(2), st.SearchCount)
	assert.Equal(t, int64(1), st.SearchFound)
	assert.Equal(t, int64(0), st.SearchErrors)
	assert.Equal(t, int64(5), st.ShortestFound)

	logs := buf.String()
	assert.Contains(t, logs, `"msg":"network found"`)
	assert.Contains(t, logs, `"msg":"no network within budget"`)
	assert.Contains(t, logs, `"run_id":"`+res.RunID+`"`)
	assert.Contains(t, logs, `"wires":4`)
}

func TestSynthesizerStrategiesAgree(t *testing.T) {
	configs := map[string]search.Config{
		"bnb":      search.DefaultConfig(),
		"id":       search.DefaultConfig().WithStrategy(search.IterativeDeepening),
		"parallel": search.DefaultConfig().WithWorkers(4),
	}

	lengths := map[string]int{}
	for name, cfg := range configs {
		syn, err := New(5, rules.Sorted, WithSearchConfig(cfg))
		require.NoError(t, err)
		res, err := syn.Find(context.Background(), nil, 10)
		require.NoError(t, err, name)
		require.True(t, res.Found, name)
		assert.NoError(t, syn.Verify(res.Path), name)
		lengths[name] = len(res.Path)
	}
	assert.Equal(t, map[string]int{"bnb": 9, "id": 9, "parallel": 9}, lengths)
}

func TestSynthesizerConcurrentFind(t *testing.T) {
	syn, err := New(4, rules.Sorted)
	require.NoError(t, err)

	var wg sync.WaitGroup
	lengths := make([]int, 8)
	for k := range lengths {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := syn.Find(context.Background(), nil, 5+k%3)
			if err == nil && res.Found {
				lengths[k] = len(res.Path)
			}
		}()
	}
	wg.Wait()

	for k, n := range lengths {
		assert.Equal(t, 5, n, "goroutine %d", k)
	}
}

func TestSynthesizerAbort(t *testing.T) {
	metrics := &BasicMetricsCollector{}
	syn, err := New(6, rules.Sorted,
		WithMetrics(metrics),
		WithSearchConfig(search.DefaultConfig().WithMaxNodes(500)))
	require.NoError(t, err)

	res, err := syn.Find(context.Background(), nil, 11)
	require.ErrorIs(t, err, ErrNodeLimit)
	require.NotNil(t, res)
	assert.False(t, res.Found)
	assert.GreaterOrEqual(t, res.Stats.Nodes, int64(500))
	assert.Equal(t, int64(1), metrics.GetStats().SearchErrors)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = syn.Find(ctx, nil, 11)
	assert.ErrorIs(t, err, ErrAborted)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestWithProgress(t *testing.T) {
	var (
		mu    sync.Mutex
		count int
	)
	syn, err := New(5, rules.Sorted,
		WithProgress(func(search.Progress) {
			mu.Lock()
			count++
			mu.Unlock()
		}, 0),
		// A later config without a callback keeps the progress hook.
		WithSearchConfig(search.DefaultConfig().WithStrategy(search.IterativeDeepening).WithProgress(nil, 16, 0)),
	)
	require.NoError(t, err)

	res, err := syn.Find(context.Background(), nil, 9)
	require.NoError(t, err)
	require.True(t, res.Found)

	mu.Lock()
	defer mu.Unlock()
	assert.Positive(t, count)
}

func TestLoggerHelpers(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	l.WithRunID("abc").LogProgress(context.Background(), search.Progress{
		Fraction: 0.5,
		Nodes:    10,
		Depth:    2,
		Ceiling:  5,
		Path:     space.MustParsePath("0-1,2-3"),
	})
	l.LogSearch(context.Background(), false, 0, search.Stats{}, time.Millisecond, errors.New("boom"))

	out := buf.String()
	assert.Contains(t, out, "run_id=abc")
	assert.Contains(t, out, "path=0-1,2-3")
	assert.Contains(t, out, "search failed")
	assert.Contains(t, out, "error=boom")

	// Must not panic or write anywhere.
	NoopLogger().LogSearch(context.Background(), true, 3, search.Stats{}, 0, nil)
	assert.False(t, strings.Contains(buf.String(), "network found"))
	assert.NotNil(t, NewLogger(nil))
	assert.NotNil(t, NewJSONLogger(slog.LevelInfo))
	assert.NotNil(t, NewTextLogger(slog.LevelWarn))
}

func TestBasicMetricsCollector(t *testing.T) {
	var m BasicMetricsCollector
	assert.Zero(t, m.GetStats().SearchAvgNanos)

	m.RecordSearch(2*time.Millisecond, true, 9, search.Stats{Nodes: 10}, nil)
	m.RecordSearch(4*time.Millisecond, true, 7, search.Stats{Nodes: 5}, nil)
	m.RecordSearch(time.Millisecond, true, 8, search.Stats{}, nil)
	m.RecordSearch(time.Millisecond, false, 0, search.Stats{}, nil)
	m.RecordSearch(time.Millisecond, false, 0, search.Stats{}, ErrNodeLimit)

	st := m.GetStats()
	assert.Equal(t, int64(5), st.SearchCount)
	assert.Equal(t, int64(3), st.SearchFound)
	assert.Equal(t, int64(1), st.SearchErrors)
	assert.Equal(t, int64(15), st.NodesVisited)
	assert.Equal(t, int64(7), st.ShortestFound)
	assert.Equal(t, (9 * time.Millisecond).Nanoseconds()/5, st.SearchAvgNanos)

	var _ MetricsCollector = NoopMetricsCollector{}
	var _ MetricsCollector = &m
}

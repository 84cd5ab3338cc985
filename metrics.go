package cmpnet

import (
	"sync/atomic"
	"time"

	"github.com/coregx/cmpnet/search"
)

// MetricsCollector receives one record per Synthesizer.Find call.
// Implement this interface to integrate with a monitoring system; package
// prommetrics provides a Prometheus implementation.
type MetricsCollector interface {
	// RecordSearch is called after each search. length is the network
	// length when found, err is nil unless the search failed or aborted.
	RecordSearch(duration time.Duration, found bool, length int, stats search.Stats, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

// RecordSearch implements MetricsCollector.
func (NoopMetricsCollector) RecordSearch(time.Duration, bool, int, search.Stats, error) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	SearchCount      atomic.Int64
	SearchFound      atomic.Int64
	SearchErrors     atomic.Int64
	SearchTotalNanos atomic.Int64
	NodesVisited     atomic.Int64
	ShortestFound    atomic.Int64 // 0 until a network is found
}

// RecordSearch implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSearch(duration time.Duration, found bool, length int, stats search.Stats, err error) {
	b.SearchCount.Add(1)
	b.SearchTotalNanos.Add(duration.Nanoseconds())
	b.NodesVisited.Add(stats.Nodes)
	if err != nil {
		b.SearchErrors.Add(1)
		return
	}
	if !found {
		return
	}
	b.SearchFound.Add(1)
	for {
		cur := b.ShortestFound.Load()
		if cur != 0 && cur <= int64(length) {
			return
		}
		if b.ShortestFound.CompareAndSwap(cur, int64(length)) {
			return
		}
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		SearchCount:    b.SearchCount.Load(),
		SearchFound:    b.SearchFound.Load(),
		SearchErrors:   b.SearchErrors.Load(),
		SearchAvgNanos: b.getAvgSearchNanos(),
		NodesVisited:   b.NodesVisited.Load(),
		ShortestFound:  b.ShortestFound.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgSearchNanos() int64 {
	count := b.SearchCount.Load()
	if count == 0 {
		return 0
	}
	return b.SearchTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector.
type BasicMetricsStats struct {
	SearchCount    int64
	SearchFound    int64
	SearchErrors   int64
	SearchAvgNanos int64
	NodesVisited   int64
	ShortestFound  int64
}

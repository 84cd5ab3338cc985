// Package prommetrics exports search metrics to Prometheus.
//
//	reg := prometheus.NewRegistry()
//	m, err := prommetrics.New(reg, "cmpnet")
//	syn, err := cmpnet.New(8, rules.Conway, cmpnet.WithMetrics(m))
package prommetrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/coregx/cmpnet/search"
)

// Outcome label values.
const (
	OutcomeFound    = "found"
	OutcomeNotFound = "not_found"
	OutcomeAborted  = "aborted"
	OutcomeError    = "error"
)

// Collector implements cmpnet.MetricsCollector on Prometheus metrics.
type Collector struct {
	searches     *prometheus.CounterVec
	duration     *prometheus.HistogramVec
	nodes        prometheus.Counter
	tableEntries prometheus.Gauge
	hitRate      prometheus.Gauge
	dropped      prometheus.Counter
	length       prometheus.Gauge
}

// New creates the metrics and registers them on reg. namespace prefixes
// every metric name and may be empty.
func New(reg prometheus.Registerer, namespace string) (*Collector, error) {
	c := &Collector{
		searches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "searches_total",
			Help:      "Searches completed, by outcome",
		}, []string{"outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_duration_seconds",
			Help:      "Wall time of searches, by outcome",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10),
		}, []string{"outcome"}),
		nodes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "search_nodes_total",
			Help:      "Candidate states visited",
		}),
		tableEntries: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "transposition_entries",
			Help:      "Transposition table size after the last search",
		}),
		hitRate: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "transposition_hit_ratio",
			Help:      "Transposition table hit rate of the last search (0.0-1.0)",
		}),
		dropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transposition_dropped_total",
			Help:      "Failure bounds not stored because the table was full",
		}),
		length: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "network_length",
			Help:      "Length of the last network found",
		}),
	}

	for _, col := range []prometheus.Collector{
		c.searches, c.duration, c.nodes, c.tableEntries, c.hitRate, c.dropped, c.length,
	} {
		if err := reg.Register(col); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// RecordSearch implements cmpnet.MetricsCollector.
func (c *Collector) RecordSearch(duration time.Duration, found bool, length int, stats search.Stats, err error) {
	outcome := Outcome(found, err)
	c.searches.WithLabelValues(outcome).Inc()
	c.duration.WithLabelValues(outcome).Observe(duration.Seconds())
	c.nodes.Add(float64(stats.Nodes))
	c.tableEntries.Set(float64(stats.Table.Entries))
	c.hitRate.Set(stats.Table.HitRate())
	c.dropped.Add(float64(stats.Table.Dropped))
	if found {
		c.length.Set(float64(length))
	}
}

// Outcome maps a search result to its label value.
func Outcome(found bool, err error) string {
	switch {
	case errors.Is(err, search.ErrAborted), errors.Is(err, search.ErrNodeLimit):
		return OutcomeAborted
	case err != nil:
		return OutcomeError
	case found:
		return OutcomeFound
	default:
		return OutcomeNotFound
	}
}

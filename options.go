package cmpnet

import (
	"time"

	"github.com/coregx/cmpnet/search"
)

type options struct {
	config  search.Config
	logger  *Logger
	metrics MetricsCollector
}

func defaultOptions() options {
	return options{
		config:  search.DefaultConfig(),
		logger:  NoopLogger(),
		metrics: NoopMetricsCollector{},
	}
}

// Option configures a Synthesizer.
type Option func(*options)

// WithLogger sets the logger. nil keeps the default, which discards output.
//
// The search engine logs through the same logger unless the search config
// carries its own.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithMetrics sets the metrics collector. nil keeps the no-op collector.
func WithMetrics(m MetricsCollector) Option {
	return func(o *options) {
		if m != nil {
			o.metrics = m
		}
	}
}

// WithSearchConfig replaces the search configuration. Progress settings
// from an earlier WithProgress are kept unless cfg sets its own callback.
func WithSearchConfig(cfg search.Config) Option {
	return func(o *options) {
		if cfg.OnProgress == nil && o.config.OnProgress != nil {
			cfg.OnProgress = o.config.OnProgress
			cfg.ProgressInterval = o.config.ProgressInterval
		}
		o.config = cfg
	}
}

// WithProgress reports progress to fn at most once per interval.
func WithProgress(fn func(search.Progress), interval time.Duration) Option {
	return func(o *options) {
		o.config.OnProgress = fn
		o.config.ProgressInterval = interval
	}
}

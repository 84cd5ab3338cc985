package search

import (
	"fmt"
	"log/slog"
	"time"
)

// Strategy selects how ceilings are scheduled.
type Strategy uint8

const (
	// BranchAndBound runs a single pass with the caller's ceiling and
	// tightens it as solutions are found.
	BranchAndBound Strategy = iota

	// IterativeDeepening runs passes with ceilings prefix, prefix+1, ...,
	// maxSwaps over one shared table and stops at the first success.
	IterativeDeepening
)

// String returns the short strategy name used by the CLI.
func (s Strategy) String() string {
	switch s {
	case BranchAndBound:
		return "bnb"
	case IterativeDeepening:
		return "id"
	default:
		return fmt.Sprintf("Strategy(%d)", s)
	}
}

// ParseStrategy parses the names produced by Strategy.String.
func ParseStrategy(s string) (Strategy, error) {
	switch s {
	case "bnb", "branch-and-bound", "":
		return BranchAndBound, nil
	case "id", "iterative-deepening":
		return IterativeDeepening, nil
	default:
		return 0, invalidConfig("unknown strategy %q", s)
	}
}

// Config configures the search engine.
//
// The zero value is not valid; start from DefaultConfig.
type Config struct {
	// Strategy selects branch-and-bound or iterative deepening.
	//
	// Default: BranchAndBound
	Strategy Strategy

	// MaxTableEntries caps the number of transposition entries created for
	// failure bounds. Success entries are always stored because the final
	// path is rebuilt from them. 0 means unlimited.
	//
	// Default: 0
	MaxTableEntries int

	// MaxNodes aborts the search with ErrNodeLimit after visiting this many
	// states. 0 means unlimited.
	//
	// Default: 0
	MaxNodes int64

	// Workers is the number of goroutines exploring the root's children.
	// 1 runs the search on the calling goroutine.
	//
	// Default: 1
	Workers int

	// ProgressEvery is the node interval between progress samples.
	// Samples are only taken when OnProgress is set.
	//
	// Default: 8192
	ProgressEvery int64

	// ProgressInterval is the minimum wall time between two OnProgress
	// calls. 0 delivers every sample.
	//
	// Default: 1s
	ProgressInterval time.Duration

	// OnProgress receives advisory progress estimates. It is called on the
	// searching goroutine and must return quickly.
	OnProgress func(Progress)

	// Logger receives debug output about passes and results.
	// nil discards it.
	Logger *slog.Logger
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Strategy:         BranchAndBound,
		Workers:          1,
		ProgressEvery:    8192,
		ProgressInterval: time.Second,
	}
}

// Validate checks if the configuration is valid.
// Returns an error if any parameter is out of acceptable range.
func (c *Config) Validate() error {
	if c.Strategy != BranchAndBound && c.Strategy != IterativeDeepening {
		return invalidConfig("unknown strategy %d", c.Strategy)
	}

	if c.MaxTableEntries < 0 {
		return invalidConfig("MaxTableEntries must be >= 0")
	}

	if c.MaxNodes < 0 {
		return invalidConfig("MaxNodes must be >= 0")
	}

	if c.Workers < 1 {
		return invalidConfig("Workers must be >= 1")
	}

	if c.ProgressEvery <= 0 {
		return invalidConfig("ProgressEvery must be > 0")
	}

	if c.ProgressInterval < 0 {
		return invalidConfig("ProgressInterval must be >= 0")
	}

	return nil
}

// WithStrategy returns a new config with the specified strategy
func (c Config) WithStrategy(s Strategy) Config {
	c.Strategy = s
	return c
}

// WithMaxTableEntries returns a new config with the specified table cap
func (c Config) WithMaxTableEntries(n int) Config {
	c.MaxTableEntries = n
	return c
}

// WithMaxNodes returns a new config with the specified node budget
func (c Config) WithMaxNodes(n int64) Config {
	c.MaxNodes = n
	return c
}

// WithWorkers returns a new config with the specified worker count
func (c Config) WithWorkers(n int) Config {
	c.Workers = n
	return c
}

// WithProgress returns a new config that reports progress to fn, sampling
// every `every` nodes and at most once per interval
func (c Config) WithProgress(fn func(Progress), every int64, interval time.Duration) Config {
	c.OnProgress = fn
	c.ProgressEvery = every
	c.ProgressInterval = interval
	return c
}

// WithLogger returns a new config with the specified logger
func (c Config) WithLogger(l *slog.Logger) Config {
	c.Logger = l
	return c
}

package search

import "github.com/coregx/cmpnet/space"

// EntryKind distinguishes the two transposition entry variants.
type EntryKind uint8

const (
	// FailureBound records that no accepted state is reachable from the key
	// within Budget further swaps.
	FailureBound EntryKind = iota

	// Success records the exact minimal number of further swaps (Height)
	// and the first swap of one optimal continuation (Next).
	Success
)

// String returns the entry kind name
func (k EntryKind) String() string {
	if k == Success {
		return "Success"
	}
	return "FailureBound"
}

// Entry is a transposition table value.
type Entry struct {
	Kind   EntryKind
	Height int        // Success only
	Next   space.Pair // Success only
	Budget int        // FailureBound only
}

// Table maps candidate-state keys to Entry values.
//
// The table is owned by a single engine and is not safe for concurrent use.
// Entries move only along absent → FailureBound → Success; a Success entry is
// never revised and a FailureBound is only ever raised.
//
// Memory management:
//   - maxEntries (if > 0) caps the table size for new FailureBound entries
//   - Success entries are always stored because paths are rebuilt from them
//   - entries are never evicted
type Table struct {
	entries    map[string]Entry
	maxEntries int

	successes int
	failures  int

	// Statistics for tuning
	hits    uint64 // Lookups that found an entry
	misses  uint64 // Lookups that found nothing
	dropped uint64 // FailureBound inserts refused by the cap
}

// NewTable creates an empty table. maxEntries <= 0 means unbounded.
func NewTable(maxEntries int) *Table {
	if maxEntries < 0 {
		maxEntries = 0
	}
	return &Table{
		entries:    make(map[string]Entry),
		maxEntries: maxEntries,
	}
}

// Lookup retrieves the entry for key and updates the hit/miss counters.
func (t *Table) Lookup(key []byte) (Entry, bool) {
	e, ok := t.entries[string(key)]
	if ok {
		t.hits++
	} else {
		t.misses++
	}
	return e, ok
}

// Peek retrieves the entry for key without touching the statistics.
func (t *Table) Peek(key []byte) (Entry, bool) {
	e, ok := t.entries[string(key)]
	return e, ok
}

// RecordSuccess stores an exact height for key. An existing Success entry
// is left untouched; a FailureBound is replaced.
func (t *Table) RecordSuccess(key []byte, height int, next space.Pair) {
	prev, ok := t.entries[string(key)]
	if ok && prev.Kind == Success {
		return
	}
	if ok {
		t.failures--
	}
	t.entries[string(key)] = Entry{Kind: Success, Height: height, Next: next}
	t.successes++
}

// RaiseFailure records that no solution exists from key within budget
// swaps. Negative budgets and Success keys are ignored; an existing bound
// is only ever raised.
func (t *Table) RaiseFailure(key []byte, budget int) {
	if budget < 0 {
		return
	}
	prev, ok := t.entries[string(key)]
	if ok {
		if prev.Kind == Success || prev.Budget >= budget {
			return
		}
		prev.Budget = budget
		t.entries[string(key)] = prev
		return
	}
	if t.maxEntries > 0 && len(t.entries) >= t.maxEntries {
		t.dropped++
		return
	}
	t.entries[string(key)] = Entry{Kind: FailureBound, Budget: budget}
	t.failures++
}

// Len returns the current number of entries
func (t *Table) Len() int {
	return len(t.entries)
}

// Clear removes every entry and resets the statistics.
// Allocated map memory is kept for reuse.
func (t *Table) Clear() {
	clear(t.entries)
	t.successes = 0
	t.failures = 0
	t.hits = 0
	t.misses = 0
	t.dropped = 0
}

// Stats returns table statistics.
func (t *Table) Stats() TableStats {
	return TableStats{
		Entries:   len(t.entries),
		Successes: t.successes,
		Failures:  t.failures,
		Hits:      t.hits,
		Misses:    t.misses,
		Dropped:   t.dropped,
	}
}

// TableStats is a snapshot of transposition table counters.
type TableStats struct {
	Entries   int
	Successes int
	Failures  int
	Hits      uint64
	Misses    uint64
	Dropped   uint64
}

// HitRate returns the hit rate as a fraction in [0, 1].
// Returns 0 if no lookups have been performed.
func (s TableStats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

func (s *TableStats) add(o TableStats) {
	s.Entries += o.Entries
	s.Successes += o.Successes
	s.Failures += o.Failures
	s.Hits += o.Hits
	s.Misses += o.Misses
	s.Dropped += o.Dropped
}

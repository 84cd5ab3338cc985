package cmpnet

import (
	"github.com/coregx/cmpnet/search"
	"github.com/coregx/cmpnet/space"
)

// Errors returned by the package, re-exported from the packages that
// produce them so callers need a single import for errors.Is checks.
var (
	// ErrInvalidWireCount indicates a wire count outside [2, 20].
	ErrInvalidWireCount = space.ErrInvalidWireCount

	// ErrInvalidPair indicates a swap with I >= J or an index outside the
	// wire range. The concrete error is a *space.PairError.
	ErrInvalidPair = space.ErrInvalidPair

	// ErrNilPredicate indicates a missing predicate.
	ErrNilPredicate = space.ErrNilPredicate

	// ErrInvalidConfig indicates an invalid search configuration or budget.
	ErrInvalidConfig = search.ErrInvalidConfig

	// ErrAborted indicates the search context was cancelled.
	ErrAborted = search.ErrAborted

	// ErrNodeLimit indicates the configured node budget was exhausted.
	ErrNodeLimit = search.ErrNodeLimit
)

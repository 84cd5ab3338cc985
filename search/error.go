package search

import "fmt"

// Error types for search operations

// ErrInvalidConfig indicates that the provided configuration or search
// arguments are invalid.
var ErrInvalidConfig = &Error{
	Kind:    InvalidConfig,
	Message: "invalid search configuration",
}

// ErrAborted indicates the search was cancelled through its context.
// The context error is available through errors.Unwrap.
var ErrAborted = &Error{
	Kind:    Aborted,
	Message: "search aborted",
}

// ErrNodeLimit indicates the search visited Config.MaxNodes states without
// reaching a verdict.
var ErrNodeLimit = &Error{
	Kind:    NodeLimit,
	Message: "search node limit exceeded",
}

// ErrorKind classifies search errors into categories
type ErrorKind uint8

const (
	// InvalidConfig indicates configuration or argument validation failed
	InvalidConfig ErrorKind = iota

	// Aborted indicates the caller's context was cancelled
	Aborted

	// NodeLimit indicates the node budget was exhausted
	NodeLimit

	// Internal indicates a broken invariant, e.g. a Success chain that
	// cannot be replayed
	Internal
)

// String returns a human-readable error kind name
func (k ErrorKind) String() string {
	switch k {
	case InvalidConfig:
		return "InvalidConfig"
	case Aborted:
		return "Aborted"
	case NodeLimit:
		return "NodeLimit"
	case Internal:
		return "Internal"
	default:
		return fmt.Sprintf("UnknownErrorKind(%d)", k)
	}
}

// Error represents an error that occurred during a search
type Error struct {
	Kind    ErrorKind
	Message string
	Cause   error // Optional underlying error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying error (for errors.Is/As)
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is implements error comparison for errors.Is
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

func invalidConfig(format string, args ...any) *Error {
	return &Error{
		Kind:    InvalidConfig,
		Message: fmt.Sprintf(format, args...),
	}
}

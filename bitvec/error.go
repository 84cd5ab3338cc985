package bitvec

import "fmt"

// ErrSizeMismatch is the panic value kind raised when a bulk operation is
// applied to vectors of different sizes.
var ErrSizeMismatch = &Error{
	Kind:    SizeMismatch,
	Message: "bit vector size mismatch",
}

// ErrIndexOutOfRange is raised when Get or Set address a bit outside the vector.
var ErrIndexOutOfRange = &Error{
	Kind:    IndexOutOfRange,
	Message: "bit index out of range",
}

// ErrInvalidSize is raised when a vector is constructed with a negative size.
var ErrInvalidSize = &Error{
	Kind:    InvalidSize,
	Message: "invalid bit vector size",
}

// ErrorKind classifies bit vector errors.
type ErrorKind uint8

const (
	// SizeMismatch indicates operands of a bulk operation differ in size
	SizeMismatch ErrorKind = iota

	// IndexOutOfRange indicates a bit index outside [0, Len())
	IndexOutOfRange

	// InvalidSize indicates a negative construction size
	InvalidSize
)

// String returns a human-readable error kind name
func (k ErrorKind) String() string {
	switch k {
	case SizeMismatch:
		return "SizeMismatch"
	case IndexOutOfRange:
		return "IndexOutOfRange"
	case InvalidSize:
		return "InvalidSize"
	default:
		return fmt.Sprintf("UnknownErrorKind(%d)", k)
	}
}

// Error describes a misuse of the bit vector API.
// It is used as a panic value, so callers that recover can inspect it with
// errors.As or compare kinds with errors.Is.
type Error struct {
	Kind    ErrorKind
	Message string
}

// Error implements the error interface
func (e *Error) Error() string {
	return e.Message
}

// Is implements error comparison for errors.Is
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

func sizeMismatch(a, b int) *Error {
	return &Error{
		Kind:    SizeMismatch,
		Message: fmt.Sprintf("bit vector size mismatch: %d vs %d", a, b),
	}
}

func indexOutOfRange(i, size int) *Error {
	return &Error{
		Kind:    IndexOutOfRange,
		Message: fmt.Sprintf("bit index %d out of range [0, %d)", i, size),
	}
}

package graphfusion

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrorKind classifies engine errors per spec §7's propagation policy
// table. Per-row kinds (TypeMismatch, DomainError, Overflow,
// DivisionByZero, ExpectedError) are produced deep inside internal/xsd and
// internal/functions and are masked to null/unbound before they ever reach
// a caller; they are exported here only so tests can assert on them.
type ErrorKind int

const (
	KindParseError ErrorKind = iota
	KindTypeMismatch
	KindDomainError
	KindOverflow
	KindDivisionByZero
	KindExpectedError
	KindStorageError
	KindInternalError
	KindEvaluationError
)

func (k ErrorKind) String() string {
	switch k {
	case KindParseError:
		return "ParseError"
	case KindTypeMismatch:
		return "TypeMismatch"
	case KindDomainError:
		return "DomainError"
	case KindOverflow:
		return "Overflow"
	case KindDivisionByZero:
		return "DivisionByZero"
	case KindExpectedError:
		return "ExpectedError"
	case KindStorageError:
		return "StorageError"
	case KindInternalError:
		return "InternalError"
	case KindEvaluationError:
		return "EvaluationError"
	default:
		return "UnknownError"
	}
}

// Error is the engine's typed error value. Storage and internal errors are
// wrapped with github.com/pkg/errors at the point they cross a subsystem
// boundary, so errors.Cause(err) still recovers the root cause.
type Error struct {
	Kind ErrorKind
	Op   string // operator/subsystem that raised it, for InternalError logs
	err  error
}

func (e *Error) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Op, e.err)
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.err)
}

func (e *Error) Unwrap() error { return e.err }

// NewError constructs an *Error wrapping cause with pkg/errors so a stack
// trace is attached at the point of construction.
func NewError(kind ErrorKind, op string, cause error) *Error {
	return &Error{Kind: kind, Op: op, err: errors.WithStack(cause)}
}

// Errorf constructs an *Error from a format string.
func Errorf(kind ErrorKind, op, format string, args ...interface{}) *Error {
	return NewError(kind, op, fmt.Errorf(format, args...))
}

// KindOf returns the ErrorKind of err if it (or something it wraps) is an
// *Error, and ok=false otherwise.
func KindOf(err error) (ErrorKind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

var (
	// ErrNotImplemented is returned by Store.Update: SPARQL Update execution
	// is a stated Non-goal (spec.md §1); parsing UPDATE is still accepted.
	ErrNotImplemented = errors.New("graphfusion: not implemented")
)

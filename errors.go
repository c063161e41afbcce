package geotrans

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrorKind is a stable integer error code, suitable for crossing API
// boundaries where callers want to branch on failure category rather than
// parse a message string.
type ErrorKind int

// Error kinds, stable across releases.
const (
	KindSuccess ErrorKind = iota
	KindInvalidInput
	KindOutOfRange
	KindParseFailed
	KindFormat
	KindMemory
	KindInvalidCoord
	KindInvalidUTMZone
	KindDatumTransform
	KindCalculation
	KindUnsupportedFormat
)

func (k ErrorKind) String() string {
	switch k {
	case KindSuccess:
		return "success"
	case KindInvalidInput:
		return "invalid input"
	case KindOutOfRange:
		return "out of range"
	case KindParseFailed:
		return "parse failed"
	case KindFormat:
		return "format"
	case KindMemory:
		return "memory"
	case KindInvalidCoord:
		return "invalid coordinate"
	case KindInvalidUTMZone:
		return "invalid utm zone"
	case KindDatumTransform:
		return "datum transform"
	case KindCalculation:
		return "calculation"
	case KindUnsupportedFormat:
		return "unsupported format"
	default:
		return "unknown"
	}
}

// Error is the library's single error type: a stable Kind plus a message,
// optionally wrapping an underlying cause so errors.Cause/errors.As keep
// working against it.
type Error struct {
	Kind  ErrorKind
	msg   string
	cause error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %s", e.Kind, e.msg, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.msg)
}

// Cause implements the github.com/pkg/errors Causer interface.
func (e *Error) Cause() error { return e.cause }

// Unwrap supports errors.Is/errors.As from the standard library too.
func (e *Error) Unwrap() error { return e.cause }

func newError(kind ErrorKind, msg string) *Error {
	return &Error{Kind: kind, msg: msg, cause: errors.New(msg)}
}

func newErrorf(kind ErrorKind, format string, args ...interface{}) *Error {
	msg := fmt.Sprintf(format, args...)
	return &Error{Kind: kind, msg: msg, cause: errors.New(msg)}
}

func wrapError(kind ErrorKind, cause error, msg string) *Error {
	return &Error{Kind: kind, msg: msg, cause: errors.Wrap(cause, msg)}
}

// ErrorCallback receives errors at points in the API where the caller has no
// other way to observe a failure synchronously (currently only context
// construction failures, per the memory-allocation-failure contract). It
// must be safe for concurrent use since it may be installed once and shared
// across multiple single-threaded Contexts.
type ErrorCallback func(err error)

// defaultErrorCallback is the process-wide sink for construction failures
// that happen before any Context exists to hold a per-instance callback.
// It is the package's only global mutable state.
var defaultErrorCallback ErrorCallback

// SetDefaultErrorCallback installs the process-wide callback NewContext
// invokes if construction fails. Must be safe for concurrent use.
func SetDefaultErrorCallback(cb ErrorCallback) {
	defaultErrorCallback = cb
}

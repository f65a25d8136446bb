package vsh

import (
	"errors"
	"fmt"
)

// Kind classifies every failure a command or tree operation can produce.
// Each kind maps to a distinct user-visible message at the dispatch boundary.
type Kind int

const (
	// KindUnknown covers faults that escaped classification. Implementations
	// are expected to translate before returning, so seeing it is a bug.
	KindUnknown Kind = iota
	KindPathNotFound
	KindNotADirectory
	KindNameCollision
	KindInvalidOperation
	KindUnknownCommand
	KindUnknownFlag
	KindMissingValue
	KindInvalidArgument
)

func (k Kind) String() string {
	switch k {
	case KindPathNotFound:
		return "path not found"
	case KindNotADirectory:
		return "not a directory"
	case KindNameCollision:
		return "name collision"
	case KindInvalidOperation:
		return "invalid operation"
	case KindUnknownCommand:
		return "unknown command"
	case KindUnknownFlag:
		return "unknown flag"
	case KindMissingValue:
		return "missing value"
	case KindInvalidArgument:
		return "invalid argument"
	}
	return "unknown error"
}

// Error is the structured failure carried through dispatch. It wraps an
// optional cause so callers can still reach it with [errors.Unwrap].
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Kind.String()
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports kind equality so callers can match with
// errors.Is(err, &Error{Kind: KindPathNotFound}).
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Kind == t.Kind
}

// KindOf returns the classification of err, or KindUnknown if err carries
// no *Error anywhere in its chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

func newError(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// PathNotFoundf reports a path segment that did not resolve.
func PathNotFoundf(format string, args ...any) *Error {
	return newError(KindPathNotFound, format, args...)
}

// NotADirectoryf reports a File where a Directory was required.
func NotADirectoryf(format string, args ...any) *Error {
	return newError(KindNotADirectory, format, args...)
}

// NameCollisionf reports a sibling-name clash.
func NameCollisionf(format string, args ...any) *Error {
	return newError(KindNameCollision, format, args...)
}

// InvalidOperationf reports a structurally forbidden mutation, e.g.
// removing the root.
func InvalidOperationf(format string, args ...any) *Error {
	return newError(KindInvalidOperation, format, args...)
}

// UnknownCommandf reports a name missing from the registry.
func UnknownCommandf(format string, args ...any) *Error {
	return newError(KindUnknownCommand, format, args...)
}

// UnknownFlagf reports a flag the command's spec does not declare.
func UnknownFlagf(format string, args ...any) *Error {
	return newError(KindUnknownFlag, format, args...)
}

// MissingValuef reports a value-taking flag with no value token.
func MissingValuef(format string, args ...any) *Error {
	return newError(KindMissingValue, format, args...)
}

// InvalidArgumentf reports a malformed argument, e.g. a non-numeric -n.
func InvalidArgumentf(format string, args ...any) *Error {
	return newError(KindInvalidArgument, format, args...)
}

// WrapKind attaches a classification to an existing error, keeping it
// reachable through Unwrap.
func WrapKind(kind Kind, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Err: err}
}

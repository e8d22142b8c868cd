package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies every failure the client can surface. The session
// manager is the single place where driver errors are folded into this
// taxonomy; nothing above it ever sees a raw pgx error.
type ErrorKind int

const (
	// KindUnknown is the zero value, used for errors raised outside the taxonomy.
	KindUnknown ErrorKind = iota
	// KindConnection means opening a connection failed (bad credentials, unreachable host).
	KindConnection
	// KindNotConnected means an operation required a live connection and there was none.
	KindNotConnected
	// KindNoProfile means a reconnect was requested before any profile was set.
	KindNoProfile
	// KindQuery means the server rejected the SQL or the session dropped mid-query.
	KindQuery
	// KindStore means profile persistence failed (I/O or encoding).
	KindStore
	// KindNotFound means a named profile is absent from the store.
	KindNotFound
	// KindInvalidSelection means the menu input did not match any option.
	KindInvalidSelection
)

// String returns the string representation of the error kind.
func (k ErrorKind) String() string {
	switch k {
	case KindConnection:
		return "ConnectionError"
	case KindNotConnected:
		return "NotConnected"
	case KindNoProfile:
		return "NoProfile"
	case KindQuery:
		return "QueryError"
	case KindStore:
		return "StoreError"
	case KindNotFound:
		return "NotFound"
	case KindInvalidSelection:
		return "InvalidSelection"
	default:
		return "Unknown"
	}
}

// Error is a kind-tagged error that optionally wraps an underlying cause.
type Error struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

// NewError creates a taxonomy error wrapping cause. Cause may be nil.
func NewError(kind ErrorKind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap exposes the underlying cause for errors.Is / errors.As chains.
func (e *Error) Unwrap() error {
	return e.Cause
}

// KindOf extracts the taxonomy kind from err, or KindUnknown if err was
// raised outside the taxonomy.
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindUnknown
}

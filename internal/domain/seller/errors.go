package seller

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind is a machine-checkable classification of a domain error
type ErrorKind string

const (
	ErrKindNotFound            ErrorKind = "not_found"
	ErrKindConflict            ErrorKind = "conflict"
	ErrKindInvalidState        ErrorKind = "invalid_state"
	ErrKindMissingFields       ErrorKind = "missing_fields"
	ErrKindMissingReason       ErrorKind = "missing_reason"
	ErrKindInvalidRange        ErrorKind = "invalid_range"
	ErrKindAccountSuspended    ErrorKind = "account_suspended"
	ErrKindHasDependents       ErrorKind = "has_dependents"
	ErrKindInvalidUser         ErrorKind = "invalid_user"
	ErrKindUpstreamUnavailable ErrorKind = "upstream_unavailable"
)

// Error is a domain error carrying a kind, a human-readable message and,
// for precondition failures, the fields that failed
type Error struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
	Fields  []string  `json:"fields,omitempty"`
}

func (e *Error) Error() string {
	return e.Message
}

func NewError(kind ErrorKind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func NewErrorf(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// NewMissingFieldsError lists every required field found absent, so the caller
// can reconstruct the failed precondition
func NewMissingFieldsError(fields []string) *Error {
	return &Error{
		Kind:    ErrKindMissingFields,
		Message: fmt.Sprintf("Missing required fields: %s", strings.Join(fields, ", ")),
		Fields:  fields,
	}
}

// IsKind reports whether err is a domain Error of the given kind
func IsKind(err error, kind ErrorKind) bool {
	var domainErr *Error
	if errors.As(err, &domainErr) {
		return domainErr.Kind == kind
	}
	return false
}

// AsError unwraps err into a domain Error if possible
func AsError(err error) (*Error, bool) {
	var domainErr *Error
	if errors.As(err, &domainErr) {
		return domainErr, true
	}
	return nil, false
}

package domain

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind classifies a failure into the adapter's error taxonomy. Every backend
// call and every local validation failure resolves to exactly one kind.
type Kind string

const (
	// KindUserInput indicates a rejected request: backend 400 or local
	// schema/argument validation failure.
	KindUserInput Kind = "user_input"
	// KindAuthentication indicates missing or bad credentials (401).
	KindAuthentication Kind = "authentication"
	// KindForbidden indicates valid credentials without permission (403).
	KindForbidden Kind = "forbidden"
	// KindNotFound indicates a missing entity, tool, resource, or session (404).
	KindNotFound Kind = "not_found"
	// KindInternalServer indicates a backend 5xx or any unclassified failure.
	KindInternalServer Kind = "internal_server"
)

// ErrorContext carries the diagnostics captured at the point of failure.
// Constructed once per failed call and never mutated afterwards. Status is
// zero for failures that never produced an HTTP response.
type ErrorContext struct {
	Status       int         `json:"status,omitempty"`
	ResponseBody string      `json:"responseBody,omitempty"`
	RequestInput interface{} `json:"requestInput,omitempty"`
	Endpoint     string      `json:"endpoint,omitempty"`
}

// Error is the typed failure produced by the error translator and by local
// validation. Context may be nil for failures with no call-site diagnostics.
type Error struct {
	Kind    Kind
	Message string
	Context *ErrorContext
	Cause   error
}

// Error returns the error message.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// WithCause attaches the underlying failure and returns the same error.
func (e *Error) WithCause(cause error) *Error {
	e.Cause = cause
	return e
}

// NewUserInputError creates a user-input error.
func NewUserInputError(message string, ctx *ErrorContext) *Error {
	return &Error{Kind: KindUserInput, Message: message, Context: ctx}
}

// NewAuthenticationError creates an authentication error.
func NewAuthenticationError(message string, ctx *ErrorContext) *Error {
	return &Error{Kind: KindAuthentication, Message: message, Context: ctx}
}

// NewForbiddenError creates a forbidden error.
func NewForbiddenError(message string, ctx *ErrorContext) *Error {
	return &Error{Kind: KindForbidden, Message: message, Context: ctx}
}

// NewNotFoundError creates a not-found error.
func NewNotFoundError(message string, ctx *ErrorContext) *Error {
	return &Error{Kind: KindNotFound, Message: message, Context: ctx}
}

// NewInternalServerError creates an internal-server error.
func NewInternalServerError(message string, ctx *ErrorContext) *Error {
	return &Error{Kind: KindInternalServer, Message: message, Context: ctx}
}

// KindOf extracts the taxonomy kind of err; unclassified errors report
// KindInternalServer, matching the translator's catch-all bucket.
func KindOf(err error) Kind {
	var typed *Error
	if errors.As(err, &typed) {
		return typed.Kind
	}
	return KindInternalServer
}

// ContextOf extracts the error context attached to err, or nil.
func ContextOf(err error) *ErrorContext {
	var typed *Error
	if errors.As(err, &typed) {
		return typed.Context
	}
	return nil
}

// IsUserInput checks if an error is a user-input error.
func IsUserInput(err error) bool {
	return isKind(err, KindUserInput)
}

// IsAuthentication checks if an error is an authentication error.
func IsAuthentication(err error) bool {
	return isKind(err, KindAuthentication)
}

// IsForbidden checks if an error is a forbidden error.
func IsForbidden(err error) bool {
	return isKind(err, KindForbidden)
}

// IsNotFound checks if an error is a not-found error.
func IsNotFound(err error) bool {
	return isKind(err, KindNotFound)
}

// IsInternalServer checks if an error is an internal-server error.
func IsInternalServer(err error) bool {
	return isKind(err, KindInternalServer)
}

func isKind(err error, kind Kind) bool {
	var typed *Error
	if errors.As(err, &typed) {
		return typed.Kind == kind
	}
	return false
}

// Package errors provides the domain error kinds returned by the catalog
// storage layer.
//
// Usage:
//
//	// In repositories - return typed errors
//	if tag.OwnerID != actingUserID {
//	    return errors.Forbidden("you can't delete this tag")
//	}
//
//	// In callers - check with errors.Is
//	if errors.Is(err, errors.ErrNotFound) {
//	    ...
//	}
//
//	// Or switch on the code
//	switch errors.CodeOf(err) {
//	case errors.CodeAlreadyExists:
//	    ...
//	}
package errors

import (
	"errors"
	"fmt"
)

// Re-export standard library functions for convenience.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	Join   = errors.Join
)

// Code represents a machine-readable error kind.
type Code string

// Error kinds produced by the storage layer.
const (
	CodeNotFound        Code = "NOT_FOUND"
	CodeInvalidArgument Code = "INVALID_ARGUMENT"
	CodeAlreadyExists   Code = "ALREADY_EXISTS"
	CodeForbidden       Code = "FORBIDDEN"
	CodeUnauthorized    Code = "UNAUTHORIZED"
	CodeValidation      Code = "VALIDATION"
	CodeInternal        Code = "INTERNAL"
)

// Error is a domain error with a code, a human-readable message and an
// optional cause that never leaves the process through Message.
type Error struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
	cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.cause
}

// Is reports whether target matches this error.
// Matches if target is an *Error with the same Code.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// Sentinel errors for errors.Is comparisons.
var (
	ErrNotFound        = &Error{Code: CodeNotFound, Message: "not found"}
	ErrInvalidArgument = &Error{Code: CodeInvalidArgument, Message: "invalid argument"}
	ErrAlreadyExists   = &Error{Code: CodeAlreadyExists, Message: "already exists"}
	ErrForbidden       = &Error{Code: CodeForbidden, Message: "forbidden"}
	ErrUnauthorized    = &Error{Code: CodeUnauthorized, Message: "unauthorized"}
	ErrValidation      = &Error{Code: CodeValidation, Message: "validation failed"}
	ErrInternal        = &Error{Code: CodeInternal, Message: "internal error"}
)

func newf(code Code, format string, args ...any) *Error {
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	return &Error{Code: code, Message: msg}
}

// NotFound creates a NOT_FOUND error.
func NotFound(format string, args ...any) *Error {
	return newf(CodeNotFound, format, args...)
}

// InvalidArgument creates an INVALID_ARGUMENT error. Used when a referenced
// dependency (author, tag) is missing, as opposed to the primary subject.
func InvalidArgument(format string, args ...any) *Error {
	return newf(CodeInvalidArgument, format, args...)
}

// AlreadyExists creates an ALREADY_EXISTS error.
func AlreadyExists(format string, args ...any) *Error {
	return newf(CodeAlreadyExists, format, args...)
}

// Forbidden creates a FORBIDDEN error.
func Forbidden(format string, args ...any) *Error {
	return newf(CodeForbidden, format, args...)
}

// Unauthorized creates an UNAUTHORIZED error.
func Unauthorized(format string, args ...any) *Error {
	return newf(CodeUnauthorized, format, args...)
}

// Validation creates a VALIDATION error.
func Validation(format string, args ...any) *Error {
	return newf(CodeValidation, format, args...)
}

// Internal creates an INTERNAL error that keeps cause for logging while
// exposing only a generic message.
func Internal(cause error) *Error {
	return &Error{Code: CodeInternal, Message: "internal error", cause: cause}
}

// Wrap attaches a cause to a new error of the given code.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	e := newf(code, format, args...)
	e.cause = cause
	return e
}

// CodeOf extracts the error code, or "" when err is not a domain error.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

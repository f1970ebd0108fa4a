// Package errors provides structured error types for pipreq.
//
// The requirement parser itself never fails on bad input; these errors are
// raised by the layers around it (manifest readers, the catalog, the result
// store, the HTTP API and the CLI) so that both the CLI and the API can
// report failures consistently.
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures
//   - *NOT_FOUND: Resource not found
//   - NETWORK_*: Network-related errors
//   - INTERNAL_*: Unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidVersion, "not a PEP 440 version: %s", v)
//	if errors.Is(err, errors.ErrCodeInvalidVersion) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeNetwork, origErr, "failed to fetch %s", url)
package errors

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
)

// Code represents a machine-readable error code.
type Code string

const (
	// Input validation errors
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidPackage  Code = "INVALID_PACKAGE"
	ErrCodeInvalidVersion  Code = "INVALID_VERSION"
	ErrCodeInvalidManifest Code = "INVALID_MANIFEST"

	// Resource not found errors
	ErrCodeNotFound        Code = "NOT_FOUND"
	ErrCodePackageNotFound Code = "PACKAGE_NOT_FOUND"
	ErrCodeFileNotFound    Code = "FILE_NOT_FOUND"
	ErrCodeResultNotFound  Code = "RESULT_NOT_FOUND"

	ErrCodeNetwork     Code = "NETWORK_ERROR"
	ErrCodeCanceled    Code = "CANCELED"
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

var httpStatus = map[Code]int{
	ErrCodeInvalidInput:    http.StatusBadRequest,
	ErrCodeInvalidPackage:  http.StatusBadRequest,
	ErrCodeInvalidManifest: http.StatusBadRequest,
	ErrCodeInvalidVersion:  http.StatusUnprocessableEntity,
	ErrCodeNotFound:        http.StatusNotFound,
	ErrCodePackageNotFound: http.StatusNotFound,
	ErrCodeFileNotFound:    http.StatusNotFound,
	ErrCodeResultNotFound:  http.StatusNotFound,
	ErrCodeNetwork:         http.StatusBadGateway,
	ErrCodeCanceled:        499, // client closed request
	ErrCodeUnsupported:     http.StatusNotImplemented,
}

// Error is a coded error. Message is safe to show to users; Cause is not.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return Wrap(code, nil, format, args...)
}

// Wrap creates a new Error wrapping cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// Is reports whether the outermost coded error in err's chain has code.
func Is(err error, code Code) bool {
	return err != nil && GetCode(err) == code
}

// GetCode returns the code of the outermost *Error in err's chain, or ""
// when there is none.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// Resolve is GetCode with fallbacks for well-known uncoded errors: missing
// files, cancellation and timeouts. Anything else is ErrCodeInternal.
func Resolve(err error) Code {
	if code := GetCode(err); code != "" {
		return code
	}
	switch {
	case err == nil:
		return ""
	case errors.Is(err, fs.ErrNotExist):
		return ErrCodeFileNotFound
	case errors.Is(err, context.Canceled):
		return ErrCodeCanceled
	case errors.Is(err, context.DeadlineExceeded):
		return ErrCodeNetwork
	}
	return ErrCodeInternal
}

// UserMessage returns the message of a coded error without its code prefix
// and cause. Other errors are returned as is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// HTTPStatus maps an error code to the status the API responds with.
// Unknown codes map to 500.
func HTTPStatus(code Code) int {
	if s, ok := httpStatus[code]; ok {
		return s
	}
	return http.StatusInternalServerError
}

// ExitCode maps err to a process exit status: 0 for nil, 130 when
// interrupted, 2 for invalid input and 1 otherwise.
func ExitCode(err error) int {
	switch Resolve(err) {
	case "":
		return 0
	case ErrCodeCanceled:
		return 130
	case ErrCodeInvalidInput, ErrCodeInvalidPackage, ErrCodeInvalidVersion, ErrCodeInvalidManifest:
		return 2
	}
	return 1
}

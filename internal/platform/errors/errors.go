// Package errors provides structured errors with HTTP status mapping.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorType categorizes an error for response formatting and logging.
type ErrorType string

const (
	// TypeValidation indicates invalid input (HTTP 400).
	TypeValidation ErrorType = "validation"
	// TypeInternal indicates a server-side error (HTTP 500).
	TypeInternal ErrorType = "internal"
	// TypeExternal indicates an upstream provider error (HTTP 502).
	TypeExternal ErrorType = "external"
)

// Error is a structured error with type, message, and optional cause.
type Error struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]any
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Cause
}

// HTTPStatus maps the error type to a response status code.
func (e *Error) HTTPStatus() int {
	switch e.Type {
	case TypeValidation:
		return http.StatusBadRequest
	case TypeExternal:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// ValidationError creates a validation error (HTTP 400).
func ValidationError(message string) *Error {
	return &Error{Type: TypeValidation, Message: message}
}

// InternalError creates an internal error (HTTP 500).
func InternalError(message string, cause error) *Error {
	return &Error{Type: TypeInternal, Message: message, Cause: cause}
}

// ExternalError creates an upstream provider error (HTTP 502).
func ExternalError(message string, cause error) *Error {
	return &Error{Type: TypeExternal, Message: message, Cause: cause}
}

// WithContext attaches a context field to the error (chainable).
func (e *Error) WithContext(key string, value any) *Error {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}

// ErrorResponse is the JSON envelope sent to clients.
type ErrorResponse struct {
	Error string    `json:"error"`
	Type  ErrorType `json:"type"`
}

// ToResponse converts an Error into its JSON envelope.
func (e *Error) ToResponse() ErrorResponse {
	return ErrorResponse{Error: e.Message, Type: e.Type}
}

// AsStructuredError converts any error into an *Error, wrapping unknown
// errors as internal.
func AsStructuredError(err error) *Error {
	if err == nil {
		return nil
	}

	var structuredErr *Error
	if errors.As(err, &structuredErr) {
		return structuredErr
	}

	return InternalError("internal server error", err)
}

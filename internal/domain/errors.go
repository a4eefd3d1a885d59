// Package domain provides the canonical request, result, and error types
// shared by every handling path in the service.
package domain

import (
	"fmt"
	"net/http"
)

// ErrorType represents the category of a request failure.
type ErrorType string

const (
	// ErrorTypeInvalidRequest indicates a malformed or incomplete request.
	ErrorTypeInvalidRequest ErrorType = "invalid_request"

	// ErrorTypeStoreRead indicates the referenced object could not be fetched.
	// A bad object reference is caller-correctable, so it maps to 400.
	ErrorTypeStoreRead ErrorType = "store_read"

	// ErrorTypeStoreWrite indicates result persistence failed. Write failures
	// are logged and swallowed; this type never reaches a response payload.
	ErrorTypeStoreWrite ErrorType = "store_write"

	// ErrorTypeCapability indicates the analysis capability call failed.
	ErrorTypeCapability ErrorType = "capability"

	// ErrorTypeServer indicates an unclassified internal error.
	ErrorTypeServer ErrorType = "server"
)

// APIError is the canonical error shape. Every handling path ends in either
// a structured success payload or an APIError rendered through the response
// builder; no error escapes the handler uncaught.
type APIError struct {
	// Type is the category of error
	Type ErrorType `json:"type"`

	// Message is the human-readable error message
	Message string `json:"message"`

	// StatusCode is the suggested HTTP status code
	StatusCode int `json:"-"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// HTTPStatusCode returns the appropriate HTTP status code for this error.
func (e *APIError) HTTPStatusCode() int {
	if e.StatusCode != 0 {
		return e.StatusCode
	}

	switch e.Type {
	case ErrorTypeInvalidRequest, ErrorTypeStoreRead:
		return http.StatusBadRequest
	case ErrorTypeCapability, ErrorTypeStoreWrite, ErrorTypeServer:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// NewAPIError creates a new API error.
func NewAPIError(errType ErrorType, message string) *APIError {
	return &APIError{
		Type:    errType,
		Message: message,
	}
}

// WithStatusCode sets a specific HTTP status code.
func (e *APIError) WithStatusCode(code int) *APIError {
	e.StatusCode = code
	return e
}

// ErrInvalidRequest creates an invalid request error.
func ErrInvalidRequest(message string) *APIError {
	return NewAPIError(ErrorTypeInvalidRequest, message)
}

// ErrStoreRead creates an object fetch error.
func ErrStoreRead(message string) *APIError {
	return NewAPIError(ErrorTypeStoreRead, message)
}

// ErrStoreWrite creates a result persistence error.
func ErrStoreWrite(message string) *APIError {
	return NewAPIError(ErrorTypeStoreWrite, message)
}

// ErrCapability creates an analysis capability error.
func ErrCapability(message string) *APIError {
	return NewAPIError(ErrorTypeCapability, message)
}

// ErrServer creates an unclassified internal error.
func ErrServer(message string) *APIError {
	return NewAPIError(ErrorTypeServer, message)
}

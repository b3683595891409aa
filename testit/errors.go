package testit

import (
	"errors"
	"fmt"
	"net/http"
)

// Common errors
var (
	// ErrInvalidConfig indicates invalid client configuration
	ErrInvalidConfig = errors.New("invalid testit configuration")
	// ErrInvalidBody indicates a request body of the wrong shape
	ErrInvalidBody = errors.New("invalid request body")
	// ErrFileNotFound indicates an upload path that does not name a regular file
	ErrFileNotFound = errors.New("file not found")
	// ErrInvalidFile indicates an upload without a readable payload
	ErrInvalidFile = errors.New("file object or path to file expected")
	// ErrUnknownParameter indicates a query parameter the endpoint does not accept
	ErrUnknownParameter = errors.New("unknown query parameter")
	// ErrUnsupportedValue indicates a query parameter value outside its allowed set
	ErrUnsupportedValue = errors.New("unsupported value")
	// ErrUnsupportedMethod indicates an HTTP method the dispatcher does not send
	ErrUnsupportedMethod = errors.New("unsupported HTTP method")
)

// ParamError reports a rejected query parameter.
type ParamError struct {
	Operation string
	Name      string
	Value     any
	Err       error
}

func (e *ParamError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("%s: parameter %q value %v: %v", e.Operation, e.Name, e.Value, e.Err)
	}
	return fmt.Sprintf("%s: parameter %q: %v", e.Operation, e.Name, e.Err)
}

func (e *ParamError) Unwrap() error {
	return e.Err
}

// APIError represents a TestIT API error response
type APIError struct {
	StatusCode int
	Message    string
	Body       string
}

// Error implements the error interface
func (e *APIError) Error() string {
	return fmt.Sprintf("testit API error: status %d: %s", e.StatusCode, e.Message)
}

// IsNotFound checks if the error indicates a not found response
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// IsUnauthorized checks if the error indicates an authentication failure
func (e *APIError) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

package errors

import (
	"errors"
	"fmt"
)

// Standard error types
var (
	ErrConfiguration = errors.New("configuration error")
	ErrHTTPRequest   = errors.New("HTTP request error")
	ErrHTTPResponse  = errors.New("HTTP response error")
	ErrExtraction    = errors.New("data extraction error")
	ErrValidation    = errors.New("validation error")
	ErrOutput        = errors.New("output error")
)

// APIError is returned for any non-2xx answer from the commerce API.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("Polar API %d: %s", e.StatusCode, e.Body)
}

// WrapError wraps an error with a standard error type
func WrapError(err error, errType error, message string) error {
	return fmt.Errorf("%w: %s: %w", errType, message, err)
}

// Is provides a convenience wrapper around errors.Is
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As provides a convenience wrapper around errors.As
func As(err error, target any) bool {
	return errors.As(err, target)
}

// Unwrap provides a convenience wrapper around errors.Unwrap
func Unwrap(err error) error {
	return errors.Unwrap(err)
}

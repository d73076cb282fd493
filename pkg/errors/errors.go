// Package errors provides custom error types for the switchboard system.
// These errors enable better error handling, programmatic error checking,
// and improved debugging throughout the application.
package errors

import (
	"errors"
	"fmt"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Common sentinel errors for the switchboard system
var (
	// ErrNotFound indicates that a requested remote resource was not found
	ErrNotFound = errors.New("not found")

	// ErrServiceUnreachable indicates that no response could be obtained
	// from the management service
	ErrServiceUnreachable = errors.New("service unreachable")

	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrHubClosed indicates that the broadcast hub has been shut down
	ErrHubClosed = errors.New("hub closed")

	// ErrSubscriberLagged indicates that a subscriber's buffer overflowed
	// and events were dropped for that subscriber
	ErrSubscriberLagged = errors.New("subscriber lagged")
)

// TransportError represents a failure to obtain any response from the
// management service: connection refused, DNS failure, timeout.
type TransportError struct {
	Op  string // HTTP method of the attempted request
	URL string
	Err error
}

// Error implements the error interface
func (e *TransportError) Error() string {
	return fmt.Sprintf("transport failure: %s %s: %v", e.Op, e.URL, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *TransportError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *TransportError) Is(target error) bool {
	return target == ErrServiceUnreachable
}

// NewTransportError creates a new TransportError
func NewTransportError(op, url string, err error) *TransportError {
	return &TransportError{Op: op, URL: url, Err: err}
}

// ProtocolError represents a response whose status code indicates failure.
// Body holds a bounded snippet of the response body for diagnostics.
type ProtocolError struct {
	StatusCode int
	Endpoint   string
	Body       string
}

// Error implements the error interface
func (e *ProtocolError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("rejected: %s returned status %d: %s", e.Endpoint, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("rejected: %s returned status %d", e.Endpoint, e.StatusCode)
}

// Is implements errors.Is support
func (e *ProtocolError) Is(target error) bool {
	if e.StatusCode == 404 || e.StatusCode == 410 {
		return target == ErrNotFound
	}
	return false
}

// NewProtocolError creates a new ProtocolError
func NewProtocolError(statusCode int, endpoint, body string) *ProtocolError {
	return &ProtocolError{StatusCode: statusCode, Endpoint: endpoint, Body: body}
}

// DecodeError represents a 2xx response whose body does not match the
// expected shape. Raw holds a bounded snippet of the offending body.
type DecodeError struct {
	Endpoint string
	Raw      string
	Err      error
}

// Error implements the error interface
func (e *DecodeError) Error() string {
	return fmt.Sprintf("unexpected response shape from %s: %v", e.Endpoint, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// NewDecodeError creates a new DecodeError
func NewDecodeError(endpoint, raw string, err error) *DecodeError {
	return &DecodeError{Endpoint: endpoint, Raw: raw, Err: err}
}

// LagError indicates that a subscriber's ring buffer overflowed and Missed
// events were dropped for that subscriber only. It is reported exactly once
// per detected gap; delivery resumes on the subscriber's next read.
type LagError struct {
	Missed uint64
}

// Error implements the error interface
func (e *LagError) Error() string {
	return fmt.Sprintf("subscriber lagged, missed %d events", e.Missed)
}

// Is implements errors.Is support
func (e *LagError) Is(target error) bool {
	return target == ErrSubscriberLagged
}

// ValidationError represents a validation failure
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is implements errors.Is support
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// ConfigError represents a configuration error
type ConfigError struct {
	Component string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError
func NewConfigError(component, message string, err error) *ConfigError {
	return &ConfigError{Component: component, Message: message, Err: err}
}

// Helper functions for error checking

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsServiceUnreachable checks if an error is a transport failure
func IsServiceUnreachable(err error) bool {
	return errors.Is(err, ErrServiceUnreachable)
}

// IsLagged checks if an error is a subscriber lag indicator
func IsLagged(err error) bool {
	return errors.Is(err, ErrSubscriberLagged)
}

// IsHubClosed checks if an error signals broadcast hub shutdown
func IsHubClosed(err error) bool {
	return errors.Is(err, ErrHubClosed)
}

// WrapIO wraps an I/O error with operation context
func WrapIO(operation, target string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("failed to %s %s: %w", operation, target, err)
}

// WrapParse wraps a parsing error with format context
func WrapParse(format, target string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("failed to parse %s %s: %w", format, target, err)
}

// WrapResource wraps an error with resource operation context
func WrapResource(operation, resource, id string, err error) error {
	if err == nil {
		return nil
	}
	if id != "" {
		return fmt.Errorf("failed to %s %s %s: %w", operation, resource, id, err)
	}
	return fmt.Errorf("failed to %s %s: %w", operation, resource, err)
}

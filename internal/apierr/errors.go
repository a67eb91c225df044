// Package apierr adapts the teacher's exception package into typed, wrapped
// errors plus Gin middleware that maps them to HTTP responses.
package apierr

import "fmt"

// NotFoundError is returned when a requested resource (job status entry or
// persisted job row) cannot be found.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// NewNotFoundError builds a NotFoundError for the given resource/id pair.
func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// IsNotFoundError reports whether err is a *NotFoundError.
func IsNotFoundError(err error) bool {
	_, ok := err.(*NotFoundError)
	return ok
}

// ValidationError wraps a request-validation failure, surfaced to the HTTP
// client as 422 and, for in-flight broker messages, as a job_failed event.
type ValidationError struct {
	Message string
	Fields  map[string]string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError builds a ValidationError with no field-level detail.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

// NewFieldValidationError builds a ValidationError carrying field-level
// detail extracted from a validator.ValidationErrors value.
func NewFieldValidationError(message string, fields map[string]string) *ValidationError {
	return &ValidationError{Message: message, Fields: fields}
}

// BrokerUnavailableError signals a transient publish/connect failure,
// surfaced to the HTTP client as 503 (SPEC_FULL.md §7, error kind 2).
type BrokerUnavailableError struct {
	Cause error
}

func (e *BrokerUnavailableError) Error() string {
	return fmt.Sprintf("broker unavailable: %v", e.Cause)
}

func (e *BrokerUnavailableError) Unwrap() error {
	return e.Cause
}

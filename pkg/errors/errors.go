package errors

import (
	"fmt"
	"strings"
)

// ValidationError reports malformed input. It is always raised before any
// store access, so a failed validation never leaves partial state behind.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidation builds a ValidationError for a single field.
func NewValidation(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// ConflictError reports that a structurally valid period overlaps one or
// more existing active periods in the same scope. It carries the ids of the
// colliding periods so clients can display them. Recoverable by the caller
// (pick another time, day or scope), not a system fault.
type ConflictError struct {
	ConflictingIDs []string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("schedule conflicts with existing periods: %s", strings.Join(e.ConflictingIDs, ", "))
}

// NotFoundError reports that a referenced record does not exist.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Resource, e.ID)
}

// NewNotFound builds a NotFoundError for the given resource/id pair.
func NewNotFound(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// StoreError wraps an underlying persistence failure, including constraint
// violations racing past the in-service conflict check. The service layer
// never retries; retries, if any, belong to the caller.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store: %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// NewStore wraps err as a StoreError for operation op.
func NewStore(op string, err error) *StoreError {
	return &StoreError{Op: op, Err: err}
}

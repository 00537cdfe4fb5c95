package apperrors

import (
	"errors"
	"fmt"
)

// Common errors
var (
	ErrResourceNotFound = errors.New("resource not found")
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")

	// ErrUpstreamFailure marks a failed read against the document store
	ErrUpstreamFailure = errors.New("document store failure")
)

// Result lookup errors
var (
	ErrStudentNotFound  = NewCustomError(ErrResourceNotFound, "Student not found")
	ErrSemesterNotFound = NewCustomError(ErrResourceNotFound, "Semester not found")
)

// NewSemesterNotFoundError builds the not-found error for a single semester lookup
func NewSemesterNotFoundError(semID, rollNo string) error {
	return &CustomError{
		Err:     ErrSemesterNotFound,
		Message: fmt.Sprintf("Semester %s results not found for %s", semID, rollNo),
	}
}

// NewBadRequestError creates a new custom error for bad request with a message
func NewBadRequestError(message string) error {
	return &CustomError{
		Err:     ErrBadRequest,
		Message: message,
	}
}

// NewUpstreamError wraps a document store error so handlers can tell it apart from not-found
func NewUpstreamError(op string, err error) error {
	return &CustomError{
		Err:     fmt.Errorf("%w: %w", ErrUpstreamFailure, err),
		Message: fmt.Sprintf("%s: %v", op, err),
	}
}

// Is returns whether err matches target or any of errList
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}

	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error represents a typed domain error. Status carries an HTTP status
// for symmetry with the rest of the stack even though the solver core
// itself never sits behind HTTP.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
	Err     error  `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// New creates a new Error instance.
func New(code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message}
}

// Wrap attaches context to an existing error.
func Wrap(err error, code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message, Err: err}
}

// Predefined errors, one per taxonomy entry of the solver's error design.
var (
	// ErrInvalidInput signals the snapshot failed structural validation.
	ErrInvalidInput = New("INVALID_INPUT", http.StatusBadRequest, "snapshot failed validation")
	// ErrMissingInputs signals one of batches/subjects/faculty/rooms was empty for the department.
	ErrMissingInputs = New("MISSING_INPUTS", http.StatusUnprocessableEntity, "department has no batches, subjects, faculty, or rooms")
	// ErrInfeasible signals the search exhausted without a satisfying schedule.
	ErrInfeasible = New("INFEASIBLE", http.StatusConflict, "no satisfying schedule exists for the given constraints")
	// ErrCancelled signals the cancellation token fired before completion.
	ErrCancelled = New("CANCELLED", http.StatusRequestTimeout, "solve was cancelled")
	// ErrInternal signals a logic invariant was violated; it should never occur.
	ErrInternal = New("INTERNAL_ERROR", http.StatusInternalServerError, "internal solver error")
	// ErrCacheMiss signals a cache lookup found no entry.
	ErrCacheMiss = New("CACHE_MISS", http.StatusNotFound, "cache miss")
)

// FromError normalises any error into an *Error.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(err, ErrInternal.Code, ErrInternal.Status, ErrInternal.Message)
}

// Is reports whether err normalises to the same taxonomy entry as target.
func Is(err error, target *Error) bool {
	if target == nil {
		return false
	}
	e := FromError(err)
	return e != nil && e.Code == target.Code
}

// Clone returns a copy of the error allowing for message overrides.
func Clone(err *Error, message string) *Error {
	if err == nil {
		return nil
	}
	clone := *err
	if message != "" {
		clone.Message = message
	}
	return &clone
}

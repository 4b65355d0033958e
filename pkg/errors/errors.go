// Package errors defines structured error types for the awareness analytics service.
// Errors carry a machine-readable code, an HTTP status for the transport layer,
// and an optional cause chain plus metadata.
package errors

import (
	"fmt"
	"net/http"

	"github.com/seclearn/analytics/pkg/constants"
)

// AppError represents a structured application error.
type AppError struct {
	Code       constants.ErrorCode
	HTTPStatus int
	Message    string
	cause      error
	metadata   map[string]interface{}
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.cause != nil {
		return e.Message + ": " + e.cause.Error()
	}
	return e.Message
}

// Unwrap returns the underlying cause for errors.Is / errors.As support.
func (e *AppError) Unwrap() error {
	return e.cause
}

// WithError attaches a cause to a copy of the error.
func (e *AppError) WithError(cause error) *AppError {
	clone := *e
	clone.cause = cause
	return &clone
}

// WithMetadata attaches a key/value pair to a copy of the error.
func (e *AppError) WithMetadata(key string, value interface{}) *AppError {
	clone := *e
	clone.metadata = make(map[string]interface{}, len(e.metadata)+1)
	for k, v := range e.metadata {
		clone.metadata[k] = v
	}
	clone.metadata[key] = value
	return &clone
}

// Metadata returns all attached metadata.
func (e *AppError) Metadata() map[string]interface{} {
	return e.metadata
}

// NewError creates a new AppError with the specified parameters.
func NewError(code constants.ErrorCode, httpStatus int, message string) *AppError {
	return &AppError{
		Code:       code,
		HTTPStatus: httpStatus,
		Message:    message,
	}
}

// ================================================================================
// Predefined Errors
// ================================================================================

var (
	// ErrNotFound indicates a requested record does not exist.
	ErrNotFound = NewError(constants.ErrCodeNotFound, http.StatusNotFound, "record not found")

	// ErrDependencyUnavailable indicates a collaborator (record store, cache,
	// broker) failed; the condition is retryable, the core holds no state to
	// roll back.
	ErrDependencyUnavailable = NewError(constants.ErrCodeDependencyUnavailable, http.StatusServiceUnavailable, "dependency unavailable")

	// ErrInternal indicates an unexpected internal fault.
	ErrInternal = NewError(constants.ErrCodeInternal, http.StatusInternalServerError, "internal error")
)

// ErrInvalidRequest creates an invalid_request error.
func ErrInvalidRequest(message string) *AppError {
	return NewError(constants.ErrCodeInvalidRequest, http.StatusBadRequest, message)
}

// ErrInvalidScheduleConfig creates an invalid_schedule_config error for a
// schedule missing a field its frequency requires.
func ErrInvalidScheduleConfig(message string) *AppError {
	return NewError(constants.ErrCodeInvalidScheduleConfig, http.StatusUnprocessableEntity, message)
}

// Wrapf wraps err in an internal error with a formatted message.
func Wrapf(err error, format string, args ...interface{}) *AppError {
	return NewError(constants.ErrCodeInternal, http.StatusInternalServerError, fmt.Sprintf(format, args...)).WithError(err)
}

// IsCode reports whether err is an AppError with the given code.
func IsCode(err error, code constants.ErrorCode) bool {
	appErr, ok := err.(*AppError)
	return ok && appErr.Code == code
}

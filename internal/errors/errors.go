package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a category of application error.
type ErrorCode string

const (
	// ErrCodeNotFound indicates a resource was not found.
	ErrCodeNotFound ErrorCode = "not_found"
	// ErrCodeConflict indicates a conflict with existing data (e.g., a taken username).
	ErrCodeConflict ErrorCode = "conflict"
	// ErrCodeValidation indicates invalid input data.
	ErrCodeValidation ErrorCode = "validation"
	// ErrCodeForeignKey indicates a foreign key constraint violation.
	ErrCodeForeignKey ErrorCode = "foreign_key"
	// ErrCodeForbidden indicates the acting user may not perform the operation on an existing resource.
	ErrCodeForbidden ErrorCode = "forbidden"
	// ErrCodeInternal indicates an internal server error.
	ErrCodeInternal ErrorCode = "internal"
	// ErrCodeTimeout indicates a timeout occurred.
	ErrCodeTimeout ErrorCode = "timeout"
	// ErrCodeCanceled indicates the operation was canceled.
	ErrCodeCanceled ErrorCode = "canceled"
)

// AppError represents a structured application error with a code, message, and optional cause.
// It supports error wrapping and unwrapping for use with errors.Is and errors.As.
type AppError struct {
	Code    ErrorCode
	Message string
	Cause   error
	// Field is the input field that caused the error (validation and conflict errors).
	Field string
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause, enabling errors.Is and errors.As.
func (e *AppError) Unwrap() error {
	return e.Cause
}

func newError(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// NotFound creates a new NotFound error.
func NotFound(message string) *AppError { return newError(ErrCodeNotFound, message) }

// NotFoundf creates a new NotFound error with formatted message.
func NotFoundf(format string, args ...any) *AppError { return newError(ErrCodeNotFound, fmt.Sprintf(format, args...)) }

// Conflict creates a new Conflict error.
func Conflict(message string) *AppError { return newError(ErrCodeConflict, message) }

// Conflictf creates a new Conflict error with formatted message.
func Conflictf(format string, args ...any) *AppError { return newError(ErrCodeConflict, fmt.Sprintf(format, args...)) }

// Validation creates a new Validation error.
func Validation(message string) *AppError { return newError(ErrCodeValidation, message) }

// ValidationField creates a new Validation error for a specific field.
func ValidationField(field, message string) *AppError {
	return &AppError{Code: ErrCodeValidation, Message: message, Field: field}
}

// Forbidden creates a new Forbidden error.
func Forbidden(message string) *AppError { return newError(ErrCodeForbidden, message) }

// Internal creates a new Internal error.
func Internal(message string) *AppError { return newError(ErrCodeInternal, message) }

// Wrap wraps an existing error with an AppError, preserving the cause.
func Wrap(err error, code ErrorCode, message string) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{Code: code, Message: message, Cause: err}
}

// Wrapf wraps an existing error with an AppError and formatted message.
func Wrapf(err error, code ErrorCode, format string, args ...any) *AppError {
	return Wrap(err, code, fmt.Sprintf(format, args...))
}

func isCode(err error, code ErrorCode) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}

// IsNotFound checks if an error is a NotFound error.
func IsNotFound(err error) bool { return isCode(err, ErrCodeNotFound) }

// IsConflict checks if an error is a Conflict error.
func IsConflict(err error) bool { return isCode(err, ErrCodeConflict) }

// IsValidation checks if an error is a Validation error.
func IsValidation(err error) bool { return isCode(err, ErrCodeValidation) }

// IsForeignKey checks if an error is a ForeignKey error.
func IsForeignKey(err error) bool { return isCode(err, ErrCodeForeignKey) }

// IsForbidden checks if an error is a Forbidden error.
func IsForbidden(err error) bool { return isCode(err, ErrCodeForbidden) }

// IsInternal checks if an error is an Internal error.
func IsInternal(err error) bool { return isCode(err, ErrCodeInternal) }

// IsTimeout checks if an error is a Timeout error.
func IsTimeout(err error) bool { return isCode(err, ErrCodeTimeout) }

// IsCanceled checks if an error is a Canceled error.
func IsCanceled(err error) bool { return isCode(err, ErrCodeCanceled) }

// GetCode returns the ErrorCode from an error, or empty string if not an AppError.
func GetCode(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// GetField returns the Field from an error, or empty string if not an AppError or no field set.
func GetField(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Field
	}
	return ""
}

// PublicMessage returns the message safe to show users; causes are never included.
func PublicMessage(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "Something unexpected went wrong. Sorry about that."
}

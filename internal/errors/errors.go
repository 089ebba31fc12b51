package errors

import (
	"fmt"
)

// AppError represents a structured application error
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates a new AppError
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with additional context, preserving an existing code
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	if appErr, ok := err.(*AppError); ok {
		return &AppError{
			Code:    appErr.Code,
			Message: message,
			Cause:   appErr,
		}
	}
	return &AppError{
		Code:    CodeInternalError,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with formatted additional context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// WithCode adds an error code to an existing error
func WithCode(code string, err error) error {
	if err == nil {
		return nil
	}
	if appErr, ok := err.(*AppError); ok {
		return &AppError{
			Code:    code,
			Message: appErr.Message,
			Cause:   appErr.Cause,
		}
	}
	return &AppError{
		Code:    code,
		Message: err.Error(),
		Cause:   err,
	}
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	_, ok := err.(*AppError)
	return ok
}

// GetCode returns the error code if it's an AppError, otherwise returns "UNKNOWN"
func GetCode(err error) string {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code
	}
	return "UNKNOWN"
}

// HasCode reports whether err is an AppError carrying the given code
func HasCode(err error, code string) bool {
	return GetCode(err) == code
}

// Predefined error codes
const (
	CodeConfigInvalid     = "CONFIG_INVALID"
	CodeInvalidCodeFormat = "INVALID_CODE_FORMAT"
	CodeSeriesExhausted   = "SERIES_EXHAUSTED"
	CodeStoreUnavailable  = "STORE_UNAVAILABLE"
	CodeStoreConstraint   = "STORE_CONSTRAINT_VIOLATION"
	CodeValidationError   = "VALIDATION_ERROR"
	CodeNotFound          = "NOT_FOUND"
	CodeDuplicate         = "DUPLICATE"
	CodeInternalError     = "INTERNAL_ERROR"
	CodeInvalidInput      = "INVALID_INPUT"
)

// Common error constructors
func ConfigInvalid(message string) *AppError {
	return New(CodeConfigInvalid, message)
}

func InvalidCodeFormat(value string) *AppError {
	return New(CodeInvalidCodeFormat, fmt.Sprintf("malformed code %q: want 4 uppercase letters followed by 4 digits", value))
}

func SeriesExhausted(series string) *AppError {
	return New(CodeSeriesExhausted, fmt.Sprintf("code series %s has no successor after ZZZZ9999", series))
}

func StoreUnavailable(op string, cause error) *AppError {
	return &AppError{
		Code:    CodeStoreUnavailable,
		Message: fmt.Sprintf("store operation %s failed", op),
		Cause:   cause,
	}
}

func StoreConstraintViolation(op string, cause error) *AppError {
	return &AppError{
		Code:    CodeStoreConstraint,
		Message: fmt.Sprintf("store constraint violated during %s", op),
		Cause:   cause,
	}
}

func ValidationError(message string) *AppError {
	return New(CodeValidationError, message)
}

func NotFound(resource string) *AppError {
	return New(CodeNotFound, fmt.Sprintf("%s not found", resource))
}

func Duplicate(resource string) *AppError {
	return New(CodeDuplicate, fmt.Sprintf("%s already exists", resource))
}

func InternalError(message string) *AppError {
	return New(CodeInternalError, message)
}

func InvalidInput(message string) *AppError {
	return New(CodeInvalidInput, message)
}

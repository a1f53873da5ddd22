package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes for programmatic handling
const (
	ErrCodeValidation        = "VALIDATION_ERROR"
	ErrCodeNotFound          = "NOT_FOUND"
	ErrCodeBadRequest        = "BAD_REQUEST"
	ErrCodeInvalidTransition = "INVALID_TRANSITION"
	ErrCodeCaptureRequired   = "CAPTURE_REQUIRED"
	ErrCodeInternal          = "INTERNAL_ERROR"
)

// AppError is the base error type for all application errors
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Cause      error  `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is comparison by code
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// WithCause attaches the underlying cause
func (e *AppError) WithCause(err error) *AppError {
	e.Cause = err
	return e
}

// ValidationError reports invalid user input for a named field.
func ValidationError(field, message string) *AppError {
	return &AppError{
		Code:       ErrCodeValidation,
		Message:    fmt.Sprintf("%s: %s", field, message),
		HTTPStatus: http.StatusBadRequest,
	}
}

// BadRequestError reports a malformed request.
func BadRequestError(message string) *AppError {
	return &AppError{
		Code:       ErrCodeBadRequest,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
	}
}

// NotFoundError reports a missing resource.
func NotFoundError(resource, id string) *AppError {
	return &AppError{
		Code:       ErrCodeNotFound,
		Message:    fmt.Sprintf("%s %q not found", resource, id),
		HTTPStatus: http.StatusNotFound,
	}
}

// InvalidTransitionError reports a lead-capture action that is not legal in
// the machine's current state.
func InvalidTransitionError(message string) *AppError {
	return &AppError{
		Code:       ErrCodeInvalidTransition,
		Message:    message,
		HTTPStatus: http.StatusConflict,
	}
}

// CaptureRequiredError reports free chat attempted while the capture form is open.
func CaptureRequiredError() *AppError {
	return &AppError{
		Code:       ErrCodeCaptureRequired,
		Message:    "Please complete the form before continuing the chat",
		HTTPStatus: http.StatusConflict,
	}
}

// InternalError wraps an unexpected failure.
func InternalError(message string, cause error) *AppError {
	return &AppError{
		Code:       ErrCodeInternal,
		Message:    message,
		HTTPStatus: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// IsNotFound reports whether err is a not-found AppError.
func IsNotFound(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == ErrCodeNotFound
}

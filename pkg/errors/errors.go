package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code
type ErrorCode int

// Error codes, one per failure family surfaced to callers.
const (
	CodeRegistration ErrorCode = iota + 1000
	CodeAuth
	CodeReset
	CodeBookingPersistence
	CodeNotFound
	CodeBadRequest
	CodeInternal
)

// AppError represents an application error
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Registration wraps a credential-creation failure; the underlying
// cause is kept so its message can be surfaced to the caller.
func Registration(message string, err error) *AppError {
	return &AppError{Code: CodeRegistration, Message: message, Err: err}
}

// Auth covers rejected credentials and the unverified-email policy.
func Auth(message string) *AppError {
	return &AppError{Code: CodeAuth, Message: message}
}

func Reset(message string, err error) *AppError {
	return &AppError{Code: CodeReset, Message: message, Err: err}
}

// BookingPersistence wraps an appointment write failure.
func BookingPersistence(err error) *AppError {
	return &AppError{Code: CodeBookingPersistence, Message: "failed to save appointment", Err: err}
}

func NotFound(resource string, err error) *AppError {
	return &AppError{Code: CodeNotFound, Message: fmt.Sprintf("%s not found", resource), Err: err}
}

func BadRequest(message string, err error) *AppError {
	return &AppError{Code: CodeBadRequest, Message: message, Err: err}
}

func Internal(err error) *AppError {
	return &AppError{Code: CodeInternal, Message: "internal server error", Err: err}
}

// CodeOf returns the application code of err, or CodeInternal when err
// is not an AppError.
func CodeOf(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeInternal
}

// MessageOf returns the user-facing message of err.
func MessageOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "internal server error"
}

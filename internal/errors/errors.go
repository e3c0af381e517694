// Package errors provides custom error types for the MoMo Press API.
// Service-layer errors use AppError so responses stay consistent and never
// leak internal details to clients.
package errors

import (
	stderrors "errors"
	"net/http"
)

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Internal != nil {
		return e.Message + ": " + e.Internal.Error()
	}
	return e.Message
}

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Is reports whether target is an AppError with the same code, so wrapped
// copies of a sentinel still match it.
func (e *AppError) Is(target error) bool {
	var t *AppError
	if !stderrors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// Authentication & authorization errors.
var (
	ErrUnauthorized       = &AppError{Code: "UNAUTHORIZED", Message: "Authentication required", StatusCode: http.StatusUnauthorized}
	ErrInvalidCredentials = &AppError{Code: "INVALID_CREDENTIALS", Message: "Invalid phone number or password", StatusCode: http.StatusUnauthorized}
	ErrForbidden          = &AppError{Code: "FORBIDDEN", Message: "Access denied", StatusCode: http.StatusForbidden}
)

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// User errors.
var (
	ErrUserNotFound   = &AppError{Code: "USER_NOT_FOUND", Message: "User not found", StatusCode: http.StatusNotFound}
	ErrDuplicatePhone = &AppError{Code: "DUPLICATE_PHONE", Message: "A user with this phone number already exists", StatusCode: http.StatusConflict}
)

// Budget errors.
var (
	ErrLimitsNotFound = &AppError{Code: "LIMITS_NOT_FOUND", Message: "Budget limits not configured", StatusCode: http.StatusNotFound}
	ErrInvalidPeriod  = &AppError{Code: "INVALID_PERIOD", Message: "Period must be weekly or monthly", StatusCode: http.StatusBadRequest}
)

// Sync and ingestion errors.
var (
	ErrMessageFetch       = &AppError{Code: "MESSAGE_FETCH_FAILED", Message: "Could not read messages from the message source", StatusCode: http.StatusBadGateway}
	ErrUnknownTransaction = &AppError{Code: "UNKNOWN_TRANSACTION", Message: "Unsupported transaction variant", StatusCode: http.StatusInternalServerError}
	ErrEmptyBatch         = &AppError{Code: "EMPTY_BATCH", Message: "No messages supplied", StatusCode: http.StatusBadRequest}
)

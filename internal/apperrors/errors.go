// Package apperrors defines the error type rendered at the API boundary.
// Internal causes are logged, never sent to clients.
package apperrors

import (
	"errors"
	"net/http"
)

// AppError is a structured error with a stable code and an HTTP status
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap copies a sentinel and attaches an internal cause
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage copies a sentinel with a client-facing message
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// As extracts an AppError from err, falling back to ErrInternalServer
func As(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Wrap(ErrInternalServer, err)
}

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrUnauthorized   = &AppError{Code: "UNAUTHORIZED", Message: "X-User-ID header required", StatusCode: http.StatusUnauthorized}
	ErrRateLimited    = &AppError{Code: "RATE_LIMITED", Message: "Too many requests", StatusCode: http.StatusTooManyRequests}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// Engine errors.
var (
	ErrInvalidProfile    = &AppError{Code: "INVALID_PROFILE", Message: "Invalid investor profile", StatusCode: http.StatusBadRequest}
	ErrNoFeatureData     = &AppError{Code: "NO_FEATURE_DATA", Message: "No fund feature snapshot available", StatusCode: http.StatusServiceUnavailable}
	ErrUnknownScenario   = &AppError{Code: "UNKNOWN_SCENARIO", Message: "Unknown scenario", StatusCode: http.StatusBadRequest}
	ErrPortfolioNotFound = &AppError{Code: "PORTFOLIO_NOT_FOUND", Message: "No saved portfolio for this user", StatusCode: http.StatusNotFound}
)

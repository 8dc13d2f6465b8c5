// Package errors provides structured application errors. Service-layer
// code returns AppError values so handlers can render consistent JSON
// responses without leaking internal details.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

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

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrRecordNotFound = &AppError{Code: "RECORD_NOT_FOUND", Message: "Record not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// Storage errors.
var (
	ErrWorkbookUnreadable = &AppError{Code: "WORKBOOK_UNREADABLE", Message: "Workbook could not be read", StatusCode: http.StatusInternalServerError}
	ErrSheetNotFound      = &AppError{Code: "SHEET_NOT_FOUND", Message: "Worksheet not found in workbook", StatusCode: http.StatusInternalServerError}
)

// External transaction service errors.
var (
	ErrExternalService = &AppError{Code: "EXTERNAL_SERVICE_FAILURE", Message: "Transaction service is unavailable", StatusCode: http.StatusBadGateway}
)

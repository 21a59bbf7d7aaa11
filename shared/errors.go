package shared

import (
	"errors"
	"fmt"
	"net/http"
)

// Machine-distinguishable error kinds surfaced to clients.
const (
	KindMissingParameter = "missing_parameter"
	KindInvalidType      = "invalid_type"
	KindInvalidStatus    = "invalid_status"
	KindInvalidDate      = "invalid_date"
	KindNotFound         = "not_found"
	KindConflict         = "conflict"
	KindValidation       = "validation"
	KindRateLimited      = "rate_limited"
	KindBadRequest       = "bad_request"
	KindUnavailable      = "unavailable"
)

type AppError struct {
	StatusCode int         `json:"-"`
	Kind       string      `json:"kind"`
	Message    string      `json:"message"`
	Data       interface{} `json:"data,omitempty"`
	err        error
}

func (e *AppError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.err
}

func GetAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

func NewMissingParameterError(param string) *AppError {
	return &AppError{
		StatusCode: http.StatusBadRequest,
		Kind:       KindMissingParameter,
		Message:    fmt.Sprintf("Missing required parameter: %s", param),
	}
}

func NewInvalidTypeError(searchType string) *AppError {
	return &AppError{
		StatusCode: http.StatusBadRequest,
		Kind:       KindInvalidType,
		Message:    fmt.Sprintf("Invalid search type: %s. Must be one of: post_title, username, status, date", searchType),
	}
}

func NewInvalidStatusError(status string) *AppError {
	return &AppError{
		StatusCode: http.StatusBadRequest,
		Kind:       KindInvalidStatus,
		Message:    fmt.Sprintf("Invalid status: %s. Must be one of: pending, approved, rejected", status),
	}
}

func NewInvalidDateError(value string) *AppError {
	return &AppError{
		StatusCode: http.StatusBadRequest,
		Kind:       KindInvalidDate,
		Message:    fmt.Sprintf("Invalid date: %s. Expected format YYYY-MM-DD", value),
	}
}

func NewNotFoundError(err error, message string) *AppError {
	return &AppError{
		StatusCode: http.StatusNotFound,
		Kind:       KindNotFound,
		Message:    message,
		err:        err,
	}
}

func NewConflictError(err error, message string) *AppError {
	return &AppError{
		StatusCode: http.StatusConflict,
		Kind:       KindConflict,
		Message:    message,
		err:        err,
	}
}

func NewBadRequestError(err error, message string) *AppError {
	return &AppError{
		StatusCode: http.StatusBadRequest,
		Kind:       KindBadRequest,
		Message:    message,
		err:        err,
	}
}

func NewValidationError(message string, fieldErrors interface{}) *AppError {
	return &AppError{
		StatusCode: http.StatusBadRequest,
		Kind:       KindValidation,
		Message:    message,
		Data:       fieldErrors,
	}
}

func NewRateLimitError(message string, retryAfter int) *AppError {
	return &AppError{
		StatusCode: http.StatusTooManyRequests,
		Kind:       KindRateLimited,
		Message:    message,
		Data:       map[string]interface{}{"retry_after": retryAfter},
	}
}

// NewUnavailableError wraps internal store failures so they are never
// exposed verbatim to clients.
func NewUnavailableError(err error) *AppError {
	return &AppError{
		StatusCode: http.StatusServiceUnavailable,
		Kind:       KindUnavailable,
		Message:    "Service temporarily unavailable",
		err:        err,
	}
}

package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

func Wrap(err error, code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common error codes
const (
	ErrCodeValidation        = "VALIDATION_ERROR"
	ErrCodeNotFound          = "NOT_FOUND"
	ErrCodeUnauthorized      = "UNAUTHORIZED"
	ErrCodeForbidden         = "FORBIDDEN"
	ErrCodeInternalError     = "INTERNAL_ERROR"
	ErrCodeInsufficientFunds = "INSUFFICIENT_FUNDS"
	ErrCodeAlreadyExists     = "ALREADY_EXISTS"
	ErrCodeRateLimitExceeded = "RATE_LIMIT_EXCEEDED"
)

var statusByCode = map[string]int{
	ErrCodeValidation:        http.StatusBadRequest,
	ErrCodeNotFound:          http.StatusNotFound,
	ErrCodeUnauthorized:      http.StatusUnauthorized,
	ErrCodeForbidden:         http.StatusForbidden,
	ErrCodeInternalError:     http.StatusInternalServerError,
	ErrCodeInsufficientFunds: http.StatusPaymentRequired,
	ErrCodeAlreadyExists:     http.StatusConflict,
	ErrCodeRateLimitExceeded: http.StatusTooManyRequests,
}

// As returns the first *AppError in err's chain.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// HasCode reports whether err carries the given application error code.
func HasCode(err error, code string) bool {
	appErr, ok := As(err)
	return ok && appErr.Code == code
}

// HTTPStatus maps an error to the status code the API responds with.
// Errors that are not *AppError are treated as internal.
func HTTPStatus(err error) int {
	appErr, ok := As(err)
	if !ok {
		return http.StatusInternalServerError
	}
	if status, ok := statusByCode[appErr.Code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// PublicMessage is the message safe to show to API clients.
func PublicMessage(err error) string {
	appErr, ok := As(err)
	if !ok || appErr.Code == ErrCodeInternalError {
		return "Internal server error"
	}
	return appErr.Message
}

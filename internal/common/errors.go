package common

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError represents application-specific errors
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Common application errors
var (
	// ErrUnsupportedFormat means the declared file kind is neither a PDF nor a
	// supported image type. Fatal; surfaced before any parsing begins.
	ErrUnsupportedFormat = errors.New("unsupported format")

	// ErrAcquisitionFailed means no text could be obtained at all
	// (corrupted file, extraction tool produced nothing).
	ErrAcquisitionFailed = errors.New("text acquisition failed")

	// ErrAcquisitionTimeout means acquisition was cancelled by deadline.
	ErrAcquisitionTimeout = errors.New("text acquisition timed out")

	ErrInvalidInput = errors.New("invalid input")
	ErrInternal     = errors.New("internal error")
)

// Error constructors
func NewAppError(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// HTTPStatus maps an error to the status code the server layer should return.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrUnsupportedFormat):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, ErrAcquisitionTimeout):
		return http.StatusGatewayTimeout
	case errors.Is(err, ErrAcquisitionFailed):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

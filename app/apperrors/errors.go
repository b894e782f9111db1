package apperrors

import "fmt"

// ErrorCode classifies application errors.
type ErrorCode int

const (
	ErrInternal ErrorCode = 1000 + iota
	ErrDatabase
	ErrUpstream
)

const (
	ErrUnauthorized ErrorCode = 2000 + iota
	ErrInvalidToken
	ErrInvalidCredentials
)

const (
	ErrBadRequest ErrorCode = 3000 + iota
	ErrValidation
	ErrNotFound
	ErrConflict
)

// AppError carries a message and an error code that maps to an HTTP status.
type AppError struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new application error.
func New(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// Wrap wraps an existing error with a code and message.
func Wrap(code ErrorCode, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// Package errors is the coded error type that storage adapters return and the
// HTTP layer turns into status codes.
package errors

import (
	"errors"
	"fmt"
)

// ErrorCode is the category an AppError falls into.
type ErrorCode string

const (
	ErrCodeNotFound    ErrorCode = "not_found"
	ErrCodeConflict    ErrorCode = "conflict"
	ErrCodeValidation  ErrorCode = "validation"
	ErrCodeUnavailable ErrorCode = "unavailable"
	ErrCodeTimeout     ErrorCode = "timeout"
	ErrCodeCanceled    ErrorCode = "canceled"
	ErrCodeInternal    ErrorCode = "internal"
)

// publicMessages are shown when an AppError is built without its own message.
var publicMessages = map[ErrorCode]string{
	ErrCodeNotFound:    "Resource not found.",
	ErrCodeConflict:    "This value already exists.",
	ErrCodeValidation:  "Invalid data. Please check your input.",
	ErrCodeUnavailable: "State store is unavailable. Please try again.",
	ErrCodeTimeout:     "Request timed out. Please try again.",
	ErrCodeCanceled:    "Request was canceled.",
	ErrCodeInternal:    "Something went wrong. Please try again.",
}

// AppError pairs a code and a message safe to show users with the cause.
// Field names the offending column when the driver reports one.
type AppError struct {
	Code    ErrorCode
	Message string
	Field   string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Cause)
}

func (e *AppError) Unwrap() error { return e.Cause }

// New returns an AppError for code. An empty message uses the code's default.
func New(code ErrorCode, message string) *AppError {
	if message == "" {
		message = publicMessages[code]
	}
	return &AppError{Code: code, Message: message}
}

// Wrap attaches code and message to err. Wrap(nil, ...) is nil.
func Wrap(err error, code ErrorCode, message string) *AppError {
	if err == nil {
		return nil
	}
	ae := New(code, message)
	ae.Cause = err
	return ae
}

func NotFound(message string) *AppError   { return New(ErrCodeNotFound, message) }
func Validation(message string) *AppError { return New(ErrCodeValidation, message) }

// CodeOf returns the code of the outermost AppError in err's chain, or "".
func CodeOf(err error) ErrorCode {
	if ae, ok := asAppError(err); ok {
		return ae.Code
	}
	return ""
}

// FieldOf returns the field of the outermost AppError in err's chain, or "".
func FieldOf(err error) string {
	if ae, ok := asAppError(err); ok {
		return ae.Field
	}
	return ""
}

// HasCode reports whether err carries an AppError with code.
func HasCode(err error, code ErrorCode) bool {
	return err != nil && CodeOf(err) == code
}

func asAppError(err error) (*AppError, bool) {
	var ae *AppError
	ok := errors.As(err, &ae)
	return ae, ok
}

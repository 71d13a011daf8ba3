// Package apperr carries the error taxonomy used by all domain operations.
// Operations raise a typed error with a status and message; the serializer
// boundary converts it into the uniform failure envelope. Handlers never
// format failure responses themselves.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

type Error struct {
	Status  int
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Cause }

// Validation reports a missing required field or a malformed payload.
func Validation(msg string) *Error {
	return &Error{Status: http.StatusBadRequest, Message: msg}
}

// NotFound reports an absent entity or sub-entity.
func NotFound(msg string) *Error {
	return &Error{Status: http.StatusNotFound, Message: msg}
}

// Unauthorized reports a failed authentication.
func Unauthorized(msg string) *Error {
	return &Error{Status: http.StatusUnauthorized, Message: msg}
}

// Internal wraps an unexpected failure with its original cause attached.
func Internal(msg string, cause error) *Error {
	if msg == "" {
		msg = "internal server error"
	}
	return &Error{Status: http.StatusInternalServerError, Message: msg, Cause: cause}
}

// StatusOf resolves the HTTP status for any error. Untyped errors map to 500.
func StatusOf(err error) int {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Status
	}
	return http.StatusInternalServerError
}

// MessageOf resolves the client-facing message for any error.
func MessageOf(err error) string {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Message
	}
	return "internal server error"
}

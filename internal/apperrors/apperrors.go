package apperrors

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Stable error codes returned to the transport layer.
const (
	CodeNotFound        = "NOT_FOUND"
	CodeAccessDenied    = "ACCESS_DENIED"
	CodeConflict        = "CONFLICT"
	CodeValidation      = "VALIDATION_ERROR"
	CodeUnauthenticated = "UNAUTHENTICATED"
	CodeInternal        = "INTERNAL_ERROR"
)

// Error is the typed failure every service operation returns. The code
// determines the HTTP status; the message is user-visible.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	err     error
}

func (e *Error) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.err }

// Is matches two app errors by code, so sentinel comparisons like
// errors.Is(err, apperrors.NotFound("")) work regardless of message.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code
}

func NotFound(message string) *Error {
	if message == "" {
		message = "Resource not found"
	}
	return &Error{Code: CodeNotFound, Message: message}
}

func AccessDenied(message string) *Error {
	if message == "" {
		message = "Access denied"
	}
	return &Error{Code: CodeAccessDenied, Message: message}
}

func Conflict(message string) *Error {
	return &Error{Code: CodeConflict, Message: message}
}

func Validation(message string) *Error {
	return &Error{Code: CodeValidation, Message: message}
}

func Unauthenticated(message string) *Error {
	if message == "" {
		message = "Authentication required"
	}
	return &Error{Code: CodeUnauthenticated, Message: message}
}

// Internal wraps an unexpected failure. The wrapped error is kept for
// logging but never serialized to the client.
func Internal(message string, err error) *Error {
	if message == "" {
		message = "Internal server error"
	}
	return &Error{Code: CodeInternal, Message: message, err: err}
}

// Code checks for branching without sentinel values.

func IsNotFound(err error) bool     { return hasCode(err, CodeNotFound) }
func IsAccessDenied(err error) bool { return hasCode(err, CodeAccessDenied) }
func IsConflict(err error) bool     { return hasCode(err, CodeConflict) }
func IsValidation(err error) bool   { return hasCode(err, CodeValidation) }

func hasCode(err error, code string) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == code
}

func statusFor(code string) int {
	switch code {
	case CodeNotFound:
		return http.StatusNotFound
	case CodeAccessDenied:
		return http.StatusForbidden
	case CodeConflict:
		return http.StatusConflict
	case CodeValidation:
		return http.StatusBadRequest
	case CodeUnauthenticated:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// Respond maps an error to its HTTP response. Unknown errors are
// masked as internal failures so nothing leaks.
func Respond(c *gin.Context, err error) {
	var e *Error
	if !errors.As(err, &e) {
		e = Internal("", err)
	}
	c.JSON(statusFor(e.Code), gin.H{"code": e.Code, "message": e.Message})
}

// BadRequest sends a 400 for malformed request bodies, before any
// service call is made.
func BadRequest(c *gin.Context, message string) {
	if message == "" {
		message = "Invalid request body"
	}
	c.JSON(http.StatusBadRequest, gin.H{"code": CodeValidation, "message": message})
}

// AbortUnauthenticated terminates middleware chains with a 401.
func AbortUnauthenticated(c *gin.Context, message string) {
	if message == "" {
		message = "Authentication required"
	}
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"code": CodeUnauthenticated, "message": message})
}

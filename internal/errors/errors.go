package errors

import (
	"net/http"
)

// default error is internal service error at handler level
// if error has different status code use ErrorWithStatusCode
type ErrorWithStatusCode struct {
	Message    string
	StatusCode int
}

func (e *ErrorWithStatusCode) Error() string {
	return e.Message
}

// Taxonomy constructors. The status code carries the error class across
// layers so handlers only need WriteErrorAndStatusCode.

// Validation: missing/malformed field, length exceeded, non-numeric id.
func Validation(message string) error {
	return &ErrorWithStatusCode{Message: message, StatusCode: http.StatusBadRequest}
}

// NotFound: board/thread/post/ban id does not exist.
func NotFound(message string) error {
	return &ErrorWithStatusCode{Message: message, StatusCode: http.StatusNotFound}
}

// RateLimited: posting interval not elapsed or daily limit reached.
func RateLimited(message string) error {
	return &ErrorWithStatusCode{Message: message, StatusCode: http.StatusTooManyRequests}
}

// Forbidden: banned word present or identity currently banned.
func Forbidden(message string) error {
	return &ErrorWithStatusCode{Message: message, StatusCode: http.StatusForbidden}
}

// Unauthorized: missing or invalid admin session.
func Unauthorized(message string) error {
	return &ErrorWithStatusCode{Message: message, StatusCode: http.StatusUnauthorized}
}

// StatusCode returns the HTTP status carried by err, or 500 for plain errors
// (persistence and other internal failures stay generic toward the caller).
func StatusCode(err error) int {
	if e, ok := err.(*ErrorWithStatusCode); ok {
		return e.StatusCode
	}
	return http.StatusInternalServerError
}

// IsClientError reports whether err should be reported to the caller as-is
// rather than logged as a system failure.
func IsClientError(err error) bool {
	return StatusCode(err) < http.StatusInternalServerError
}

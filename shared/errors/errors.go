package errors

import (
	"errors"
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

func Validation(msg string) error {
	return &ErrorWithStatusCode{Message: msg, StatusCode: http.StatusBadRequest}
}

func Unauthenticated(msg string) error {
	return &ErrorWithStatusCode{Message: msg, StatusCode: http.StatusUnauthorized}
}

func Forbidden(msg string) error {
	return &ErrorWithStatusCode{Message: msg, StatusCode: http.StatusForbidden}
}

// Conflict is reported with 403, the same status clients get for a forbidden
// operation.
func Conflict(msg string) error {
	return &ErrorWithStatusCode{Message: msg, StatusCode: http.StatusForbidden}
}

func NotFound(msg string) error {
	return &ErrorWithStatusCode{Message: msg, StatusCode: http.StatusNotFound}
}

func ConcurrentModification(msg string) error {
	return &ErrorWithStatusCode{Message: msg, StatusCode: http.StatusConflict}
}

// StatusCode returns the status carried by err or 500.
func StatusCode(err error) int {
	var e *ErrorWithStatusCode
	if errors.As(err, &e) {
		return e.StatusCode
	}
	return http.StatusInternalServerError
}

func IsNotFound(err error) bool {
	return StatusCode(err) == http.StatusNotFound
}

package errors

import (
	"errors"
	"net/http"
)

type Exception struct {
	Message    string
	StatusCode int
}

func (e *Exception) Error() string {
	return e.Message
}

func New(statusCode int, message string) *Exception {
	return &Exception{Message: message, StatusCode: statusCode}
}

func BadRequest(message string) *Exception {
	return New(http.StatusBadRequest, message)
}

func StatusCode(err error) int {
	var appErr *Exception
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}

// Message returns the client facing message of err. Unknown errors never leak
// their text.
func Message(err error) string {
	var appErr *Exception
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "internal server error"
}

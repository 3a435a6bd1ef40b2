package handler

import (
	"errors"
	"net/http"
)

// ErrNilResponse indicates a handler returned nil instead of a Response.
var ErrNilResponse = errors.New("handler.nil_response")

// HTTPError carries a status code and a message safe to show to users.
type HTTPError struct {
	Code    int
	Message string
}

// NewHTTPError creates an HTTPError. An empty message falls back to the
// status text.
func NewHTTPError(code int, message string) HTTPError {
	if message == "" {
		message = http.StatusText(code)
	}
	return HTTPError{Code: code, Message: message}
}

func (e HTTPError) Error() string {
	return e.Message
}

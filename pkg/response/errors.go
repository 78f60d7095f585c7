package response

import "net/http"

// HTTPError is a domain error already mapped to a transport status.
type HTTPError struct {
	Code       int
	Message    string
	StatusCode int
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError builds an HTTPError. A zero status defaults to 400.
func NewHTTPError(code int, message string, status int) *HTTPError {
	if status == 0 {
		status = http.StatusBadRequest
	}
	return &HTTPError{Code: code, Message: message, StatusCode: status}
}

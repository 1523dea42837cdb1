package gateway

import (
	"errors"
	"fmt"
)

// ErrMissingKey is returned before any network call when no key is set.
var ErrMissingKey = errors.New("gateway: missing API key")

// RequestError is returned when the gateway answers with a non-2xx status.
type RequestError struct {
	StatusCode int
	Body       string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("HTTP error! status: %d", e.StatusCode)
}

// FormatError is returned when the response body is not a JSON object with
// an array-typed "data" field.
type FormatError struct {
	Reason string
}

func (e *FormatError) Error() string {
	return "Invalid data format from API: " + e.Reason
}

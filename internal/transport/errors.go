package transport

import "fmt"

// HTTPError is returned when the service answers with a non-success status
type HTTPError struct {
	Method     string
	URL        string
	StatusCode int
	Status     string
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%s %s failed with status %d: %s", e.Method, e.URL, e.StatusCode, e.Body)
}

// Retryable reports whether the status is worth another attempt
func (e *HTTPError) Retryable() bool {
	switch e.StatusCode {
	case 408, 429, 500, 502, 503, 504:
		return true
	}
	return false
}

// ResponseError is returned when a success response cannot be decoded
type ResponseError struct {
	URL   string
	Cause error
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("malformed response from %s: %v", e.URL, e.Cause)
}

func (e *ResponseError) Unwrap() error {
	return e.Cause
}

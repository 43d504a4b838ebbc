package interlex

import "fmt"

// APIError is a non-2xx response from the registry.
//
// Lookup endpoints never produce an APIError for a plain miss; absence is
// part of their normal response shape. An APIError always means the call
// itself failed and the batch should stop.
type APIError struct {
	StatusCode int
	Endpoint   string
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("interlex: %s returned %d: %s", e.Endpoint, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("interlex: %s returned %d", e.Endpoint, e.StatusCode)
}

// Temporary reports whether retrying the same call could succeed.
// Rate limiting and server-side failures are temporary; auth and
// validation rejections are not.
func (e *APIError) Temporary() bool {
	return e.StatusCode == 429 || e.StatusCode >= 500
}

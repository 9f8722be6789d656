package client

import (
	"errors"
	"fmt"
	"net/http"
)

// HTTPError represents a non-2xx HTTP response from the party store.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// IsStatus returns true if err (or any wrapped error) is an HTTPError with the given status code.
func IsStatus(err error, code int) bool {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode == code
	}
	return false
}

// IsNotFound reports whether err means the party name or admin code matched
// nothing. Callers render an empty state rather than an error page.
func IsNotFound(err error) bool {
	return IsStatus(err, http.StatusNotFound)
}

// IsNameTaken reports whether err means the candidate party name already
// exists. Creation regenerates a fresh name and retries.
func IsNameTaken(err error) bool {
	return IsStatus(err, http.StatusConflict)
}

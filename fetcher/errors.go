package fetcher

import (
	"fmt"
	"net/http"

	"github.com/go-playground/errors/v5"
)

// HTTPError is a failed call to the authorization endpoint. It carries
// the message/status pair the UI error bridge consumes.
type HTTPError struct {
	Message string
	Status  int
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("authorization endpoint returned %d: %s", e.Status, e.Message)
}

// NewUnauthorizedError returns the distinguished 401 error. A 401 means
// the credential itself is no longer valid and the caller should force
// re-authentication rather than retry.
func NewUnauthorizedError(message string) *HTTPError {
	return &HTTPError{Message: message, Status: http.StatusUnauthorized}
}

// HasUnauthorized reports whether err (anywhere in its chain) is the
// distinguished 401 error.
func HasUnauthorized(err error) bool {
	return StatusCode(err) == http.StatusUnauthorized
}

// StatusCode returns the HTTP status attached to err, or 0 when err
// carries none.
func StatusCode(err error) int {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Status
	}

	return 0
}

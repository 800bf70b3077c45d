package sdk

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNetworkUnreachable marks transport-level failures where no response was
// received at all. These are never retried by the request pipeline.
var ErrNetworkUnreachable = errors.New("network unreachable")

// ErrNoEmail is returned when a 401 retry is requested but no email has been
// recorded in the session store, so there is nothing to resynchronize with.
var ErrNoEmail = errors.New("no email in session store")

// APIError is a non-2xx response from the EduConnect backend, or a 2xx
// response whose envelope reports success=false.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error (status %d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("api error (status %d)", e.StatusCode)
}

// IsUnauthorized reports whether err is a backend authorization failure.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}

// IsNetworkUnreachable reports whether err is a connectivity failure with no
// response, as opposed to a backend-produced error.
func IsNetworkUnreachable(err error) bool {
	return errors.Is(err, ErrNetworkUnreachable)
}

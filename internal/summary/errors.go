package summary

import (
	"errors"
	"fmt"
)

// Errors returned by the completion client.
var (
	// ErrAuthError indicates a missing or rejected API key.
	ErrAuthError = errors.New("completion endpoint authentication error")

	// ErrRateLimited indicates the endpoint kept answering 429 after all retries.
	ErrRateLimited = errors.New("completion endpoint rate limit exceeded")

	// ErrNetworkError indicates the endpoint could not be reached.
	ErrNetworkError = errors.New("network error communicating with completion endpoint")

	// ErrInvalidResponse indicates a response without a usable completion.
	ErrInvalidResponse = errors.New("invalid response from completion endpoint")
)

// APIError is a non-auth, non-rate-limit error status from the endpoint.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("completion endpoint error (status %d)", e.StatusCode)
	}
	return fmt.Sprintf("completion endpoint error (status %d): %s", e.StatusCode, e.Message)
}

// IsAuthError reports whether err is an authentication failure.
func IsAuthError(err error) bool {
	if errors.Is(err, ErrAuthError) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 401 || apiErr.StatusCode == 403
	}
	return false
}

// IsRateLimited reports whether err is a rate-limit failure.
func IsRateLimited(err error) bool {
	if errors.Is(err, ErrRateLimited) {
		return true
	}
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == 429
}

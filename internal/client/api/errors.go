package api

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthorized means the credentials were rejected or the stored
	// token is no longer accepted. The caller should discard the session.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrUnavailable means the server could not be reached at all.
	ErrUnavailable = errors.New("server unavailable")
)

// APIError is a structured error response from the server.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("server error (%d %s): %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("server error (%d): %s", e.StatusCode, e.Message)
}

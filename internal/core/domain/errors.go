package domain

import (
	"errors"
	"fmt"
)

var (
	ErrMissingQuery        = errors.New("missing search query parameter")
	ErrAPIKeyNotConfigured = errors.New("youtube api key not configured")
)

// UpstreamError is a non-OK answer from the YouTube Data API.
type UpstreamError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("youtube api returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("youtube api returned status %d: %s", e.StatusCode, e.Message)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

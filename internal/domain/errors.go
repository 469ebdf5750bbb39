package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for domain operations
var (
	// ErrNotSignedIn indicates the pipeline was used without a signed-in user
	ErrNotSignedIn = errors.New("no user is signed in")

	// ErrInvalidFilters indicates search filters failed validation
	ErrInvalidFilters = errors.New("invalid search filters")

	// ErrNotConfigured indicates the catalog API key is missing
	ErrNotConfigured = errors.New("catalog API key is not configured")
)

// NetworkError is a transport-level failure talking to the catalog
type NetworkError struct {
	Endpoint string
	Err      error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("catalog request %s failed: %v", e.Endpoint, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// APIError is a non-2xx response from the catalog
type APIError struct {
	Endpoint   string
	StatusCode int
	StatusText string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("catalog API error: %s", e.StatusText)
}

// DecodeError means the catalog answered 2xx with a body that could not be decoded
type DecodeError struct {
	Endpoint string
	Err      error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode %s response: %v", e.Endpoint, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// ParseError is malformed persisted data (e.g. a corrupt favorites slot)
type ParseError struct {
	Slot string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse slot %q: %v", e.Slot, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

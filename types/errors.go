package types

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a FetchError. Exactly one kind per failure.
type ErrorKind string

const (
	ErrNetwork    ErrorKind = "network error"
	ErrAPI        ErrorKind = "api error"
	ErrParse      ErrorKind = "parse error"
	ErrValidation ErrorKind = "validation error"
	ErrRateLimit  ErrorKind = "rate limit error"
	ErrProxy      ErrorKind = "proxy error"
	ErrTimeout    ErrorKind = "timeout error"
)

// FetchError is the single error type surfaced by this module. StatusCode is
// set for failures that carry an HTTP status; Err preserves the underlying
// cause for errors.Is/As chains.
type FetchError struct {
	Kind       ErrorKind
	Message    string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.Kind == ErrAPI && e.StatusCode != 0 {
		return fmt.Sprintf("api error (%d): %s", e.StatusCode, e.Message)
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: %s (status %d)", e.Kind, e.Message, e.StatusCode)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *FetchError) Unwrap() error { return e.Err }

// KindOf extracts the FetchError kind from an error chain, or "" when the
// chain holds no FetchError.
func KindOf(err error) ErrorKind {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return ""
}

func NewNetworkError(message string, statusCode int, cause error) *FetchError {
	return &FetchError{Kind: ErrNetwork, Message: message, StatusCode: statusCode, Err: cause}
}

func NewAPIError(message string, statusCode int) *FetchError {
	return &FetchError{Kind: ErrAPI, Message: message, StatusCode: statusCode}
}

func NewParseError(message string, cause error) *FetchError {
	return &FetchError{Kind: ErrParse, Message: message, Err: cause}
}

func NewValidationError(message string) *FetchError {
	return &FetchError{Kind: ErrValidation, Message: message}
}

func NewRateLimitError(message string) *FetchError {
	return &FetchError{Kind: ErrRateLimit, Message: message, StatusCode: 429}
}

func NewProxyError(message string, cause error) *FetchError {
	return &FetchError{Kind: ErrProxy, Message: message, Err: cause}
}

func NewTimeoutError(message string, cause error) *FetchError {
	return &FetchError{Kind: ErrTimeout, Message: message, Err: cause}
}

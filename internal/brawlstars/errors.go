package brawlstars

import (
	"errors"
	"fmt"
	"net/http"
)

// Configuration errors returned by New and NewAsync.
var (
	// ErrMissingToken is returned when no API token is configured.
	ErrMissingToken = errors.New("an API token is required to access the Brawl Stars API")

	// ErrInvalidTimeout is returned when the configured timeout is not positive.
	ErrInvalidTimeout = errors.New("timeout must be a positive duration")
)

// Request errors. HTTP failures are reported as *HTTPError values that unwrap
// to one of these sentinels, so callers can use errors.Is.
var (
	// ErrForbidden is returned for 403 responses (bad or unauthorised token).
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound is returned for 404 responses.
	ErrNotFound = errors.New("not found")

	// ErrRateLimited is returned for 429 responses.
	ErrRateLimited = errors.New("rate limited")

	// ErrServerError is returned for 500 responses.
	ErrServerError = errors.New("API server error")

	// ErrServiceUnavailable is returned for 503 responses and request timeouts.
	ErrServiceUnavailable = errors.New("API unavailable")

	// ErrUnexpectedStatus is returned for any other non-2xx status.
	ErrUnexpectedStatus = errors.New("unexpected status")

	// ErrUnexpectedContent is returned when a JSON body was expected but the
	// API answered with something else.
	ErrUnexpectedContent = errors.New("unexpected response content")

	// ErrClientClosed is returned by requests issued after Close.
	ErrClientClosed = errors.New("client is closed")

	// ErrNotInClub is returned by GetPlayerClub for players without a club.
	ErrNotInClub = errors.New("player is not in a club")
)

// Validation errors.
var (
	// ErrValidation is wrapped by every *ValidationError.
	ErrValidation = errors.New("invalid request parameters")

	// ErrInvalidTag is returned for tags that fail local validation.
	ErrInvalidTag = errors.New("invalid tag")
)

const (
	msgForbidden          = "The API token you supplied is invalid. Authorization failed."
	msgNotFound           = "The item requested has not been found."
	msgRateLimited        = "You are being rate-limited. Please retry in a few moments."
	msgServerError        = "An unexpected error has occurred."
	msgServiceUnavailable = "The API is down due to in-game maintenance. Please be patient and try again later."
	msgUnexpectedStatus   = "The API answered with a status this client does not handle."
)

// HTTPError describes a failed API request.
type HTTPError struct {
	StatusCode int
	Reason     string
	Message    string
	Body       string
	kind       error
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%s (status %d): %s", e.Reason, e.StatusCode, e.Message)
}

// Unwrap returns the sentinel error for the status class.
func (e *HTTPError) Unwrap() error {
	return e.kind
}

// ValidationError is returned when request parameters are rejected before
// any request is sent.
type ValidationError struct {
	Field   string
	Message string
	cause   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// Unwrap exposes ErrValidation and, for tag failures, ErrInvalidTag.
func (e *ValidationError) Unwrap() []error {
	if e.cause != nil {
		return []error{ErrValidation, e.cause}
	}
	return []error{ErrValidation}
}

func newValidationError(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// mapStatus turns a response status into nil or a domain error. Every
// non-2xx code yields an error.
func mapStatus(code int, reason, body string) error {
	if code >= 200 && code < 300 {
		return nil
	}

	if reason == "" {
		reason = http.StatusText(code)
	}
	if reason == "" {
		reason = "Unknown Status"
	}

	e := &HTTPError{StatusCode: code, Reason: reason, Body: body}
	switch code {
	case http.StatusForbidden:
		e.kind, e.Message = ErrForbidden, msgForbidden
	case http.StatusNotFound:
		e.kind, e.Message = ErrNotFound, msgNotFound
	case http.StatusTooManyRequests:
		e.kind, e.Message = ErrRateLimited, msgRateLimited
	case http.StatusInternalServerError:
		e.kind, e.Message = ErrServerError, msgServerError+"\n"+body
	case http.StatusServiceUnavailable:
		e.kind, e.Message = ErrServiceUnavailable, msgServiceUnavailable
	default:
		e.kind, e.Message = ErrUnexpectedStatus, fmt.Sprintf("%s (%d)", msgUnexpectedStatus, code)
	}
	return e
}

// timeoutError is what a request deadline surfaces as.
func timeoutError(cause error) error {
	return &HTTPError{
		StatusCode: http.StatusServiceUnavailable,
		Reason:     http.StatusText(http.StatusServiceUnavailable),
		Message:    msgServiceUnavailable,
		Body:       cause.Error(),
		kind:       ErrServiceUnavailable,
	}
}

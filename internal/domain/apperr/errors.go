// Package apperr defines the error taxonomy shared by services and handlers.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// ValidationError reports malformed or out-of-range input. Never retried.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// Validation is a shorthand constructor.
func Validation(field, msg string) error {
	return &ValidationError{Field: field, Message: msg}
}

// AuthError reports an unauthenticated or unauthorized caller.
type AuthError struct {
	Reason string
}

func (e *AuthError) Error() string {
	if e.Reason == "" {
		return "unauthorized"
	}
	return "unauthorized: " + e.Reason
}

// InsufficientDataError reports an analysis requested over an empty series.
type InsufficientDataError struct {
	Message string
}

func (e *InsufficientDataError) Error() string { return e.Message }

// GatewayError reports a transport failure or non-2xx answer from the completion service.
type GatewayError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *GatewayError) Error() string {
	switch {
	case e.StatusCode != 0 && e.Err != nil:
		return fmt.Sprintf("gateway error: status %d: %s: %v", e.StatusCode, e.Body, e.Err)
	case e.StatusCode != 0:
		return fmt.Sprintf("gateway error: status %d: %s", e.StatusCode, e.Body)
	case e.Err != nil:
		return "gateway error: " + e.Err.Error()
	}
	return "gateway error"
}

func (e *GatewayError) Unwrap() error { return e.Err }

// MalformedResponseError reports an upstream payload that was unparsable or incomplete.
type MalformedResponseError struct {
	Reason string
	Raw    string
	Err    error
}

func (e *MalformedResponseError) Error() string {
	if e.Err != nil {
		return "malformed response: " + e.Reason + ": " + e.Err.Error()
	}
	return "malformed response: " + e.Reason
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }

// IsUpstream reports whether err came from the completion gateway layer.
func IsUpstream(err error) bool {
	var gw *GatewayError
	var mr *MalformedResponseError
	return errors.As(err, &gw) || errors.As(err, &mr)
}

// UpstreamDetails extracts the status and body worth logging for an upstream failure.
func UpstreamDetails(err error) (status int, body string) {
	var gw *GatewayError
	if errors.As(err, &gw) {
		return gw.StatusCode, gw.Body
	}
	var mr *MalformedResponseError
	if errors.As(err, &mr) {
		return 0, mr.Raw
	}
	return 0, ""
}

// HTTPStatus maps an error to the status code surfaced to API callers.
func HTTPStatus(err error) int {
	var (
		ve *ValidationError
		ae *AuthError
		ie *InsufficientDataError
	)
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &ve), errors.As(err, &ie):
		return http.StatusBadRequest
	case errors.As(err, &ae):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

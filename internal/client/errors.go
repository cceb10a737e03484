// ABOUTME: Error taxonomy for API calls: transport, API status, session expiry
// ABOUTME: Extracts user-facing messages and field-level validation errors

package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// GenericErrorMessage is shown when nothing more specific is known
const GenericErrorMessage = "An error occurred"

// Sentinel errors for errors.Is checks
var (
	// ErrTransport marks network, timeout and cancellation failures
	ErrTransport = errors.New("transport error")

	// ErrSessionExpired marks an authorization failure that could not be recovered by refresh
	ErrSessionExpired = errors.New("session expired")

	// ErrNoRefreshToken means the store held no refresh token to exchange
	ErrNoRefreshToken = errors.New("no refresh token")

	// ErrRefreshRejected means the refresh endpoint did not issue a new access token
	ErrRefreshRejected = errors.New("refresh rejected")

	// ErrInvalidResponse means a 2xx body could not be decoded
	ErrInvalidResponse = errors.New("invalid response from backend")

	// ErrBuildRequest means the request could not be prepared, so nothing was sent
	ErrBuildRequest = errors.New("cannot build request")
)

// errorBody is the JSON error shape produced by the backend
type errorBody struct {
	Message string   `json:"message"`
	Error   string   `json:"error"`
	Details []string `json:"details"`
}

// APIError is a non-2xx response from the backend
type APIError struct {
	StatusCode int
	Method     string
	Path       string
	Message    string
	Details    []string
}

func (e *APIError) Error() string {
	return e.Message
}

// IsUnauthorized reports a 401 response
func (e *APIError) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized
}

// IsValidation reports a 4xx response carrying field details
func (e *APIError) IsValidation() bool {
	return e.StatusCode >= 400 && e.StatusCode < 500 && len(e.Details) > 0
}

// IsServer reports a 5xx response
func (e *APIError) IsServer() bool {
	return e.StatusCode >= 500
}

// FieldErrors converts "field: message" details into a map
func (e *APIError) FieldErrors() map[string]string {
	return ParseFieldErrors(e.Details)
}

// ParseFieldErrors splits each "field: message" entry on the first ": ".
// Entries missing either half are skipped.
func ParseFieldErrors(details []string) map[string]string {
	fields := make(map[string]string, len(details))
	for _, d := range details {
		field, message, ok := strings.Cut(d, ": ")
		if !ok {
			continue
		}
		field = strings.TrimSpace(field)
		message = strings.TrimSpace(message)
		if field == "" || message == "" {
			continue
		}
		fields[field] = message
	}
	return fields
}

// newAPIError builds an APIError from a response status and raw body
func newAPIError(req *Request, status int, body []byte) *APIError {
	apiErr := &APIError{
		StatusCode: status,
		Method:     req.Method,
		Path:       req.Path,
	}

	var eb errorBody
	if len(body) > 0 && json.Unmarshal(body, &eb) == nil {
		apiErr.Details = eb.Details
		switch {
		case eb.Message != "":
			apiErr.Message = eb.Message
		case eb.Error != "":
			apiErr.Message = eb.Error
		}
	}

	if apiErr.Message == "" {
		apiErr.Message = fmt.Sprintf("request failed with status code %d", status)
	}
	return apiErr
}

// TransportError is a failure to get any response from the backend
type TransportError struct {
	Message string
	Err     error
}

func (e *TransportError) Error() string {
	return e.Message
}

// Unwrap exposes both ErrTransport and the underlying cause
func (e *TransportError) Unwrap() []error {
	return []error{ErrTransport, e.Err}
}

// SessionExpiredError is returned when a 401 could not be recovered
type SessionExpiredError struct {
	Path         string
	Redirected   bool
	Unauthorized *APIError
	Cause        error
}

func (e *SessionExpiredError) Error() string {
	if e.Unauthorized != nil {
		return e.Unauthorized.Message
	}
	return ErrSessionExpired.Error()
}

// Unwrap exposes ErrSessionExpired, the original 401 and the refresh cause
func (e *SessionExpiredError) Unwrap() []error {
	errs := []error{ErrSessionExpired}
	if e.Unauthorized != nil {
		errs = append(errs, e.Unauthorized)
	}
	if e.Cause != nil {
		errs = append(errs, e.Cause)
	}
	return errs
}

// UserMessage returns the human-readable text for a failed call
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return GenericErrorMessage
}

// Notified reports whether err came out of Do, which has already emitted
// the notification for it
func Notified(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) ||
		errors.Is(err, ErrTransport) ||
		errors.Is(err, ErrSessionExpired) ||
		errors.Is(err, ErrInvalidResponse) ||
		errors.Is(err, ErrBuildRequest)
}

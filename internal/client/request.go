// ABOUTME: Outgoing API request description used by the client choke point
// ABOUTME: Carries the explicit retry-once flag consulted by the refresh coordinator

package client

import (
	"net/http"
	"net/url"
)

// Request describes one logical API call. It is rebuilt into an
// *http.Request for every attempt so the body can be replayed after a refresh.
type Request struct {
	Method string
	Path   string // relative to the API base URL, e.g. "/projects/1"
	Query  url.Values
	Body   interface{} // JSON-encoded when non-nil
	Header http.Header

	// Raw is sent verbatim instead of Body, with ContentType
	Raw         []byte
	ContentType string

	// retried is set by the refresh coordinator before the single replay
	retried bool
	// noRefresh makes a 401 terminal without a refresh exchange
	noRefresh bool
	// anonymous requests never carry the stored access token
	anonymous bool
	// quiet failures are returned without a notification
	quiet bool
	// bearer overrides the stored access token for the replay
	bearer string
}

// NewRequest creates a request for the given method and API path
func NewRequest(method, path string, body interface{}) *Request {
	return &Request{
		Method: method,
		Path:   path,
		Body:   body,
	}
}

// WithQuery sets query parameters and returns the request
func (r *Request) WithQuery(q url.Values) *Request {
	r.Query = q
	return r
}

// WithRaw sets a pre-encoded body, e.g. multipart form data
func (r *Request) WithRaw(contentType string, raw []byte) *Request {
	r.Body = nil
	r.ContentType = contentType
	r.Raw = raw
	return r
}

// Anonymous marks a credential exchange such as login or register: the
// stored access token is not attached and a 401 is returned as is, leaving
// the stored session untouched.
func (r *Request) Anonymous() *Request {
	r.anonymous = true
	r.noRefresh = true
	return r
}

// BestEffort marks a call whose failure the caller only logs: a 401 is not
// refreshed and no notification is emitted.
func (r *Request) BestEffort() *Request {
	r.noRefresh = true
	r.quiet = true
	return r
}

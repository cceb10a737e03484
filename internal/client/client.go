// ABOUTME: HTTP client for the portfolio backend API
// ABOUTME: Single choke point that authorizes requests and classifies failures

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/sync/singleflight"

	"github.com/markalston/portfolio-admin/internal/session"
)

// DefaultTimeout bounds each attempt of a call when no timeout is configured
const DefaultTimeout = 30 * time.Second

// Client is the API client for the portfolio backend
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	store      session.Store
	notifier   Notifier
	navigator  Navigator
	logger     *slog.Logger

	refreshGroup singleflight.Group

	mu        sync.Mutex
	onCleared []func()
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the per-attempt timeout
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithNotifier sets the receiver of user-facing error messages
func WithNotifier(n Notifier) Option {
	return func(c *Client) { c.notifier = n }
}

// WithNavigator sets the receiver of navigation intents
func WithNavigator(n Navigator) Option {
	return func(c *Client) { c.navigator = n }
}

// WithLogger sets the structured logger
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New creates a new API client for baseURL, e.g. http://localhost:8080/api
func New(baseURL string, store session.Store, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		timeout:    DefaultTimeout,
		store:      store,
		notifier:   nopNotifier{},
		navigator:  nopNavigator{},
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// OnSessionCleared registers fn to run after an unrecoverable authorization
// failure has cleared the session store
func (c *Client) OnSessionCleared(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onCleared = append(c.onCleared, fn)
}

// Get issues a GET request and decodes the response into out
func (c *Client) Get(ctx context.Context, path string, out interface{}) error {
	return c.Do(ctx, NewRequest(http.MethodGet, path, nil), out)
}

// Post issues a POST request with a JSON body
func (c *Client) Post(ctx context.Context, path string, body, out interface{}) error {
	return c.Do(ctx, NewRequest(http.MethodPost, path, body), out)
}

// Put issues a PUT request with a JSON body
func (c *Client) Put(ctx context.Context, path string, body, out interface{}) error {
	return c.Do(ctx, NewRequest(http.MethodPut, path, body), out)
}

// Delete issues a DELETE request
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.Do(ctx, NewRequest(http.MethodDelete, path, nil), nil)
}

// Do sends req, decoding a successful JSON response into out (may be nil).
//
// Every 401 is handed to the refresh coordinator, which recovers it unless
// the request was already replayed or opted out of refresh. Every other
// failure produces exactly one notification, unless the request is quiet,
// and is returned to the caller.
func (c *Client) Do(ctx context.Context, req *Request, out interface{}) error {
	resp, err := c.send(ctx, req)
	if err != nil {
		c.notifyFor(req, UserMessage(err))
		return err
	}

	if resp.status == http.StatusUnauthorized && !req.noRefresh {
		return c.recoverUnauthorized(ctx, req, out, newAPIError(req, resp.status, resp.body))
	}

	if resp.status < 200 || resp.status >= 300 {
		apiErr := newAPIError(req, resp.status, resp.body)
		c.logger.Debug("API error", "method", req.Method, "path", req.Path, "status", resp.status, "message", apiErr.Message)
		c.notifyFor(req, apiErr.Message)
		return apiErr
	}

	if out == nil || len(bytes.TrimSpace(resp.body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.body, out); err != nil {
		// Some endpoints answer with a bare text/plain string
		if s, ok := out.(*string); ok {
			*s = string(resp.body)
			return nil
		}
		err = fmt.Errorf("%w: %w", ErrInvalidResponse, err)
		c.notifyFor(req, err.Error())
		return err
	}
	return nil
}

// response is a fully read HTTP response
type response struct {
	status int
	body   []byte
}

// send performs one attempt of req with the configured timeout
func (c *Client) send(ctx context.Context, req *Request) (*response, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	httpReq, err := c.buildRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, c.handleRequestError(ctx, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, c.handleRequestError(ctx, err)
	}

	c.logger.Debug("API request", "method", req.Method, "path", req.Path, "status", resp.StatusCode, "retried", req.retried)
	return &response{status: resp.StatusCode, body: body}, nil
}

// buildRequest turns req into an *http.Request, attaching the bearer token
// when one is available
func (c *Client) buildRequest(ctx context.Context, req *Request) (*http.Request, error) {
	var body io.Reader
	contentType := req.ContentType
	switch {
	case req.Raw != nil:
		body = bytes.NewReader(req.Raw)
	case req.Body != nil:
		data, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("%w: encoding body: %w", ErrBuildRequest, err)
		}
		body = bytes.NewReader(data)
		contentType = "application/json"
	}

	target := c.baseURL + req.Path
	if len(req.Query) > 0 {
		target += "?" + req.Query.Encode()
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, body)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildRequest, err)
	}
	for k, vs := range req.Header {
		for _, v := range vs {
			httpReq.Header.Add(k, v)
		}
	}
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	httpReq.Header.Set("Accept", "application/json")

	token := req.bearer
	if token == "" && !req.anonymous {
		s, err := c.store.Load()
		if err != nil {
			return nil, fmt.Errorf("%w: reading session: %w", ErrBuildRequest, err)
		}
		token = s.AccessToken
	}
	if token != "" {
		(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}).SetAuthHeader(httpReq)
	}

	return httpReq, nil
}

// handleRequestError converts transport failures to user-friendly messages
func (c *Client) handleRequestError(ctx context.Context, err error) error {
	switch {
	case errors.Is(ctx.Err(), context.Canceled):
		return &TransportError{Message: "request canceled", Err: err}
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		return &TransportError{Message: "request timed out", Err: err}
	}
	return &TransportError{Message: fmt.Sprintf("cannot connect to backend at %s: %v", c.baseURL, err), Err: err}
}

func (c *Client) notifyFor(req *Request, msg string) {
	if req.quiet {
		return
	}
	c.notify(msg)
}

func (c *Client) notify(msg string) {
	if msg == "" {
		msg = GenericErrorMessage
	}
	c.notifier.Error("%s", msg)
}

func (c *Client) fireSessionCleared() {
	c.mu.Lock()
	listeners := append([]func(){}, c.onCleared...)
	c.mu.Unlock()

	for _, fn := range listeners {
		fn()
	}
}

// ABOUTME: Refresh coordinator that recovers requests failing with 401
// ABOUTME: Exchanges the refresh token once, persists it, then replays the request

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/markalston/portfolio-admin/internal/models"
)

// RefreshPath is the endpoint that exchanges a refresh token for an access token
const RefreshPath = "/auth/refresh"

// refreshState is a step of the recovery state machine
type refreshState int

const (
	stateDetect refreshState = iota
	stateAcquire
	stateExchange
	stateReplay
	stateUnrecoverable
)

func (s refreshState) String() string {
	switch s {
	case stateDetect:
		return "detect"
	case stateAcquire:
		return "acquire"
	case stateExchange:
		return "exchange"
	case stateReplay:
		return "replay"
	case stateUnrecoverable:
		return "unrecoverable"
	default:
		return "unknown"
	}
}

// recovery holds the per-request state carried between transitions
type recovery struct {
	req          *Request
	unauthorized *APIError
	refreshToken string
	accessToken  string
	cause        error
}

// recoverUnauthorized drives one failing request through
// detect -> acquire -> exchange -> replay, or to unrecoverable.
func (c *Client) recoverUnauthorized(ctx context.Context, req *Request, out interface{}, unauthorized *APIError) error {
	r := &recovery{req: req, unauthorized: unauthorized}
	state := stateDetect

	for {
		c.logger.Debug("refresh coordinator", "state", state.String(), "path", req.Path)

		switch state {
		case stateDetect:
			if req.retried {
				// Already replayed once; the 401 is terminal
				c.notify(unauthorized.Message)
				return unauthorized
			}
			state = stateAcquire

		case stateAcquire:
			s, err := c.store.Load()
			switch {
			case err != nil:
				r.cause = fmt.Errorf("reading session: %w", err)
				state = stateUnrecoverable
			case s.RefreshToken == "":
				r.cause = ErrNoRefreshToken
				state = stateUnrecoverable
			default:
				r.refreshToken = s.RefreshToken
				state = stateExchange
			}

		case stateExchange:
			token, err := c.exchangeShared(ctx, r.refreshToken)
			if err != nil {
				r.cause = err
				state = stateUnrecoverable
				continue
			}
			r.accessToken = token
			state = stateReplay

		case stateReplay:
			req.retried = true
			req.bearer = r.accessToken
			return c.Do(ctx, req, out)

		case stateUnrecoverable:
			return c.unrecoverable(r)
		}
	}
}

// exchangeShared coalesces concurrent exchanges of the same refresh token.
// The new access token is persisted before any caller replays.
func (c *Client) exchangeShared(ctx context.Context, refreshToken string) (string, error) {
	v, err, shared := c.refreshGroup.Do(refreshToken, func() (interface{}, error) {
		// Detach from the first caller's cancellation; the result is shared
		exCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.timeout)
		defer cancel()

		token, err := c.exchange(exCtx, refreshToken)
		if err != nil {
			return "", err
		}
		if err := c.store.SetAccessToken(token); err != nil {
			return "", fmt.Errorf("persisting refreshed token: %w", err)
		}
		return token, nil
	})
	if shared {
		c.logger.Debug("refresh exchange shared with concurrent request")
	}
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// exchange calls the refresh endpoint directly, bypassing Do, without
// an Authorization header
func (c *Client) exchange(ctx context.Context, refreshToken string) (string, error) {
	body, err := json.Marshal(models.RefreshRequest{RefreshToken: refreshToken})
	if err != nil {
		return "", fmt.Errorf("failed to marshal refresh request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+RefreshPath, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create refresh request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", c.handleRequestError(ctx, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", c.handleRequestError(ctx, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := newAPIError(&Request{Method: http.MethodPost, Path: RefreshPath}, resp.StatusCode, data)
		return "", fmt.Errorf("%w: %w", ErrRefreshRejected, apiErr)
	}

	var auth models.AuthResponse
	if err := json.Unmarshal(data, &auth); err != nil {
		return "", fmt.Errorf("%w: invalid refresh response: %v", ErrRefreshRejected, err)
	}
	if auth.Token == "" {
		return "", fmt.Errorf("%w: refresh response carried no token", ErrRefreshRejected)
	}
	return auth.Token, nil
}

// unrecoverable clears the session, emits one notification and, for
// protected paths, a navigation intent to the login screen
func (c *Client) unrecoverable(r *recovery) error {
	if err := c.store.Clear(); err != nil {
		c.logger.Error("failed to clear session", "error", err)
	}
	c.fireSessionCleared()

	redirect := !IsPublicPath(r.req.Path)
	c.logger.Info("session could not be refreshed",
		"path", r.req.Path,
		"redirect", redirect,
		"cause", r.cause,
	)

	c.notify(r.unauthorized.Message)
	if redirect {
		c.navigator.Navigate(Intent{
			Target: LoginRoute,
			From:   r.req.Path,
			Reason: reason(r.cause),
		})
	}

	return &SessionExpiredError{
		Path:         r.req.Path,
		Redirected:   redirect,
		Unauthorized: r.unauthorized,
		Cause:        r.cause,
	}
}

func reason(cause error) string {
	switch {
	case errors.Is(cause, ErrNoRefreshToken):
		return "not logged in"
	case errors.Is(cause, ErrTransport):
		return "could not reach the backend to refresh the session"
	default:
		return "session expired"
	}
}

// ABOUTME: Authentication service: login, register, logout and session restore
// ABOUTME: Keeps the current user in memory in sync with the session store

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/markalston/portfolio-admin/internal/client"
	"github.com/markalston/portfolio-admin/internal/models"
	"github.com/markalston/portfolio-admin/internal/session"
)

// Backend endpoints used by the service
const (
	LoginPath    = "/auth/login"
	RegisterPath = "/auth/register"
	LogoutPath   = "/auth/logout"
	MePath       = "/auth/me"
)

// RegistrationFailedMessage is used when the backend gives no usable reason
const RegistrationFailedMessage = "Registration failed. Please try again."

// ErrNotAuthenticated is returned by operations that need a restored session
var ErrNotAuthenticated = errors.New("not authenticated")

// ValidationError carries per-field messages and an optional general message
type ValidationError struct {
	Fields  map[string]string
	General string
	Err     error
}

func (e *ValidationError) Error() string {
	if e.General != "" {
		return e.General
	}
	if len(e.Fields) > 0 {
		return fmt.Sprintf("validation failed for %d field(s)", len(e.Fields))
	}
	return RegistrationFailedMessage
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Service is the single writer of credential state on behalf of the user
type Service struct {
	client *client.Client
	store  session.Store
	logger *slog.Logger

	mu          sync.RWMutex
	user        *models.User
	subscribers map[int]func(*models.User)
	nextID      int
}

// Option configures a Service
type Option func(*Service)

// WithLogger sets the structured logger
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// New creates a Service and subscribes it to session clears performed by
// the client after an unrecoverable authorization failure
func New(c *client.Client, store session.Store, opts ...Option) *Service {
	s := &Service{
		client:      c,
		store:       store,
		logger:      slog.Default(),
		subscribers: make(map[int]func(*models.User)),
	}
	for _, opt := range opts {
		opt(s)
	}
	c.OnSessionCleared(func() {
		s.logger.Debug("session cleared by client, dropping current user")
		s.setUser(nil)
	})
	return s
}

// Login authenticates and persists the returned tokens and user. On failure
// the session is left untouched.
func (s *Service) Login(ctx context.Context, usernameOrEmail, password string) (*models.User, error) {
	var resp models.AuthResponse
	req := models.LoginRequest{UsernameOrEmail: usernameOrEmail, Password: password}
	if err := s.client.Do(ctx, client.NewRequest(http.MethodPost, LoginPath, req).Anonymous(), &resp); err != nil {
		return nil, err
	}
	if err := s.establish(resp); err != nil {
		return nil, err
	}
	s.logger.Info("logged in", "username", resp.User.Username)
	return resp.User, nil
}

// Register creates an account and logs in with the returned tokens.
// Backend rejections are returned as *ValidationError.
func (s *Service) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	var resp models.AuthResponse
	if err := s.client.Do(ctx, client.NewRequest(http.MethodPost, RegisterPath, req).Anonymous(), &resp); err != nil {
		return nil, registrationError(err)
	}
	if err := s.establish(resp); err != nil {
		return nil, err
	}
	s.logger.Info("registered", "username", resp.User.Username)
	return resp.User, nil
}

// registrationError maps a failed register call onto field or general errors
func registrationError(err error) error {
	var apiErr *client.APIError
	if !errors.As(err, &apiErr) {
		return &ValidationError{General: RegistrationFailedMessage, Err: err}
	}
	if len(apiErr.Details) > 0 {
		return &ValidationError{Fields: apiErr.FieldErrors(), Err: err}
	}
	general := apiErr.Message
	if general == "" {
		general = RegistrationFailedMessage
	}
	return &ValidationError{General: general, Err: err}
}

// establish persists an auth response and publishes the user
func (s *Service) establish(resp models.AuthResponse) error {
	if resp.Token == "" || resp.User == nil {
		return fmt.Errorf("invalid authentication response: missing token or user")
	}
	err := s.store.Save(session.Session{
		AccessToken:  resp.Token,
		RefreshToken: resp.RefreshToken,
		User:         resp.User,
	})
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	s.setUser(resp.User)
	return nil
}

// Logout tells the backend best-effort, then clears local state. Calling it
// while logged out is a no-op that returns nil.
func (s *Service) Logout(ctx context.Context) error {
	sess, err := s.store.Load()
	if err != nil {
		s.logger.Warn("could not read session before logout", "error", err)
	}
	if sess.AccessToken != "" {
		if err := s.client.Do(ctx, client.NewRequest(http.MethodPost, LogoutPath, nil).BestEffort(), nil); err != nil {
			s.logger.Warn("logout request failed, clearing local session anyway", "error", err)
		}
	}

	s.setUser(nil)
	if err := s.store.Clear(); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

// Restore validates a persisted session by fetching /auth/me. Any failure
// leaves the store and in-memory state empty.
func (s *Service) Restore(ctx context.Context) (*models.User, error) {
	sess, err := s.store.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}
	if sess.AccessToken == "" {
		s.setUser(nil)
		return nil, ErrNotAuthenticated
	}

	var user models.User
	if err := s.client.Get(ctx, MePath, &user); err != nil {
		s.logger.Info("stored session is no longer valid", "error", err)
		s.setUser(nil)
		if clearErr := s.store.Clear(); clearErr != nil {
			s.logger.Error("failed to clear session", "error", clearErr)
		}
		return nil, err
	}

	// The access token may have been refreshed during the call
	current, err := s.store.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}
	current.User = &user
	if err := s.store.Save(current); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}
	s.setUser(&user)
	return &user, nil
}

// CurrentUser returns the validated user, or nil
func (s *Service) CurrentUser() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// IsAuthenticated reports whether a validated user is present
func (s *Service) IsAuthenticated() bool {
	return s.CurrentUser() != nil
}

// Subscribe registers fn to receive the user after every state change.
// The returned function removes the subscription.
func (s *Service) Subscribe(fn func(*models.User)) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subscribers[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subscribers, id)
		s.mu.Unlock()
	}
}

func (s *Service) setUser(u *models.User) {
	s.mu.Lock()
	s.user = u
	subs := make([]func(*models.User), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(u)
	}
}

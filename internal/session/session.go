// ABOUTME: Session snapshot and the Store contract that owns credential state
// ABOUTME: Includes an in-memory Store used by tests and ephemeral runs

package session

import (
	"sync"

	"github.com/markalston/portfolio-admin/internal/models"
)

// Session is the persisted authentication state. Empty strings mean absent.
type Session struct {
	AccessToken  string       `json:"access_token,omitempty"`
	RefreshToken string       `json:"refresh_token,omitempty"`
	User         *models.User `json:"user,omitempty"`
}

// IsZero reports whether no field of the session is set
func (s Session) IsZero() bool {
	return s.AccessToken == "" && s.RefreshToken == "" && s.User == nil
}

// Store is the sole owner of credential state.
//
// Save writes all three fields at once; SetAccessToken replaces only the
// access token and leaves the refresh token and user untouched. Callers never
// observe a partially written session.
type Store interface {
	Load() (Session, error)
	Save(Session) error
	SetAccessToken(token string) error
	Clear() error
}

// MemoryStore keeps the session in process memory only
type MemoryStore struct {
	mu      sync.Mutex
	current Session
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Load returns a copy of the current session
func (m *MemoryStore) Load() (Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return copySession(m.current), nil
}

// Save replaces the whole session
func (m *MemoryStore) Save(s Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = copySession(s)
	return nil
}

// SetAccessToken replaces the access token only
func (m *MemoryStore) SetAccessToken(token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current.AccessToken = token
	return nil
}

// Clear removes every field
func (m *MemoryStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = Session{}
	return nil
}

func copySession(s Session) Session {
	if s.User != nil {
		u := *s.User
		u.Roles = append(models.Roles(nil), s.User.Roles...)
		s.User = &u
	}
	return s
}

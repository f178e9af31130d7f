package store

import (
	"sync"

	"github.com/google/uuid"
	"github.com/sumerqa/chatkit/internal/collection"
	"github.com/sumerqa/chatkit/schema"
)

// Session is the authenticated state of the client: the short-lived access
// token, the longer-lived renewal token and the lazily resolved identity.
type Session struct {
	AccessToken  string           `json:"access_token,omitempty"`
	RefreshToken string           `json:"refresh_token,omitempty"`
	Identity     *schema.Identity `json:"identity,omitempty"`
}

// Empty reports whether the session carries no credential at all.
func (s Session) Empty() bool {
	return s.AccessToken == "" && s.RefreshToken == ""
}

// Listener observes session transitions; active is false after logout or a
// failed renewal.
type Listener func(session Session, active bool)

// Store is the single source of truth for the session. Set and Clear swap
// the whole session indivisibly with respect to Lookup, so a reader never
// observes a mix of old and new fields. The in-memory default is fine for
// tests; use NewFileStore to survive process restarts.
type Store interface {
	Lookup() (Session, bool)
	Set(session Session) error
	Clear() error
	// OnChange registers a listener invoked after every Set and Clear.
	// The returned func removes the registration.
	OnChange(listener Listener) func()
}

type memoryStore struct {
	mu        sync.RWMutex
	session   Session
	active    bool
	listeners *collection.SyncMap[string, Listener]
}

// NewMemoryStore creates an in-memory Store, optionally seeded with a session.
func NewMemoryStore(options ...Option) Store {
	ret := &memoryStore{listeners: collection.NewSyncMap[string, Listener]()}
	for _, opt := range options {
		opt(ret)
	}
	return ret
}

type Option func(*memoryStore)

// WithSession seeds the store with an already established session.
func WithSession(session Session) Option {
	return func(m *memoryStore) {
		m.session = session
		m.active = !session.Empty()
	}
}

func (m *memoryStore) Lookup() (Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.session, m.active
}

func (m *memoryStore) Set(session Session) error {
	m.mu.Lock()
	m.session = session
	m.active = !session.Empty()
	active := m.active
	m.mu.Unlock()
	m.notify(session, active)
	return nil
}

func (m *memoryStore) Clear() error {
	m.mu.Lock()
	m.session = Session{}
	m.active = false
	m.mu.Unlock()
	m.notify(Session{}, false)
	return nil
}

func (m *memoryStore) OnChange(listener Listener) func() {
	id := uuid.NewString()
	m.listeners.Put(id, listener)
	return func() {
		m.listeners.Delete(id)
	}
}

func (m *memoryStore) notify(session Session, active bool) {
	m.listeners.Range(func(_ string, listener Listener) bool {
		listener(session, active)
		return true
	})
}

package sdk

import "sync"

// SessionStore persists the client session between runs. The session sync,
// the request pipeline, the resolver, and sign-out all go through this
// contract, so the four persisted fields stay internally consistent.
//
// Load returns (nil, nil) when no session has been stored yet; an error is
// reserved for unreadable or malformed state.
type SessionStore interface {
	Load() (*Session, error)
	Save(session *Session) error
	Clear() error
}

// MemoryStore is an in-process SessionStore. It backs tests and short-lived
// programs that have no use for on-disk persistence.
type MemoryStore struct {
	mu      sync.Mutex
	session *Session
}

var _ SessionStore = (*MemoryStore)(nil)

// NewMemoryStore returns an empty in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Load() (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.session == nil {
		return nil, nil
	}
	copied := *m.session
	if m.session.User != nil {
		user := *m.session.User
		copied.User = &user
	}
	return &copied, nil
}

func (m *MemoryStore) Save(session *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *session
	if session.User != nil {
		user := *session.User
		copied.User = &user
	}
	m.session = &copied
	return nil
}

func (m *MemoryStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = nil
	return nil
}

package sdk

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"
)

// ProviderState is a snapshot of the identity provider at the time a sync is
// triggered. Loaded distinguishes "provider still initializing" from "user is
// signed out"; syncs are skipped entirely until the provider has loaded.
type ProviderState struct {
	Loaded   bool
	SignedIn bool
	UserID   string
	Email    string
	Name     string
}

type syncRequest struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type syncResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Token   string `json:"token"`
	User    *User  `json:"user"`
}

// Syncer exchanges identity-provider trust for a backend session. It owns all
// writes to the session store that originate from authentication state
// changes, and it is safe to invoke redundantly: calls are serialized, and a
// call that was queued behind a completed sync reuses that sync's result
// instead of issuing another network request.
type Syncer struct {
	client *Client
	store  SessionStore

	mu  sync.Mutex
	gen uint64 // bumped on every completed sync
}

// NewSyncer creates a Syncer that syncs through client and persists into store.
func NewSyncer(client *Client, store SessionStore) *Syncer {
	return &Syncer{client: client, store: store}
}

// Sync reacts to an identity-provider state change.
//
// Provider not loaded, or signed in without a primary email: skipped, no
// error. Signed out: the whole session is cleared. Signed in: the email is
// recorded immediately, then one call to the sync endpoint exchanges it for a
// backend token and user record. On success all four session fields are
// written, except that an already-chosen role is preserved when the backend
// does not report one yet. On failure only the token is cleared, so a
// stale-but-plausible role can still drive navigation until a retry succeeds.
func (s *Syncer) Sync(ctx context.Context, state ProviderState) (*Session, error) {
	if !state.Loaded {
		return nil, nil
	}
	if !state.SignedIn {
		if err := s.store.Clear(); err != nil {
			return nil, fmt.Errorf("clear session: %w", err)
		}
		return nil, nil
	}
	if state.Email == "" {
		return nil, nil
	}

	// Record the email before the network call so a concurrent 401 retry has
	// something to resynchronize with even if this sync never completes.
	s.mu.Lock()
	session := s.loadOrEmpty()
	if session.Email != state.Email {
		session.Email = state.Email
		if err := s.store.Save(session); err != nil {
			s.mu.Unlock()
			return nil, fmt.Errorf("save session: %w", err)
		}
	}
	s.mu.Unlock()

	return s.sync(ctx, state.Email, state.Name)
}

// Resync re-runs the session sync using the email already recorded in the
// store. This is the 401 recovery path: it needs no identity-provider handle,
// only the email written by a previous Sync.
func (s *Syncer) Resync(ctx context.Context) (*Session, error) {
	session, err := s.store.Load()
	if err != nil || session == nil || session.Email == "" {
		return nil, ErrNoEmail
	}
	name := ""
	if session.User != nil {
		name = session.User.Name
	}
	return s.sync(ctx, session.Email, name)
}

// SignOut clears the entire persisted session.
func (s *Syncer) SignOut() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Clear()
}

func (s *Syncer) sync(ctx context.Context, email, name string) (*Session, error) {
	entered := s.currentGen()

	s.mu.Lock()
	defer s.mu.Unlock()

	// A sync completed while this call waited for the lock; its result is at
	// most one lock-hold old and fully supersedes what this call would fetch.
	if s.gen != entered {
		return s.loadOrEmpty(), nil
	}

	req, err := s.client.newRequest(ctx, http.MethodPost, syncPath, nil, syncRequest{Email: email, Name: name})
	if err != nil {
		return nil, err
	}

	var resp syncResponse
	if err := s.client.do(req, &resp); err != nil {
		s.clearTokenOnly()
		return nil, fmt.Errorf("session sync: %w", err)
	}
	if !resp.Success || resp.Token == "" {
		s.clearTokenOnly()
		return nil, &APIError{StatusCode: http.StatusOK, Message: resp.Message}
	}

	session := s.loadOrEmpty()
	session.Token = resp.Token
	session.User = resp.User
	session.Email = email
	session.SyncedAt = time.Now()
	if resp.User != nil && resp.User.Role != "" {
		session.Role = resp.User.Role
	}
	// Otherwise keep whatever role was already chosen; the backend can lag
	// behind for freshly created accounts.

	if err := s.store.Save(session); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	s.gen++
	return session, nil
}

func (s *Syncer) currentGen() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gen
}

// loadOrEmpty reads the stored session, treating missing or unreadable state
// as a fresh session. Callers hold s.mu.
func (s *Syncer) loadOrEmpty() *Session {
	session, err := s.store.Load()
	if err != nil || session == nil {
		return &Session{}
	}
	return session
}

// clearTokenOnly drops the bearer token while preserving user, role, and
// email. Callers hold s.mu.
func (s *Syncer) clearTokenOnly() {
	session, err := s.store.Load()
	if err != nil || session == nil || session.Token == "" {
		return
	}
	session.Token = ""
	_ = s.store.Save(session)
}

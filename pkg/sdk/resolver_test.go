package sdk

import (
	"errors"
	"testing"
)

type brokenStore struct{}

func (brokenStore) Load() (*Session, error) { return nil, errors.New("corrupt session file") }
func (brokenStore) Save(*Session) error     { return nil }
func (brokenStore) Clear() error            { return nil }

func TestResolverDestinations(t *testing.T) {
	tests := []struct {
		name    string
		state   ProviderState
		session *Session
		want    Destination
	}{
		{
			name:  "provider still loading",
			state: ProviderState{Loaded: false},
			want:  DestNone,
		},
		{
			name:  "signed out",
			state: ProviderState{Loaded: true, SignedIn: false},
			want:  DestSignIn,
		},
		{
			name:    "no role and not onboarded",
			state:   ProviderState{Loaded: true, SignedIn: true, UserID: "u1"},
			session: &Session{User: &User{IsOnboarded: false}},
			want:    DestOnboarding,
		},
		{
			name:    "onboarded without role",
			state:   ProviderState{Loaded: true, SignedIn: true, UserID: "u1"},
			session: &Session{User: &User{IsOnboarded: true}},
			want:    DestDashboard,
		},
		{
			name:    "role chosen but backend not onboarded yet",
			state:   ProviderState{Loaded: true, SignedIn: true, UserID: "u1"},
			session: &Session{Role: "teacher", User: &User{IsOnboarded: false}},
			want:    DestDashboard,
		},
		{
			name:    "pending role counts as no role",
			state:   ProviderState{Loaded: true, SignedIn: true, UserID: "u1"},
			session: &Session{Role: RolePending},
			want:    DestOnboarding,
		},
		{
			name:  "empty session",
			state: ProviderState{Loaded: true, SignedIn: true, UserID: "u1"},
			want:  DestOnboarding,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewMemoryStore()
			if tt.session != nil {
				if err := store.Save(tt.session); err != nil {
					t.Fatalf("seed store: %v", err)
				}
			}
			if got := NewResolver(store).Resolve(tt.state); got != tt.want {
				t.Fatalf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestResolverFailsTowardOnboarding(t *testing.T) {
	r := NewResolver(brokenStore{})
	state := ProviderState{Loaded: true, SignedIn: true, UserID: "u1"}
	if got := r.Resolve(state); got != DestOnboarding {
		t.Fatalf("unreadable session must resolve to onboarding, got %s", got)
	}
}

func TestResolverRunsOncePerSignIn(t *testing.T) {
	store := NewMemoryStore()
	if err := store.Save(&Session{Role: "student", User: &User{IsOnboarded: true}}); err != nil {
		t.Fatalf("seed store: %v", err)
	}
	r := NewResolver(store)
	state := ProviderState{Loaded: true, SignedIn: true, UserID: "u1"}

	if got := r.Resolve(state); got != DestDashboard {
		t.Fatalf("first evaluation should navigate, got %s", got)
	}
	if got := r.Resolve(state); got != DestNone {
		t.Fatalf("repeat evaluation for the same sign-in must not navigate, got %s", got)
	}

	// Signing out resets the cycle; the next sign-in resolves again.
	if got := r.Resolve(ProviderState{Loaded: true}); got != DestSignIn {
		t.Fatalf("expected sign-in redirect, got %s", got)
	}
	if got := r.Resolve(state); got != DestDashboard {
		t.Fatalf("new sign-in cycle should navigate again, got %s", got)
	}
}

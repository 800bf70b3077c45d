package sdk

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newSyncFixture(t *testing.T, handler http.HandlerFunc) (*Syncer, *MemoryStore, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	store := NewMemoryStore()
	syncer := NewSyncer(NewClient(server.URL), store)
	return syncer, store, server
}

func signedIn(email string) ProviderState {
	return ProviderState{Loaded: true, SignedIn: true, UserID: "idp-1", Email: email}
}

func TestSyncWritesSession(t *testing.T) {
	// A successful sync populates token and role, so the resolver should
	// then pick the dashboard.
	syncer, store, _ := newSyncFixture(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/clerk-sync" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		var body struct {
			Email string `json:"email"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode sync body: %v", err)
		}
		if body.Email != "a@x.com" {
			t.Fatalf("expected email a@x.com, got %q", body.Email)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"token":   "T1",
			"user":    map[string]any{"id": "u1", "email": "a@x.com", "role": "student", "isOnboarded": true},
		})
	})

	session, err := syncer.Sync(context.Background(), signedIn("a@x.com"))
	if err != nil {
		t.Fatalf("sync failed: %v", err)
	}
	if session.Token != "T1" || session.Role != "student" {
		t.Fatalf("unexpected session: %+v", session)
	}

	stored, _ := store.Load()
	if stored.Token != "T1" || stored.Role != "student" || stored.Email != "a@x.com" {
		t.Fatalf("store not populated: %+v", stored)
	}

	if dest := NewResolver(store).Resolve(signedIn("a@x.com")); dest != DestDashboard {
		t.Fatalf("expected dashboard, got %s", dest)
	}
}

func TestSyncPreservesRole(t *testing.T) {
	// A sync response with no role must not clobber an already-chosen one.
	syncer, store, _ := newSyncFixture(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"token":   "T2",
			"user":    map[string]any{"id": "u1", "email": "a@x.com"},
		})
	})

	if err := store.Save(&Session{Role: "teacher", Email: "a@x.com"}); err != nil {
		t.Fatalf("seed store: %v", err)
	}

	if _, err := syncer.Sync(context.Background(), signedIn("a@x.com")); err != nil {
		t.Fatalf("sync failed: %v", err)
	}

	stored, _ := store.Load()
	if stored.Role != "teacher" {
		t.Fatalf("role was not preserved, got %q", stored.Role)
	}
	if stored.Token != "T2" {
		t.Fatalf("token was not superseded, got %q", stored.Token)
	}
}

func TestSyncFailureClearsTokenOnly(t *testing.T) {
	syncer, store, _ := newSyncFixture(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"down"}`, http.StatusInternalServerError)
	})

	seed := &Session{Token: "stale", Role: "teacher", Email: "a@x.com", User: &User{ID: "u1"}}
	if err := store.Save(seed); err != nil {
		t.Fatalf("seed store: %v", err)
	}

	if _, err := syncer.Sync(context.Background(), signedIn("a@x.com")); err == nil {
		t.Fatal("expected sync error")
	}

	stored, _ := store.Load()
	if stored.Token != "" {
		t.Fatalf("token should be cleared, got %q", stored.Token)
	}
	if stored.Role != "teacher" || stored.User == nil || stored.Email != "a@x.com" {
		t.Fatalf("user/role/email should survive a failed sync: %+v", stored)
	}
}

func TestSyncSkipsWhenProviderNotReady(t *testing.T) {
	calls := 0
	syncer, _, _ := newSyncFixture(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
	})

	cases := []ProviderState{
		{Loaded: false, SignedIn: true, Email: "a@x.com"},
		{Loaded: true, SignedIn: true, Email: ""},
	}
	for _, state := range cases {
		session, err := syncer.Sync(context.Background(), state)
		if err != nil || session != nil {
			t.Fatalf("expected silent skip for %+v, got (%v, %v)", state, session, err)
		}
	}
	if calls != 0 {
		t.Fatalf("sync endpoint should not have been called, got %d calls", calls)
	}
}

func TestSignedOutClearsEverything(t *testing.T) {
	// Signing out drops token, user, and role together.
	syncer, store, _ := newSyncFixture(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no network call expected")
	})

	seed := &Session{Token: "T1", Role: "student", Email: "a@x.com", User: &User{ID: "u1"}}
	if err := store.Save(seed); err != nil {
		t.Fatalf("seed store: %v", err)
	}

	if _, err := syncer.Sync(context.Background(), ProviderState{Loaded: true, SignedIn: false}); err != nil {
		t.Fatalf("signed-out sync failed: %v", err)
	}

	stored, err := store.Load()
	if err != nil {
		t.Fatalf("load after clear: %v", err)
	}
	if stored != nil {
		t.Fatalf("session should be empty after sign-out, got %+v", stored)
	}
}

func TestSyncRecordsEmailBeforeNetworkCall(t *testing.T) {
	syncer, store, _ := newSyncFixture(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"down"}`, http.StatusBadGateway)
	})

	_, _ = syncer.Sync(context.Background(), signedIn("a@x.com"))

	stored, _ := store.Load()
	if stored == nil || stored.Email != "a@x.com" {
		t.Fatalf("email must be recorded even when the sync call fails: %+v", stored)
	}
}

func TestResyncWithoutEmail(t *testing.T) {
	syncer, _, _ := newSyncFixture(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no network call expected")
	})

	if _, err := syncer.Resync(context.Background()); err != ErrNoEmail {
		t.Fatalf("expected ErrNoEmail, got %v", err)
	}
}

package sdk

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

// pipelineFixture wires a store, syncer, and authenticated client against a
// test server whose behavior each test controls per path.
type pipelineFixture struct {
	store   *MemoryStore
	client  *Client
	server  *httptest.Server
	mux     *http.ServeMux
	netErrs atomic.Int32
}

func newPipelineFixture(t *testing.T) *pipelineFixture {
	t.Helper()
	f := &pipelineFixture{
		store: NewMemoryStore(),
		mux:   http.NewServeMux(),
	}
	f.server = httptest.NewServer(f.mux)
	t.Cleanup(f.server.Close)

	syncer := NewSyncer(NewClient(f.server.URL), f.store)
	httpClient := NewAuthenticatedHTTPClient(f.store, syncer, func(_ *http.Request, _ error) {
		f.netErrs.Add(1)
	})
	f.client = NewClient(f.server.URL, WithHTTPClient(httpClient))
	return f
}

func TestTokenAttachment(t *testing.T) {
	// Requests carry the current token, exactly as stored.
	f := newPipelineFixture(t)
	if err := f.store.Save(&Session{Token: "abc123", Email: "a@x.com"}); err != nil {
		t.Fatalf("seed store: %v", err)
	}

	var got string
	f.mux.HandleFunc("/gigs", func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(map[string]any{"success": true, "data": []any{}})
	})

	if _, _, err := f.client.ListGigs(context.Background(), ListGigsInput{}); err != nil {
		t.Fatalf("list gigs: %v", err)
	}
	if got != "Bearer abc123" {
		t.Fatalf("expected Bearer abc123, got %q", got)
	}
}

func TestUnauthenticatedWithoutToken(t *testing.T) {
	f := newPipelineFixture(t)

	var got string
	f.mux.HandleFunc("/gigs", func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(map[string]any{"success": true, "data": []any{}})
	})

	if _, _, err := f.client.ListGigs(context.Background(), ListGigsInput{}); err != nil {
		t.Fatalf("list gigs: %v", err)
	}
	if got != "" {
		t.Fatalf("expected no Authorization header, got %q", got)
	}
}

func TestRetryAfterResync(t *testing.T) {
	// /bookings 401s once, resync yields T2, and the retried request
	// carries T2 so its response reaches the caller.
	f := newPipelineFixture(t)
	if err := f.store.Save(&Session{Token: "T1", Email: "a@x.com"}); err != nil {
		t.Fatalf("seed store: %v", err)
	}

	var syncCalls, bookingCalls atomic.Int32
	f.mux.HandleFunc("/auth/clerk-sync", func(w http.ResponseWriter, r *http.Request) {
		syncCalls.Add(1)
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"token":   "T2",
			"user":    map[string]any{"id": "u1", "email": "a@x.com", "role": "student"},
		})
	})
	f.mux.HandleFunc("/bookings", func(w http.ResponseWriter, r *http.Request) {
		if bookingCalls.Add(1) == 1 {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer T2" {
			t.Fatalf("retry should carry the fresh token, got %q", auth)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data":    []map[string]any{{"id": "b1", "status": "pending"}},
		})
	})

	bookings, err := f.client.MyBookings(context.Background())
	if err != nil {
		t.Fatalf("bookings after retry: %v", err)
	}
	if len(bookings) != 1 || bookings[0].ID != "b1" {
		t.Fatalf("unexpected bookings: %+v", bookings)
	}
	if syncCalls.Load() != 1 || bookingCalls.Load() != 2 {
		t.Fatalf("expected 1 sync and 2 booking calls, got %d and %d", syncCalls.Load(), bookingCalls.Load())
	}
}

func TestNoDoubleRetry(t *testing.T) {
	// A request that keeps 401ing gets exactly one resync and one retry.
	f := newPipelineFixture(t)
	if err := f.store.Save(&Session{Token: "T1", Email: "a@x.com"}); err != nil {
		t.Fatalf("seed store: %v", err)
	}

	var syncCalls, bookingCalls atomic.Int32
	f.mux.HandleFunc("/auth/clerk-sync", func(w http.ResponseWriter, r *http.Request) {
		syncCalls.Add(1)
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"token":   "T2",
			"user":    map[string]any{"id": "u1", "email": "a@x.com"},
		})
	})
	f.mux.HandleFunc("/bookings", func(w http.ResponseWriter, r *http.Request) {
		bookingCalls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := f.client.MyBookings(context.Background())
	if !IsUnauthorized(err) {
		t.Fatalf("expected 401 to surface, got %v", err)
	}
	if syncCalls.Load() != 1 {
		t.Fatalf("expected exactly 1 resync, got %d", syncCalls.Load())
	}
	if bookingCalls.Load() != 2 {
		t.Fatalf("expected exactly 2 booking attempts, got %d", bookingCalls.Load())
	}
}

func TestNoRetryWithoutEmail(t *testing.T) {
	f := newPipelineFixture(t)
	if err := f.store.Save(&Session{Token: "T1"}); err != nil {
		t.Fatalf("seed store: %v", err)
	}

	var syncCalls atomic.Int32
	f.mux.HandleFunc("/auth/clerk-sync", func(w http.ResponseWriter, r *http.Request) {
		syncCalls.Add(1)
	})
	f.mux.HandleFunc("/bookings", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := f.client.MyBookings(context.Background())
	if !IsUnauthorized(err) {
		t.Fatalf("expected original 401, got %v", err)
	}
	if syncCalls.Load() != 0 {
		t.Fatalf("no email stored, resync should not run; got %d calls", syncCalls.Load())
	}
}

func TestSyncEndpointNeverRetried(t *testing.T) {
	f := newPipelineFixture(t)
	if err := f.store.Save(&Session{Token: "T1", Email: "a@x.com"}); err != nil {
		t.Fatalf("seed store: %v", err)
	}

	var syncCalls atomic.Int32
	f.mux.HandleFunc("/auth/clerk-sync", func(w http.ResponseWriter, r *http.Request) {
		syncCalls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	})

	if _, err := f.client.ClerkSync(context.Background(), "a@x.com", ""); !IsUnauthorized(err) {
		t.Fatalf("expected 401 from sync endpoint, got %v", err)
	}
	if syncCalls.Load() != 1 {
		t.Fatalf("sync endpoint must not loop on itself, got %d calls", syncCalls.Load())
	}
}

func TestAuthEndpointsSentUnauthenticated(t *testing.T) {
	f := newPipelineFixture(t)
	if err := f.store.Save(&Session{Token: "T1", Email: "a@x.com"}); err != nil {
		t.Fatalf("seed store: %v", err)
	}

	var got string
	f.mux.HandleFunc("/auth/clerk-sync", func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(map[string]any{"success": true, "token": "T1", "user": map[string]any{"id": "u1"}})
	})

	if _, err := f.client.ClerkSync(context.Background(), "a@x.com", ""); err != nil {
		t.Fatalf("clerk sync: %v", err)
	}
	if got != "" {
		t.Fatalf("auth endpoints must not carry bearer tokens, got %q", got)
	}
}

func TestConnectivityFailureNotRetried(t *testing.T) {
	f := newPipelineFixture(t)
	if err := f.store.Save(&Session{Token: "T1", Email: "a@x.com"}); err != nil {
		t.Fatalf("seed store: %v", err)
	}
	// Point at a closed server so every request fails with no response.
	f.server.Close()

	_, err := f.client.MyBookings(context.Background())
	if !IsNetworkUnreachable(err) {
		t.Fatalf("expected network-unreachable classification, got %v", err)
	}
	if f.netErrs.Load() == 0 {
		t.Fatal("network error notifier was not invoked")
	}
}

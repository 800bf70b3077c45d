package sdk

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSelectRoleConfirmedAck(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/auth/update-my-role" {
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var body struct {
			Email string `json:"email"`
			Role  string `json:"role"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"user":    map[string]any{"id": "u1", "email": body.Email, "role": body.Role},
		})
	}))
	defer server.Close()

	store := NewMemoryStore()
	client := NewClient(server.URL)

	user, err := SelectRole(context.Background(), client, store, "a@x.com", "teacher")
	if err != nil {
		t.Fatalf("select role: %v", err)
	}
	if user.Role != "teacher" {
		t.Fatalf("unexpected user: %+v", user)
	}

	stored, _ := store.Load()
	if stored.Role != "teacher" {
		t.Fatalf("role should be stored after backend ack, got %q", stored.Role)
	}
}

func TestSelectRoleAckWithoutUser(t *testing.T) {
	// A backend that confirms the change without echoing the user record
	// still commits the role; callers must tolerate the nil user.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"success": true})
	}))
	defer server.Close()

	store := NewMemoryStore()
	user, err := SelectRole(context.Background(), NewClient(server.URL), store, "a@x.com", "teacher")
	if err != nil {
		t.Fatalf("select role: %v", err)
	}
	if user != nil {
		t.Fatalf("no user payload should yield nil, got %+v", user)
	}

	stored, _ := store.Load()
	if stored.Role != "teacher" || stored.Email != "a@x.com" {
		t.Fatalf("confirmed role should be stored, got %+v", stored)
	}
}

func TestSelectRoleBackendRejection(t *testing.T) {
	// A success:false payload surfaces its message and leaves the
	// store untouched.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"success": false,
			"message": "role changes are locked for this account",
		})
	}))
	defer server.Close()

	store := NewMemoryStore()
	if err := store.Save(&Session{Email: "a@x.com", Role: "student"}); err != nil {
		t.Fatalf("seed store: %v", err)
	}

	_, err := SelectRole(context.Background(), NewClient(server.URL), store, "a@x.com", "teacher")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.Message != "role changes are locked for this account" {
		t.Fatalf("backend message should surface, got %q", apiErr.Message)
	}

	stored, _ := store.Load()
	if stored.Role != "student" {
		t.Fatalf("store must not mutate on rejection, got role %q", stored.Role)
	}
}

func TestUpdateRoleRejectsUnknownRole(t *testing.T) {
	client := NewClient("http://unused")
	if _, err := client.UpdateRole(context.Background(), "a@x.com", "superuser"); err == nil {
		t.Fatal("expected validation error for unknown role")
	}
}

func TestLoginSurfacesBackendMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]any{"success": false, "message": "Invalid credentials"})
	}))
	defer server.Close()

	_, err := NewClient(server.URL).Login(context.Background(), "a@x.com", "nope")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusUnauthorized || apiErr.Message != "Invalid credentials" {
		t.Fatalf("unexpected error: %+v", apiErr)
	}
}

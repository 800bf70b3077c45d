package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsPublicRoute(t *testing.T) {
	tests := []struct {
		method string
		path   string
		public bool
	}{
		{"GET", "/api/health", true},
		{"POST", "/api/auth/clerk-sync", true},
		{"POST", "/api/auth/login", true},
		{"PUT", "/api/auth/update-my-role", true},
		{"GET", "/api/payments/gateway/tran-123", true},
		{"GET", "/api/gigs", true},
		{"GET", "/api/gigs/abc/reviews", true},
		{"OPTIONS", "/api/bookings", true},

		{"POST", "/api/gigs", false},
		{"GET", "/api/users/me", false},
		{"GET", "/api/bookings", false},
		{"POST", "/api/payments/init", false},
		{"GET", "/api/wallet/balance", false},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(tt.method, tt.path, nil)
		assert.Equal(t, tt.public, IsPublicRoute(req), "%s %s", tt.method, tt.path)
	}
}

func TestBearerToken(t *testing.T) {
	newReq := func(header string) *http.Request {
		req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		return req
	}

	assert.Equal(t, "abc123", BearerToken(newReq("Bearer abc123")))
	assert.Equal(t, "abc123", BearerToken(newReq("bearer abc123")), "scheme is case-insensitive")
	assert.Equal(t, "", BearerToken(newReq("")))
	assert.Equal(t, "", BearerToken(newReq("Basic dXNlcjpwYXNz")))
	assert.Equal(t, "", BearerToken(newReq("Bearer")))
}

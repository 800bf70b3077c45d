package client

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/educonnect/educonnect/pkg/sdk"
)

func healthServer(t *testing.T, authEnabled bool) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			http.NotFound(w, r)
			return
		}
		fmt.Fprintf(w, `{"status":"ok","auth_enabled":%t}`, authEnabled)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestHTTPClientAuthEnabled(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	srv := healthServer(t, true)

	p := NewProvider(srv.URL, "", "")
	cli, err := p.HTTPClient(context.Background())
	if err != nil {
		t.Fatalf("HTTPClient: %v", err)
	}

	transport, ok := cli.Transport.(*sdk.AuthTransport)
	if !ok {
		t.Fatalf("expected an AuthTransport, got %T", cli.Transport)
	}
	if transport.Store == nil || transport.Syncer == nil {
		t.Fatal("transport is missing its store or syncer")
	}
	if transport.OnNetworkError == nil {
		t.Fatal("transport has no network error callback")
	}
	// The callback must tolerate being invoked with request context.
	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/api/users/me", nil)
	transport.OnNetworkError(req, fmt.Errorf("dial tcp: connection refused"))
}

func TestHTTPClientAuthDisabled(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	srv := healthServer(t, false)

	p := NewProvider(srv.URL, "", "")
	cli, err := p.HTTPClient(context.Background())
	if err != nil {
		t.Fatalf("HTTPClient: %v", err)
	}
	if cli != http.DefaultClient {
		t.Fatalf("auth-disabled backend should get the default client, got %T", cli.Transport)
	}
}

func TestHTTPClientBearerTokenOverride(t *testing.T) {
	p := NewProvider("http://example.invalid", "", "")
	p.SetBearerToken("T1")

	cli, err := p.HTTPClient(context.Background())
	if err != nil {
		t.Fatalf("HTTPClient: %v", err)
	}
	// An injected token skips the health probe entirely.
	if cli == http.DefaultClient {
		t.Fatal("bearer token override should build a dedicated client")
	}
}

package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/educonnect/educonnect/cmd/eductl/internal/auth"
	"github.com/educonnect/educonnect/pkg/sdk"
	"github.com/pterm/pterm"
	"golang.org/x/oauth2"
)

// Provider yields the session store, syncer and authenticated clients the
// eductl commands share. Everything is built lazily so commands that never
// touch the network (help, completion) pay nothing.
type Provider struct {
	serverURL   string
	issuer      string
	clientID    string
	bearerToken string // ephemeral token that bypasses the session store (for testing)

	storeOnce sync.Once
	store     sdk.SessionStore
	storeErr  error

	syncerOnce sync.Once
	syncer     *sdk.Syncer

	httpOnce sync.Once
	httpCli  *http.Client
	httpErr  error

	sdkOnce   sync.Once
	sdkClient *sdk.Client
	sdkErr    error

	authOnce     sync.Once
	authEnabled  bool
	authErr      error
	authWarnOnce sync.Once
}

// NewProvider constructs a new Provider bound to the given server URL.
func NewProvider(serverURL, issuer, clientID string) *Provider {
	return &Provider{serverURL: serverURL, issuer: issuer, clientID: clientID}
}

// SetBearerToken injects an ephemeral bearer token for testing (bypasses the session store).
func (p *Provider) SetBearerToken(token string) {
	p.bearerToken = token
}

// ServerURL reports the backend base URL this provider is bound to.
func (p *Provider) ServerURL() string { return p.serverURL }

// Issuer reports the identity provider issuer URL, empty when none is configured.
func (p *Provider) Issuer() string { return p.issuer }

// ClientID reports the OAuth client id used for device-code login.
func (p *Provider) ClientID() string { return p.clientID }

// IsAuthEnabled probes the server once to learn whether it verifies tokens.
func (p *Provider) IsAuthEnabled(ctx context.Context) (bool, error) {
	return p.authStatus(ctx)
}

// Store returns the on-disk session store at ~/.educonnect/session.json.
func (p *Provider) Store() (sdk.SessionStore, error) {
	p.storeOnce.Do(func() {
		p.store, p.storeErr = auth.NewFileStore()
	})
	return p.store, p.storeErr
}

// Syncer returns the backend session syncer wired to the store. The SDK
// client it uses carries no auth transport: the sync endpoint itself is
// always called without a bearer token.
func (p *Provider) Syncer() (*sdk.Syncer, error) {
	store, err := p.Store()
	if err != nil {
		return nil, err
	}
	p.syncerOnce.Do(func() {
		p.syncer = sdk.NewSyncer(sdk.NewClient(p.serverURL), store)
	})
	return p.syncer, nil
}

// HTTPClient returns an http.Client configured for the server's auth mode.
// When auth is disabled, http.DefaultClient is returned alongside a warning.
func (p *Provider) HTTPClient(ctx context.Context) (*http.Client, error) {
	p.httpOnce.Do(func() {
		// Priority 1: ephemeral bearer token (for testing/CI)
		if p.bearerToken != "" {
			token := &oauth2.Token{
				AccessToken: p.bearerToken,
				TokenType:   "Bearer",
			}
			source := oauth2.StaticTokenSource(token)
			p.httpCli = oauth2.NewClient(context.Background(), source)
			return
		}

		ctx, cancel := ensureTimeout(ctx, 5*time.Second)
		defer cancel()

		enabled, err := p.authStatus(ctx)
		if err != nil {
			p.httpErr = fmt.Errorf("unable to determine authentication mode: %w", err)
			return
		}

		if !enabled {
			p.authWarnOnce.Do(func() {
				pterm.Warning.Printf("Authentication disabled for %s; proceeding without a session.\n", p.serverURL)
			})
			p.httpCli = http.DefaultClient
			return
		}

		store, err := p.Store()
		if err != nil {
			p.httpErr = err
			return
		}
		syncer, err := p.Syncer()
		if err != nil {
			p.httpErr = err
			return
		}

		p.httpCli = sdk.NewAuthenticatedHTTPClient(store, syncer, func(_ *http.Request, err error) {
			pterm.Warning.Printf("Backend unreachable: %v\n", err)
		})
	})

	if p.httpErr != nil {
		return nil, p.httpErr
	}

	return p.httpCli, nil
}

// SDKClient returns an SDK client backed by HTTPClient.
func (p *Provider) SDKClient(ctx context.Context) (*sdk.Client, error) {
	p.sdkOnce.Do(func() {
		httpClient, err := p.HTTPClient(ctx)
		if err != nil {
			p.sdkErr = err
			return
		}

		p.sdkClient = sdk.NewClient(p.serverURL, sdk.WithHTTPClient(httpClient))
	})

	if p.sdkErr != nil {
		return nil, p.sdkErr
	}

	return p.sdkClient, nil
}

// authStatus probes the /health endpoint once to determine if the backend
// enforces authentication.
func (p *Provider) authStatus(ctx context.Context) (bool, error) {
	p.authOnce.Do(func() {
		ctx, cancel := ensureTimeout(ctx, 3*time.Second)
		defer cancel()

		healthURL, err := url.JoinPath(p.serverURL, "/health")
		if err != nil {
			p.authErr = fmt.Errorf("invalid server URL: %w", err)
			return
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, healthURL, nil)
		if err != nil {
			p.authErr = fmt.Errorf("failed to build health request: %w", err)
			return
		}

		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			p.authErr = fmt.Errorf("health request failed: %w", err)
			return
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			p.authErr = fmt.Errorf("health endpoint returned %s", resp.Status)
			return
		}

		var payload struct {
			AuthEnabled bool `json:"auth_enabled"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
			p.authErr = fmt.Errorf("failed to decode health response: %w", err)
			return
		}

		p.authEnabled = payload.AuthEnabled
	})

	return p.authEnabled, p.authErr
}

func ensureTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}

	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}

	ctxWithTimeout, cancel := context.WithTimeout(ctx, timeout)
	return ctxWithTimeout, cancel
}

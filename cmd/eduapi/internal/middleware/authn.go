package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/educonnect/educonnect/cmd/eduapi/internal/auth"
	"github.com/educonnect/educonnect/cmd/eduapi/internal/repository"
)

// principalCacheSize bounds the token→principal cache. Entries are tiny;
// this comfortably covers every active session in a deployment this size.
const principalCacheSize = 4096

// principalCacheTTL caps how long a cached principal is served before the
// database is consulted again, so role changes propagate without re-login.
const principalCacheTTL = time.Minute

type cachedPrincipal struct {
	principal auth.Principal
	cachedAt  time.Time
}

// Authenticator verifies bearer tokens and resolves them to principals,
// caching resolutions keyed by token hash.
type Authenticator struct {
	issuer *auth.TokenIssuer
	users  repository.UserRepository
	cache  *lru.Cache[string, cachedPrincipal]
}

// NewAuthenticator wires token verification to the user store.
func NewAuthenticator(issuer *auth.TokenIssuer, users repository.UserRepository) (*Authenticator, error) {
	cache, err := lru.New[string, cachedPrincipal](principalCacheSize)
	if err != nil {
		return nil, err
	}
	return &Authenticator{issuer: issuer, users: users, cache: cache}, nil
}

// Authenticate resolves a raw bearer token to a principal. The role comes
// from the users table, not the token, so a role change takes effect on the
// next request instead of at token expiry.
func (a *Authenticator) Authenticate(ctx context.Context, token string) (auth.Principal, error) {
	key := auth.HashToken(token)
	if entry, ok := a.cache.Get(key); ok && time.Since(entry.cachedAt) < principalCacheTTL {
		return entry.principal, nil
	}

	claims, err := a.issuer.Verify(token)
	if err != nil {
		return auth.Principal{}, err
	}

	user, err := a.users.GetByID(ctx, claims.Subject)
	if err != nil {
		return auth.Principal{}, err
	}

	principal := auth.Principal{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
	}
	a.cache.Add(key, cachedPrincipal{principal: principal, cachedAt: time.Now()})
	return principal, nil
}

// Invalidate drops any cached resolution for the token. Called after role
// updates so the change is visible immediately to the same session.
func (a *Authenticator) Invalidate(token string) {
	a.cache.Remove(auth.HashToken(token))
}

// IsPublicRoute reports whether the request may proceed without a bearer
// token: health and auth endpoints always, plus marketplace reads.
func IsPublicRoute(r *http.Request) bool {
	if r.Method == http.MethodOptions {
		return true
	}

	path := r.URL.Path
	for _, prefix := range []string{"/api/health", "/api/auth/", "/api/payments/gateway/"} {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}

	// Browsing gigs and reviews requires no account.
	if r.Method == http.MethodGet && strings.HasPrefix(path, "/api/gigs") {
		return true
	}

	return false
}

// Authn returns middleware that authenticates bearer tokens and stores the
// principal on the request context. Public routes pass through; everything
// else without a valid token gets 401.
func Authn(authenticator *Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := BearerToken(r)
			if token == "" {
				if IsPublicRoute(r) {
					next.ServeHTTP(w, r)
					return
				}
				writeError(w, http.StatusUnauthorized, "authentication required")
				return
			}

			principal, err := authenticator.Authenticate(r.Context(), token)
			if err != nil {
				if IsPublicRoute(r) {
					// A stale token on a public route is not an error.
					next.ServeHTTP(w, r)
					return
				}
				writeError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.SetPrincipal(r.Context(), principal)))
		})
	}
}

// BearerToken extracts the bearer credential from the Authorization header,
// or returns an empty string when none is present.
func BearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}

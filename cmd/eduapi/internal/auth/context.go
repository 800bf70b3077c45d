package auth

import "context"

// Principal captures identity metadata propagated through the request context.
type Principal struct {
	// UserID references the backing users row.
	UserID string
	// Email is the account email the token was issued for.
	Email string
	// Role is the effective role at authentication time (refreshed from the
	// database, not trusted from the token).
	Role string
}

type principalContextKey struct{}

// SetPrincipal stores the authenticated principal on the context for downstream consumers.
func SetPrincipal(ctx context.Context, principal Principal) context.Context {
	return context.WithValue(ctx, principalContextKey{}, principal)
}

// PrincipalFromContext retrieves the authenticated principal from the context.
func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	principal, ok := ctx.Value(principalContextKey{}).(Principal)
	return principal, ok
}

package middleware

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/casbin/casbin/v2"

	"github.com/educonnect/educonnect/cmd/eduapi/internal/auth"
	"github.com/educonnect/educonnect/cmd/eduapi/internal/db/models"
)

// Authz returns middleware that checks the principal's role against the
// route policy table. It must run after Authn; requests that passed Authn
// without a principal are public routes and skip enforcement.
func Authz(enforcer casbin.IEnforcer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Public routes skip enforcement even for signed-in callers;
			// a valid token must not make /auth/ or health less reachable.
			if IsPublicRoute(r) {
				next.ServeHTTP(w, r)
				return
			}

			principal, ok := auth.PrincipalFromContext(r.Context())
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			role := principal.Role
			if role == "" {
				role = models.RolePending
			}

			allowed, err := enforcer.Enforce(role, r.URL.Path, r.Method)
			if err != nil {
				log.Printf("authz: enforce failed for %s %s: %v", r.Method, r.URL.Path, err)
				writeError(w, http.StatusInternalServerError, "authorization check failed")
				return
			}
			if !allowed {
				writeError(w, http.StatusForbidden, "your role does not allow this action")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// writeError emits the API's JSON error envelope. Kept here so the
// middleware package does not depend on the handler package.
func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success": false,
		"message": message,
	})
}

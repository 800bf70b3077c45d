package server

import (
	"net/http"

	"github.com/educonnect/educonnect/cmd/eduapi/internal/auth"
)

// handleMe returns the backend's view of the authenticated user.
func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	user, err := s.Users.GetByID(r.Context(), principal.UserID)
	if err != nil {
		respondRepoError(w, err)
		return
	}
	respondData(w, http.StatusOK, toUserView(user))
}

// handleUpdateMe updates the caller's profile. Completing the profile is what
// flips isOnboarded.
func (s *Server) handleUpdateMe(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var body struct {
		Name        string `json:"name"`
		Bio         string `json:"bio"`
		IsOnboarded *bool  `json:"isOnboarded"`
	}
	if !decodeBody(w, r, &body) {
		return
	}

	user, err := s.Users.GetByID(r.Context(), principal.UserID)
	if err != nil {
		respondRepoError(w, err)
		return
	}

	if body.Name != "" {
		user.Name = body.Name
	}
	if body.Bio != "" {
		user.Bio = body.Bio
	}
	if body.IsOnboarded != nil {
		user.IsOnboarded = *body.IsOnboarded
	}

	if err := s.Users.Update(r.Context(), user); err != nil {
		respondRepoError(w, err)
		return
	}
	respondData(w, http.StatusOK, toUserView(user))
}

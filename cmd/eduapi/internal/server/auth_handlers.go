package server

import (
	"log"
	"net/http"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/educonnect/educonnect/cmd/eduapi/internal/auth"
	"github.com/educonnect/educonnect/cmd/eduapi/internal/db/models"
)

// issueToken signs a bearer token for the user, or returns "" when the
// server runs with authentication disabled.
func (s *Server) issueToken(user *models.User) (string, error) {
	if s.Issuer == nil {
		return "", nil
	}
	return s.Issuer.Issue(user)
}

func validSelectableRole(role string) bool {
	return role == models.RoleStudent || role == models.RoleTeacher
}

// handleClerkSync exchanges an identity-provider-verified email for a backend
// token and user record, creating the account on first contact.
func (s *Server) handleClerkSync(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if !decodeBody(w, r, &body) {
		return
	}

	body.Email = strings.ToLower(strings.TrimSpace(body.Email))
	if body.Email == "" {
		respondError(w, http.StatusBadRequest, "email is required")
		return
	}

	user, err := s.Users.UpsertByEmail(r.Context(), body.Email, body.Name)
	if err != nil {
		respondRepoError(w, err)
		return
	}

	token, err := s.issueToken(user)
	if err != nil {
		log.Printf("clerk-sync: issue token for %s: %v", user.Email, err)
		respondError(w, http.StatusInternalServerError, "failed to issue token")
		return
	}

	if err := s.Users.UpdateLastLogin(r.Context(), user.ID); err != nil {
		log.Printf("clerk-sync: update last login for %s: %v", user.Email, err)
	}

	writeJSON(w, http.StatusOK, envelope{
		"success": true,
		"token":   token,
		"user":    toUserView(user),
	})
}

// handleUpdateMyRole sets the account's role from the closed student/teacher
// set. Choosing a role completes onboarding. onRoleChange lets the serve
// command drop cached principals so the change is visible immediately.
func (s *Server) handleUpdateMyRole(onRoleChange func(r *http.Request)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Email string `json:"email"`
			Role  string `json:"role"`
		}
		if !decodeBody(w, r, &body) {
			return
		}

		if !validSelectableRole(body.Role) {
			respondError(w, http.StatusBadRequest, "role must be student or teacher")
			return
		}

		body.Email = strings.ToLower(strings.TrimSpace(body.Email))
		if body.Email == "" {
			respondError(w, http.StatusBadRequest, "email is required")
			return
		}

		// A signed-in caller may only change their own role.
		if principal, ok := auth.PrincipalFromContext(r.Context()); ok && principal.Email != body.Email {
			respondError(w, http.StatusForbidden, "cannot change another account's role")
			return
		}

		user, err := s.Users.GetByEmail(r.Context(), body.Email)
		if err != nil {
			respondRepoError(w, err)
			return
		}

		user.Role = body.Role
		user.IsOnboarded = true
		if err := s.Users.Update(r.Context(), user); err != nil {
			respondRepoError(w, err)
			return
		}

		if onRoleChange != nil {
			onRoleChange(r)
		}

		writeJSON(w, http.StatusOK, envelope{
			"success": true,
			"user":    toUserView(user),
		})
	}
}

// handleRegister creates a password-based account and returns an issued session.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}
	if !decodeBody(w, r, &body) {
		return
	}

	body.Email = strings.ToLower(strings.TrimSpace(body.Email))
	if body.Email == "" || body.Password == "" {
		respondError(w, http.StatusBadRequest, "email and password are required")
		return
	}
	if len(body.Password) < 8 {
		respondError(w, http.StatusBadRequest, "password must be at least 8 characters")
		return
	}
	role := body.Role
	if role == "" {
		role = models.RoleStudent
	}
	if !validSelectableRole(role) {
		respondError(w, http.StatusBadRequest, "role must be student or teacher")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to hash password")
		return
	}
	hashStr := string(hash)

	now := time.Now()
	user := &models.User{
		Email:        body.Email,
		Name:         body.Name,
		Role:         role,
		IsOnboarded:  true,
		PasswordHash: &hashStr,
		LastLoginAt:  &now,
	}
	if err := s.Users.Create(r.Context(), user); err != nil {
		// Unique email constraint is the common failure here.
		respondError(w, http.StatusConflict, "an account with this email already exists")
		return
	}

	token, err := s.issueToken(user)
	if err != nil {
		log.Printf("register: issue token for %s: %v", user.Email, err)
		respondError(w, http.StatusInternalServerError, "failed to issue token")
		return
	}

	writeJSON(w, http.StatusCreated, envelope{
		"success": true,
		"token":   token,
		"user":    toUserView(user),
	})
}

// handleLogin authenticates a password-based account.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !decodeBody(w, r, &body) {
		return
	}

	body.Email = strings.ToLower(strings.TrimSpace(body.Email))

	user, err := s.Users.GetByEmail(r.Context(), body.Email)
	if err != nil || user.PasswordHash == nil {
		// Same answer for unknown account and wrong password.
		respondError(w, http.StatusUnauthorized, "invalid email or password")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(body.Password)); err != nil {
		respondError(w, http.StatusUnauthorized, "invalid email or password")
		return
	}

	token, err := s.issueToken(user)
	if err != nil {
		log.Printf("login: issue token for %s: %v", user.Email, err)
		respondError(w, http.StatusInternalServerError, "failed to issue token")
		return
	}

	if err := s.Users.UpdateLastLogin(r.Context(), user.ID); err != nil {
		log.Printf("login: update last login for %s: %v", user.Email, err)
	}

	writeJSON(w, http.StatusOK, envelope{
		"success": true,
		"token":   token,
		"user":    toUserView(user),
	})
}

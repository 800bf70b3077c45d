package sdk

import (
	"context"
	"fmt"
	"net/http"
)

// AuthResult is a backend-issued session: a bearer token plus the user record
// it belongs to.
type AuthResult struct {
	Token string
	User  *User
}

type authResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Token   string `json:"token"`
	User    *User  `json:"user"`
}

// ClerkSync exchanges an identity-provider-verified email for a backend token
// and user record. Most callers want Syncer.Sync, which also maintains the
// session store; this is the raw endpoint call.
func (c *Client) ClerkSync(ctx context.Context, email, name string) (*AuthResult, error) {
	req, err := c.newRequest(ctx, http.MethodPost, syncPath, nil, syncRequest{Email: email, Name: name})
	if err != nil {
		return nil, err
	}
	var resp authResponse
	if err := c.do(req, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, &APIError{StatusCode: http.StatusOK, Message: resp.Message}
	}
	return &AuthResult{Token: resp.Token, User: resp.User}, nil
}

// UpdateRole sets the role for the account identified by email. The role must
// be one of SelectableRoles; a backend "success: false" payload is returned
// as an *APIError.
func (c *Client) UpdateRole(ctx context.Context, email, role string) (*User, error) {
	if !ValidRole(role) {
		return nil, fmt.Errorf("invalid role %q", role)
	}
	body := struct {
		Email string `json:"email"`
		Role  string `json:"role"`
	}{Email: email, Role: role}

	req, err := c.newRequest(ctx, http.MethodPut, "/auth/update-my-role", nil, body)
	if err != nil {
		return nil, err
	}
	var resp authResponse
	if err := c.do(req, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, &APIError{StatusCode: http.StatusOK, Message: resp.Message}
	}
	return resp.User, nil
}

// SelectRole runs the explicit role-selection flow: it asks the backend to
// update the role and writes the role into the session store only after the
// backend confirms. A failed or unacknowledged update leaves the store
// untouched so the UI never shows an optimistic role the backend rejected.
func SelectRole(ctx context.Context, client *Client, store SessionStore, email, role string) (*User, error) {
	user, err := client.UpdateRole(ctx, email, role)
	if err != nil {
		return nil, err
	}

	session, loadErr := store.Load()
	if loadErr != nil || session == nil {
		session = &Session{Email: email}
	}
	session.Role = role
	if user != nil {
		session.User = user
	}
	if err := store.Save(session); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return user, nil
}

// Register creates a password-based account and returns the issued session.
func (c *Client) Register(ctx context.Context, name, email, password, role string) (*AuthResult, error) {
	body := struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}{Name: name, Email: email, Password: password, Role: role}

	req, err := c.newRequest(ctx, http.MethodPost, "/auth/register", nil, body)
	if err != nil {
		return nil, err
	}
	var resp authResponse
	if err := c.do(req, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, &APIError{StatusCode: http.StatusOK, Message: resp.Message}
	}
	return &AuthResult{Token: resp.Token, User: resp.User}, nil
}

// Login authenticates a password-based account and returns the issued session.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	body := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{Email: email, Password: password}

	req, err := c.newRequest(ctx, http.MethodPost, "/auth/login", nil, body)
	if err != nil {
		return nil, err
	}
	var resp authResponse
	if err := c.do(req, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, &APIError{StatusCode: http.StatusOK, Message: resp.Message}
	}
	return &AuthResult{Token: resp.Token, User: resp.User}, nil
}

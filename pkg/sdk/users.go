package sdk

import (
	"context"
	"fmt"
	"net/http"
)

type userResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    *User  `json:"data"`
}

// Me returns the backend's view of the authenticated user.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var resp userResponse
	if err := c.get(ctx, "/users/me", nil, &resp); err != nil {
		return nil, err
	}
	if resp.Data == nil {
		return nil, fmt.Errorf("empty user record")
	}
	return resp.Data, nil
}

// UpdateProfileInput carries the profile fields a user may change about
// themselves. Completing it is what flips isOnboarded on the backend.
type UpdateProfileInput struct {
	Name        string `json:"name,omitempty"`
	Bio         string `json:"bio,omitempty"`
	IsOnboarded *bool  `json:"isOnboarded,omitempty"`
}

// UpdateMe updates the authenticated user's profile and refreshes the cached
// user record in store when one is supplied.
func (c *Client) UpdateMe(ctx context.Context, input UpdateProfileInput, store SessionStore) (*User, error) {
	req, err := c.newRequest(ctx, http.MethodPut, "/users/me", nil, input)
	if err != nil {
		return nil, err
	}
	var resp userResponse
	if err := c.do(req, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, &APIError{StatusCode: http.StatusOK, Message: resp.Message}
	}

	if store != nil && resp.Data != nil {
		if session, loadErr := store.Load(); loadErr == nil && session != nil {
			session.User = resp.Data
			if resp.Data.Role != "" {
				session.Role = resp.Data.Role
			}
			_ = store.Save(session)
		}
	}
	return resp.Data, nil
}

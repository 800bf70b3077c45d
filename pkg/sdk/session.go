package sdk

import "time"

// Role values accepted by the backend. "pending" is assigned server-side to
// accounts that have not picked a role yet.
const (
	RoleStudent = "student"
	RoleTeacher = "teacher"
	RoleAdmin   = "admin"
	RolePending = "pending"
)

// SelectableRoles are the roles a user may choose for themselves through the
// explicit role-selection flow. Admin is granted out of band.
var SelectableRoles = []string{RoleStudent, RoleTeacher}

// User is the backend's user record as returned by the auth endpoints.
type User struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Role        string `json:"role,omitempty"`
	IsOnboarded bool   `json:"isOnboarded"`
}

// Session is the persisted client-side authentication state. All four fields
// are written by a successful sync and cleared together on sign-out; Email is
// additionally written as soon as the identity provider confirms sign-in so a
// 401 retry can resynchronize before the first sync ever completes.
type Session struct {
	Token string `json:"token,omitempty"`
	User  *User  `json:"user,omitempty"`
	Role  string `json:"role,omitempty"`
	Email string `json:"email,omitempty"`

	SyncedAt time.Time `json:"synced_at,omitempty"`
}

// HasToken reports whether the session carries a backend bearer token.
func (s *Session) HasToken() bool {
	return s != nil && s.Token != ""
}

// HasRole reports whether a concrete (non-pending) role has been resolved.
func (s *Session) HasRole() bool {
	return s != nil && s.Role != "" && s.Role != RolePending
}

// IsOnboarded reports whether the backend has marked the user as onboarded.
func (s *Session) IsOnboarded() bool {
	return s != nil && s.User != nil && s.User.IsOnboarded
}

// ValidRole reports whether role is one of the roles a user may select.
func ValidRole(role string) bool {
	for _, r := range SelectableRoles {
		if role == r {
			return true
		}
	}
	return false
}

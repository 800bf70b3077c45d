package server

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClerkSyncCreatesAccount(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/auth/clerk-sync", "", map[string]any{
		"email": "Alice@Example.COM",
		"name":  "Alice",
	})
	require.Equal(t, http.StatusOK, rec.Code, "body: %s", rec.Body.String())

	body := decodeResponse(t, rec)
	assert.Equal(t, true, body["success"])
	assert.NotEmpty(t, body["token"])

	user, ok := body["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "alice@example.com", user["email"], "email is normalized")
	assert.Equal(t, "Alice", user["name"])
	assert.Equal(t, "student", user["role"], "new accounts default to student")
	assert.Equal(t, false, user["isOnboarded"])
}

func TestClerkSyncPreservesExistingAccount(t *testing.T) {
	env := newTestEnv(t)

	// First sync creates the account, then the user picks the teacher role.
	rec := env.do(t, http.MethodPost, "/api/auth/clerk-sync", "", map[string]any{
		"email": "bob@example.com",
		"name":  "Bob",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	token := decodeResponse(t, rec)["token"].(string)

	rec = env.do(t, http.MethodPut, "/api/auth/update-my-role", token, map[string]any{
		"email": "bob@example.com",
		"role":  "teacher",
	})
	require.Equal(t, http.StatusOK, rec.Code, "body: %s", rec.Body.String())

	// A later sync must keep the chosen role, not reset it to student.
	rec = env.do(t, http.MethodPost, "/api/auth/clerk-sync", "", map[string]any{
		"email": "bob@example.com",
		"name":  "Someone Else",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	user := decodeResponse(t, rec)["user"].(map[string]any)
	assert.Equal(t, "teacher", user["role"])
	assert.Equal(t, true, user["isOnboarded"])
	assert.Equal(t, "Bob", user["name"], "sync does not overwrite the profile name")
}

func TestClerkSyncRequiresEmail(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/auth/clerk-sync", "", map[string]any{
		"name": "No Email",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, false, decodeResponse(t, rec)["success"])
}

func TestUpdateMyRole(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/auth/clerk-sync", "", map[string]any{
		"email": "carol@example.com",
		"name":  "Carol",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	token := decodeResponse(t, rec)["token"].(string)

	t.Run("rejects roles outside the student/teacher set", func(t *testing.T) {
		for _, role := range []string{"admin", "pending", "owner", ""} {
			rec := env.do(t, http.MethodPut, "/api/auth/update-my-role", token, map[string]any{
				"email": "carol@example.com",
				"role":  role,
			})
			assert.Equal(t, http.StatusBadRequest, rec.Code, "role %q", role)
		}
	})

	t.Run("rejects changing another account's role", func(t *testing.T) {
		env.do(t, http.MethodPost, "/api/auth/clerk-sync", "", map[string]any{
			"email": "dave@example.com",
		})
		rec := env.do(t, http.MethodPut, "/api/auth/update-my-role", token, map[string]any{
			"email": "dave@example.com",
			"role":  "teacher",
		})
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("sets role and completes onboarding", func(t *testing.T) {
		rec := env.do(t, http.MethodPut, "/api/auth/update-my-role", token, map[string]any{
			"email": "carol@example.com",
			"role":  "teacher",
		})
		require.Equal(t, http.StatusOK, rec.Code, "body: %s", rec.Body.String())

		user := decodeResponse(t, rec)["user"].(map[string]any)
		assert.Equal(t, "teacher", user["role"])
		assert.Equal(t, true, user["isOnboarded"])
	})

	t.Run("new role is visible on the next authenticated request", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/api/users/me", token, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		data := decodeResponse(t, rec)["data"].(map[string]any)
		assert.Equal(t, "teacher", data["role"])
	})
}

func TestRegisterAndLogin(t *testing.T) {
	env := newTestEnv(t)

	token, _ := env.registerUser(t, "eve@example.com", "student")
	require.NotEmpty(t, token)

	t.Run("duplicate email conflicts", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/api/auth/register", "", map[string]any{
			"email":    "eve@example.com",
			"password": "password123",
		})
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("short password rejected", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/api/auth/register", "", map[string]any{
			"email":    "short@example.com",
			"password": "short",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("login with valid credentials", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/api/auth/login", "", map[string]any{
			"email":    "eve@example.com",
			"password": "password123",
		})
		require.Equal(t, http.StatusOK, rec.Code)

		body := decodeResponse(t, rec)
		assert.NotEmpty(t, body["token"])
	})

	t.Run("wrong password and unknown account answer identically", func(t *testing.T) {
		wrongPass := env.do(t, http.MethodPost, "/api/auth/login", "", map[string]any{
			"email":    "eve@example.com",
			"password": "wrong-password",
		})
		unknown := env.do(t, http.MethodPost, "/api/auth/login", "", map[string]any{
			"email":    "nobody@example.com",
			"password": "password123",
		})
		assert.Equal(t, http.StatusUnauthorized, wrongPass.Code)
		assert.Equal(t, http.StatusUnauthorized, unknown.Code)
		assert.Equal(t, wrongPass.Body.String(), unknown.Body.String())
	})
}

func TestUnauthenticatedRequestsRejected(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/users/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/users/me", "not-a-real-token", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

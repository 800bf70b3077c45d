package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/educonnect/educonnect/cmd/eduapi/internal/db/models"
)

func testUser() *models.User {
	return &models.User{
		ID:    "0198c5d2-0000-7000-8000-000000000001",
		Email: "jwt@example.com",
		Role:  models.RoleTeacher,
	}
}

func TestTokenIssuerRoundTrip(t *testing.T) {
	issuer, err := NewTokenIssuer("round-trip-secret", time.Hour)
	require.NoError(t, err)

	token, err := issuer.Issue(testUser())
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := issuer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "0198c5d2-0000-7000-8000-000000000001", claims.Subject)
	assert.Equal(t, "jwt@example.com", claims.Email)
	assert.Equal(t, models.RoleTeacher, claims.Role)
	assert.NotEmpty(t, claims.ID, "tokens carry a jti")
}

func TestTokenIssuerRequiresSecret(t *testing.T) {
	_, err := NewTokenIssuer("", time.Hour)
	assert.Error(t, err)

	_, err = NewTokenIssuer("secret", 0)
	assert.Error(t, err)
}

func TestVerifyRejectsForgedTokens(t *testing.T) {
	issuer, err := NewTokenIssuer("real-secret", time.Hour)
	require.NoError(t, err)

	t.Run("wrong secret", func(t *testing.T) {
		other, err := NewTokenIssuer("other-secret", time.Hour)
		require.NoError(t, err)

		token, err := other.Issue(testUser())
		require.NoError(t, err)

		_, err = issuer.Verify(token)
		assert.Error(t, err)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := issuer.Verify("not.a.token")
		assert.Error(t, err)
	})

	t.Run("expired", func(t *testing.T) {
		shortLived, err := NewTokenIssuer("real-secret", time.Millisecond)
		require.NoError(t, err)

		token, err := shortLived.Issue(testUser())
		require.NoError(t, err)

		time.Sleep(5 * time.Millisecond)
		_, err = issuer.Verify(token)
		assert.Error(t, err)
	})
}

func TestHashTokenIsStable(t *testing.T) {
	assert.Equal(t, HashToken("abc"), HashToken("abc"))
	assert.NotEqual(t, HashToken("abc"), HashToken("abd"))
	assert.Len(t, HashToken("abc"), 64)
}

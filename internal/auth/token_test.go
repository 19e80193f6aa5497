package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/complaint-service/internal/domain"
)

func testUser() *domain.User {
	return &domain.User{
		ID:    "user-1",
		Name:  "Asha",
		Email: "asha@example.com",
		Role:  domain.RoleCitizen,
	}
}

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret", 7)

	token, exp, err := tm.GenerateToken(testUser())
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), exp, time.Minute)

	claims, err := tm.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, domain.RoleCitizen, claims.Role)
	assert.Equal(t, "asha@example.com", claims.Email)
	assert.NotEmpty(t, claims.ID)

	identity := claims.Identity()
	assert.Equal(t, "user-1", identity.ID)
	assert.Equal(t, domain.RoleCitizen, identity.Role)
	assert.False(t, identity.IsAdmin())
}

func TestTokenWrongSecretRejected(t *testing.T) {
	tm := NewTokenManager("secret-a", 7)
	other := NewTokenManager("secret-b", 7)

	token, _, err := tm.GenerateToken(testUser())
	require.NoError(t, err)

	_, err = other.ParseToken(token)
	assert.Error(t, err)
}

func TestTokenMalformedRejected(t *testing.T) {
	tm := NewTokenManager("test-secret", 7)

	_, err := tm.ParseToken("not-a-token")
	assert.Error(t, err)
}

func TestTokenTTLDefaultsWhenNonPositive(t *testing.T) {
	tm := NewTokenManager("test-secret", 0)

	_, exp, err := tm.GenerateToken(testUser())
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), exp, time.Minute)
}

func TestTokenUniqueIDs(t *testing.T) {
	tm := NewTokenManager("test-secret", 7)
	user := testUser()

	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		token, _, err := tm.GenerateToken(user)
		require.NoError(t, err)
		claims, err := tm.ParseToken(token)
		require.NoError(t, err)
		assert.False(t, seen[claims.ID], "token id reused: %s", claims.ID)
		seen[claims.ID] = true
	}
}

package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicabemestar/clinic-api/internal/model"
)

func TestTokenRoundTrip(t *testing.T) {
	user := &model.User{ID: "user-1", Name: "Maria", Role: model.RoleAdmin}

	token, err := MakeToken(user, "test-secret")
	require.NoError(t, err)

	claims, err := ParseToken(token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "Maria", claims.Name)
	assert.Equal(t, model.RoleAdmin, claims.Role)
	assert.True(t, claims.IsAdmin())
}

func TestParseTokenWrongSecret(t *testing.T) {
	user := &model.User{ID: "user-1", Role: model.RoleUser}

	token, err := MakeToken(user, "test-secret")
	require.NoError(t, err)

	_, err = ParseToken(token, "other-secret")
	assert.Error(t, err)
}

func TestParseTokenGarbage(t *testing.T) {
	_, err := ParseToken("not-a-token", "test-secret")
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("secret123")
	require.NoError(t, err)

	assert.NotEqual(t, "secret123", hash)
	assert.True(t, CheckPassword(hash, "secret123"))
	assert.False(t, CheckPassword(hash, "secret124"))
}

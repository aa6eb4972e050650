package utils

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateToken_Success(t *testing.T) {
	userID := uuid.New()
	email := "test@example.com"
	role := "member"
	secret := "test-secret"

	token, err := GenerateToken(userID, email, role, secret, 1*time.Hour)
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := ValidateToken(token, secret)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, email, claims.Email)
	assert.Equal(t, role, claims.Role)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	token, err := GenerateToken(uuid.New(), "test@example.com", "member", "secret1", 1*time.Hour)
	require.NoError(t, err)

	_, err = ValidateToken(token, "secret2")
	assert.Equal(t, ErrInvalidToken, err)
}

func TestValidateToken_Expired(t *testing.T) {
	token, err := GenerateToken(uuid.New(), "test@example.com", "member", "secret", -time.Minute)
	require.NoError(t, err)

	_, err = ValidateToken(token, "secret")
	assert.Equal(t, ErrInvalidToken, err)
}

func TestValidateToken_Malformed(t *testing.T) {
	_, err := ValidateToken("malformed-token", "secret")
	assert.Equal(t, ErrInvalidToken, err)

	_, err = ValidateToken("", "secret")
	assert.Equal(t, ErrInvalidToken, err)
}

package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "unit-test-secret"

func TestGenerateAndValidateJWT(t *testing.T) {
	token, err := GenerateJWT("user-123", testSecret, time.Minute, "apexam-backend")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	subject, err := ValidateJWT(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "user-123", subject)
}

func TestValidateJWT_WrongSecret(t *testing.T) {
	token, err := GenerateJWT("user-123", testSecret, time.Minute, "apexam-backend")
	require.NoError(t, err)

	_, err = ValidateJWT(token, "some-other-secret")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateJWT_Expired(t *testing.T) {
	token, err := GenerateJWT("user-123", testSecret, -time.Minute, "apexam-backend")
	require.NoError(t, err)

	_, err = ValidateJWT(token, testSecret)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateJWT_Malformed(t *testing.T) {
	_, err := ValidateJWT("not.a.token", testSecret)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateJWT_EmptySubject(t *testing.T) {
	token, err := GenerateJWT("", testSecret, time.Minute, "apexam-backend")
	require.NoError(t, err)

	_, err = ValidateJWT(token, testSecret)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)
	require.NotEqual(t, "s3cret-pass", hash)

	assert.True(t, CheckPasswordHash("s3cret-pass", hash))
	assert.False(t, CheckPasswordHash("wrong-pass", hash))
}

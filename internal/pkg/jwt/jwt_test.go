package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestGenerateAndValidateRoundtrip(t *testing.T) {
	token, err := GenerateAccessToken(7, "zhang_wei", "member", testSecret, 60)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateAccessToken(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "zhang_wei", claims.Username)
	assert.Equal(t, "member", claims.Role)
	assert.Equal(t, "gxas-memberhub", claims.Issuer)
}

func TestGenerateWithoutSecret(t *testing.T) {
	_, err := GenerateAccessToken(7, "zhang_wei", "member", "", 60)
	assert.ErrorIs(t, err, ErrNoSecret)
}

func TestValidateExpiredToken(t *testing.T) {
	token, err := GenerateAccessToken(7, "zhang_wei", "member", testSecret, -1)
	require.NoError(t, err)

	_, err = ValidateAccessToken(token, testSecret)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestValidateWrongSecret(t *testing.T) {
	token, err := GenerateAccessToken(7, "zhang_wei", "member", testSecret, 60)
	require.NoError(t, err)

	_, err = ValidateAccessToken(token, "another-secret")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestValidateGarbage(t *testing.T) {
	_, err := ValidateAccessToken("not.a.token", testSecret)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

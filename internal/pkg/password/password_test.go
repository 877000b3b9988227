package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerify(t *testing.T) {
	hash, err := Hash("secret123")
	require.NoError(t, err)

	assert.NotEqual(t, "secret123", hash)
	assert.True(t, Verify("secret123", hash))
	assert.False(t, Verify("secret124", hash))
}

func TestHashIsSalted(t *testing.T) {
	first, err := Hash("secret123")
	require.NoError(t, err)
	second, err := Hash("secret123")
	require.NoError(t, err)

	// bcrypt salts per call; equal inputs never share a digest.
	assert.NotEqual(t, first, second)
	assert.True(t, Verify("secret123", first))
	assert.True(t, Verify("secret123", second))
}

func TestVerifyMalformedDigest(t *testing.T) {
	assert.False(t, Verify("secret123", "not-a-bcrypt-digest"))
	assert.False(t, Verify("secret123", ""))
}

func TestValidatePassword(t *testing.T) {
	assert.False(t, ValidatePassword(""))
	assert.False(t, ValidatePassword("12345"))
	assert.True(t, ValidatePassword("123456"))
	assert.True(t, ValidatePassword("a-much-longer-password"))
}

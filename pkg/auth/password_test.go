package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	t.Run("hash never contains the plaintext", func(t *testing.T) {
		hash, err := HashPassword("secret1")
		require.NoError(t, err)
		assert.False(t, strings.Contains(hash, "secret1"))
		assert.True(t, strings.HasPrefix(hash, "$2"))
	})

	t.Run("salted", func(t *testing.T) {
		h1, err := HashPassword("secret1")
		require.NoError(t, err)
		h2, err := HashPassword("secret1")
		require.NoError(t, err)
		assert.NotEqual(t, h1, h2)
	})

	t.Run("rejects empty password", func(t *testing.T) {
		_, err := HashPassword("")
		assert.ErrorIs(t, err, ErrEmptyPassword)
	})
}

func TestCheckPasswordHash(t *testing.T) {
	hash, err := HashPassword("secret1")
	require.NoError(t, err)

	assert.True(t, CheckPasswordHash("secret1", hash))
	assert.False(t, CheckPasswordHash("secret2", hash))
	assert.False(t, CheckPasswordHash("secret1", "not-a-bcrypt-hash"))
	assert.False(t, CheckPasswordHash("secret1", ""))
}

func TestHashPassword_Length(t *testing.T) {
	_, err := HashPassword(strings.Repeat("a", MaxPasswordBytes))
	assert.NoError(t, err)

	_, err = HashPassword(strings.Repeat("a", MaxPasswordBytes+1))
	assert.ErrorIs(t, err, ErrPasswordTooLong)
}

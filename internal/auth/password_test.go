package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("123Aa")
	require.NoError(t, err)

	assert.NotEqual(t, "123Aa", hash)
	assert.True(t, VerifyPassword("123Aa", hash))
	assert.False(t, VerifyPassword("123Ab", hash))
}

func TestHashesAreSalted(t *testing.T) {
	h1, err := HashPassword("123Aa")
	require.NoError(t, err)
	h2, err := HashPassword("123Aa")
	require.NoError(t, err)

	// Fresh random salt per hash; both must still verify.
	assert.NotEqual(t, h1, h2)
	assert.True(t, VerifyPassword("123Aa", h1))
	assert.True(t, VerifyPassword("123Aa", h2))
}

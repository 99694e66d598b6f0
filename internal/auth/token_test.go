package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestTokenRoundTrip(t *testing.T) {
	issuer := NewIssuer("secret1", 0)

	for _, isAdmin := range []bool{true, false} {
		id := primitive.NewObjectID().Hex()

		token, err := issuer.Issue(id, isAdmin)
		require.NoError(t, err)
		require.NotEmpty(t, token)

		identity, err := issuer.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, id, identity.SubjectID)
		assert.Equal(t, isAdmin, identity.IsAdmin)
	}
}

func TestVerifyMissingToken(t *testing.T) {
	issuer := NewIssuer("secret1", 0)

	_, err := issuer.Verify("")
	assert.ErrorIs(t, err, ErrMissingToken)
}

func TestVerifyMalformedToken(t *testing.T) {
	issuer := NewIssuer("secret1", 0)

	_, err := issuer.Verify("a")
	assert.ErrorIs(t, err, ErrMalformedToken)
}

func TestVerifyRejectsOtherSecret(t *testing.T) {
	token, err := NewIssuer("secret1", 0).Issue(primitive.NewObjectID().Hex(), false)
	require.NoError(t, err)

	_, err = NewIssuer("secret2", 0).Verify(token)
	assert.ErrorIs(t, err, ErrBadSignature)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	issuer := NewIssuer("secret1", time.Nanosecond)

	token, err := issuer.Issue(primitive.NewObjectID().Hex(), false)
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)
	_, err = issuer.Verify(token)
	assert.Error(t, err)
}

func TestZeroTTLTokensDoNotExpire(t *testing.T) {
	issuer := NewIssuer("secret1", 0)

	token, err := issuer.Issue(primitive.NewObjectID().Hex(), false)
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)
	_, err = issuer.Verify(token)
	assert.NoError(t, err)
}

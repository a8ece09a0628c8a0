package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	a := NewJWTAuthenticator("s3cret", "trustboard", "trustboard", time.Hour)

	tok, err := a.GenerateToken("alice", "admin")
	require.NoError(t, err)

	parsed, err := a.ValidateToken(tok)
	require.NoError(t, err)

	name, role, err := a.Identity(parsed)
	require.NoError(t, err)
	assert.Equal(t, "alice", name)
	assert.Equal(t, "admin", role)

	claims := parsed.Claims.(*Claims)
	assert.NotEmpty(t, claims.ID)
}

func TestTokensHaveDistinctIDs(t *testing.T) {
	a := NewJWTAuthenticator("s3cret", "trustboard", "trustboard", time.Hour)

	t1, err := a.GenerateToken("bob", "")
	require.NoError(t, err)
	t2, err := a.GenerateToken("bob", "")
	require.NoError(t, err)
	assert.NotEqual(t, t1, t2)
}

func TestValidateRejects(t *testing.T) {
	a := NewJWTAuthenticator("s3cret", "trustboard", "trustboard", time.Hour)

	t.Run("wrong secret", func(t *testing.T) {
		other := NewJWTAuthenticator("other", "trustboard", "trustboard", time.Hour)
		tok, err := other.GenerateToken("alice", "")
		require.NoError(t, err)
		_, err = a.ValidateToken(tok)
		assert.Error(t, err)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		other := NewJWTAuthenticator("s3cret", "trustboard", "someone-else", time.Hour)
		tok, err := other.GenerateToken("alice", "")
		require.NoError(t, err)
		_, err = a.ValidateToken(tok)
		assert.Error(t, err)
	})

	t.Run("expired", func(t *testing.T) {
		short := &JWTAuthenticator{secret: "s3cret", aud: "trustboard", iss: "trustboard", exp: -time.Minute}
		tok, err := short.GenerateToken("alice", "")
		require.NoError(t, err)
		_, err = a.ValidateToken(tok)
		assert.Error(t, err)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := a.ValidateToken("not-a-token")
		assert.Error(t, err)
	})
}

func TestGenerateRequiresSubject(t *testing.T) {
	a := NewJWTAuthenticator("s3cret", "trustboard", "trustboard", time.Hour)
	_, err := a.GenerateToken("", "admin")
	assert.Error(t, err)
}

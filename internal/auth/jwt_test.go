package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSigner_RoundTrip(t *testing.T) {
	s := NewSigner("test-secret")

	token, err := s.GenerateToken("clerk@example.com", time.Hour)
	require.NoError(t, err)

	email, err := s.ParseEmail(token)
	require.NoError(t, err)
	assert.Equal(t, "clerk@example.com", email)
}

func TestSigner_RejectsForeignAndExpiredTokens(t *testing.T) {
	s := NewSigner("test-secret")

	foreign, err := NewSigner("other-secret").GenerateToken("clerk@example.com", time.Hour)
	require.NoError(t, err)
	_, err = s.ParseEmail(foreign)
	assert.ErrorIs(t, err, ErrInvalidToken)

	expired, err := s.GenerateToken("clerk@example.com", -time.Minute)
	require.NoError(t, err)
	_, err = s.ParseEmail(expired)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = s.ParseEmail("not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestSigner_RequiresEmailClaim(t *testing.T) {
	s := NewSigner("test-secret")
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "42",
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = s.ParseEmail(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestSigner_Disabled(t *testing.T) {
	s := NewSigner("")
	assert.False(t, s.Enabled())

	_, err := s.GenerateToken("clerk@example.com", time.Hour)
	assert.ErrorIs(t, err, ErrNoSecret)
}

func TestBearerToken(t *testing.T) {
	token, ok := BearerToken("Bearer abc.def")
	assert.True(t, ok)
	assert.Equal(t, "abc.def", token)

	_, ok = BearerToken("Basic abc")
	assert.False(t, ok)

	_, ok = BearerToken("Bearer ")
	assert.False(t, ok)
}

package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndVerify(t *testing.T) {
	iss := NewIssuer("super-secret", time.Hour)

	tok, err := iss.Issue("user-123")
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	got, err := iss.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, "user-123", got)
}

func TestVerify_Expired(t *testing.T) {
	iss := NewIssuer("secret", time.Hour)
	iss.ttl = -time.Minute

	tok, err := iss.Issue("u1")
	require.NoError(t, err)

	_, err = iss.Verify(tok)
	assert.ErrorIs(t, err, ErrExpired)
}

func TestVerify_WrongSecret(t *testing.T) {
	right := NewIssuer("right-secret", time.Hour)
	wrong := NewIssuer("wrong-secret", time.Hour)

	tok, err := right.Issue("u2")
	require.NoError(t, err)

	_, err = wrong.Verify(tok)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestVerify_Malformed(t *testing.T) {
	iss := NewIssuer("k", time.Hour)

	_, err := iss.Verify("not.a.jwt")
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestNewIssuer_DefaultTTL(t *testing.T) {
	iss := NewIssuer("k", 0)
	assert.Equal(t, DefaultTTL, iss.ttl)
}

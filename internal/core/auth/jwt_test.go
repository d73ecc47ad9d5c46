package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newJWTer() *JWTer {
	return &JWTer{Secret: []byte("test-secret"), Issuer: "brewbuy", TTL: time.Hour}
}

func TestIssueAndParse(t *testing.T) {
	j := newJWTer()
	tok, err := j.Issue("alice", "42", RoleUser)
	require.NoError(t, err)

	c, err := j.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "alice", c.Subject)
	assert.Equal(t, "42", c.UID)
	assert.Equal(t, RoleUser, c.Role)
	assert.True(t, c.ExpiresAt.After(time.Now()))
}

func TestParseRejectsForeignSecretAndIssuer(t *testing.T) {
	tok, err := newJWTer().Issue("admin", "", RoleAdmin)
	require.NoError(t, err)

	other := &JWTer{Secret: []byte("other"), Issuer: "brewbuy", TTL: time.Hour}
	_, err = other.Parse(tok)
	assert.Error(t, err)

	wrongIss := &JWTer{Secret: []byte("test-secret"), Issuer: "someone-else", TTL: time.Hour}
	_, err = wrongIss.Parse(tok)
	assert.Error(t, err)
}

func TestParseRejectsExpired(t *testing.T) {
	j := &JWTer{Secret: []byte("s"), Issuer: "brewbuy", TTL: -2 * time.Minute}
	tok, err := j.Issue("bob", "1", RoleUser)
	require.NoError(t, err)
	_, err = j.Parse(tok)
	assert.Error(t, err)
}

func TestIssueRequiresSubject(t *testing.T) {
	_, err := newJWTer().Issue("", "1", RoleUser)
	assert.Error(t, err)
}

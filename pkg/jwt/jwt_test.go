package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndValidate(t *testing.T) {
	m := NewManager("secret", time.Hour, "estatewave")

	token, exp, err := m.Issue("u1", "uma@example.com", "Uma", "USER")
	require.NoError(t, err)
	assert.Greater(t, exp, time.Now().Unix())

	claims, err := m.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "uma@example.com", claims.Email)
	assert.Equal(t, "USER", claims.Role)
	assert.Equal(t, "estatewave", claims.Issuer)
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	token, _, err := NewManager("secret-a", time.Hour, "t").Issue("u1", "e", "n", "USER")
	require.NoError(t, err)

	_, err = NewManager("secret-b", time.Hour, "t").Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateRejectsExpired(t *testing.T) {
	m := NewManager("secret", -time.Minute, "t")
	token, _, err := m.Issue("u1", "e", "n", "USER")
	require.NoError(t, err)

	_, err = m.Validate(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateRejectsGarbage(t *testing.T) {
	m := NewManager("secret", time.Hour, "t")
	_, err := m.Validate("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

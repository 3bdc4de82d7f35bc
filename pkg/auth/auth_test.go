package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	claims := jwt.MapClaims{"sub": "u1", "exp": exp.Unix()}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)
	return token
}

func TestAPIKeyMode(t *testing.T) {
	m := NewManager("key-123")
	assert.Equal(t, MethodAPIKey, m.Method())
	assert.Equal(t, "Bearer key-123", m.AuthHeader())
	assert.False(t, m.IsExpired())
}

func TestEmptyManager(t *testing.T) {
	m := NewManager("")
	assert.Equal(t, "", m.AuthHeader())
}

func TestSetTokenJWT(t *testing.T) {
	m := NewManager("key-123")
	token := signedToken(t, time.Now().Add(time.Hour))
	require.NoError(t, m.SetToken(token))

	assert.Equal(t, MethodBearer, m.Method())
	assert.Equal(t, "Bearer "+token, m.AuthHeader())
	assert.False(t, m.IsExpired())
}

func TestSetTokenExpiredJWT(t *testing.T) {
	m := NewManager("")
	token := signedToken(t, time.Now().Add(-time.Hour))
	require.NoError(t, m.SetToken(token))
	assert.True(t, m.IsExpired())
}

func TestSetTokenOpaque(t *testing.T) {
	m := NewManager("")
	require.NoError(t, m.SetToken("not-a-jwt"))
	assert.Equal(t, "Bearer not-a-jwt", m.AuthHeader())
	assert.False(t, m.IsExpired(), "opaque tokens never expire locally")
}

func TestClear(t *testing.T) {
	m := NewManager("key-123")
	require.NoError(t, m.SetToken(signedToken(t, time.Now().Add(time.Hour))))
	m.Clear()

	assert.Equal(t, MethodAPIKey, m.Method())
	assert.Equal(t, "Bearer key-123", m.AuthHeader())
}

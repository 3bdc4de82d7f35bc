// Package auth manages the credential attached to outgoing requests.
package auth

import (
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Method represents the authentication method.
type Method string

const (
	MethodAPIKey Method = "api_key"
	MethodBearer Method = "bearer"
)

// Manager holds the current credential. It is safe for concurrent use.
type Manager struct {
	mu        sync.RWMutex
	method    Method
	apiKey    string
	token     string
	expiresAt time.Time
}

// NewManager creates a manager in API-key mode. An empty key leaves the
// manager unauthenticated until SetToken is called.
func NewManager(apiKey string) *Manager {
	return &Manager{method: MethodAPIKey, apiKey: apiKey}
}

// SetToken switches the manager to bearer mode. When the token is a JWT
// its exp claim is recorded so IsExpired can answer without a server
// round trip; non-JWT tokens are accepted and never expire locally.
func (m *Manager) SetToken(token string) error {
	var expiresAt time.Time

	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err == nil {
		exp, err := parsed.Claims.GetExpirationTime()
		if err != nil {
			return fmt.Errorf("read token expiry: %w", err)
		}
		if exp != nil {
			expiresAt = exp.Time
		}
	}

	m.mu.Lock()
	m.method = MethodBearer
	m.token = token
	m.expiresAt = expiresAt
	m.mu.Unlock()
	return nil
}

// Clear drops the bearer token and falls back to the API key.
func (m *Manager) Clear() {
	m.mu.Lock()
	m.method = MethodAPIKey
	m.token = ""
	m.expiresAt = time.Time{}
	m.mu.Unlock()
}

// AuthHeader returns the value for the Authorization header, or the empty
// string when no credential is set.
func (m *Manager) AuthHeader() string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	switch m.method {
	case MethodBearer:
		if m.token != "" {
			return "Bearer " + m.token
		}
	case MethodAPIKey:
		if m.apiKey != "" {
			return "Bearer " + m.apiKey
		}
	}
	return ""
}

// IsExpired reports whether the current bearer token has passed its exp
// claim. API-key mode never expires.
func (m *Manager) IsExpired() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.method != MethodBearer || m.expiresAt.IsZero() {
		return false
	}
	return time.Now().After(m.expiresAt)
}

// Method returns the active authentication method.
func (m *Manager) Method() Method {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.method
}

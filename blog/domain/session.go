package domain

import (
	"time"
)

// Credentials is a login attempt. Credential material is compared by an
// external CredentialVerifier, never against values baked into source.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Session is the ephemeral authentication marker kept in the Local Cache.
// It gates the repository's write operations but is not a security boundary.
type Session struct {
	IsAuthenticated bool      `json:"isAuthenticated"`
	Username        string    `json:"username"`
	Role            string    `json:"role"`
	Token           string    `json:"token"`
	ExpiresAt       time.Time `json:"expiresAt"`
}

// Expired reports whether the session has passed its expiry.
func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}

// CredentialVerifier is the external authentication provider abstraction.
// Verify returns the authenticated role or ErrInvalidCredentials.
type CredentialVerifier interface {
	Verify(creds Credentials) (role string, err error)
}

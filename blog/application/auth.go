package application

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/edublog/edublog/blog/domain"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

const defaultSessionTTL = time.Hour

// AuthService manages the ephemeral session marker in the local cache.
// Credentials are checked by the injected verifier; this layer never sees
// credential material beyond the login request itself. Not a security
// boundary: the session only gates the repository's write operations.
type AuthService struct {
	cache    domain.LocalCache
	verifier domain.CredentialVerifier
	secret   []byte
	ttl      time.Duration
}

func NewAuthService(cache domain.LocalCache, verifier domain.CredentialVerifier, secret []byte, ttl time.Duration) *AuthService {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}

	return &AuthService{
		cache:    cache,
		verifier: verifier,
		secret:   secret,
		ttl:      ttl,
	}
}

// Login verifies credentials, mints a signed session token and stores the
// session in the local cache. Returns domain.ErrInvalidCredentials when the
// verifier rejects the attempt.
func (a *AuthService) Login(ctx context.Context, creds domain.Credentials) (domain.Session, error) {
	role, err := a.verifier.Verify(creds)
	if err != nil {
		return domain.Session{}, err
	}

	now := time.Now().UTC()
	expiresAt := now.Add(a.ttl)

	claims := jwt.MapClaims{
		"sub":  creds.Username,
		"role": role,
		"iat":  now.Unix(),
		"exp":  expiresAt.Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
	if err != nil {
		return domain.Session{}, fmt.Errorf("failed to sign session token: %w", err)
	}

	session := domain.Session{
		IsAuthenticated: true,
		Username:        creds.Username,
		Role:            role,
		Token:           signed,
		ExpiresAt:       expiresAt,
	}

	blob, err := json.Marshal(session)
	if err != nil {
		return domain.Session{}, fmt.Errorf("failed to encode session: %w", err)
	}
	if err := a.cache.Set(ctx, domain.KeySession, string(blob)); err != nil {
		return domain.Session{}, fmt.Errorf("failed to store session: %w", err)
	}

	return session, nil
}

// Logout clears the stored session.
func (a *AuthService) Logout(ctx context.Context) error {
	return a.cache.Delete(ctx, domain.KeySession)
}

// CurrentSession returns the stored session when it exists, carries a valid
// token and has not expired.
func (a *AuthService) CurrentSession(ctx context.Context) (domain.Session, bool) {
	raw, ok, err := a.cache.Get(ctx, domain.KeySession)
	if err != nil {
		log.Error().Err(err).Msg("Failed to read session from cache")
		return domain.Session{}, false
	}
	if !ok {
		return domain.Session{}, false
	}

	var session domain.Session
	if err := json.Unmarshal([]byte(raw), &session); err != nil {
		log.Error().Err(err).Msg("Failed to decode stored session")
		return domain.Session{}, false
	}

	if !session.IsAuthenticated || session.Expired(time.Now().UTC()) {
		return domain.Session{}, false
	}

	parsed, err := jwt.Parse(session.Token, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return a.secret, nil
	})
	if err != nil || !parsed.Valid {
		return domain.Session{}, false
	}

	return session, true
}

// IsAuthenticated reports whether a valid, unexpired session exists.
func (a *AuthService) IsAuthenticated(ctx context.Context) bool {
	_, ok := a.CurrentSession(ctx)
	return ok
}

// GenerateCSRFToken mints a fresh form token and stores it for later
// verification. Each call replaces the previous token.
func (a *AuthService) GenerateCSRFToken(ctx context.Context) (string, error) {
	token := uuid.NewString()
	if err := a.cache.Set(ctx, domain.KeyCSRF, token); err != nil {
		return "", fmt.Errorf("failed to store csrf token: %w", err)
	}
	return token, nil
}

// VerifyCSRFToken reports whether token matches the stored form token.
func (a *AuthService) VerifyCSRFToken(ctx context.Context, token string) bool {
	if token == "" {
		return false
	}

	stored, ok, err := a.cache.Get(ctx, domain.KeyCSRF)
	if err != nil || !ok {
		return false
	}
	return stored == token
}

var _ domain.CredentialVerifier = (*SingleUserVerifier)(nil)

// SingleUserVerifier checks a login against one configured account. The
// password hash and username come from configuration (environment), never
// from source.
type SingleUserVerifier struct {
	Username     string
	PasswordHash []byte
	Role         string
}

func (v *SingleUserVerifier) Verify(creds domain.Credentials) (string, error) {
	if creds.Username != v.Username || len(v.PasswordHash) == 0 {
		return "", domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(v.PasswordHash, []byte(creds.Password)); err != nil {
		return "", domain.ErrInvalidCredentials
	}

	role := v.Role
	if role == "" {
		role = "admin"
	}
	return role, nil
}

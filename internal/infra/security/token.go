package security

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Saimun-jd/CuetSphere-Backend/internal/core/domain"
)

// ErrInvalidToken covers every verification failure: bad signature, wrong
// algorithm, malformed payload, or expiry. Callers never learn which, so a
// rejected token reveals nothing about why it was rejected.
var ErrInvalidToken = errors.New("token: invalid or expired")

// DefaultTokenTTL is the session lifetime baked into every issued token.
const DefaultTokenTTL = 24 * time.Hour

// SessionClaims is the payload carried by a signed session token. Subject
// holds the account email, Authorities the comma-joined role names.
type SessionClaims struct {
	Authorities string `json:"authorities,omitempty"`
	jwt.RegisteredClaims
}

// Roles splits the authorities claim back into role values. Unknown names
// are dropped.
func (c *SessionClaims) Roles() []domain.Role {
	if c.Authorities == "" {
		return nil
	}

	parts := strings.Split(c.Authorities, ",")
	roles := make([]domain.Role, 0, len(parts))
	for _, part := range parts {
		role := domain.Role(strings.TrimSpace(part))
		if role.Valid() {
			roles = append(roles, role)
		}
	}
	return roles
}

// TokenService issues and verifies HMAC-SHA256 signed session tokens. Every
// instance of the process shares one secret, so any replica can verify a
// token issued by any other without coordination.
type TokenService struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenService builds a TokenService from the shared signing secret.
func NewTokenService(secret, issuer string, ttl time.Duration) (*TokenService, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, fmt.Errorf("token: signing secret is required")
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}

	return &TokenService{
		secret: []byte(secret),
		issuer: strings.TrimSpace(issuer),
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

// WithClock overrides the time source. Intended for tests.
func (s *TokenService) WithClock(now func() time.Time) *TokenService {
	s.now = now
	return s
}

// TTL reports the configured token lifetime.
func (s *TokenService) TTL() time.Duration {
	return s.ttl
}

// Issue signs a session token for the given account email and roles.
func (s *TokenService) Issue(email string, roles []domain.Role) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return "", fmt.Errorf("token: subject email is required")
	}

	names := make([]string, 0, len(roles))
	for _, role := range roles {
		names = append(names, string(role))
	}

	now := s.now().UTC()
	claims := &SessionClaims{
		Authorities: strings.Join(names, ","),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("token: sign: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a compact token string. Any failure maps to
// ErrInvalidToken.
func (s *TokenService) Verify(tokenString string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return s.now().UTC() }))
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	if strings.TrimSpace(claims.Subject) == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

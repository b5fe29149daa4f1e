package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mealdesk/mealdesk/internal/shared"
)

// insecureSecretPlaceholder is the well-known default shipped in early
// deployment templates. Refusing it at startup is a hard requirement.
const insecureSecretPlaceholder = "default-secret-key"

// DefaultTokenTTL is the absolute lifetime of issued credentials.
const DefaultTokenTTL = 7 * 24 * time.Hour

// TokenService issues and verifies signed bearer credentials. It is
// stateless beyond the fixed signing secret loaded at startup.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenService validates the signing secret and constructs the
// service. A missing secret or the known-insecure placeholder is a fatal
// configuration error, not something to limp along with.
func NewTokenService(secret string, ttl time.Duration) (*TokenService, error) {
	if secret == "" || secret == insecureSecretPlaceholder {
		return nil, errors.New("auth: token secret must be set to a secure value")
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenService{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// Issue produces a signed credential embedding the user id with an
// absolute expiry.
func (s *TokenService) Issue(userID string) (string, error) {
	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("auth: sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature and expiry and returns the embedded user id.
// Every parse, signature or expiry failure collapses into
// ErrUnauthenticated; the caller cannot tell them apart.
func (s *TokenService) Verify(tokenString string) (string, error) {
	var claims jwt.RegisteredClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil || !token.Valid || claims.Subject == "" {
		return "", shared.ErrUnauthenticated
	}
	return claims.Subject, nil
}

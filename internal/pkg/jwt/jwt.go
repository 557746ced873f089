package jwt

import (
	"errors"
	"time"

	libJWT "github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalidSigningMethod is returned when the JWT signing method is not supported.
	ErrInvalidSigningMethod = errors.New("invalid JWT signing method")

	// ErrSigningKeyTooShort is returned when the HS512 signing key is less than 64 bytes.
	ErrSigningKeyTooShort = errors.New("HS512 signing key must be at least 64 bytes (512 bits)")

	// ErrTokenExpired is returned when the JWT token has expired.
	ErrTokenExpired = errors.New("JWT token has expired")

	// ErrInvalidToken is returned when the token is malformed or fails validation.
	ErrInvalidToken = errors.New("invalid token")
)

// JWT defines the operations needed to issue and check admin access tokens.
type JWT interface {
	// Generate creates a signed token for the subject.
	Generate(subject, email string) (string, error)
	// Verify parses and validates the token and returns claims.
	Verify(tokenStr string) (Claims, error)
}

type clocker interface {
	Now() time.Time
}

type generator interface {
	Generate() string
}

// Config defines the inputs for building a JWT implementation.
type Config struct {
	// Secret is the HMAC signing key.
	Secret []byte
	// Issuer is the token issuer value.
	Issuer string
	// Audiences are the accepted token audiences.
	Audiences []string
	// TTL is the token time-to-live.
	TTL time.Duration
	// Clock provides the current time source.
	Clock clocker
	// UUID generates token IDs.
	UUID generator
}

// Claims wraps registered claims with the authenticated admin's email.
type Claims struct {
	libJWT.RegisteredClaims
	// Email is the authenticated admin email.
	Email string `json:"email"`
}

// Inspect decodes the claims of tokenStr without verifying its signature.
//
// It is meant for display only (who is logged in, when the token expires);
// never use the result for an authorization decision.
func Inspect(tokenStr string) (Claims, error) {
	var claims Claims

	if _, _, err := libJWT.NewParser().ParseUnverified(tokenStr, &claims); err != nil {
		return Claims{}, ErrInvalidToken
	}

	return claims, nil
}

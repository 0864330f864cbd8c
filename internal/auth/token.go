// Package auth resolves the calling user from an HS256 bearer token. The
// token subject is the user id; nothing else about the user is stored here.
package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	apperrors "github.com/srkarthi1982/guess-the-emoji/internal/errors"
)

const signingMethod = "HS256"

// Verifier validates bearer tokens signed with a shared secret.
type Verifier struct {
	secret []byte
	issuer string
	now    func() time.Time
}

// NewVerifier creates a Verifier. An empty issuer skips the iss check; a nil
// now uses time.Now.
func NewVerifier(secret, issuer string, now func() time.Time) *Verifier {
	if now == nil {
		now = time.Now
	}
	return &Verifier{secret: []byte(secret), issuer: issuer, now: now}
}

// UserID returns the subject of a valid token. Every failure is an
// UNAUTHENTICATED AppError.
func (v *Verifier) UserID(token string) (string, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return "", apperrors.NewUnauthenticatedError("missing bearer token")
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{signingMethod}),
		jwt.WithTimeFunc(v.now),
		jwt.WithExpirationRequired(),
	}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}

	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return v.secret, nil
	}, opts...)
	if err != nil {
		return "", mapJWTError(err)
	}

	sub := strings.TrimSpace(claims.Subject)
	if sub == "" {
		return "", apperrors.NewUnauthenticatedError("token has no subject")
	}
	return sub, nil
}

func mapJWTError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return apperrors.NewUnauthenticatedError("token is expired")
	case errors.Is(err, jwt.ErrTokenNotValidYet):
		return apperrors.NewUnauthenticatedError("token is not valid yet")
	case errors.Is(err, jwt.ErrTokenInvalidIssuer):
		return apperrors.NewUnauthenticatedError("token issuer mismatch")
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return apperrors.NewUnauthenticatedError("token signature is invalid")
	default:
		return apperrors.NewUnauthenticatedError("token is invalid")
	}
}

// Issuer mints tokens for development and tooling.
type Issuer struct {
	secret []byte
	issuer string
	now    func() time.Time
}

// NewIssuer creates an Issuer using the same secret the server verifies with.
func NewIssuer(secret, issuer string, now func() time.Time) *Issuer {
	if now == nil {
		now = time.Now
	}
	return &Issuer{secret: []byte(secret), issuer: issuer, now: now}
}

// Mint returns a signed token for userID valid for ttl.
func (i *Issuer) Mint(userID string, ttl time.Duration) (string, error) {
	if strings.TrimSpace(userID) == "" {
		return "", fmt.Errorf("user id is required")
	}
	if ttl <= 0 {
		return "", fmt.Errorf("ttl must be positive")
	}
	now := i.now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		Issuer:    i.issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

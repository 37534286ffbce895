// Package sessionx mints and decodes the signed, time-bounded session
// tokens that prove a prior successful login. Tokens are HS256 JWTs signed
// with a single process-wide secret; there is no key rotation and no
// server-side revocation, the client owns the token as an opaque cookie
// value.
package sessionx

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTTL is the session lifetime from issuance.
const DefaultTTL = 24 * time.Hour

var (
	// ErrInvalid reports a token that is malformed, unsigned, or signed
	// with the wrong key.
	ErrInvalid = errors.New("sessionx: invalid token")

	// ErrExpired reports a well-formed token past its expiry.
	ErrExpired = errors.New("sessionx: token expired")
)

// Issuer signs and verifies session tokens. The zero value is unusable;
// construct with NewIssuer.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewIssuer returns an Issuer signing with secret and issuing tokens valid
// for ttl. A non-positive ttl falls back to DefaultTTL.
func NewIssuer(secret []byte, ttl time.Duration) *Issuer {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Issuer{secret: secret, ttl: ttl, now: time.Now}
}

// TTL returns the configured session lifetime.
func (i *Issuer) TTL() time.Duration { return i.ttl }

// Issue mints a signed token bound to userID, valid for exactly the
// configured TTL from now.
func (i *Issuer) Issue(userID string) (string, error) {
	now := i.now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sessionx: sign token: %w", err)
	}
	return token, nil
}

// Decode verifies the signature and expiry of token and returns the bound
// user identity. Expired tokens yield ErrExpired; everything else that
// fails verification yields ErrInvalid. Callers treat both the same way,
// as "not authenticated".
func (i *Issuer) Decode(token string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(token, claims,
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
			}
			return i.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrExpired
		}
		return "", ErrInvalid
	}

	if claims.Subject == "" {
		return "", ErrInvalid
	}
	return claims.Subject, nil
}

// Package auth provides the identity gate: HS256 bearer tokens carrying a
// principal (staff member or driver). The HTTP layer parses the token into a
// Principal and enforces role checks; ownership checks stay with the
// operations that know which resource is being touched.
package auth

import (
	"errors"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/kernel"

	"github.com/golang-jwt/jwt/v5"
)

// Kind distinguishes the two principal populations.
type Kind string

const (
	// KindStaff is a back-office operator.
	KindStaff Kind = "staff"

	// KindDriver is a delivery driver acting on its own resources.
	KindDriver Kind = "driver"
)

// ErrUnauthenticated is returned when no valid token accompanies a request.
var ErrUnauthenticated = errors.New("authentication required")

// ErrUnauthorized is returned when a valid principal lacks the role for an
// operation.
var ErrUnauthorized = errors.New("principal is not allowed to perform this operation")

// Principal is an authenticated caller.
type Principal struct {
	ID   kernel.UUID
	Kind Kind
}

// IsStaff reports whether the principal is a back-office operator.
func (p Principal) IsStaff() bool {
	return p.Kind == KindStaff
}

// IsDriver reports whether the principal is a driver.
func (p Principal) IsDriver() bool {
	return p.Kind == KindDriver
}

// Owns reports whether the principal is the driver identified by driverID.
// Staff principals never "own" a driver resource; they pass role checks
// instead.
func (p Principal) Owns(driverID kernel.UUID) bool {
	return p.IsDriver() && p.ID.IsEqual(driverID)
}

type claims struct {
	Kind Kind `json:"kind"`
	jwt.RegisteredClaims
}

// TokenManager signs and verifies principal tokens.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenManager creates a manager signing with the given shared secret.
func NewTokenManager(secret string, ttl time.Duration) (*TokenManager, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt secret is required")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("token ttl must be positive")
	}
	return &TokenManager{secret: []byte(secret), ttl: ttl}, nil
}

// Issue signs a token for the principal, valid for the configured TTL.
func (m *TokenManager) Issue(principal Principal, now time.Time) (string, error) {
	if err := principal.ID.Validate(); err != nil {
		return "", err
	}
	if principal.Kind != KindStaff && principal.Kind != KindDriver {
		return "", fmt.Errorf("unknown principal kind %q", principal.Kind)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Kind: principal.Kind,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   principal.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	})

	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Parse verifies the token and extracts its principal. Any defect, wrong
// signature, expiry, malformed subject, surfaces as ErrUnauthenticated so
// the HTTP layer does not leak verification detail.
func (m *TokenManager) Parse(tokenString string) (Principal, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !parsed.Valid {
		return Principal{}, ErrUnauthenticated
	}

	tokenClaims, ok := parsed.Claims.(*claims)
	if !ok {
		return Principal{}, ErrUnauthenticated
	}
	if tokenClaims.Kind != KindStaff && tokenClaims.Kind != KindDriver {
		return Principal{}, ErrUnauthenticated
	}

	id, err := kernel.UUIDFromString(tokenClaims.Subject)
	if err != nil {
		return Principal{}, ErrUnauthenticated
	}

	return Principal{ID: id, Kind: tokenClaims.Kind}, nil
}

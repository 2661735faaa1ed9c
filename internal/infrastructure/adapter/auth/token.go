// Package auth is the identity collaborator: it hashes credentials and
// issues/verifies the bearer tokens that carry (user id, admin flag) into
// the transport layer. The core never sees a raw password or token.
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	errs "github.com/krishkpatil/gaming-cafe/internal/domain/error"
	coreport "github.com/krishkpatil/gaming-cafe/internal/domain/port/core"
)

// Claims carries the verified caller identity inside a JWT
type Claims struct {
	UserID  uint64 `json:"user_id"`
	IsAdmin bool   `json:"is_admin"`
	jwt.RegisteredClaims
}

// TokenMaker issues and verifies HS256 JWTs
type TokenMaker struct {
	secretKey string
	tokenTTL  time.Duration
	clock     coreport.Clock
}

// NewTokenMaker creates a token maker with the given signing key and TTL
func NewTokenMaker(secretKey string, tokenTTL time.Duration, clock coreport.Clock) *TokenMaker {
	return &TokenMaker{
		secretKey: secretKey,
		tokenTTL:  tokenTTL,
		clock:     clock,
	}
}

// Generate creates a signed token for the user
func (m *TokenMaker) Generate(userID uint64, isAdmin bool) (string, error) {
	now := m.clock.Now()
	claims := Claims{
		UserID:  userID,
		IsAdmin: isAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprintf("%d", userID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.tokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(m.secretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a token, returning the caller identity
func (m *TokenMaker) Verify(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(m.secretKey), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s", errs.ErrInvalidCredentials, err.Error())
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errs.ErrInvalidCredentials
	}
	return claims, nil
}

// Package auth implements the cryptographic pieces of the identity core:
// HS256-signed access/refresh tokens, one-way refresh-token hashing, and
// bcrypt password hashing.
package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/dmitrijs2005/stackr/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// TokenKind distinguishes access from refresh tokens inside the claims,
// so one can never be replayed as the other.
type TokenKind string

const (
	TokenKindAccess  TokenKind = "access"
	TokenKindRefresh TokenKind = "refresh"
)

// Claims carries the registered claims plus the user's email and the
// token kind. Subject holds the user id.
type Claims struct {
	jwt.RegisteredClaims
	Email string    `json:"email"`
	Kind  TokenKind `json:"type"`
}

// GenerateToken signs a token of the given kind for userID with HS256.
func GenerateToken(userID, email string, kind TokenKind, secretKey []byte, validityDuration time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validityDuration)),
		},
		Email: email,
		Kind:  kind,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ParseToken verifies signature and expiry and returns the claims.
// Every failure mode collapses into common.ErrInvalidToken: callers must
// not be able to distinguish a forged token from an expired one.
func ParseToken(tokenString string, secretKey []byte) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, common.ErrInvalidToken
		}
		return secretKey, nil
	})
	if err != nil || !token.Valid {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}

// HashToken returns the hex-encoded SHA-256 digest of an opaque token
// string. Refresh tokens are persisted only in this form.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

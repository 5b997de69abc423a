// Package auth implements the token codec and the credential verifier:
// signed identity tokens (HS256 JWT) and bcrypt password hashing.
package auth

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/mbelov/microblog/internal/common"
)

// Claims carries the identity of an authenticated user inside a token
// and, per-request, inside the request context.
type Claims struct {
	jwt.RegisteredClaims
	UserID int64  `json:"uid"`
	Email  string `json:"email"`
	Name   string `json:"name"`
}

// GenerateToken signs identity claims for the given user. IssuedAt is
// set to now and ExpiresAt to now + validityDuration.
func GenerateToken(userID int64, email, name string, secretKey []byte, validityDuration time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validityDuration)),
		},
		UserID: userID,
		Email:  email,
		Name:   name,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ValidateToken verifies the signature and expiry of tokenString and
// returns the embedded claims. Failures are reported as one of
// common.ErrTokenExpired, common.ErrTokenSignatureInvalid, or
// common.ErrTokenMalformed; claims are never returned on failure.
func ValidateToken(tokenString string, secretKey []byte) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, common.ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, common.ErrTokenSignatureInvalid
		default:
			return nil, common.ErrTokenMalformed
		}
	}

	if !token.Valid {
		return nil, common.ErrTokenMalformed
	}

	return claims, nil
}

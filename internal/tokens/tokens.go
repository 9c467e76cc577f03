package tokens

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Типы токенов в claim token_type.
const (
	TypeAccess  = "access"
	TypeRefresh = "refresh"
)

var (
	ErrInvalid   = errors.New("token is invalid or expired")
	ErrWrongType = errors.New("token has wrong type")
)

// Claims — полезная нагрузка JWT backend.
type Claims struct {
	UserID    int64  `json:"user_id"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// Parse validates the HS256 signature and expiry of raw and returns its claims.
func Parse(secret, raw string) (*Claims, error) {
	if raw == "" {
		return nil, ErrInvalid
	}
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if claims.TokenType != TypeAccess && claims.TokenType != TypeRefresh {
		return nil, ErrWrongType
	}
	return claims, nil
}

// ParseAccess is Parse restricted to access tokens.
func ParseAccess(secret, raw string) (*Claims, error) {
	c, err := Parse(secret, raw)
	if err != nil {
		return nil, err
	}
	if c.TokenType != TypeAccess {
		return nil, ErrWrongType
	}
	return c, nil
}

// Sign creates an HS256 token for userID. Used by fixtures and tooling;
// the server itself never hands tokens out.
func Sign(secret string, userID int64, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:    userID,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrInvalidToken = errors.New("invalid token")

// Claims carried by an access token. Subject is the username.
type Claims struct {
	jwt.RegisteredClaims
}

// GenerateToken signs a token for username that expires after ttl.
func GenerateToken(config JWTConfig, username string, now time.Time) (string, time.Time, error) {
	method := jwt.GetSigningMethod(config.Algorithm)
	if method == nil {
		return "", time.Time{}, fmt.Errorf("unsupported signing algorithm %q", config.Algorithm)
	}

	expiresAt := now.Add(config.TTL())
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			ID:        uuid.NewString(),
		},
	}

	signed, err := jwt.NewWithClaims(method, claims).SignedString([]byte(config.Secret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}

	return signed, expiresAt, nil
}

// ParseToken verifies algorithm, signature and expiry and returns the claims.
// Every failure is reported as ErrInvalidToken wrapping the cause.
func ParseToken(config JWTConfig, tokenString string, now time.Time) (*Claims, error) {
	claims := &Claims{}

	_, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (any, error) {
			return []byte(config.Secret), nil
		},
		jwt.WithValidMethods([]string{config.Algorithm}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}

	return claims, nil
}

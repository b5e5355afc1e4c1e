package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	jwtSecret     []byte
	tokenLifetime = 72 * time.Hour
)

var ErrInvalidToken = errors.New("invalid token")

// Init stores the signing secret and token lifetime used by the
// handlers in this package.
func Init(secret string, lifetime time.Duration) {
	jwtSecret = []byte(secret)
	if lifetime > 0 {
		tokenLifetime = lifetime
	}
}

// Secret returns the configured signing secret.
func Secret() []byte {
	return jwtSecret
}

// GenerateToken mints an HS256 bearer token carrying the user id.
func GenerateToken(userID string, secret []byte, lifetime time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(lifetime).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// UserIDFromToken verifies a bearer token and extracts the user id.
func UserIDFromToken(tokenStr string, secret []byte) (string, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", ErrInvalidToken
	}
	return userID, nil
}

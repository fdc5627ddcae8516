package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const tokenTTL = 72 * time.Hour

var ErrInvalidToken = errors.New("invalid or expired token")

func GenerateJWT(userID uint, username, secret string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userId":   userID,
		"username": username,
		"exp":      time.Now().Add(tokenTTL).Unix(),
	})
	return token.SignedString([]byte(secret))
}

// ParseJWT validates the signature and expiry and returns the user id claim.
func ParseJWT(tokenStr, secret string) (uint, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return 0, ErrInvalidToken
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, ErrInvalidToken
	}
	id, ok := claims["userId"].(float64)
	if !ok || id <= 0 {
		return 0, ErrInvalidToken
	}
	return uint(id), nil
}

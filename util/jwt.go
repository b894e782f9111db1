package util

import (
	"errors"
	"time"

	"github.com/dgrijalva/jwt-go"
)

// GenerateToken signs an HS256 token carrying the user id.
func GenerateToken(userID int, secret string, ttl time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(ttl).Unix(),
	})
	return token.SignedString([]byte(secret))
}

// ValidateToken parses a token and returns the user id it carries.
func ValidateToken(tokenString, secret string) (int, error) {
	if tokenString == "" {
		return 0, errors.New("empty token")
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return 0, err
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		userID, ok := claims["user_id"].(float64)
		if !ok {
			return 0, errors.New("invalid user id claim")
		}
		return int(userID), nil
	}

	return 0, errors.New("invalid token")
}

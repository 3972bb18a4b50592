package jwt

import (
	"fmt"
	"time"

	"github.com/ecopath/dispatch/internal/pkg/models"
	"github.com/golang-jwt/jwt/v4"
)

// GenerateToken creates a signed JWT for a user with the given role
func GenerateToken(userID, role string, config models.JWTConfig) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"role":    role,
		"iss":     config.Issuer,
		"iat":     time.Now().Unix(),
		"exp":     time.Now().Add(time.Duration(config.Expiration) * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(config.Secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// ValidateToken validates a JWT and returns its claims
func ValidateToken(tokenString, secret string) (*jwt.MapClaims, error) {
	claims := &jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})

	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	return claims, nil
}

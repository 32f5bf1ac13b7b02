package utils

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var JWTSecret []byte

func init() {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		// Development fallback, override in production via .env
		secret = "QmsToolDevSecret2024"
	}
	JWTSecret = []byte(secret)
}

// CustomClaims carries the caller identity plus the business areas the
// caller is authorised to read and write. An empty BusinessAreas slice is a
// valid token; every scoped endpoint treats it as unauthorized.
type CustomClaims struct {
	UserID        uint     `json:"user_id"`
	Role          string   `json:"role"`
	BusinessAreas []string `json:"business_areas"`
	jwt.RegisteredClaims
}

func GenerateToken(userID uint, role string, businessAreas []string) (string, error) {
	claims := &CustomClaims{
		UserID:        userID,
		Role:          role,
		BusinessAreas: businessAreas,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour * 24)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "QmsTool",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(JWTSecret)
}

func ParseToken(tokenString string) (*CustomClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &CustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		return JWTSecret, nil
	})

	if err != nil || !token.Valid {
		return nil, errors.New("invalid or expired token")
	}

	claims, ok := token.Claims.(*CustomClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}

	return claims, nil
}

package utils

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// Claims terpadu untuk access token dan reset token.
// IsReset hanya true pada token reset password.
type Claims struct {
	IDUser   string `json:"id_user"`
	Username string `json:"username"`
	Email    string `json:"email"`
	IsReset  bool   `json:"is_reset,omitempty"`
	jwt.RegisteredClaims
}

// GenerateToken membuat access token HS256 dengan exp sesuai parameter.
func GenerateToken(secret, idUser, username, email string, exp time.Time) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("JWT secret key is missing")
	}
	claims := Claims{
		IDUser:   idUser,
		Username: username,
		Email:    email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// GenerateResetToken membuat token berumur pendek dengan klaim is_reset
// untuk menjaga tahap penyelesaian reset password.
func GenerateResetToken(secret, idUser string, exp time.Time) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("JWT secret key is missing")
	}
	claims := Claims{
		IDUser:  idUser,
		IsReset: true,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ValidateToken memvalidasi token dan mengembalikan klaim terpadu.
func ValidateToken(secret, tokenString string) (*Claims, error) {
	claims := &Claims{}
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

package authentication

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/LokeshAnde180/docspot/models"
)

// Claims is the identity embedded in every bearer token. It is the sole
// source of role and identity for authorized calls; an approval or role
// change after issue is not reflected until re-login.
type Claims struct {
	ID         uint        `json:"id"`
	Role       models.Role `json:"role"`
	Username   string      `json:"username"`
	IsApproved bool        `json:"isApproved"`
	jwt.RegisteredClaims
}

// GenerateToken signs a session token for the user.
func GenerateToken(user *models.User, secret []byte, ttl time.Duration) (string, error) {
	claims := &Claims{
		ID:         user.ID,
		Role:       user.Role,
		Username:   user.Username,
		IsApproved: user.IsApproved,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ParseToken verifies the signature and expiry and returns the claims.
func ParseToken(tokenString string, secret []byte) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return secret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

package models

import (
	"github.com/golang-jwt/jwt"
)

// Claims carried inside access tokens issued by the authentication service.
type Claims struct {
	UserID int    `json:"user_id"`
	Role   string `json:"role"`
	jwt.StandardClaims
}

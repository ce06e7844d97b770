package model

import "github.com/golang-jwt/jwt/v5"

// AppClaims is the typed claim set embedded in access tokens. Role may be
// empty when a token was minted before the account was assigned one; the
// role gate treats that as a distinct failure.
type AppClaims struct {
	UserID int    `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

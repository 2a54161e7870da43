package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims is the payload of a portal session token. JSON keys match the
// wire format the front end already consumes.
type TokenClaims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/mbetts-dev/campusdocs/internal/models"
)

// TokenManager issues and verifies signed session tokens. Tokens are
// stateless; revocation before natural expiry is handled by the revoked
// token repository, not here.
type TokenManager struct {
	secret []byte
	expiry time.Duration
}

// NewTokenManager creates a new TokenManager. An empty secret is a
// configuration error caught at startup by config.Load, never here.
func NewTokenManager(secret string, expiry time.Duration) *TokenManager {
	return &TokenManager{
		secret: []byte(secret),
		expiry: expiry,
	}
}

// Issue signs a session token binding the user's id, email, and role.
func (tm *TokenManager) Issue(user *models.User) (string, error) {
	now := time.Now()
	claims := &models.TokenClaims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tm.expiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(tm.secret)
}

// Validate verifies signature then expiry and returns the claims.
// Returns models.ErrTokenExpired for a well-signed but expired token and
// models.ErrTokenMalformed for every other failure, so callers can tell a
// client to re-authenticate versus treat the token as garbage. Claims are
// never inspected before the signature checks out.
func (tm *TokenManager) Validate(tokenString string) (*models.TokenClaims, error) {
	claims := &models.TokenClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, models.ErrTokenMalformed
		}
		return tm.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, models.ErrTokenExpired
		}
		return nil, models.ErrTokenMalformed
	}

	if !token.Valid {
		return nil, models.ErrTokenMalformed
	}

	return claims, nil
}

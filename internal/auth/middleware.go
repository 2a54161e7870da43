package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/mbetts-dev/campusdocs/internal/models"
	pkghttp "github.com/mbetts-dev/campusdocs/pkg/http"
)

// contextKey is a custom type for context keys
type contextKey string

const (
	// UserContextKey is the key for storing verified claims in context
	UserContextKey contextKey = "user"
)

// RevocationChecker is the ledger lookup the gate consults before trusting
// a token's own expiry.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, token string) (bool, error)
}

// BearerToken extracts the token from an Authorization header of the exact
// form "Bearer <token>". Anything else is treated as absent.
func BearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}

	return parts[1], true
}

// Authenticate is the request-time authorization gate. Checks run strictly
// in order, short-circuiting on first failure: bearer extraction, revocation
// lookup, signature, expiry. Verified claims are injected into the request
// context for downstream handlers.
func Authenticate(tm *TokenManager, ledger RevocationChecker) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, ok := BearerToken(r)
			if !ok {
				pkghttp.WriteUnauthorized(w, "No token provided")
				return
			}

			revoked, err := ledger.IsRevoked(r.Context(), tokenString)
			if err != nil {
				pkghttp.WriteInternalError(w, "Server error during authentication")
				return
			}
			if revoked {
				pkghttp.WriteUnauthorized(w, "Token has been invalidated")
				return
			}

			claims, err := tm.Validate(tokenString)
			if err != nil {
				if errors.Is(err, models.ErrTokenExpired) {
					pkghttp.WriteUnauthorized(w, "Token expired")
					return
				}
				pkghttp.WriteUnauthorized(w, "Invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), UserContextKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole enforces that the verified role is one of roles. Must be
// mounted after Authenticate.
func RequireRole(roles ...string) func(next http.Handler) http.Handler {
	allowed := make(map[string]bool, len(roles))
	for _, role := range roles {
		allowed[role] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := GetUserFromContext(r)
			if claims == nil {
				pkghttp.WriteUnauthorized(w, "No token provided")
				return
			}

			if !allowed[claims.Role] {
				pkghttp.WriteForbidden(w, "Access denied. Admin privileges required.")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// GetUserFromContext extracts verified claims from the request context
func GetUserFromContext(r *http.Request) *models.TokenClaims {
	claims, ok := r.Context().Value(UserContextKey).(*models.TokenClaims)
	if !ok {
		return nil
	}
	return claims
}

package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mbetts-dev/campusdocs/internal/auth"
	"github.com/mbetts-dev/campusdocs/internal/models"
	"github.com/mbetts-dev/campusdocs/internal/services"
	pkgauth "github.com/mbetts-dev/campusdocs/pkg/auth"
	pkghttp "github.com/mbetts-dev/campusdocs/pkg/http"
)

// AuthServiceInterface defines the interface for auth business logic
type AuthServiceInterface interface {
	Login(ctx context.Context, email, password, ipAddress string) (*services.LoginResult, error)
	Logout(ctx context.Context, token string) error
	Register(ctx context.Context, email, password string) error
}

// AuthHandler handles login, logout, and registration requests
type AuthHandler struct {
	service  AuthServiceInterface
	ipConfig *pkghttp.IPConfig
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(service AuthServiceInterface, ipConfig *pkghttp.IPConfig) *AuthHandler {
	return &AuthHandler{
		service:  service,
		ipConfig: ipConfig,
	}
}

// LoginRequest represents the request body for login
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterRequest represents the request body for registration
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Login handles POST /api/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Email and password are required")
		return
	}

	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, "Email and password are required")
		return
	}

	ipAddress := pkghttp.ExtractClientIP(r, h.ipConfig)

	result, err := h.service.Login(r.Context(), req.Email, req.Password, ipAddress)
	if err != nil {
		var lockoutErr *models.LockoutError
		switch {
		case errors.As(err, &lockoutErr):
			pkghttp.WriteLockout(w, lockoutErr.RetryAfter, lockoutErr.Attempts)
		case errors.Is(err, models.ErrUnauthorized):
			pkghttp.WriteUnauthorized(w, "Invalid email or password")
		case errors.Is(err, models.ErrForbidden):
			pkghttp.WriteForbidden(w, "Access denied. Admin privileges required.")
		default:
			pkghttp.WriteInternalError(w, "Server error during login")
		}
		return
	}

	pkghttp.WriteSuccess(w, http.StatusOK, "Login successful!", map[string]any{
		"token": result.Token,
		"user":  result.User,
	})
}

// Logout handles POST /api/logout. The gate has already verified the token;
// the raw value is re-extracted here for the deny-list insert.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token, ok := auth.BearerToken(r)
	if !ok {
		pkghttp.WriteUnauthorized(w, "No token provided")
		return
	}

	if err := h.service.Logout(r.Context(), token); err != nil {
		if errors.Is(err, models.ErrUnauthorized) {
			pkghttp.WriteUnauthorized(w, "Invalid token")
			return
		}
		pkghttp.WriteInternalError(w, "Server error during logout")
		return
	}

	pkghttp.WriteSuccess(w, http.StatusOK, "Logout successful", nil)
}

// Register handles POST /api/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Email and password are required")
		return
	}

	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	if err := pkgauth.ValidatePassword(req.Password); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	if err := h.service.Register(r.Context(), req.Email, req.Password); err != nil {
		if errors.Is(err, models.ErrConflict) {
			pkghttp.WriteConflict(w, "Email already registered")
			return
		}
		pkghttp.WriteInternalError(w, "Server error during registration")
		return
	}

	pkghttp.WriteSuccess(w, http.StatusCreated, "Registration successful! You can now login.", nil)
}

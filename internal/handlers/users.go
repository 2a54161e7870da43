package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mbetts-dev/campusdocs/internal/auth"
	"github.com/mbetts-dev/campusdocs/internal/models"
	pkgauth "github.com/mbetts-dev/campusdocs/pkg/auth"
	pkghttp "github.com/mbetts-dev/campusdocs/pkg/http"
)

// UserServiceInterface defines the interface for account management logic
type UserServiceInterface interface {
	ListUsers(ctx context.Context) ([]*models.User, error)
	CreateUser(ctx context.Context, actorID, email, password, role string) (*models.User, error)
	ChangePassword(ctx context.Context, actorID, actorRole, targetID, newPassword string) error
	DeleteUser(ctx context.Context, actorID, targetID string) error
}

// UserHandler handles the admin-panel account endpoints
type UserHandler struct {
	service UserServiceInterface
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(service UserServiceInterface) *UserHandler {
	return &UserHandler{service: service}
}

// CreateUserRequest represents the request body for account creation
type CreateUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"omitempty,oneof=user admin superadmin"`
}

// ChangePasswordRequest represents the request body for a password change
type ChangePasswordRequest struct {
	NewPassword string `json:"newPassword" validate:"required"`
}

// UserResponse is the account DTO; password hashes never leave the service
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

func toUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

// List handles GET /api/users
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.ListUsers(r.Context())
	if err != nil {
		pkghttp.WriteInternalError(w, "Server error fetching users")
		return
	}

	resp := make([]UserResponse, 0, len(users))
	for _, u := range users {
		resp = append(resp, toUserResponse(u))
	}

	pkghttp.WriteJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"users":   resp,
	})
}

// Create handles POST /api/users
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims := auth.GetUserFromContext(r)
	if claims == nil {
		pkghttp.WriteUnauthorized(w, "No token provided")
		return
	}

	var req CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
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

	if req.Role == "" {
		req.Role = models.RoleUser
	}

	user, err := h.service.CreateUser(r.Context(), claims.UserID, req.Email, req.Password, req.Role)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrForbidden):
			pkghttp.WriteForbidden(w, "Only user accounts can be created here")
		case errors.Is(err, models.ErrConflict):
			pkghttp.WriteConflict(w, "Email already registered")
		default:
			pkghttp.WriteInternalError(w, "Server error creating user")
		}
		return
	}

	pkghttp.WriteSuccess(w, http.StatusCreated, "User created successfully", map[string]any{
		"user": toUserResponse(user),
	})
}

// UpdateRole handles PUT /api/users/{id}/role. Role changes through the API
// are disabled; every request is refused.
func (h *UserHandler) UpdateRole(w http.ResponseWriter, r *http.Request) {
	pkghttp.WriteForbidden(w, "Role update is disabled. Please contact superadmin for role changes.")
}

// ChangePassword handles PUT /api/users/{id}/password
func (h *UserHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	claims := auth.GetUserFromContext(r)
	if claims == nil {
		pkghttp.WriteUnauthorized(w, "No token provided")
		return
	}

	targetID := chi.URLParam(r, "id")

	var req ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	if err := pkgauth.ValidatePassword(req.NewPassword); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	err := h.service.ChangePassword(r.Context(), claims.UserID, claims.Role, targetID, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrNotFound):
			pkghttp.WriteNotFound(w, "User not found")
		case errors.Is(err, models.ErrForbidden):
			pkghttp.WriteForbidden(w, "Only superadmin can manage admin accounts")
		default:
			pkghttp.WriteInternalError(w, "Server error updating password")
		}
		return
	}

	pkghttp.WriteSuccess(w, http.StatusOK, "Password updated successfully", nil)
}

// Delete handles DELETE /api/users/{id}
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims := auth.GetUserFromContext(r)
	if claims == nil {
		pkghttp.WriteUnauthorized(w, "No token provided")
		return
	}

	targetID := chi.URLParam(r, "id")

	err := h.service.DeleteUser(r.Context(), claims.UserID, targetID)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrNotFound):
			pkghttp.WriteNotFound(w, "User not found")
		case errors.Is(err, models.ErrForbidden):
			pkghttp.WriteForbidden(w, "Admin accounts cannot be deleted here")
		case errors.Is(err, models.ErrBadRequest):
			pkghttp.WriteBadRequest(w, "You cannot delete your own account")
		default:
			pkghttp.WriteInternalError(w, "Server error deleting user")
		}
		return
	}

	pkghttp.WriteSuccess(w, http.StatusOK, "User deleted successfully", nil)
}

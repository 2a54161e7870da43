package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbetts-dev/campusdocs/internal/models"
	"github.com/mbetts-dev/campusdocs/internal/services"
)

func postJSON(t *testing.T, handler http.HandlerFunc, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestAuthHandler_Login_Success(t *testing.T) {
	service := &MockAuthService{
		LoginFunc: func(ctx context.Context, email, password, ipAddress string) (*services.LoginResult, error) {
			assert.Equal(t, "admin@campus.edu", email)
			assert.NotEmpty(t, ipAddress)
			return &services.LoginResult{
				Token: "signed-token",
				User:  &services.UserSummary{ID: "user-1", Email: email, Role: models.RoleAdmin},
			}, nil
		},
	}
	handler := NewAuthHandler(service, nil)

	rec := postJSON(t, handler.Login, "/api/login", LoginRequest{
		Email:    "admin@campus.edu",
		Password: "Correct1Horse",
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Login successful!", body["message"])
	assert.Equal(t, "signed-token", body["token"])

	user, ok := body["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "user-1", user["id"])
	assert.Equal(t, models.RoleAdmin, user["role"])
}

func TestAuthHandler_Login_MissingFields(t *testing.T) {
	handler := NewAuthHandler(&MockAuthService{}, nil)

	rec := postJSON(t, handler.Login, "/api/login", map[string]string{"email": "admin@campus.edu"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Email and password are required", body["message"])
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	service := &MockAuthService{
		LoginFunc: func(ctx context.Context, email, password, ipAddress string) (*services.LoginResult, error) {
			return nil, models.ErrUnauthorized
		},
	}
	handler := NewAuthHandler(service, nil)

	rec := postJSON(t, handler.Login, "/api/login", LoginRequest{
		Email:    "admin@campus.edu",
		Password: "wrong",
	})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Invalid email or password", body["message"])
}

func TestAuthHandler_Login_NonAdminRole(t *testing.T) {
	service := &MockAuthService{
		LoginFunc: func(ctx context.Context, email, password, ipAddress string) (*services.LoginResult, error) {
			return nil, models.ErrForbidden
		},
	}
	handler := NewAuthHandler(service, nil)

	rec := postJSON(t, handler.Login, "/api/login", LoginRequest{
		Email:    "member@campus.edu",
		Password: "Correct1Horse",
	})

	assert.Equal(t, http.StatusForbidden, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Access denied. Admin privileges required.", body["message"])
}

func TestAuthHandler_Login_Lockout(t *testing.T) {
	service := &MockAuthService{
		LoginFunc: func(ctx context.Context, email, password, ipAddress string) (*services.LoginResult, error) {
			return nil, &models.LockoutError{RetryAfter: 137, Attempts: 5}
		},
	}
	handler := NewAuthHandler(service, nil)

	rec := postJSON(t, handler.Login, "/api/login", LoginRequest{
		Email:    "admin@campus.edu",
		Password: "wrong",
	})

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Too many login attempts. Please try again later.", body["message"])
	assert.Equal(t, float64(137), body["lockoutTime"])
	assert.Equal(t, float64(5), body["attempts"])
}

func TestAuthHandler_Logout(t *testing.T) {
	var revokedToken string
	service := &MockAuthService{
		LogoutFunc: func(ctx context.Context, token string) error {
			revokedToken = token
			return nil
		},
	}
	handler := NewAuthHandler(service, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/logout", nil)
	req.Header.Set("Authorization", "Bearer the-token")
	rec := httptest.NewRecorder()
	handler.Logout(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "the-token", revokedToken)
	body := decodeBody(t, rec)
	assert.Equal(t, "Logout successful", body["message"])
}

func TestAuthHandler_Logout_NoToken(t *testing.T) {
	handler := NewAuthHandler(&MockAuthService{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/logout", nil)
	rec := httptest.NewRecorder()
	handler.Logout(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "No token provided", body["message"])
}

func TestAuthHandler_Register_Success(t *testing.T) {
	service := &MockAuthService{
		RegisterFunc: func(ctx context.Context, email, password string) error {
			return nil
		},
	}
	handler := NewAuthHandler(service, nil)

	rec := postJSON(t, handler.Register, "/api/register", RegisterRequest{
		Email:    "student@campus.edu",
		Password: "Fresh1Password",
	})

	assert.Equal(t, http.StatusCreated, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Registration successful! You can now login.", body["message"])
}

func TestAuthHandler_Register_WeakPassword(t *testing.T) {
	called := false
	service := &MockAuthService{
		RegisterFunc: func(ctx context.Context, email, password string) error {
			called = true
			return nil
		},
	}
	handler := NewAuthHandler(service, nil)

	rec := postJSON(t, handler.Register, "/api/register", RegisterRequest{
		Email:    "student@campus.edu",
		Password: "alllowercase1",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, called)
}

func TestAuthHandler_Register_Duplicate(t *testing.T) {
	service := &MockAuthService{
		RegisterFunc: func(ctx context.Context, email, password string) error {
			return models.ErrConflict
		},
	}
	handler := NewAuthHandler(service, nil)

	rec := postJSON(t, handler.Register, "/api/register", RegisterRequest{
		Email:    "taken@campus.edu",
		Password: "Fresh1Password",
	})

	assert.Equal(t, http.StatusConflict, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Email already registered", body["message"])
}

package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbetts-dev/campusdocs/internal/auth"
	"github.com/mbetts-dev/campusdocs/internal/handlers"
	"github.com/mbetts-dev/campusdocs/internal/models"
	"github.com/mbetts-dev/campusdocs/internal/services"
	pkgauth "github.com/mbetts-dev/campusdocs/pkg/auth"
	pkglogger "github.com/mbetts-dev/campusdocs/pkg/logger"
)

// newTestRouter wires the full stack behind an in-memory identity store and
// revocation ledger, with real token issuance and a real gate.
func newTestRouter(t *testing.T) chi.Router {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	hasher := pkgauth.NewHasher(4)

	hash, err := hasher.Hash("Correct1Horse")
	require.NoError(t, err)

	admin := &models.User{
		ID:           "admin-1",
		Email:        "admin@campus.edu",
		PasswordHash: hash,
		Role:         models.RoleAdmin,
	}

	repo := &services.MockUserRepository{
		GetByEmailFunc: func(ctx context.Context, email string) (*models.User, error) {
			if email == admin.Email {
				return admin, nil
			}
			return nil, models.ErrNotFound
		},
		ListFunc: func(ctx context.Context) ([]*models.User, error) {
			return []*models.User{admin}, nil
		},
	}

	ledger := services.NewMemoryLedger()
	tokenManager := auth.NewTokenManager("test-secret-with-sufficient-length", time.Hour)
	lockout := auth.NewLockoutTracker(5, 200*time.Second)
	auditLogger := pkglogger.NewAuditLogger(logger)

	authService := services.NewAuthService(repo, ledger, tokenManager, lockout, hasher, nil, logger, auditLogger)
	userService := services.NewUserService(repo, hasher, logger, auditLogger)
	uploadService := services.NewUploadService(&services.MockUserUploadRepository{}, logger, auditLogger)
	materialService := services.NewMaterialService(&services.MockMaterialRepository{}, nil, logger)

	router := chi.NewRouter()
	RegisterRoutes(
		router,
		handlers.NewAuthHandler(authService, nil),
		handlers.NewUserHandler(userService),
		handlers.NewMaterialHandler(materialService),
		handlers.NewUploadHandler(uploadService),
		tokenManager,
		ledger,
	)
	return router
}

func doLogin(t *testing.T, router chi.Router, email, password string) *httptest.ResponseRecorder {
	t.Helper()

	raw, err := json.Marshal(map[string]string{"email": email, "password": password})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/login", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func bodyOf(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestSessionLifecycle(t *testing.T) {
	router := newTestRouter(t)

	// Login
	rec := doLogin(t, router, "admin@campus.edu", "Correct1Horse")
	require.Equal(t, http.StatusOK, rec.Code)
	token, ok := bodyOf(t, rec)["token"].(string)
	require.True(t, ok)
	require.NotEmpty(t, token)

	// Protected endpoint with the fresh token
	req := httptest.NewRequest(http.MethodGet, "/materials", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	// Logout
	req = httptest.NewRequest(http.MethodPost, "/api/logout", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	// The same token is refused even though its own expiry has not passed
	req = httptest.NewRequest(http.MethodGet, "/materials", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Token has been invalidated", bodyOf(t, rec)["message"])
}

func TestProtectedEndpointWithoutToken(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/materials", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "No token provided", bodyOf(t, rec)["message"])
}

func TestProtectedEndpointWithGarbageToken(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/materials", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid token", bodyOf(t, rec)["message"])
}

func TestAdminRoutesRequireAdminRole(t *testing.T) {
	router := newTestRouter(t)

	rec := doLogin(t, router, "admin@campus.edu", "Correct1Horse")
	require.Equal(t, http.StatusOK, rec.Code)
	token := bodyOf(t, rec)["token"].(string)

	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestLoginWrongPassword(t *testing.T) {
	router := newTestRouter(t)

	rec := doLogin(t, router, "admin@campus.edu", "Wrong1Password")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid email or password", bodyOf(t, rec)["message"])
}

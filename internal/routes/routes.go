package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/mbetts-dev/campusdocs/internal/auth"
	"github.com/mbetts-dev/campusdocs/internal/handlers"
	"github.com/mbetts-dev/campusdocs/internal/middleware"
	"github.com/mbetts-dev/campusdocs/internal/models"
)

// RegisterRoutes registers all application routes. Paths mirror the
// portal front end exactly, including the bare /materials and
// /upload-material prefixes.
func RegisterRoutes(
	router chi.Router,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	materialHandler *handlers.MaterialHandler,
	uploadHandler *handlers.UploadHandler,
	tokenManager *auth.TokenManager,
	ledger auth.RevocationChecker,
) {
	rateLimitConfig := middleware.DefaultAuthRateLimit()

	// Public routes
	router.With(middleware.RateLimitByIP(rateLimitConfig)).Post("/api/login", authHandler.Login)
	router.With(middleware.RateLimitByIP(rateLimitConfig)).Post("/api/register", authHandler.Register)

	// Protected routes: any authenticated session
	router.Group(func(r chi.Router) {
		r.Use(auth.Authenticate(tokenManager, ledger))

		r.Post("/api/logout", authHandler.Logout)

		r.Get("/materials", materialHandler.List)
		r.Post("/upload-material", materialHandler.Upload)
		r.Put("/materials/{id}", materialHandler.Update)
		r.Delete("/materials/{id}", materialHandler.Delete)

		// Admin panel
		r.Group(func(r chi.Router) {
			r.Use(auth.RequireRole(models.RoleAdmin, models.RoleSuperadmin))

			r.Get("/api/users", userHandler.List)
			r.Post("/api/users", userHandler.Create)
			r.Put("/api/users/{id}/role", userHandler.UpdateRole)
			r.Put("/api/users/{id}/password", userHandler.ChangePassword)
			r.Delete("/api/users/{id}", userHandler.Delete)

			r.Get("/api/user-uploads", uploadHandler.List)
			r.Get("/api/user-uploads/pending", uploadHandler.ListPending)
			r.Put("/api/user-uploads/{id}/approve", uploadHandler.Approve)
			r.Put("/api/user-uploads/{id}/reject", uploadHandler.Reject)
			r.Put("/api/user-uploads/{id}/pending", uploadHandler.MarkPending)
			r.Put("/api/user-uploads/{id}", uploadHandler.Update)
			r.Delete("/api/user-uploads/{id}", uploadHandler.Delete)
		})
	})
}

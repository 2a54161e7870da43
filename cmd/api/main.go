package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/mbetts-dev/campusdocs/internal/auth"
	"github.com/mbetts-dev/campusdocs/internal/background"
	"github.com/mbetts-dev/campusdocs/internal/config"
	"github.com/mbetts-dev/campusdocs/internal/database"
	"github.com/mbetts-dev/campusdocs/internal/handlers"
	middlewareCustom "github.com/mbetts-dev/campusdocs/internal/middleware"
	"github.com/mbetts-dev/campusdocs/internal/models"
	"github.com/mbetts-dev/campusdocs/internal/repositories"
	"github.com/mbetts-dev/campusdocs/internal/routes"
	"github.com/mbetts-dev/campusdocs/internal/services"
	"github.com/mbetts-dev/campusdocs/internal/storage"
	pkgauth "github.com/mbetts-dev/campusdocs/pkg/auth"
	pkghttp "github.com/mbetts-dev/campusdocs/pkg/http"
	pkglogger "github.com/mbetts-dev/campusdocs/pkg/logger"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("configuration loaded", slog.String("env", cfg.Server.Env))

	db, err := database.NewConnection(&cfg.Database, logger)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer db.Close()

	// Repositories
	userRepo := repositories.NewUserRepository(db)
	revokedTokenRepo := repositories.NewRevokedTokenRepository(db)
	materialRepo := repositories.NewMaterialRepository(db)
	userUploadRepo := repositories.NewUserUploadRepository(db)

	// Expired deny-list entries are swept hourly
	cleanupManager := background.NewCleanupManager(revokedTokenRepo, logger, cfg.Auth.CleanupInterval)

	tokenManager := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenExpiry)
	lockoutTracker := auth.NewLockoutTracker(cfg.Auth.LockoutThreshold, cfg.Auth.LockoutDuration)
	hasher := pkgauth.NewHasher(cfg.Auth.BcryptCost)
	failureDelay := auth.NewFailureDelay(100*time.Millisecond, 100*time.Millisecond)
	auditLogger := pkglogger.NewAuditLogger(logger)

	// Object store for material files
	storeCtx, storeCancel := context.WithTimeout(context.Background(), 10*time.Second)
	objectStore, err := storage.NewS3Store(storeCtx, &cfg.Storage, logger)
	storeCancel()
	if err != nil {
		logger.Error("failed to initialize object store", slog.Any("error", err))
		os.Exit(1)
	}

	// Services
	authService := services.NewAuthService(userRepo, revokedTokenRepo, tokenManager, lockoutTracker, hasher, failureDelay, logger, auditLogger)
	userService := services.NewUserService(userRepo, hasher, logger, auditLogger)
	materialService := services.NewMaterialService(materialRepo, objectStore, logger)
	uploadService := services.NewUploadService(userUploadRepo, logger, auditLogger)

	// Handlers
	ipConfig := &pkghttp.IPConfig{TrustedProxies: cfg.Server.TrustedProxies}
	authHandler := handlers.NewAuthHandler(authService, ipConfig)
	userHandler := handlers.NewUserHandler(userService)
	materialHandler := handlers.NewMaterialHandler(materialService)
	uploadHandler := handlers.NewUploadHandler(uploadService)

	// Bootstrap first admin user if configured
	bootstrapCtx, bootstrapCancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := ensureAdminUser(bootstrapCtx, userRepo, hasher, logger); err != nil {
		logger.Error("failed to ensure admin user", slog.Any("error", err))
	}
	bootstrapCancel()

	corsConfig := middlewareCustom.NewCORSConfig(cfg.Server.AllowedOrigins)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middlewareCustom.SecurityHeaders(middlewareCustom.SecurityHeadersConfig{Env: cfg.Server.Env}))
	router.Use(middlewareCustom.CORS(corsConfig))
	router.Use(middlewareCustom.SecureLogger(logger))
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(60 * time.Second))

	routes.RegisterRoutes(router, authHandler, userHandler, materialHandler, uploadHandler, tokenManager, revokedTokenRepo)

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := db.HealthCheck(ctx); err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"status":"unhealthy","database":"down"}`))
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy","database":"up"}`))
	})

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	cleanupCtx, cleanupCancel := context.WithCancel(context.Background())
	defer cleanupCancel()

	go cleanupManager.Start(cleanupCtx)

	go func() {
		logger.Info("starting server", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Info("shutdown signal received")

	cleanupCancel()
	cleanupManager.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("server stopped gracefully")
}

// ensureAdminUser creates the first admin user if ADMIN_EMAIL and
// ADMIN_PASSWORD are set. Admin accounts are otherwise never creatable
// through the API.
func ensureAdminUser(ctx context.Context, userRepo *repositories.UserRepository, hasher *pkgauth.Hasher, logger *slog.Logger) error {
	adminEmail := os.Getenv("ADMIN_EMAIL")
	adminPassword := os.Getenv("ADMIN_PASSWORD")

	if adminEmail == "" || adminPassword == "" {
		logger.Info("no ADMIN_EMAIL or ADMIN_PASSWORD set, skipping admin user creation")
		return nil
	}

	adminEmail = models.NormalizeEmail(adminEmail)

	_, err := userRepo.GetByEmail(ctx, adminEmail)
	if err == nil {
		logger.Info("admin user already exists")
		return nil
	}
	if !errors.Is(err, models.ErrNotFound) {
		return fmt.Errorf("failed to check if admin exists: %w", err)
	}

	hashedPassword, err := hasher.Hash(adminPassword)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	_, err = userRepo.Create(ctx, &models.User{
		Email:        adminEmail,
		PasswordHash: hashedPassword,
		Role:         models.RoleAdmin,
	})
	if err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	logger.Info("admin user created", slog.String("email", pkglogger.SanitizedEmail(adminEmail)))
	return nil
}

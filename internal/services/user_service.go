package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/mbetts-dev/campusdocs/internal/models"
	pkgauth "github.com/mbetts-dev/campusdocs/pkg/auth"
	pkglogger "github.com/mbetts-dev/campusdocs/pkg/logger"
)

// UserService handles administrative account management
type UserService struct {
	repo        UserRepository
	hasher      *pkgauth.Hasher
	logger      *slog.Logger
	auditLogger *pkglogger.AuditLogger
}

// NewUserService creates a new UserService
func NewUserService(repo UserRepository, hasher *pkgauth.Hasher, logger *slog.Logger, auditLogger *pkglogger.AuditLogger) *UserService {
	return &UserService{
		repo:        repo,
		hasher:      hasher,
		logger:      logger,
		auditLogger: auditLogger,
	}
}

// ListUsers returns all accounts, newest first. Password hashes stay inside
// the service boundary; handlers map to DTOs without them.
func (s *UserService) ListUsers(ctx context.Context) ([]*models.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("failed to list users", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}
	return users, nil
}

// CreateUser provisions an account from the admin panel. Admins may only
// create plain user accounts; elevated roles are provisioned out of band.
func (s *UserService) CreateUser(ctx context.Context, actorID, email, password, role string) (*models.User, error) {
	if role != models.RoleUser {
		return nil, models.ErrForbidden
	}

	key := models.NormalizeEmail(email)

	if _, err := s.repo.GetByEmail(ctx, key); err == nil {
		return nil, models.ErrConflict
	} else if !errors.Is(err, models.ErrNotFound) {
		s.logger.Error("failed to check existing user", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		s.logger.Error("failed to hash password", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	created, err := s.repo.Create(ctx, &models.User{
		Email:        key,
		PasswordHash: hash,
		Role:         models.RoleUser,
	})
	if err != nil {
		if errors.Is(err, models.ErrConflict) {
			return nil, models.ErrConflict
		}
		s.logger.Error("failed to create user", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	s.auditLogger.LogAccountAction("user_created", actorID, created.ID)
	return created, nil
}

// ChangePassword rehashes and stores a new password for the target account.
// Admins may only manage plain user accounts; only a superadmin can touch
// an elevated account.
func (s *UserService) ChangePassword(ctx context.Context, actorID, actorRole, targetID, newPassword string) error {
	target, err := s.repo.GetByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return models.ErrNotFound
		}
		s.logger.Error("failed to get user", slog.String("user_id", targetID), slog.Any("error", err))
		return models.ErrInternalServer
	}

	if target.Role != models.RoleUser && actorRole != models.RoleSuperadmin {
		return models.ErrForbidden
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		s.logger.Error("failed to hash password", slog.Any("error", err))
		return models.ErrInternalServer
	}

	if err := s.repo.UpdatePassword(ctx, targetID, hash); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return models.ErrNotFound
		}
		s.logger.Error("failed to update password", slog.String("user_id", targetID), slog.Any("error", err))
		return models.ErrInternalServer
	}

	s.auditLogger.LogAccountAction("password_changed", actorID, targetID)
	return nil
}

// DeleteUser removes a plain user account. Elevated accounts are never
// deletable through this path, and nobody may delete their own account.
func (s *UserService) DeleteUser(ctx context.Context, actorID, targetID string) error {
	target, err := s.repo.GetByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return models.ErrNotFound
		}
		s.logger.Error("failed to get user", slog.String("user_id", targetID), slog.Any("error", err))
		return models.ErrInternalServer
	}

	if target.Role != models.RoleUser {
		return models.ErrForbidden
	}

	if actorID == targetID {
		return models.ErrBadRequest
	}

	if err := s.repo.Delete(ctx, targetID); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return models.ErrNotFound
		}
		s.logger.Error("failed to delete user", slog.String("user_id", targetID), slog.Any("error", err))
		return models.ErrInternalServer
	}

	s.auditLogger.LogAccountAction("user_deleted", actorID, targetID)
	return nil
}

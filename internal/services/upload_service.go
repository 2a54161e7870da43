package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/mbetts-dev/campusdocs/internal/models"
	pkglogger "github.com/mbetts-dev/campusdocs/pkg/logger"
)

// UserUploadRepository defines the moderation-queue operations
type UserUploadRepository interface {
	List(ctx context.Context) ([]*models.UserUpload, error)
	ListByStatus(ctx context.Context, status string) ([]*models.UserUpload, error)
	UpdateStatus(ctx context.Context, id, status string) (*models.UserUpload, error)
	Update(ctx context.Context, id string, update *models.UserUploadUpdate) (*models.UserUpload, error)
	Delete(ctx context.Context, id string) error
}

// UploadService moderates member-submitted uploads
type UploadService struct {
	repo        UserUploadRepository
	logger      *slog.Logger
	auditLogger *pkglogger.AuditLogger
}

// NewUploadService creates a new UploadService
func NewUploadService(repo UserUploadRepository, logger *slog.Logger, auditLogger *pkglogger.AuditLogger) *UploadService {
	return &UploadService{
		repo:        repo,
		logger:      logger,
		auditLogger: auditLogger,
	}
}

func (s *UploadService) List(ctx context.Context) ([]*models.UserUpload, error) {
	uploads, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("failed to list user uploads", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}
	return uploads, nil
}

func (s *UploadService) ListPending(ctx context.Context) ([]*models.UserUpload, error) {
	uploads, err := s.repo.ListByStatus(ctx, models.UploadPending)
	if err != nil {
		s.logger.Error("failed to list pending uploads", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}
	return uploads, nil
}

// SetStatus moves a submission to a moderation state. Any state may be
// re-entered; moderators routinely flip decisions back to pending.
func (s *UploadService) SetStatus(ctx context.Context, actorID, id, status string) (*models.UserUpload, error) {
	if !models.ValidUploadStatus(status) {
		return nil, models.ErrBadRequest
	}

	upload, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrNotFound
		}
		s.logger.Error("failed to update upload status", slog.String("upload_id", id), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	s.auditLogger.LogAccountAction("upload_"+status, actorID, id)
	return upload, nil
}

func (s *UploadService) Update(ctx context.Context, id string, update *models.UserUploadUpdate) (*models.UserUpload, error) {
	upload, err := s.repo.Update(ctx, id, update)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrNotFound
		}
		s.logger.Error("failed to update upload", slog.String("upload_id", id), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}
	return upload, nil
}

func (s *UploadService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return models.ErrNotFound
		}
		s.logger.Error("failed to delete upload", slog.String("upload_id", id), slog.Any("error", err))
		return models.ErrInternalServer
	}
	return nil
}

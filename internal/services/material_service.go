package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/mbetts-dev/campusdocs/internal/models"
	"github.com/mbetts-dev/campusdocs/internal/storage"
)

// MaterialRepository defines the metadata operations for published materials
type MaterialRepository interface {
	List(ctx context.Context) ([]*models.Material, error)
	Create(ctx context.Context, m *models.Material) (*models.Material, error)
	Update(ctx context.Context, id string, update *models.MaterialUpdate) (*models.Material, error)
	Delete(ctx context.Context, id string) error
}

// UploadMaterialInput carries one upload through the pipeline
type UploadMaterialInput struct {
	Title       string
	Type        string
	Semester    string
	Subject     string
	Description string
	FileName    string
	ContentType string
	File        io.Reader
}

// MaterialService handles the published materials catalog and its upload pipeline
type MaterialService struct {
	repo   MaterialRepository
	store  storage.ObjectStore
	logger *slog.Logger
}

// NewMaterialService creates a new MaterialService
func NewMaterialService(repo MaterialRepository, store storage.ObjectStore, logger *slog.Logger) *MaterialService {
	return &MaterialService{
		repo:   repo,
		store:  store,
		logger: logger,
	}
}

func (s *MaterialService) List(ctx context.Context) ([]*models.Material, error) {
	materials, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("failed to list materials", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}
	return materials, nil
}

// Upload pushes the file to the object store, then records its metadata.
// The key is prefixed with a millisecond timestamp so re-uploads of the
// same filename never collide.
func (s *MaterialService) Upload(ctx context.Context, input UploadMaterialInput) (*models.Material, error) {
	key := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), input.FileName)

	fileURL, err := s.store.Upload(ctx, key, input.ContentType, input.File)
	if err != nil {
		s.logger.Error("failed to upload file to storage", slog.String("key", key), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	material, err := s.repo.Create(ctx, &models.Material{
		Title:       input.Title,
		Type:        input.Type,
		Semester:    input.Semester,
		Subject:     input.Subject,
		Description: input.Description,
		FileName:    input.FileName,
		FileURL:     fileURL,
	})
	if err != nil {
		s.logger.Error("failed to create material", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	s.logger.Info("material uploaded", slog.String("material_id", material.ID), slog.String("key", key))
	return material, nil
}

func (s *MaterialService) Update(ctx context.Context, id string, update *models.MaterialUpdate) (*models.Material, error) {
	material, err := s.repo.Update(ctx, id, update)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrNotFound
		}
		s.logger.Error("failed to update material", slog.String("material_id", id), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}
	return material, nil
}

func (s *MaterialService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return models.ErrNotFound
		}
		s.logger.Error("failed to delete material", slog.String("material_id", id), slog.Any("error", err))
		return models.ErrInternalServer
	}
	return nil
}

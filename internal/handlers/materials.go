package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mbetts-dev/campusdocs/internal/models"
	"github.com/mbetts-dev/campusdocs/internal/services"
	pkghttp "github.com/mbetts-dev/campusdocs/pkg/http"
)

// maxUploadSize bounds material uploads to 10MB
const maxUploadSize = 10 << 20

// MaterialServiceInterface defines the interface for the materials catalog
type MaterialServiceInterface interface {
	List(ctx context.Context) ([]*models.Material, error)
	Upload(ctx context.Context, input services.UploadMaterialInput) (*models.Material, error)
	Update(ctx context.Context, id string, update *models.MaterialUpdate) (*models.Material, error)
	Delete(ctx context.Context, id string) error
}

// MaterialHandler handles the study-materials endpoints
type MaterialHandler struct {
	service MaterialServiceInterface
}

// NewMaterialHandler creates a new MaterialHandler
func NewMaterialHandler(service MaterialServiceInterface) *MaterialHandler {
	return &MaterialHandler{service: service}
}

// UpdateMaterialRequest represents a partial metadata update
type UpdateMaterialRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=1,max=200"`
	Type        *string `json:"type" validate:"omitempty,min=1,max=50"`
	Semester    *string `json:"semester" validate:"omitempty,min=1,max=20"`
	Subject     *string `json:"subject" validate:"omitempty,min=1,max=100"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
}

// MaterialResponse is the material DTO in the original wire shape
type MaterialResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Type        string    `json:"type"`
	Semester    string    `json:"semester"`
	Subject     string    `json:"subject"`
	Description string    `json:"description"`
	FileName    string    `json:"fileName"`
	FileURL     string    `json:"fileUrl"`
	UploadedAt  time.Time `json:"uploadedAt"`
}

func toMaterialResponse(m *models.Material) MaterialResponse {
	return MaterialResponse{
		ID:          m.ID,
		Title:       m.Title,
		Type:        m.Type,
		Semester:    m.Semester,
		Subject:     m.Subject,
		Description: m.Description,
		FileName:    m.FileName,
		FileURL:     m.FileURL,
		UploadedAt:  m.UploadedAt,
	}
}

// List handles GET /materials
func (h *MaterialHandler) List(w http.ResponseWriter, r *http.Request) {
	materials, err := h.service.List(r.Context())
	if err != nil {
		pkghttp.WriteInternalError(w, "Server error fetching materials")
		return
	}

	resp := make([]MaterialResponse, 0, len(materials))
	for _, m := range materials {
		resp = append(resp, toMaterialResponse(m))
	}

	pkghttp.WriteJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"materials": resp,
	})
}

// Upload handles POST /upload-material. Multipart form with a "file" part
// plus metadata fields. PDF only, capped at 10MB.
func (h *MaterialHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		pkghttp.WriteBadRequest(w, "File too large. Maximum size is 10MB")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		pkghttp.WriteBadRequest(w, "No file uploaded")
		return
	}
	defer file.Close()

	if !isPDF(header.Filename, header.Header.Get("Content-Type")) {
		pkghttp.WriteBadRequest(w, "Only PDF files are allowed")
		return
	}

	title := strings.TrimSpace(r.FormValue("title"))
	if title == "" {
		pkghttp.WriteBadRequest(w, "Title is required")
		return
	}

	material, err := h.service.Upload(r.Context(), services.UploadMaterialInput{
		Title:       title,
		Type:        strings.TrimSpace(r.FormValue("type")),
		Semester:    strings.TrimSpace(r.FormValue("semester")),
		Subject:     strings.TrimSpace(r.FormValue("subject")),
		Description: strings.TrimSpace(r.FormValue("description")),
		FileName:    filepath.Base(header.Filename),
		ContentType: "application/pdf",
		File:        file,
	})
	if err != nil {
		pkghttp.WriteInternalError(w, "Server error uploading material")
		return
	}

	pkghttp.WriteSuccess(w, http.StatusCreated, "Material uploaded successfully", map[string]any{
		"material": toMaterialResponse(material),
	})
}

// Update handles PUT /materials/{id}
func (h *MaterialHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req UpdateMaterialRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	material, err := h.service.Update(r.Context(), id, &models.MaterialUpdate{
		Title:       req.Title,
		Type:        req.Type,
		Semester:    req.Semester,
		Subject:     req.Subject,
		Description: req.Description,
	})
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			pkghttp.WriteNotFound(w, "Material not found")
			return
		}
		pkghttp.WriteInternalError(w, "Server error updating material")
		return
	}

	pkghttp.WriteSuccess(w, http.StatusOK, "Material updated successfully", map[string]any{
		"material": toMaterialResponse(material),
	})
}

// Delete handles DELETE /materials/{id}
func (h *MaterialHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			pkghttp.WriteNotFound(w, "Material not found")
			return
		}
		pkghttp.WriteInternalError(w, "Server error deleting material")
		return
	}

	pkghttp.WriteSuccess(w, http.StatusOK, "Material deleted successfully", nil)
}

// isPDF accepts a file only when both the extension and the declared
// content type say PDF. The declared type alone is attacker-controlled.
func isPDF(filename, contentType string) bool {
	if !strings.EqualFold(filepath.Ext(filename), ".pdf") {
		return false
	}
	return contentType == "application/pdf" || contentType == ""
}

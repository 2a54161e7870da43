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
	pkghttp "github.com/mbetts-dev/campusdocs/pkg/http"
)

// UploadServiceInterface defines the interface for moderation-queue logic
type UploadServiceInterface interface {
	List(ctx context.Context) ([]*models.UserUpload, error)
	ListPending(ctx context.Context) ([]*models.UserUpload, error)
	SetStatus(ctx context.Context, actorID, id, status string) (*models.UserUpload, error)
	Update(ctx context.Context, id string, update *models.UserUploadUpdate) (*models.UserUpload, error)
	Delete(ctx context.Context, id string) error
}

// UploadHandler handles the member-upload moderation endpoints
type UploadHandler struct {
	service UploadServiceInterface
}

// NewUploadHandler creates a new UploadHandler
func NewUploadHandler(service UploadServiceInterface) *UploadHandler {
	return &UploadHandler{service: service}
}

// UpdateUploadRequest represents a partial metadata update
type UpdateUploadRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=1,max=200"`
	Subject     *string `json:"subject" validate:"omitempty,min=1,max=100"`
	Semester    *string `json:"semester" validate:"omitempty,min=1,max=20"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
}

// UploadResponse is the submission DTO in the original wire shape
type UploadResponse struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Subject        string    `json:"subject"`
	Semester       string    `json:"semester"`
	Description    string    `json:"description"`
	FileName       string    `json:"fileName"`
	FileURL        string    `json:"fileUrl"`
	Status         string    `json:"status"`
	SubmitterEmail string    `json:"submitterEmail"`
	UploadedAt     time.Time `json:"uploadedAt"`
}

func toUploadResponse(u *models.UserUpload) UploadResponse {
	return UploadResponse{
		ID:             u.ID,
		Title:          u.Title,
		Subject:        u.Subject,
		Semester:       u.Semester,
		Description:    u.Description,
		FileName:       u.FileName,
		FileURL:        u.FileURL,
		Status:         u.Status,
		SubmitterEmail: u.SubmitterEmail,
		UploadedAt:     u.UploadedAt,
	}
}

func writeUploadList(w http.ResponseWriter, uploads []*models.UserUpload) {
	resp := make([]UploadResponse, 0, len(uploads))
	for _, u := range uploads {
		resp = append(resp, toUploadResponse(u))
	}

	pkghttp.WriteJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"uploads": resp,
	})
}

// List handles GET /api/user-uploads
func (h *UploadHandler) List(w http.ResponseWriter, r *http.Request) {
	uploads, err := h.service.List(r.Context())
	if err != nil {
		pkghttp.WriteInternalError(w, "Server error fetching uploads")
		return
	}
	writeUploadList(w, uploads)
}

// ListPending handles GET /api/user-uploads/pending
func (h *UploadHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	uploads, err := h.service.ListPending(r.Context())
	if err != nil {
		pkghttp.WriteInternalError(w, "Server error fetching uploads")
		return
	}
	writeUploadList(w, uploads)
}

// Approve handles PUT /api/user-uploads/{id}/approve
func (h *UploadHandler) Approve(w http.ResponseWriter, r *http.Request) {
	h.setStatus(w, r, models.UploadApproved, "Upload approved")
}

// Reject handles PUT /api/user-uploads/{id}/reject
func (h *UploadHandler) Reject(w http.ResponseWriter, r *http.Request) {
	h.setStatus(w, r, models.UploadRejected, "Upload rejected")
}

// MarkPending handles PUT /api/user-uploads/{id}/pending
func (h *UploadHandler) MarkPending(w http.ResponseWriter, r *http.Request) {
	h.setStatus(w, r, models.UploadPending, "Upload moved back to pending")
}

func (h *UploadHandler) setStatus(w http.ResponseWriter, r *http.Request, status, message string) {
	claims := auth.GetUserFromContext(r)
	if claims == nil {
		pkghttp.WriteUnauthorized(w, "No token provided")
		return
	}

	id := chi.URLParam(r, "id")

	upload, err := h.service.SetStatus(r.Context(), claims.UserID, id, status)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrNotFound):
			pkghttp.WriteNotFound(w, "Upload not found")
		case errors.Is(err, models.ErrBadRequest):
			pkghttp.WriteBadRequest(w, "Invalid status")
		default:
			pkghttp.WriteInternalError(w, "Server error updating upload")
		}
		return
	}

	pkghttp.WriteSuccess(w, http.StatusOK, message, map[string]any{
		"upload": toUploadResponse(upload),
	})
}

// Update handles PUT /api/user-uploads/{id}
func (h *UploadHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req UpdateUploadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	upload, err := h.service.Update(r.Context(), id, &models.UserUploadUpdate{
		Title:       req.Title,
		Subject:     req.Subject,
		Semester:    req.Semester,
		Description: req.Description,
	})
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			pkghttp.WriteNotFound(w, "Upload not found")
			return
		}
		pkghttp.WriteInternalError(w, "Server error updating upload")
		return
	}

	pkghttp.WriteSuccess(w, http.StatusOK, "Upload updated successfully", map[string]any{
		"upload": toUploadResponse(upload),
	})
}

// Delete handles DELETE /api/user-uploads/{id}
func (h *UploadHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			pkghttp.WriteNotFound(w, "Upload not found")
			return
		}
		pkghttp.WriteInternalError(w, "Server error deleting upload")
		return
	}

	pkghttp.WriteSuccess(w, http.StatusOK, "Upload deleted successfully", nil)
}

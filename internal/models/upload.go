package models

import "time"

// Moderation states for user-submitted uploads.
const (
	UploadPending  = "pending"
	UploadApproved = "approved"
	UploadRejected = "rejected"
)

// UserUpload is a member-submitted file awaiting admin moderation.
type UserUpload struct {
	ID             string
	Title          string
	Subject        string
	Semester       string
	Description    string
	FileName       string
	FileURL        string
	Status         string
	SubmitterEmail string
	UploadedAt     time.Time
}

// UserUploadUpdate carries a partial metadata update; nil fields are unchanged.
type UserUploadUpdate struct {
	Title       *string
	Subject     *string
	Semester    *string
	Description *string
}

// ValidUploadStatus reports whether status is a known moderation state.
func ValidUploadStatus(status string) bool {
	switch status {
	case UploadPending, UploadApproved, UploadRejected:
		return true
	}
	return false
}

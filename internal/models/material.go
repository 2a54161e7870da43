package models

import "time"

// Material is a published study material backed by a file in the object store.
type Material struct {
	ID          string
	Title       string
	Type        string
	Semester    string
	Subject     string
	Description string
	FileName    string
	FileURL     string
	UploadedAt  time.Time
}

// MaterialUpdate carries a partial metadata update; nil fields are unchanged.
type MaterialUpdate struct {
	Title       *string
	Type        *string
	Semester    *string
	Subject     *string
	Description *string
}

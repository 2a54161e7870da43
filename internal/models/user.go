package models

import (
	"strings"
	"time"
)

// Account roles. Only admin and superadmin may open a portal session.
const (
	RoleUser       = "user"
	RoleAdmin      = "admin"
	RoleSuperadmin = "superadmin"
)

// User is a credential-bearing account record.
type User struct {
	ID           string
	Email        string // stored normalized (lowercased, trimmed)
	PasswordHash string
	Role         string
	CreatedAt    time.Time
}

// IsAdmin reports whether the role carries admin-panel privileges.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin || u.Role == RoleSuperadmin
}

// ValidRole reports whether role is one of the known account roles.
func ValidRole(role string) bool {
	switch role {
	case RoleUser, RoleAdmin, RoleSuperadmin:
		return true
	}
	return false
}

// NormalizeEmail canonicalizes an email address so case variants of the
// same address share one identity key.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

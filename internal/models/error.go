package models

import (
	"errors"
	"fmt"
)

// Sentinel errors for common failure conditions
var (
	ErrNotFound       = errors.New("resource not found")
	ErrConflict       = errors.New("resource already exists")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrBadRequest     = errors.New("bad request")
	ErrInternalServer = errors.New("internal server error")

	// Token verification outcomes. Expired is surfaced separately so clients
	// can distinguish "re-authenticate" from "hard failure".
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenMalformed = errors.New("token malformed")
	ErrTokenRevoked   = errors.New("token has been invalidated")
)

// LockoutError is returned when an identity has an active login lockout.
// It carries the data the client needs to render a retry countdown.
type LockoutError struct {
	RetryAfter int // remaining whole seconds, rounded up
	Attempts   int
}

func (e *LockoutError) Error() string {
	return fmt.Sprintf("too many login attempts, retry in %ds", e.RetryAfter)
}

package http

import (
	"encoding/json"
	"net/http"
)

// Every portal response carries a stable envelope: {"success":bool,"message":...}
// plus endpoint-specific extra fields. The front end depends on this shape.

// WriteJSON writes an arbitrary payload with the given status code.
func WriteJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	// Encoding errors are logged upstream, never exposed to the client
	_ = json.NewEncoder(w).Encode(payload)
}

// WriteSuccess writes {"success":true,"message":...} merged with extra fields.
func WriteSuccess(w http.ResponseWriter, statusCode int, message string, extra map[string]any) {
	payload := map[string]any{
		"success": true,
		"message": message,
	}
	for k, v := range extra {
		payload[k] = v
	}
	WriteJSON(w, statusCode, payload)
}

// WriteError writes {"success":false,"message":...}.
func WriteError(w http.ResponseWriter, statusCode int, message string) {
	WriteJSON(w, statusCode, map[string]any{
		"success": false,
		"message": message,
	})
}

// Common error writers for consistency
func WriteBadRequest(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusBadRequest, message)
}

func WriteUnauthorized(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusUnauthorized, message)
}

func WriteForbidden(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusForbidden, message)
}

func WriteNotFound(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusNotFound, message)
}

func WriteConflict(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusConflict, message)
}

func WriteInternalError(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusInternalServerError, message)
}

// WriteLockout writes the 429 lockout response with the countdown data the
// client renders: remaining seconds and the attempt count so far.
func WriteLockout(w http.ResponseWriter, retryAfterSeconds, attempts int) {
	WriteJSON(w, http.StatusTooManyRequests, map[string]any{
		"success":     false,
		"message":     "Too many login attempts. Please try again later.",
		"lockoutTime": retryAfterSeconds,
		"attempts":    attempts,
	})
}

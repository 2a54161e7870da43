package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbetts-dev/campusdocs/internal/models"
)

const testSecret = "unit-test-secret-32-chars-long!!"

func testUser() *models.User {
	return &models.User{
		ID:    "user-123",
		Email: "admin@example.edu",
		Role:  models.RoleAdmin,
	}
}

func TestTokenManager_RoundTrip(t *testing.T) {
	tm := NewTokenManager(testSecret, 24*time.Hour)

	tokenString, err := tm.Issue(testUser())
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)

	claims, err := tm.Validate(tokenString)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "admin@example.edu", claims.Email)
	assert.Equal(t, models.RoleAdmin, claims.Role)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestTokenManager_ExpiredToken(t *testing.T) {
	tm := NewTokenManager(testSecret, -1*time.Minute)

	tokenString, err := tm.Issue(testUser())
	require.NoError(t, err)

	_, err = tm.Validate(tokenString)
	assert.ErrorIs(t, err, models.ErrTokenExpired)
}

func TestTokenManager_TamperedToken(t *testing.T) {
	tm := NewTokenManager(testSecret, 24*time.Hour)

	tokenString, err := tm.Issue(testUser())
	require.NoError(t, err)

	tampered := tokenString[:len(tokenString)-2] + "xx"
	_, err = tm.Validate(tampered)
	assert.ErrorIs(t, err, models.ErrTokenMalformed)
}

func TestTokenManager_TruncatedToken(t *testing.T) {
	tm := NewTokenManager(testSecret, 24*time.Hour)

	_, err := tm.Validate("not-a-jwt")
	assert.ErrorIs(t, err, models.ErrTokenMalformed)
}

func TestTokenManager_WrongSecret(t *testing.T) {
	tm := NewTokenManager(testSecret, 24*time.Hour)
	other := NewTokenManager("a-completely-different-secret!!!", 24*time.Hour)

	tokenString, err := tm.Issue(testUser())
	require.NoError(t, err)

	_, err = other.Validate(tokenString)
	assert.ErrorIs(t, err, models.ErrTokenMalformed)
}

func TestTokenManager_ExpiredBeatsNothingElse(t *testing.T) {
	// A token that is both expired and tampered must not report expiry:
	// signature failure wins because claims are untrusted until verified.
	tm := NewTokenManager(testSecret, -1*time.Minute)

	tokenString, err := tm.Issue(testUser())
	require.NoError(t, err)

	tampered := tokenString[:len(tokenString)-2] + "xx"
	_, err = tm.Validate(tampered)
	assert.ErrorIs(t, err, models.ErrTokenMalformed)
}

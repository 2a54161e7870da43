package auth

import (
	"strings"
	"testing"
)

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name       string
		password   string
		shouldFail bool
	}{
		{
			name:       "valid password",
			password:   "SecurePass123",
			shouldFail: false,
		},
		{
			name:       "too short",
			password:   "Pass1",
			shouldFail: true,
		},
		{
			name:       "missing uppercase",
			password:   "securepass123",
			shouldFail: true,
		},
		{
			name:       "missing lowercase",
			password:   "SECUREPASS123",
			shouldFail: true,
		},
		{
			name:       "missing digit",
			password:   "SecurePassword",
			shouldFail: true,
		},
		{
			name:       "symbols allowed but not required",
			password:   "MyP@ssw0rd!",
			shouldFail: false,
		},
		{
			name:       "too long",
			password:   "Aa1" + strings.Repeat("x", 130),
			shouldFail: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if tt.shouldFail && err == nil {
				t.Errorf("ValidatePassword(%q) = nil, want error", tt.password)
			}
			if !tt.shouldFail && err != nil {
				t.Errorf("ValidatePassword(%q) = %v, want nil", tt.password, err)
			}
		})
	}
}

func TestHasher_HashAndCompare(t *testing.T) {
	hasher := NewHasher(DefaultBcryptCost)

	hash, err := hasher.Hash("SecurePass123")
	if err != nil {
		t.Fatalf("Hash() = %v, want nil", err)
	}
	if hash == "SecurePass123" {
		t.Fatal("hash should not equal the plaintext")
	}

	if err := hasher.Compare(hash, "SecurePass123"); err != nil {
		t.Errorf("Compare() with correct password = %v, want nil", err)
	}
	if err := hasher.Compare(hash, "WrongPass123"); err == nil {
		t.Error("Compare() with wrong password = nil, want error")
	}
}

func TestHasher_EmptyPassword(t *testing.T) {
	hasher := NewHasher(DefaultBcryptCost)
	if _, err := hasher.Hash(""); err == nil {
		t.Error("Hash(\"\") = nil, want error")
	}
}

func TestNewHasher_ClampsInvalidCost(t *testing.T) {
	hasher := NewHasher(99)

	// An out-of-range cost falls back to the default rather than failing at hash time.
	if _, err := hasher.Hash("SecurePass123"); err != nil {
		t.Errorf("Hash() with clamped cost = %v, want nil", err)
	}
}

package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	os.Setenv("JWT_SECRET", "test-secret-32-characters-long!")
	os.Setenv("DB_PASSWORD", "test")
	defer os.Clearenv()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() = %v, want nil", err)
	}

	if cfg.Auth.TokenExpiry != 24*time.Hour {
		t.Errorf("TokenExpiry: got %v, want %v", cfg.Auth.TokenExpiry, 24*time.Hour)
	}
	if cfg.Auth.CleanupInterval != 1*time.Hour {
		t.Errorf("CleanupInterval: got %v, want %v", cfg.Auth.CleanupInterval, 1*time.Hour)
	}
	if cfg.Auth.LockoutThreshold != 5 {
		t.Errorf("LockoutThreshold: got %d, want 5", cfg.Auth.LockoutThreshold)
	}
	if cfg.Auth.LockoutDuration != 200*time.Second {
		t.Errorf("LockoutDuration: got %v, want %v", cfg.Auth.LockoutDuration, 200*time.Second)
	}
	if cfg.Auth.BcryptCost != 10 {
		t.Errorf("BcryptCost: got %d, want 10", cfg.Auth.BcryptCost)
	}
}

func TestLoad_MissingJWTSecret(t *testing.T) {
	os.Clearenv()
	os.Setenv("DB_PASSWORD", "test")
	defer os.Clearenv()

	_, err := Load()
	if err == nil {
		t.Fatal("Load() without JWT_SECRET should fail")
	}
}

func TestLoad_MissingDBPassword(t *testing.T) {
	os.Clearenv()
	os.Setenv("JWT_SECRET", "test-secret-32-characters-long!")
	defer os.Clearenv()

	_, err := Load()
	if err == nil {
		t.Fatal("Load() without DB_PASSWORD should fail")
	}
}

func TestLoad_WeakJWTSecret(t *testing.T) {
	os.Setenv("JWT_SECRET", "secret")
	os.Setenv("DB_PASSWORD", "test")
	defer os.Clearenv()

	_, err := Load()
	if err == nil {
		t.Fatal("Load() with weak JWT_SECRET should fail")
	}
}

func TestLoad_ShortSecretInProduction(t *testing.T) {
	os.Setenv("JWT_SECRET", "only-twenty-chars!!!")
	os.Setenv("DB_PASSWORD", "test")
	os.Setenv("ENV", "production")
	defer os.Clearenv()

	_, err := Load()
	if err == nil {
		t.Fatal("Load() with short secret in production should fail")
	}
}

func TestLoad_CustomLockoutValues(t *testing.T) {
	os.Setenv("JWT_SECRET", "test-secret-32-characters-long!")
	os.Setenv("DB_PASSWORD", "test")
	os.Setenv("LOGIN_LOCKOUT_THRESHOLD", "3")
	os.Setenv("LOGIN_LOCKOUT_DURATION", "5m")
	defer os.Clearenv()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() = %v, want nil", err)
	}

	if cfg.Auth.LockoutThreshold != 3 {
		t.Errorf("LockoutThreshold: got %d, want 3", cfg.Auth.LockoutThreshold)
	}
	if cfg.Auth.LockoutDuration != 5*time.Minute {
		t.Errorf("LockoutDuration: got %v, want %v", cfg.Auth.LockoutDuration, 5*time.Minute)
	}
}

func TestLoad_InvalidDurationFallsBack(t *testing.T) {
	os.Setenv("JWT_SECRET", "test-secret-32-characters-long!")
	os.Setenv("DB_PASSWORD", "test")
	os.Setenv("TOKEN_EXPIRY", "not-a-duration")
	defer os.Clearenv()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() = %v, want nil", err)
	}

	if cfg.Auth.TokenExpiry != 24*time.Hour {
		t.Errorf("TokenExpiry with invalid value: got %v, want %v", cfg.Auth.TokenExpiry, 24*time.Hour)
	}
}

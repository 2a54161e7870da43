package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/mbetts-dev/campusdocs/internal/auth"
	"github.com/mbetts-dev/campusdocs/internal/models"
	pkgauth "github.com/mbetts-dev/campusdocs/pkg/auth"
	pkglogger "github.com/mbetts-dev/campusdocs/pkg/logger"
)

// UserRepository defines the credential store operations the services need
type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
	Create(ctx context.Context, user *models.User) (*models.User, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	Delete(ctx context.Context, id string) error
}

// RevocationLedger defines the deny-list operations for token revocation
type RevocationLedger interface {
	Revoke(ctx context.Context, token string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}

// UserSummary is the identity payload returned alongside a fresh token
type UserSummary struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// LoginResult carries a freshly issued token and its identity summary
type LoginResult struct {
	Token string
	User  *UserSummary
}

// AuthService handles login, logout, and registration
type AuthService struct {
	repo        UserRepository
	ledger      RevocationLedger
	tm          *auth.TokenManager
	lockout     *auth.LockoutTracker
	hasher      *pkgauth.Hasher
	delay       *auth.FailureDelay
	logger      *slog.Logger
	auditLogger *pkglogger.AuditLogger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	repo UserRepository,
	ledger RevocationLedger,
	tm *auth.TokenManager,
	lockout *auth.LockoutTracker,
	hasher *pkgauth.Hasher,
	delay *auth.FailureDelay,
	logger *slog.Logger,
	auditLogger *pkglogger.AuditLogger,
) *AuthService {
	return &AuthService{
		repo:        repo,
		ledger:      ledger,
		tm:          tm,
		lockout:     lockout,
		hasher:      hasher,
		delay:       delay,
		logger:      logger,
		auditLogger: auditLogger,
	}
}

// Login runs the admission pipeline: lockout check, identity lookup,
// password verification, role check, then token issuance. An unknown email
// and a wrong password fail identically so the endpoint cannot be used to
// enumerate accounts, and a correct-credential login by a non-admin role
// still counts as a failure so it cannot be used as a role-probing oracle.
func (s *AuthService) Login(ctx context.Context, email, password, ipAddress string) (*LoginResult, error) {
	start := time.Now()
	key := models.NormalizeEmail(email)

	if adm := s.lockout.Check(key); !adm.Allowed {
		s.logger.Warn("login rejected by lockout",
			slog.String("email", pkglogger.SanitizedEmail(key)),
			slog.Int("attempts", adm.Attempts),
			slog.Int("retry_after", adm.RetryAfter))
		s.auditLogger.LogAuthAttempt(pkglogger.AuditEvent{
			EventType:     "login_failed",
			IPAddress:     ipAddress,
			FailureReason: "locked_out",
			Success:       false,
		})
		return nil, &models.LockoutError{RetryAfter: adm.RetryAfter, Attempts: adm.Attempts}
	}

	user, err := s.repo.GetByEmail(ctx, key)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			s.lockout.RecordFailure(key)
			s.auditLogger.LogAuthAttempt(pkglogger.AuditEvent{
				EventType:     "login_failed",
				IPAddress:     ipAddress,
				FailureReason: "invalid_credentials",
				Success:       false,
			})
			s.delay.Wait(start)
			return nil, models.ErrUnauthorized
		}
		s.logger.Error("failed to get user by email", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		s.lockout.RecordFailure(key)
		s.auditLogger.LogAuthAttempt(pkglogger.AuditEvent{
			EventType:     "login_failed",
			UserID:        user.ID,
			IPAddress:     ipAddress,
			FailureReason: "invalid_credentials",
			Success:       false,
		})
		s.delay.Wait(start)
		return nil, models.ErrUnauthorized
	}

	if !user.IsAdmin() {
		s.lockout.RecordFailure(key)
		s.auditLogger.LogAuthAttempt(pkglogger.AuditEvent{
			EventType:     "login_failed",
			UserID:        user.ID,
			IPAddress:     ipAddress,
			FailureReason: "insufficient_role",
			Success:       false,
		})
		s.delay.Wait(start)
		return nil, models.ErrForbidden
	}

	s.lockout.RecordSuccess(key)

	token, err := s.tm.Issue(user)
	if err != nil {
		s.logger.Error("failed to issue token", slog.String("user_id", user.ID), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	s.logger.Info("user logged in", slog.String("user_id", user.ID))
	s.auditLogger.LogAuthAttempt(pkglogger.AuditEvent{
		EventType: "login_success",
		UserID:    user.ID,
		IPAddress: ipAddress,
		Success:   true,
	})

	return &LoginResult{
		Token: token,
		User: &UserSummary{
			ID:    user.ID,
			Email: user.Email,
			Role:  user.Role,
		},
	}, nil
}

// Logout revokes the presented token by inserting it into the deny-list
// with the token's own expiry. A token that fails validation cannot be
// logged out; it is already unusable.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	claims, err := s.tm.Validate(token)
	if err != nil {
		return models.ErrUnauthorized
	}

	err = s.ledger.Revoke(ctx, token, claims.ExpiresAt.Time)
	if err != nil {
		// Already revoked: the desired state holds, treat as done
		if errors.Is(err, models.ErrConflict) {
			return nil
		}
		s.logger.Error("failed to revoke token", slog.String("user_id", claims.UserID), slog.Any("error", err))
		return models.ErrInternalServer
	}

	s.logger.Info("user logged out", slog.String("user_id", claims.UserID))
	return nil
}

// Register creates a self-service account. Registered accounts always get
// the user role; admin accounts are provisioned out of band.
func (s *AuthService) Register(ctx context.Context, email, password string) error {
	key := models.NormalizeEmail(email)

	if _, err := s.repo.GetByEmail(ctx, key); err == nil {
		return models.ErrConflict
	} else if !errors.Is(err, models.ErrNotFound) {
		s.logger.Error("failed to check existing user", slog.Any("error", err))
		return models.ErrInternalServer
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		s.logger.Error("failed to hash password", slog.Any("error", err))
		return models.ErrInternalServer
	}

	created, err := s.repo.Create(ctx, &models.User{
		Email:        key,
		PasswordHash: hash,
		Role:         models.RoleUser,
	})
	if err != nil {
		if errors.Is(err, models.ErrConflict) {
			return models.ErrConflict
		}
		s.logger.Error("failed to create user", slog.Any("error", err))
		return models.ErrInternalServer
	}

	s.logger.Info("user registered", slog.String("user_id", created.ID))
	s.auditLogger.LogAccountAction("user_registered", created.ID, created.ID)

	return nil
}

package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbetts-dev/campusdocs/internal/models"
	pkgauth "github.com/mbetts-dev/campusdocs/pkg/auth"
	pkglogger "github.com/mbetts-dev/campusdocs/pkg/logger"
)

func newTestUserService(repo UserRepository) *UserService {
	logger := discardLogger()
	return NewUserService(repo, pkgauth.NewHasher(4), logger, pkglogger.NewAuditLogger(logger))
}

func TestUserService_CreateUser_Success(t *testing.T) {
	var created *models.User
	repo := &MockUserRepository{
		GetByEmailFunc: func(ctx context.Context, email string) (*models.User, error) {
			return nil, models.ErrNotFound
		},
		CreateFunc: func(ctx context.Context, user *models.User) (*models.User, error) {
			user.ID = "new-user"
			created = user
			return user, nil
		},
	}

	service := newTestUserService(repo)

	user, err := service.CreateUser(context.Background(), "admin-1", "Student@Campus.EDU", testPassword, models.RoleUser)
	require.NoError(t, err)
	assert.Equal(t, "new-user", user.ID)
	assert.Equal(t, "student@campus.edu", created.Email)
	assert.Equal(t, models.RoleUser, created.Role)
}

func TestUserService_CreateUser_ElevatedRoleRejected(t *testing.T) {
	service := newTestUserService(&MockUserRepository{})

	for _, role := range []string{models.RoleAdmin, models.RoleSuperadmin, "moderator"} {
		_, err := service.CreateUser(context.Background(), "admin-1", "x@campus.edu", testPassword, role)
		assert.ErrorIs(t, err, models.ErrForbidden, "role %q", role)
	}
}

func TestUserService_CreateUser_DuplicateEmail(t *testing.T) {
	repo := &MockUserRepository{
		GetByEmailFunc: func(ctx context.Context, email string) (*models.User, error) {
			return &models.User{ID: "existing", Email: email}, nil
		},
	}

	service := newTestUserService(repo)

	_, err := service.CreateUser(context.Background(), "admin-1", "taken@campus.edu", testPassword, models.RoleUser)
	assert.ErrorIs(t, err, models.ErrConflict)
}

func TestUserService_ChangePassword_PlainUser(t *testing.T) {
	var storedHash string
	repo := &MockUserRepository{
		GetByIDFunc: func(ctx context.Context, id string) (*models.User, error) {
			return &models.User{ID: id, Role: models.RoleUser}, nil
		},
		UpdatePasswordFunc: func(ctx context.Context, id, passwordHash string) error {
			storedHash = passwordHash
			return nil
		},
	}

	service := newTestUserService(repo)

	err := service.ChangePassword(context.Background(), "admin-1", models.RoleAdmin, "user-9", "Fresh1Password")
	require.NoError(t, err)
	assert.NotEmpty(t, storedHash)
	assert.NotEqual(t, "Fresh1Password", storedHash)
}

func TestUserService_ChangePassword_ElevatedTargetNeedsSuperadmin(t *testing.T) {
	repo := &MockUserRepository{
		GetByIDFunc: func(ctx context.Context, id string) (*models.User, error) {
			return &models.User{ID: id, Role: models.RoleAdmin}, nil
		},
	}

	service := newTestUserService(repo)

	err := service.ChangePassword(context.Background(), "admin-1", models.RoleAdmin, "admin-2", "Fresh1Password")
	assert.ErrorIs(t, err, models.ErrForbidden)

	err = service.ChangePassword(context.Background(), "super-1", models.RoleSuperadmin, "admin-2", "Fresh1Password")
	assert.NoError(t, err)
}

func TestUserService_ChangePassword_TargetNotFound(t *testing.T) {
	service := newTestUserService(&MockUserRepository{})

	err := service.ChangePassword(context.Background(), "admin-1", models.RoleAdmin, "missing", "Fresh1Password")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestUserService_DeleteUser_PlainUser(t *testing.T) {
	deleted := ""
	repo := &MockUserRepository{
		GetByIDFunc: func(ctx context.Context, id string) (*models.User, error) {
			return &models.User{ID: id, Role: models.RoleUser}, nil
		},
		DeleteFunc: func(ctx context.Context, id string) error {
			deleted = id
			return nil
		},
	}

	service := newTestUserService(repo)

	require.NoError(t, service.DeleteUser(context.Background(), "admin-1", "user-9"))
	assert.Equal(t, "user-9", deleted)
}

func TestUserService_DeleteUser_ElevatedTargetRejected(t *testing.T) {
	repo := &MockUserRepository{
		GetByIDFunc: func(ctx context.Context, id string) (*models.User, error) {
			return &models.User{ID: id, Role: models.RoleSuperadmin}, nil
		},
	}

	service := newTestUserService(repo)

	err := service.DeleteUser(context.Background(), "admin-1", "super-1")
	assert.ErrorIs(t, err, models.ErrForbidden)
}

func TestUserService_DeleteUser_SelfDeleteRejected(t *testing.T) {
	repo := &MockUserRepository{
		GetByIDFunc: func(ctx context.Context, id string) (*models.User, error) {
			return &models.User{ID: id, Role: models.RoleUser}, nil
		},
	}

	service := newTestUserService(repo)

	err := service.DeleteUser(context.Background(), "user-9", "user-9")
	assert.ErrorIs(t, err, models.ErrBadRequest)
}

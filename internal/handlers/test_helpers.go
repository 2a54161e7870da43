package handlers

import (
	"context"

	"github.com/mbetts-dev/campusdocs/internal/models"
	"github.com/mbetts-dev/campusdocs/internal/services"
)

// MockAuthService implements AuthServiceInterface for testing
type MockAuthService struct {
	LoginFunc    func(ctx context.Context, email, password, ipAddress string) (*services.LoginResult, error)
	LogoutFunc   func(ctx context.Context, token string) error
	RegisterFunc func(ctx context.Context, email, password string) error
}

func (m *MockAuthService) Login(ctx context.Context, email, password, ipAddress string) (*services.LoginResult, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, email, password, ipAddress)
	}
	return nil, models.ErrUnauthorized
}

func (m *MockAuthService) Logout(ctx context.Context, token string) error {
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx, token)
	}
	return nil
}

func (m *MockAuthService) Register(ctx context.Context, email, password string) error {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, email, password)
	}
	return nil
}

// MockUserService implements UserServiceInterface for testing
type MockUserService struct {
	ListUsersFunc      func(ctx context.Context) ([]*models.User, error)
	CreateUserFunc     func(ctx context.Context, actorID, email, password, role string) (*models.User, error)
	ChangePasswordFunc func(ctx context.Context, actorID, actorRole, targetID, newPassword string) error
	DeleteUserFunc     func(ctx context.Context, actorID, targetID string) error
}

func (m *MockUserService) ListUsers(ctx context.Context) ([]*models.User, error) {
	if m.ListUsersFunc != nil {
		return m.ListUsersFunc(ctx)
	}
	return []*models.User{}, nil
}

func (m *MockUserService) CreateUser(ctx context.Context, actorID, email, password, role string) (*models.User, error) {
	if m.CreateUserFunc != nil {
		return m.CreateUserFunc(ctx, actorID, email, password, role)
	}
	return &models.User{ID: "new-user", Email: email, Role: role}, nil
}

func (m *MockUserService) ChangePassword(ctx context.Context, actorID, actorRole, targetID, newPassword string) error {
	if m.ChangePasswordFunc != nil {
		return m.ChangePasswordFunc(ctx, actorID, actorRole, targetID, newPassword)
	}
	return nil
}

func (m *MockUserService) DeleteUser(ctx context.Context, actorID, targetID string) error {
	if m.DeleteUserFunc != nil {
		return m.DeleteUserFunc(ctx, actorID, targetID)
	}
	return nil
}

// MockUploadService implements UploadServiceInterface for testing
type MockUploadService struct {
	ListFunc        func(ctx context.Context) ([]*models.UserUpload, error)
	ListPendingFunc func(ctx context.Context) ([]*models.UserUpload, error)
	SetStatusFunc   func(ctx context.Context, actorID, id, status string) (*models.UserUpload, error)
	UpdateFunc      func(ctx context.Context, id string, update *models.UserUploadUpdate) (*models.UserUpload, error)
	DeleteFunc      func(ctx context.Context, id string) error
}

func (m *MockUploadService) List(ctx context.Context) ([]*models.UserUpload, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return []*models.UserUpload{}, nil
}

func (m *MockUploadService) ListPending(ctx context.Context) ([]*models.UserUpload, error) {
	if m.ListPendingFunc != nil {
		return m.ListPendingFunc(ctx)
	}
	return []*models.UserUpload{}, nil
}

func (m *MockUploadService) SetStatus(ctx context.Context, actorID, id, status string) (*models.UserUpload, error) {
	if m.SetStatusFunc != nil {
		return m.SetStatusFunc(ctx, actorID, id, status)
	}
	return &models.UserUpload{ID: id, Status: status}, nil
}

func (m *MockUploadService) Update(ctx context.Context, id string, update *models.UserUploadUpdate) (*models.UserUpload, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, update)
	}
	return nil, models.ErrNotFound
}

func (m *MockUploadService) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

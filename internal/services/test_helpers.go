package services

import (
	"context"
	"sync"
	"time"

	"github.com/mbetts-dev/campusdocs/internal/models"
)

// MockUserRepository implements UserRepository for testing
type MockUserRepository struct {
	GetByEmailFunc     func(ctx context.Context, email string) (*models.User, error)
	GetByIDFunc        func(ctx context.Context, id string) (*models.User, error)
	ListFunc           func(ctx context.Context) ([]*models.User, error)
	CreateFunc         func(ctx context.Context, user *models.User) (*models.User, error)
	UpdatePasswordFunc func(ctx context.Context, id, passwordHash string) error
	DeleteFunc         func(ctx context.Context, id string) error
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	return nil, models.ErrNotFound
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, models.ErrNotFound
}

func (m *MockUserRepository) List(ctx context.Context) ([]*models.User, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return []*models.User{}, nil
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	return nil, models.ErrInternalServer
}

func (m *MockUserRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	if m.UpdatePasswordFunc != nil {
		return m.UpdatePasswordFunc(ctx, id, passwordHash)
	}
	return nil
}

func (m *MockUserRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// MockMaterialRepository implements MaterialRepository for testing
type MockMaterialRepository struct {
	ListFunc   func(ctx context.Context) ([]*models.Material, error)
	CreateFunc func(ctx context.Context, m *models.Material) (*models.Material, error)
	UpdateFunc func(ctx context.Context, id string, update *models.MaterialUpdate) (*models.Material, error)
	DeleteFunc func(ctx context.Context, id string) error
}

func (m *MockMaterialRepository) List(ctx context.Context) ([]*models.Material, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return []*models.Material{}, nil
}

func (m *MockMaterialRepository) Create(ctx context.Context, material *models.Material) (*models.Material, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, material)
	}
	return material, nil
}

func (m *MockMaterialRepository) Update(ctx context.Context, id string, update *models.MaterialUpdate) (*models.Material, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, update)
	}
	return nil, models.ErrNotFound
}

func (m *MockMaterialRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// MockUserUploadRepository implements UserUploadRepository for testing
type MockUserUploadRepository struct {
	ListFunc         func(ctx context.Context) ([]*models.UserUpload, error)
	ListByStatusFunc func(ctx context.Context, status string) ([]*models.UserUpload, error)
	UpdateStatusFunc func(ctx context.Context, id, status string) (*models.UserUpload, error)
	UpdateFunc       func(ctx context.Context, id string, update *models.UserUploadUpdate) (*models.UserUpload, error)
	DeleteFunc       func(ctx context.Context, id string) error
}

func (m *MockUserUploadRepository) List(ctx context.Context) ([]*models.UserUpload, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return []*models.UserUpload{}, nil
}

func (m *MockUserUploadRepository) ListByStatus(ctx context.Context, status string) ([]*models.UserUpload, error) {
	if m.ListByStatusFunc != nil {
		return m.ListByStatusFunc(ctx, status)
	}
	return []*models.UserUpload{}, nil
}

func (m *MockUserUploadRepository) UpdateStatus(ctx context.Context, id, status string) (*models.UserUpload, error) {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, id, status)
	}
	return nil, models.ErrNotFound
}

func (m *MockUserUploadRepository) Update(ctx context.Context, id string, update *models.UserUploadUpdate) (*models.UserUpload, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, update)
	}
	return nil, models.ErrNotFound
}

func (m *MockUserUploadRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// MemoryLedger implements RevocationLedger with an in-memory map, matching
// the durable ledger's semantics closely enough for service tests,
// including duplicate detection and sweep behavior.
type MemoryLedger struct {
	mu      sync.Mutex
	entries map[string]time.Time
}

func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{entries: make(map[string]time.Time)}
}

func (l *MemoryLedger) Revoke(ctx context.Context, token string, expiresAt time.Time) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.entries[token]; ok {
		return models.ErrConflict
	}
	l.entries[token] = expiresAt
	return nil
}

func (l *MemoryLedger) IsRevoked(ctx context.Context, token string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.entries[token]
	return ok, nil
}

func (l *MemoryLedger) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	var deleted int64
	for token, expiresAt := range l.entries {
		if expiresAt.Before(now) {
			delete(l.entries, token)
			deleted++
		}
	}
	return deleted, nil
}

func (l *MemoryLedger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

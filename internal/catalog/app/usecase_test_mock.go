package app

import (
	"context"
	"io"
	"time"

	"noteshub/internal/catalog/domain"

	"github.com/stretchr/testify/mock"
)

// MockResourceRepo Mock ResourceRepo
type MockResourceRepo struct {
	mock.Mock
}

// AutoMigrate mock migrate
func (m *MockResourceRepo) AutoMigrate() error {
	args := m.Called()
	return args.Error(0)
}

// Create mock insert resource row
func (m *MockResourceRepo) Create(resource *domain.Resource) error {
	args := m.Called(resource)
	return args.Error(0)
}

// GetByID mock find resource by id
func (m *MockResourceRepo) GetByID(id string) (*domain.Resource, error) {
	args := m.Called(id)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.Resource), args.Error(1)
	}
	return nil, args.Error(1)
}

// FindBySubject mock scoped listing
func (m *MockResourceRepo) FindBySubject(branch domain.Branch, subjectID string, tag domain.Tag) ([]domain.Resource, error) {
	args := m.Called(branch, subjectID, tag)
	if args.Get(0) != nil {
		return args.Get(0).([]domain.Resource), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockObjectStore Mock ObjectStore
type MockObjectStore struct {
	mock.Mock
}

// UploadObject mock store object
func (m *MockObjectStore) UploadObject(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) error {
	args := m.Called(ctx, objectName, reader, size, contentType)
	return args.Error(0)
}

// PublicURL mock resolve object URL
func (m *MockObjectStore) PublicURL(objectName string) string {
	args := m.Called(objectName)
	return args.String(0)
}

// PresignGetURL mock presigned URL issue
func (m *MockObjectStore) PresignGetURL(ctx context.Context, objectName string, expiry time.Duration) (string, error) {
	args := m.Called(ctx, objectName, expiry)
	return args.String(0), args.Error(1)
}

package app

import (
	"context"

	"noteshub/internal/chat/domain"
	memberdomain "noteshub/internal/member/domain"

	"github.com/stretchr/testify/mock"
)

// MockMessageRepository Mock MessageRepository
type MockMessageRepository struct {
	mock.Mock
}

// InsertMessage mock insert msg
func (m *MockMessageRepository) InsertMessage(ctx context.Context, msg *domain.ChatMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

// ListAscending mock full history load
func (m *MockMessageRepository) ListAscending(ctx context.Context) ([]domain.ChatMessage, error) {
	args := m.Called(ctx)
	if args.Get(0) != nil {
		return args.Get(0).([]domain.ChatMessage), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockProfileRepository Mock ProfileRepository
type MockProfileRepository struct {
	mock.Mock
}

// AutoMigrate mock migrate
func (m *MockProfileRepository) AutoMigrate() error {
	args := m.Called()
	return args.Error(0)
}

// Create mock create profile
func (m *MockProfileRepository) Create(ctx context.Context, profile *memberdomain.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

// GetByID mock find profile by member id
func (m *MockProfileRepository) GetByID(ctx context.Context, id string) (*memberdomain.Profile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) != nil {
		return args.Get(0).(*memberdomain.Profile), args.Error(1)
	}
	return nil, args.Error(1)
}

// Update mock update profile
func (m *MockProfileRepository) Update(ctx context.Context, profile *memberdomain.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

// MockRedisPubSub Mock RedisPubSub
type MockRedisPubSub struct {
	mock.Mock
}

// Publish mock publisher
func (m *MockRedisPubSub) Publish(channel string, message interface{}) error {
	args := m.Called(channel, message)
	return args.Error(0)
}

// Subscribe mock subscriber
func (m *MockRedisPubSub) Subscribe(ctx context.Context, channel string, handler func(msg domain.ChatMessage)) error {
	args := m.Called(channel, handler)
	return args.Error(0)
}

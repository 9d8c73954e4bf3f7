package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

// MockRepository is a mock implementation of the Repository interface for testing
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, userID int, tokenHash string, expiresAt time.Time) error {
	args := m.Called(ctx, userID, tokenHash, expiresAt)
	return args.Error(0)
}

func (m *MockRepository) Validate(ctx context.Context, tokenHash string) (int, error) {
	args := m.Called(ctx, tokenHash)
	return args.Int(0), args.Error(1)
}

func (m *MockRepository) Delete(ctx context.Context, tokenHash string) error {
	return m.Called(ctx, tokenHash).Error(0)
}

func TestService_Create(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, time.Hour, slog.Default())

	var storedHash string
	mockRepo.On("Create", mock.Anything, 123, mock.MatchedBy(func(hash string) bool {
		storedHash = hash
		return len(hash) == 64
	}), mock.MatchedBy(func(expiresAt time.Time) bool {
		return expiresAt.After(time.Now().Add(59*time.Minute)) && expiresAt.Before(time.Now().Add(61*time.Minute))
	})).Return(nil)

	token, err := service.Create(context.Background(), 123)
	require.NoError(t, err)
	// 32 байта в base64 без паддинга
	assert.Len(t, token, 43)
	assert.Equal(t, hashToken(token), storedHash)

	mockRepo.AssertExpectations(t)
}

func TestService_Create_RepositoryError(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, 0, slog.Default())

	mockRepo.On("Create", mock.Anything, 123, mock.AnythingOfType("string"), mock.AnythingOfType("time.Time")).Return(errors.New("database error"))

	_, err := service.Create(context.Background(), 123)
	assert.ErrorContains(t, err, "database error")
}

func TestService_Validate(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, 0, slog.Default())

	mockRepo.On("Validate", mock.Anything, hashToken("token-1")).Return(7, nil)
	mockRepo.On("Validate", mock.Anything, hashToken("expired")).Return(0, ErrInvalidSession)

	id, err := service.Validate(context.Background(), "token-1")
	require.NoError(t, err)
	assert.Equal(t, 7, id)

	_, err = service.Validate(context.Background(), "expired")
	assert.ErrorIs(t, err, ErrInvalidSession)

	_, err = service.Validate(context.Background(), "")
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestService_Revoke(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, 0, slog.Default())

	mockRepo.On("Delete", mock.Anything, hashToken("token-1")).Return(nil)

	require.NoError(t, service.Revoke(context.Background(), "token-1"))
	mockRepo.AssertExpectations(t)
}

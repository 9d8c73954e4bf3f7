package backup

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

type MockPutter struct {
	mock.Mock
}

func (m *MockPutter) Put(ctx context.Context, key, contentType string, data []byte) (string, error) {
	args := m.Called(ctx, key, contentType, data)
	return args.String(0), args.Error(1)
}

func TestService_Store(t *testing.T) {
	blobs := new(MockPutter)
	svc := NewService(blobs, slog.Default())
	svc.now = func() time.Time { return time.UnixMilli(1700000000000) }

	raw := []byte(`{"walkLogs":[{"id":"a","date":"2024-01-01"}],"timestamp":1,"deviceId":"device-1"}`)
	blobs.On("Put", mock.Anything, "backup/user:7/1700000000000.json", "application/json", raw).
		Return("http://minio/b/backup/user:7/1700000000000.json", nil)

	res, err := svc.Store(context.Background(), "user:7", raw)
	require.NoError(t, err)
	assert.Equal(t, "backup/user:7/1700000000000.json", res.Key)
	blobs.AssertExpectations(t)
}

func TestService_Store_InvalidJSON(t *testing.T) {
	svc := NewService(new(MockPutter), slog.Default())

	_, err := svc.Store(context.Background(), "device-1", []byte("{"))
	assert.ErrorIs(t, err, ErrInvalidSnapshot)
}

func TestService_Store_PutError(t *testing.T) {
	blobs := new(MockPutter)
	svc := NewService(blobs, slog.Default())
	blobs.On("Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return("", errors.New("denied"))

	_, err := svc.Store(context.Background(), "device-1", []byte(`{}`))
	assert.ErrorContains(t, err, "denied")
}

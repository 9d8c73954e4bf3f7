package walklog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"mindfulsteps/internal/app/server/api/http/middleware/identity"
	"mindfulsteps/internal/app/server/api/http/response"
	"mindfulsteps/internal/domain/walklog"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) List(ctx context.Context, owner string) ([]walklog.WalkLog, error) {
	args := m.Called(ctx, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]walklog.WalkLog), args.Error(1)
}

func (m *MockService) Save(ctx context.Context, owner string, log walklog.WalkLog) (walklog.WalkLog, error) {
	args := m.Called(ctx, owner, log)
	return args.Get(0).(walklog.WalkLog), args.Error(1)
}

func (m *MockService) Delete(ctx context.Context, owner, id string) error {
	args := m.Called(ctx, owner, id)
	return args.Error(0)
}

func setup(t *testing.T, svc walklog.Servicer) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	mw := identity.New(nil, slog.Default())
	NewHandler(svc, slog.Default(), huma.Middlewares{mw.Middleware()}).SetupRoutes(api)
	return api
}

func sampleLog() walklog.WalkLog {
	end := int64(1714550400000 + 30*60*1000)
	return walklog.WalkLog{
		ID:        "walk-1",
		Date:      "2024-05-01",
		StartTime: 1714550400000,
		EndTime:   &end,
		Steps:     3200,
		Distance:  2.4,
		Duration:  30,
	}
}

func TestHandler_List(t *testing.T) {
	svc := &MockService{}
	svc.On("List", mock.Anything, "device-1").Return([]walklog.WalkLog{sampleLog()}, nil)
	api := setup(t, svc)

	resp := api.Get("/walk-logs", "X-Device-ID: device-1")

	require.Equal(t, http.StatusOK, resp.Code)
	var body response.Envelope[[]walklog.WalkLog]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.True(t, body.Success)
	require.Len(t, body.Data, 1)
	assert.Equal(t, "walk-1", body.Data[0].ID)
	svc.AssertExpectations(t)
}

func TestHandler_ListWithoutDevice(t *testing.T) {
	svc := &MockService{}
	api := setup(t, svc)

	resp := api.Get("/walk-logs")

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	svc.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestHandler_Save(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "saved", wantStatus: http.StatusOK},
		{name: "invalid", err: fmt.Errorf("%w: steps must not be negative", walklog.ErrInvalidData), wantStatus: http.StatusBadRequest},
		{name: "storage failure", err: errors.New("connection reset"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &MockService{}
			log := sampleLog()
			svc.On("Save", mock.Anything, "device-1", log).Return(log, tt.err)
			api := setup(t, svc)

			resp := api.Post("/walk-logs", "X-Device-ID: device-1", log)

			assert.Equal(t, tt.wantStatus, resp.Code)
			if tt.err == nil {
				var body response.Envelope[walklog.WalkLog]
				require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
				assert.Equal(t, log, body.Data)
			} else {
				assert.Contains(t, resp.Body.String(), `"success":false`)
			}
			svc.AssertExpectations(t)
		})
	}
}

func TestHandler_Delete(t *testing.T) {
	svc := &MockService{}
	svc.On("Delete", mock.Anything, "device-1", "walk-1").Return(nil)
	svc.On("Delete", mock.Anything, "device-1", "missing").
		Return(fmt.Errorf("delete walk log missing: %w", walklog.ErrNotFound))
	api := setup(t, svc)

	resp := api.Delete("/walk-logs/walk-1", "X-Device-ID: device-1")
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, `{"success":true}`, resp.Body.String())

	resp = api.Delete("/walk-logs/missing", "X-Device-ID: device-1")
	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.JSONEq(t, `{"success":false,"error":"walk log not found"}`, resp.Body.String())
}

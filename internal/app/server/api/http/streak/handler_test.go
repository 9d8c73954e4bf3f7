package streak

import (
	"context"
	"encoding/json"
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
	"mindfulsteps/internal/domain/streak"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Get(ctx context.Context, owner string) (streak.WalkStreak, error) {
	args := m.Called(ctx, owner)
	return args.Get(0).(streak.WalkStreak), args.Error(1)
}

func (m *MockService) Update(ctx context.Context, owner, walkDate string) (streak.WalkStreak, error) {
	args := m.Called(ctx, owner, walkDate)
	return args.Get(0).(streak.WalkStreak), args.Error(1)
}

func setup(t *testing.T, svc streak.Servicer) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	mw := identity.New(nil, slog.Default())
	NewHandler(svc, slog.Default(), huma.Middlewares{mw.Middleware()}).SetupRoutes(api)
	return api
}

func TestHandler_Get(t *testing.T) {
	svc := &MockService{}
	svc.On("Get", mock.Anything, "device-1").Return(streak.WalkStreak{}, nil)
	api := setup(t, svc)

	resp := api.Get("/streak", "X-Device-ID: device-1")

	require.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, `{"success":true,"data":{"current":0,"longest":0,"lastWalkDate":""}}`, resp.Body.String())
}

func TestHandler_Update(t *testing.T) {
	tests := []struct {
		name       string
		walkDate   string
		out        streak.WalkStreak
		err        error
		wantStatus int
	}{
		{
			name:       "advanced",
			walkDate:   "2024-01-02",
			out:        streak.WalkStreak{Current: 3, Longest: 5, LastWalkDate: "2024-01-02", Version: 4},
			wantStatus: http.StatusOK,
		},
		{
			name:       "bad date",
			walkDate:   "02.01.2024",
			err:        fmt.Errorf("%w: %q", streak.ErrInvalidDate, "02.01.2024"),
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "conflict",
			walkDate:   "2024-01-02",
			err:        fmt.Errorf("save streak: %w", streak.ErrVersionConflict),
			wantStatus: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &MockService{}
			svc.On("Update", mock.Anything, "device-1", tt.walkDate).Return(tt.out, tt.err)
			api := setup(t, svc)

			resp := api.Post("/streak", "X-Device-ID: device-1", streak.UpdateRequest{WalkDate: tt.walkDate})

			require.Equal(t, tt.wantStatus, resp.Code)
			if tt.err == nil {
				var body response.Envelope[streak.WalkStreak]
				require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
				assert.Equal(t, tt.out, body.Data)
			}
			svc.AssertExpectations(t)
		})
	}
}

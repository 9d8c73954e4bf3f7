package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

func TestLogger_Middleware(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, nil))

	_, api := humatest.New(t)
	huma.Register(api, huma.Operation{
		OperationID: "boom",
		Method:      http.MethodGet,
		Path:        "/boom",
		Middlewares: huma.Middlewares{New(log).Middleware()},
	}, func(context.Context, *struct{}) (*struct{}, error) {
		return nil, huma.Error500InternalServerError("boom")
	})

	resp := api.Get("/boom", "X-Device-ID: device-1")
	require.Equal(t, http.StatusInternalServerError, resp.Code)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "ERROR", entry["level"])
	assert.Equal(t, "HTTP request", entry["msg"])
	assert.Equal(t, "/boom", entry["path"])
	assert.Equal(t, float64(http.StatusInternalServerError), entry["status"])
	assert.Equal(t, "device-1", entry["device_id"])
	assert.Equal(t, "http_logger", entry["component"])
}

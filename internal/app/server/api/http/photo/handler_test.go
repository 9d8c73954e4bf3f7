package photo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"mindfulsteps/internal/app/server/api/http/middleware/identity"
	"mindfulsteps/internal/app/server/api/http/response"
	"mindfulsteps/internal/domain/photo"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) List(ctx context.Context, owner string) ([]photo.Photo, error) {
	args := m.Called(ctx, owner)
	return args.Get(0).([]photo.Photo), args.Error(1)
}

func (m *MockService) Save(ctx context.Context, owner string, p photo.Photo) (photo.Photo, error) {
	args := m.Called(ctx, owner, p)
	return args.Get(0).(photo.Photo), args.Error(1)
}

func (m *MockService) Delete(ctx context.Context, owner, id string) error {
	args := m.Called(ctx, owner, id)
	return args.Error(0)
}

func (m *MockService) Upload(ctx context.Context, owner string, up photo.Upload) (photo.UploadResult, error) {
	args := m.Called(ctx, owner, up)
	return args.Get(0).(photo.UploadResult), args.Error(1)
}

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func setup(t *testing.T, svc photo.Servicer, maxUpload int64) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	mw := identity.New(nil, slog.Default())
	NewHandler(svc, maxUpload, slog.Default(), huma.Middlewares{mw.Middleware()}).SetupRoutes(api)
	return api
}

func samplePhoto() photo.Photo {
	return photo.Photo{
		ID:          "photo-1",
		WalkID:      "walk-1",
		ImageURL:    "data:image/png;base64,iVBORw0KGgo=",
		PromptID:    "sky",
		PromptTitle: "Посмотрите на небо",
		PromptType:  photo.PromptPhoto,
		Timestamp:   1714550400000,
	}
}

func multipartBody(t *testing.T, contentType string, data []byte, meta string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if data != nil {
		hdr := make(textproto.MIMEHeader)
		hdr.Set("Content-Disposition", `form-data; name="photo"; filename="sky.png"`)
		hdr.Set("Content-Type", contentType)
		part, err := w.CreatePart(hdr)
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	}
	if meta != "" {
		require.NoError(t, w.WriteField("metadata", meta))
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func TestHandler_List(t *testing.T) {
	svc := &MockService{}
	svc.On("List", mock.Anything, "device-1").Return([]photo.Photo{samplePhoto()}, nil)
	api := setup(t, svc, 0)

	resp := api.Get("/photos", "X-Device-ID: device-1")

	require.Equal(t, http.StatusOK, resp.Code)
	var body response.Envelope[[]photo.Photo]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	require.Len(t, body.Data, 1)
	assert.Equal(t, "photo-1", body.Data[0].ID)
}

func TestHandler_Save(t *testing.T) {
	in := samplePhoto()
	stored := in
	stored.ImageURL = "http://minio:9000/mindful-steps/photos/device-1/1714550400000-0a1b2c3d.png"

	svc := &MockService{}
	svc.On("Save", mock.Anything, "device-1", in).Return(stored, nil)
	api := setup(t, svc, 0)

	resp := api.Post("/photos", "X-Device-ID: device-1", in)

	require.Equal(t, http.StatusOK, resp.Code)
	var body response.Envelope[photo.Photo]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, stored.ImageURL, body.Data.ImageURL)
	svc.AssertExpectations(t)
}

func TestHandler_Delete(t *testing.T) {
	svc := &MockService{}
	svc.On("Delete", mock.Anything, "device-1", "gone").
		Return(fmt.Errorf("delete photo gone: %w", photo.ErrNotFound))
	api := setup(t, svc, 0)

	resp := api.Delete("/photos/gone", "X-Device-ID: device-1")

	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestHandler_Upload(t *testing.T) {
	svc := &MockService{}
	svc.On("Upload", mock.Anything, "device-1", mock.MatchedBy(func(up photo.Upload) bool {
		return up.ContentType == "image/png" &&
			bytes.Equal(up.Data, pngHeader) &&
			up.Filename == "sky.png" &&
			up.Meta.WalkID == "walk-1" &&
			up.Meta.PromptType == photo.PromptBreathing
	})).Return(photo.UploadResult{URL: "http://minio/x.png", PhotoID: "photo-9"}, nil)
	api := setup(t, svc, 0)

	body, ct := multipartBody(t, "image/png", pngHeader, `{"walkId":"walk-1","promptType":"breathing"}`)
	resp := api.Post("/storage/upload", "X-Device-ID: device-1", "Content-Type: "+ct, body)

	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	assert.JSONEq(t, `{"success":true,"data":{"url":"http://minio/x.png","photoId":"photo-9"}}`, resp.Body.String())
	svc.AssertExpectations(t)
}

func TestHandler_UploadDetectsContentType(t *testing.T) {
	svc := &MockService{}
	svc.On("Upload", mock.Anything, "device-1", mock.MatchedBy(func(up photo.Upload) bool {
		return up.ContentType == "image/png"
	})).Return(photo.UploadResult{URL: "u", PhotoID: "p"}, nil)
	api := setup(t, svc, 0)

	body, ct := multipartBody(t, "application/octet-stream", pngHeader, "")
	resp := api.Post("/storage/upload", "X-Device-ID: device-1", "Content-Type: "+ct, body)

	assert.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
}

func TestHandler_UploadRejected(t *testing.T) {
	tests := []struct {
		name       string
		data       []byte
		meta       string
		wantStatus int
	}{
		{name: "no file", meta: `{"walkId":"walk-1"}`, wantStatus: http.StatusBadRequest},
		{name: "too large", data: bytes.Repeat([]byte{1}, 32), wantStatus: http.StatusRequestEntityTooLarge},
		{name: "bad metadata", data: pngHeader[:8], meta: `{walk`, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &MockService{}
			api := setup(t, svc, 16)

			body, ct := multipartBody(t, "image/png", tt.data, tt.meta)
			resp := api.Post("/storage/upload", "X-Device-ID: device-1", "Content-Type: "+ct, body)

			assert.Equal(t, tt.wantStatus, resp.Code, resp.Body.String())
			svc.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

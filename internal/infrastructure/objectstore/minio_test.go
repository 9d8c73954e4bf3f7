package objectstore

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"mindfulsteps/internal/app/server/config"
)

type fakeAPI struct {
	objects map[string][]byte
	types   map[string]string
	buckets map[string]bool
	putErr  error
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		objects: map[string][]byte{},
		types:   map[string]string{},
		buckets: map[string]bool{},
	}
}

func (f *fakeAPI) PutObject(_ context.Context, bucket, object string, reader io.Reader, size int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	if f.putErr != nil {
		return minio.UploadInfo{}, f.putErr
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return minio.UploadInfo{}, err
	}
	f.objects[bucket+"/"+object] = data
	f.types[bucket+"/"+object] = opts.ContentType
	return minio.UploadInfo{Bucket: bucket, Key: object, Size: size}, nil
}

func (f *fakeAPI) RemoveObject(_ context.Context, bucket, object string, _ minio.RemoveObjectOptions) error {
	delete(f.objects, bucket+"/"+object)
	return nil
}

func (f *fakeAPI) BucketExists(_ context.Context, bucket string) (bool, error) {
	return f.buckets[bucket], nil
}

func (f *fakeAPI) MakeBucket(_ context.Context, bucket string, _ minio.MakeBucketOptions) error {
	f.buckets[bucket] = true
	return nil
}

func testConfig() config.Storage {
	return config.Storage{Endpoint: "minio:9000", Bucket: "steps", Region: "us-east-1"}
}

func TestStore_PutDelete(t *testing.T) {
	api := newFakeAPI()
	s := newStore(api, testConfig(), slog.Default())
	ctx := context.Background()

	url, err := s.Put(ctx, "photos/device-1/1-abc.png", "image/png", []byte("png"))
	require.NoError(t, err)
	assert.Equal(t, "http://minio:9000/steps/photos/device-1/1-abc.png", url)
	assert.Equal(t, []byte("png"), api.objects["steps/photos/device-1/1-abc.png"])
	assert.Equal(t, "image/png", api.types["steps/photos/device-1/1-abc.png"])

	key, ok := s.KeyFromURL(url)
	require.True(t, ok)
	require.NoError(t, s.Delete(ctx, key))
	assert.Empty(t, api.objects)
}

func TestStore_PutError(t *testing.T) {
	api := newFakeAPI()
	api.putErr = errors.New("access denied")
	s := newStore(api, testConfig(), slog.Default())

	_, err := s.Put(context.Background(), "k", "image/png", []byte("x"))
	assert.ErrorContains(t, err, "access denied")
}

func TestStore_KeyFromURL(t *testing.T) {
	cfg := testConfig()
	cfg.PublicURL = "https://cdn.example.com/steps/"
	s := newStore(newFakeAPI(), cfg, slog.Default())

	key, ok := s.KeyFromURL("https://cdn.example.com/steps/photos/user%3A7/1.png")
	assert.True(t, ok)
	assert.Equal(t, "photos/user:7/1.png", key)

	_, ok = s.KeyFromURL("data:image/png;base64,AAAA")
	assert.False(t, ok)

	_, ok = s.KeyFromURL("https://elsewhere.example.com/photos/1.png")
	assert.False(t, ok)
}

func TestStore_EnsureBucket(t *testing.T) {
	api := newFakeAPI()
	s := newStore(api, testConfig(), slog.Default())

	require.NoError(t, s.EnsureBucket(context.Background()))
	assert.True(t, api.buckets["steps"])
	require.NoError(t, s.EnsureBucket(context.Background()))
}

func TestNew_Disabled(t *testing.T) {
	s, err := New(config.Storage{}, slog.Default())
	assert.NoError(t, err)
	assert.Nil(t, s)
}

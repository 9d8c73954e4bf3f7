package objectstore

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"golang.org/x/exp/slog"

	"mindfulsteps/internal/app/server/config"
)

type objectAPI interface {
	PutObject(ctx context.Context, bucket, object string, reader io.Reader, size int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	RemoveObject(ctx context.Context, bucket, object string, opts minio.RemoveObjectOptions) error
	BucketExists(ctx context.Context, bucket string) (bool, error)
	MakeBucket(ctx context.Context, bucket string, opts minio.MakeBucketOptions) error
}

// Store S3-совместимое хранилище фотографий и бэкапов
type Store struct {
	api     objectAPI
	bucket  string
	region  string
	baseURL string
	log     *slog.Logger
}

// New подключается к хранилищу; пустой Endpoint означает, что хранилище отключено
func New(cfg config.Storage, log *slog.Logger) (*Store, error) {
	if cfg.Endpoint == "" {
		return nil, nil
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:        credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure:       cfg.UseSSL,
		Region:       cfg.Region,
		BucketLookup: minio.BucketLookupPath,
	})
	if err != nil {
		return nil, fmt.Errorf("create object storage client: %w", err)
	}

	return newStore(client, cfg, log), nil
}

func newStore(api objectAPI, cfg config.Storage, log *slog.Logger) *Store {
	base := strings.TrimRight(cfg.PublicURL, "/")
	if base == "" {
		scheme := "http"
		if cfg.UseSSL {
			scheme = "https"
		}
		base = fmt.Sprintf("%s://%s/%s", scheme, cfg.Endpoint, cfg.Bucket)
	}

	return &Store{
		api:     api,
		bucket:  cfg.Bucket,
		region:  cfg.Region,
		baseURL: base,
		log:     log.With("component", "objectstore"),
	}
}

// EnsureBucket создает бакет, если его еще нет
func (s *Store) EnsureBucket(ctx context.Context) error {
	exists, err := s.api.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("check bucket %s: %w", s.bucket, err)
	}
	if exists {
		return nil
	}

	if err := s.api.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{Region: s.region}); err != nil {
		return fmt.Errorf("create bucket %s: %w", s.bucket, err)
	}
	s.log.Info("bucket created", "bucket", s.bucket)
	return nil
}

// Put сохраняет объект и возвращает его публичный URL
func (s *Store) Put(ctx context.Context, key, contentType string, data []byte) (string, error) {
	_, err := s.api.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("put object %s: %w", key, err)
	}

	s.log.Debug("object stored", "key", key, "bytes", len(data))
	return s.URL(key), nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if err := s.api.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("remove object %s: %w", key, err)
	}
	return nil
}

func (s *Store) URL(key string) string {
	return s.baseURL + "/" + key
}

func (s *Store) KeyFromURL(raw string) (string, bool) {
	prefix := s.baseURL + "/"
	if !strings.HasPrefix(raw, prefix) {
		return "", false
	}

	key, err := url.PathUnescape(strings.TrimPrefix(raw, prefix))
	if err != nil || key == "" {
		return "", false
	}
	return key, true
}

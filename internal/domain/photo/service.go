package photo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"
)

// DefaultMaxUploadBytes предел размера изображения
const DefaultMaxUploadBytes = 10 << 20

type Servicer interface {
	List(ctx context.Context, owner string) ([]Photo, error)
	Save(ctx context.Context, owner string, p Photo) (Photo, error)
	Delete(ctx context.Context, owner, id string) error
	Upload(ctx context.Context, owner string, up Upload) (UploadResult, error)
}

type Service struct {
	repo     Repository
	blobs    BlobStore
	maxBytes int64
	now      func() time.Time
	log      *slog.Logger
}

func NewService(repo Repository, blobs BlobStore, maxBytes int64, log *slog.Logger) *Service {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxUploadBytes
	}
	return &Service{
		repo:     repo,
		blobs:    blobs,
		maxBytes: maxBytes,
		now:      time.Now,
		log:      log.With("component", "photo"),
	}
}

// ObjectKey ключ объекта вида photos/<owner>/<ts>-<rand>.<ext>
func ObjectKey(owner string, at time.Time, mime string) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("photos/%s/%d-%s.%s", safeOwner(owner), at.UnixMilli(), suffix, Extension(mime))
}

func safeOwner(owner string) string {
	return strings.NewReplacer("/", "_", "\\", "_").Replace(owner)
}

func (s *Service) List(ctx context.Context, owner string) ([]Photo, error) {
	photos, err := s.repo.List(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("list photos: %w", err)
	}
	if photos == nil {
		photos = []Photo{}
	}
	return photos, nil
}

// Save сохраняет фото. Встроенный data URL выгружается в хранилище;
// если выгрузка не удалась, фото сохраняется с data URL как есть.
func (s *Service) Save(ctx context.Context, owner string, p Photo) (Photo, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Timestamp == 0 {
		p.Timestamp = s.now().UnixMilli()
	}
	if err := p.Validate(); err != nil {
		return Photo{}, err
	}

	if IsDataURL(p.ImageURL) && s.blobs != nil {
		url, size, mime, err := s.offload(ctx, owner, p.ImageURL)
		if err != nil {
			s.log.Warn("keeping embedded image", "owner", owner, "id", p.ID, "error", err)
		} else {
			p.ImageURL = url
			if p.Metadata == nil {
				p.Metadata = &Metadata{}
			}
			p.Metadata.FileSize = size
			p.Metadata.ContentType = mime
		}
	}

	saved, err := s.repo.Save(ctx, owner, p)
	if err != nil {
		return Photo{}, fmt.Errorf("save photo: %w", err)
	}
	return saved, nil
}

func (s *Service) offload(ctx context.Context, owner, dataURL string) (string, int64, string, error) {
	mime, data, err := ParseDataURL(dataURL)
	if err != nil {
		return "", 0, "", err
	}
	if !IsImage(mime) {
		return "", 0, "", fmt.Errorf("%w: %s", ErrUnsupportedType, mime)
	}
	if int64(len(data)) > s.maxBytes {
		return "", 0, "", ErrTooLarge
	}

	url, err := s.blobs.Put(ctx, ObjectKey(owner, s.now(), mime), mime, data)
	if err != nil {
		return "", 0, "", err
	}
	return url, int64(len(data)), mime, nil
}

// Delete удаляет фото и его объект в хранилище. Ошибка удаления объекта
// только логируется: документ уже удален.
func (s *Service) Delete(ctx context.Context, owner, id string) error {
	deleted, err := s.repo.Delete(ctx, owner, id)
	if err != nil {
		return fmt.Errorf("delete photo %s: %w", id, err)
	}

	if s.blobs == nil {
		return nil
	}
	if key, ok := s.blobs.KeyFromURL(deleted.ImageURL); ok {
		if err := s.blobs.Delete(ctx, key); err != nil {
			s.log.Error("blob delete failed", "owner", owner, "key", key, "error", err)
		}
	}
	return nil
}

// Upload сохраняет файл изображения и создает для него фото
func (s *Service) Upload(ctx context.Context, owner string, up Upload) (UploadResult, error) {
	if !IsImage(up.ContentType) {
		return UploadResult{}, fmt.Errorf("%w: %q", ErrUnsupportedType, up.ContentType)
	}
	if len(up.Data) == 0 {
		return UploadResult{}, fmt.Errorf("%w: empty file", ErrInvalidPhoto)
	}
	if int64(len(up.Data)) > s.maxBytes {
		return UploadResult{}, ErrTooLarge
	}
	if s.blobs == nil {
		return UploadResult{}, ErrStorageDisabled
	}

	now := s.now()
	url, err := s.blobs.Put(ctx, ObjectKey(owner, now, up.ContentType), up.ContentType, up.Data)
	if err != nil {
		return UploadResult{}, fmt.Errorf("upload photo: %w", err)
	}

	promptType := up.Meta.PromptType
	if promptType == "" {
		promptType = PromptPhoto
	}
	ts := up.Meta.Timestamp
	if ts == 0 {
		ts = now.UnixMilli()
	}

	p := Photo{
		ID:          uuid.NewString(),
		WalkID:      up.Meta.WalkID,
		ImageURL:    url,
		PromptID:    up.Meta.PromptID,
		PromptTitle: up.Meta.PromptTitle,
		PromptType:  promptType,
		Timestamp:   ts,
		Note:        up.Meta.Note,
		Location:    up.Meta.Location,
		Metadata:    &Metadata{FileSize: int64(len(up.Data)), ContentType: up.ContentType},
	}
	if err := p.Validate(); err != nil {
		return UploadResult{}, err
	}

	saved, err := s.repo.Save(ctx, owner, p)
	if err != nil {
		return UploadResult{}, fmt.Errorf("save uploaded photo: %w", err)
	}

	s.log.Info("photo uploaded", "owner", owner, "id", saved.ID, "bytes", len(up.Data))
	return UploadResult{URL: saved.ImageURL, PhotoID: saved.ID}, nil
}

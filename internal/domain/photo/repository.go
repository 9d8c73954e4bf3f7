package photo

import "context"

type Repository interface {
	List(ctx context.Context, owner string) ([]Photo, error)
	Save(ctx context.Context, owner string, p Photo) (Photo, error)
	// Delete удаляет фото и возвращает удаленный документ
	Delete(ctx context.Context, owner, id string) (Photo, error)
}

// BlobStore объектное хранилище изображений
type BlobStore interface {
	Put(ctx context.Context, key, contentType string, data []byte) (string, error)
	Delete(ctx context.Context, key string) error
	// KeyFromURL возвращает ключ объекта, если url указывает в хранилище
	KeyFromURL(url string) (string, bool)
}

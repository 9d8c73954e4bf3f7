package photo

import (
	"mime/multipart"

	"mindfulsteps/internal/domain/photo"
)

type saveInput struct {
	Body photo.Photo
}

type deleteInput struct {
	ID string `path:"id" doc:"ID фото"`
}

// uploadInput форма с полями photo (файл) и metadata (JSON)
type uploadInput struct {
	RawBody multipart.Form
}

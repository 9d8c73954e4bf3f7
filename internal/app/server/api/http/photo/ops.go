package photo

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) listOp() huma.Operation {
	return huma.Operation{
		OperationID: "photos-list",
		Method:      http.MethodGet,
		Path:        "/photos",
		Summary:     "Список фото",
		Tags:        []string{"photos"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) saveOp() huma.Operation {
	return huma.Operation{
		OperationID: "photos-save",
		Method:      http.MethodPost,
		Path:        "/photos",
		Summary:     "Сохранить фото",
		Description: "imageUrl в виде data:image/... URL выгружается в хранилище и заменяется ссылкой.",
		Tags:        []string{"photos"},
		// data URL в base64 больше самого файла примерно на треть
		MaxBodyBytes: h.maxUpload*4/3 + 64<<10,
		Middlewares:  h.middleware,
	}
}

func (h *Handler) deleteOp() huma.Operation {
	return huma.Operation{
		OperationID: "photos-delete",
		Method:      http.MethodDelete,
		Path:        "/photos/{id}",
		Summary:     "Удалить фото",
		Tags:        []string{"photos"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) uploadOp() huma.Operation {
	return huma.Operation{
		OperationID:  "storage-upload",
		Method:       http.MethodPost,
		Path:         "/storage/upload",
		Summary:      "Загрузить изображение",
		Description:  "multipart/form-data: photo (image/*) и metadata (JSON). Создает фото и возвращает его URL.",
		Tags:         []string{"photos"},
		MaxBodyBytes: h.maxUpload + 64<<10,
		Middlewares:  h.middleware,
	}
}

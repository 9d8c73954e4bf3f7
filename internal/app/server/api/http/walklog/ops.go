package walklog

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) listOp() huma.Operation {
	return huma.Operation{
		OperationID: "walk-logs-list",
		Method:      http.MethodGet,
		Path:        "/walk-logs",
		Summary:     "Список прогулок",
		Description: "Прогулки владельца, от новых к старым.",
		Tags:        []string{"walk-logs"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) saveOp() huma.Operation {
	return huma.Operation{
		OperationID: "walk-logs-save",
		Method:      http.MethodPost,
		Path:        "/walk-logs",
		Summary:     "Сохранить прогулку",
		Description: "Создает прогулку или заменяет существующую с тем же ID.",
		Tags:        []string{"walk-logs"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) deleteOp() huma.Operation {
	return huma.Operation{
		OperationID: "walk-logs-delete",
		Method:      http.MethodDelete,
		Path:        "/walk-logs/{id}",
		Summary:     "Удалить прогулку",
		Tags:        []string{"walk-logs"},
		Middlewares: h.middleware,
	}
}

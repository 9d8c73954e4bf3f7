package streak

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) getOp() huma.Operation {
	return huma.Operation{
		OperationID: "streak-get",
		Method:      http.MethodGet,
		Path:        "/streak",
		Summary:     "Текущая серия",
		Tags:        []string{"streak"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) updateOp() huma.Operation {
	return huma.Operation{
		OperationID: "streak-update",
		Method:      http.MethodPost,
		Path:        "/streak",
		Summary:     "Отметить прогулку в серии",
		Description: "Продвигает серию датой прогулки (YYYY-MM-DD) относительно текущей даты сервера в UTC.",
		Tags:        []string{"streak"},
		Middlewares: h.middleware,
	}
}

package goal

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) getOp() huma.Operation {
	return huma.Operation{
		OperationID: "goals-get",
		Method:      http.MethodGet,
		Path:        "/goals",
		Summary:     "Цели по шагам",
		Description: "Если цели не заданы, возвращаются значения по умолчанию.",
		Tags:        []string{"goals"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) saveOp() huma.Operation {
	return huma.Operation{
		OperationID: "goals-save",
		Method:      http.MethodPut,
		Path:        "/goals",
		Summary:     "Сохранить цели",
		Description: "Ненулевая version должна совпадать с сохраненной, иначе 409.",
		Tags:        []string{"goals"},
		Middlewares: h.middleware,
	}
}

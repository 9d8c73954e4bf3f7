package backup

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) storeOp() huma.Operation {
	return huma.Operation{
		OperationID:  "migration-backup",
		Method:       http.MethodPost,
		Path:         "/migration/backup",
		Summary:      "Резервная копия локальных данных",
		Description:  "Сохраняет снимок {walkLogs, goals, streak, timestamp, deviceId} в объектное хранилище перед переносом данных на сервер.",
		Tags:         []string{"migration"},
		MaxBodyBytes: 32 << 20,
		Middlewares:  h.middleware,
	}
}

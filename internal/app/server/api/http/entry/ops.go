package entry

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) listOp() huma.Operation {
	return huma.Operation{
		OperationID: "entries-list",
		Method:      http.MethodGet,
		Path:        "/api/entries",
		Summary:     "Список записей владельца",
		Tags:        []string{"entries"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) upsertOp() huma.Operation {
	return huma.Operation{
		OperationID: "entries-upsert",
		Method:      http.MethodPost,
		Path:        "/api/entries",
		Summary:     "Пакетная загрузка записей",
		Description: "Вставляет записи, пропуская уже известные id. Повторная отправка того же пакета безопасна.",
		Tags:        []string{"entries"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) deleteOp() huma.Operation {
	return huma.Operation{
		OperationID: "entries-delete",
		Method:      http.MethodDelete,
		Path:        "/api/entries/{id}",
		Summary:     "Удалить запись",
		Tags:        []string{"entries"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) statsOp() huma.Operation {
	return huma.Operation{
		OperationID: "entries-global-stats",
		Method:      http.MethodGet,
		Path:        "/api/stats/global",
		Summary:     "Общий рейтинг по напиткам",
		Tags:        []string{"entries", "stats"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

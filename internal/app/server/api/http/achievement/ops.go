package achievement

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) syncOp() huma.Operation {
	return huma.Operation{
		OperationID: "achievements-sync",
		Method:      http.MethodPost,
		Path:        "/api/achievements",
		Summary:     "Слить достижения в журнал",
		Description: "Журнал только пополняется: уже записанные достижения пропускаются.",
		Tags:        []string{"achievements"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) listOp() huma.Operation {
	return huma.Operation{
		OperationID: "achievements-list",
		Method:      http.MethodGet,
		Path:        "/api/achievements",
		Summary:     "Достижения владельца",
		Tags:        []string{"achievements"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

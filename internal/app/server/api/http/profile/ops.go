package profile

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) getOp() huma.Operation {
	return huma.Operation{
		OperationID: "profile-get",
		Method:      http.MethodGet,
		Path:        "/api/profile",
		Summary:     "Профиль владельца",
		Tags:        []string{"profile"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) updateOp() huma.Operation {
	return huma.Operation{
		OperationID: "profile-update",
		Method:      http.MethodPatch,
		Path:        "/api/profile",
		Summary:     "Частичное обновление профиля",
		Description: "Последняя запись выигрывает, nil-поля не трогаются.",
		Tags:        []string{"profile"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

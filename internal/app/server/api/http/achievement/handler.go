package achievement

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"canlog/internal/app/server/api/http/middleware/auth"
	"canlog/internal/domain/achievement"
)

type Handler struct {
	service    achievement.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service achievement.Servicer, log *slog.Logger, mws huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		log:        log,
		middleware: mws,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.syncOp(), h.sync)
	huma.Register(api, h.listOp(), h.list)
}

func (h *Handler) sync(ctx context.Context, input *syncInput) (*syncOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	resp, err := h.service.Sync(ctx, userID, input.Body)
	if err != nil {
		return nil, huma.Error422UnprocessableEntity(err.Error())
	}

	return &syncOutput{Body: resp}, nil
}

func (h *Handler) list(ctx context.Context, _ *struct{}) (*listOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	resp, err := h.service.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &listOutput{Body: resp}, nil
}

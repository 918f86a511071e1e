package profile

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"canlog/internal/app/server/api/http/middleware/auth"
	"canlog/internal/domain/profile"
)

type Handler struct {
	service    profile.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service profile.Servicer, log *slog.Logger, mws huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		log:        log,
		middleware: mws,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.getOp(), h.get)
	huma.Register(api, h.updateOp(), h.update)
}

func (h *Handler) get(ctx context.Context, _ *struct{}) (*getOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	resp, err := h.service.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &getOutput{Body: resp}, nil
}

func (h *Handler) update(ctx context.Context, input *updateInput) (*updateOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	resp, err := h.service.Update(ctx, userID, input.Body)
	if err != nil {
		return nil, err
	}

	return &updateOutput{Body: resp}, nil
}

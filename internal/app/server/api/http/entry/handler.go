package entry

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"canlog/internal/app/server/api/http/middleware/auth"
	"canlog/internal/domain/entry"
)

type Handler struct {
	service    entry.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service entry.Servicer, log *slog.Logger, mws huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		log:        log,
		middleware: mws,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.listOp(), h.list)
	huma.Register(api, h.upsertOp(), h.upsert)
	huma.Register(api, h.deleteOp(), h.delete)
	huma.Register(api, h.statsOp(), h.stats)
}

func (h *Handler) list(ctx context.Context, _ *struct{}) (*listOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	entries, err := h.service.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &listOutput{
		Body: entry.ListResponse{Status: "Ok", Entries: entries},
	}, nil
}

func (h *Handler) upsert(ctx context.Context, input *upsertInput) (*upsertOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	resp, err := h.service.Upsert(ctx, userID, input.Body)
	if err != nil {
		return nil, huma.Error422UnprocessableEntity(err.Error())
	}

	return &upsertOutput{Body: resp}, nil
}

func (h *Handler) delete(ctx context.Context, input *deleteInput) (*deleteOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	if err := h.service.Delete(ctx, userID, input.ID); err != nil {
		return nil, err
	}

	return &deleteOutput{
		Body: entry.DeleteResponse{Status: "Ok"},
	}, nil
}

func (h *Handler) stats(ctx context.Context, _ *struct{}) (*statsOutput, error) {
	resp, err := h.service.GlobalStats(ctx)
	if err != nil {
		return nil, err
	}

	return &statsOutput{Body: resp}, nil
}

package user

import (
	"context"
	"fmt"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"canlog/internal/domain/session"
	"canlog/internal/domain/user"
)

type Handler struct {
	service    user.Servicer
	session    session.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service user.Servicer, session session.Servicer, log *slog.Logger, middleware huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		session:    session,
		log:        log,
		middleware: middleware,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.registerOp(), h.register)
	huma.Register(api, h.loginOp(), h.login)
	huma.Register(api, h.logoutOp(), h.logout)
}

func (h *Handler) register(ctx context.Context, input *registerInput) (*registerOutput, error) {
	userID, err := h.service.Register(ctx, input.Body.Login, input.Body.Password)
	if err != nil {
		return &registerOutput{
			Body: RegisterResponse{Status: "Error", Error: err.Error()},
		}, nil
	}

	return &registerOutput{
		Body: RegisterResponse{ID: userID, Status: "Ok"},
	}, nil
}

func (h *Handler) login(ctx context.Context, input *loginInput) (*loginOutput, error) {
	u, err := h.service.Authenticate(ctx, input.Body.Login, input.Body.Password)
	if err != nil {
		return &loginOutput{
			Body: LoginResponse{
				Status: "Error",
				Error:  "Invalid credentials",
			},
		}, nil
	}

	token, err := h.session.Create(ctx, u.ID)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	return &loginOutput{
		Body: LoginResponse{
			Token:  token,
			Status: "Ok",
		},
	}, nil
}

func (h *Handler) logout(ctx context.Context, input *logoutInput) (*logoutOutput, error) {
	const prefix = "Bearer "
	if !strings.HasPrefix(input.Authorization, prefix) {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}
	token := input.Authorization[len(prefix):]

	if err := h.session.Revoke(ctx, token); err != nil {
		h.log.Error("failed to revoke session", "error", err)
		return nil, fmt.Errorf("revoke session: %w", err)
	}

	return &logoutOutput{
		Body: LogoutResponse{Status: "Ok"},
	}, nil
}

package user

import (
	"context"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"github.com/wuntoguo/word-assistant/internal/app/server/api/http/middleware/auth"
	"github.com/wuntoguo/word-assistant/internal/domain/session"
	"github.com/wuntoguo/word-assistant/internal/domain/user"
)

type Handler struct {
	service        user.Servicer
	session        session.Servicer
	log            *slog.Logger
	middleware     huma.Middlewares
	authMiddleware huma.Middlewares
}

func NewHandler(service user.Servicer, session session.Servicer, log *slog.Logger, middleware, authMiddleware huma.Middlewares) *Handler {
	return &Handler{
		service:        service,
		session:        session,
		log:            log,
		middleware:     middleware,
		authMiddleware: authMiddleware,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.registerOp(), h.register)
	huma.Register(api, h.loginOp(), h.login)
	huma.Register(api, h.logoutOp(), h.logout)
	huma.Register(api, h.meOp(), h.me)
}

func (h *Handler) register(ctx context.Context, input *registerInput) (*registerOutput, error) {
	u, err := h.service.Register(ctx, input.Body.Login, input.Body.Password)
	if err != nil {
		return &registerOutput{
			Body: RegisterResponse{Status: "Error", Error: err.Error()},
		}, nil
	}

	return &registerOutput{
		Body: RegisterResponse{UserID: u.ID, Status: "Ok"},
	}, nil
}

func (h *Handler) login(ctx context.Context, input *loginInput) (*loginOutput, error) {
	u, err := h.service.Authenticate(ctx, input.Body.Login, input.Body.Password)
	if err != nil {
		return &loginOutput{
			Body: LoginResponse{Status: "Error", Error: "Invalid credentials"},
		}, nil
	}

	token, err := h.session.Create(ctx, u.ID)
	if err != nil {
		h.log.Error("create session", slog.String("error", err.Error()))
		return &loginOutput{
			Body: LoginResponse{Status: "Error", Error: "Could not create session"},
		}, nil
	}

	return &loginOutput{
		Body: LoginResponse{Token: token, Status: "Ok"},
	}, nil
}

// logout revokes the presented token. Missing or unknown tokens still
// return Ok, logging out twice is not an error.
func (h *Handler) logout(ctx context.Context, input *logoutInput) (*logoutOutput, error) {
	if token, ok := strings.CutPrefix(input.Authorization, "Bearer "); ok && token != "" {
		if err := h.session.Revoke(ctx, token); err != nil {
			h.log.Warn("revoke session", slog.String("error", err.Error()))
		}
	}
	return &logoutOutput{Body: LogoutResponse{Status: "Ok"}}, nil
}

func (h *Handler) me(ctx context.Context, _ *meInput) (*meOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	u, err := h.service.GetByID(ctx, userID)
	if err != nil {
		return nil, huma.Error500InternalServerError("lookup account")
	}

	return &meOutput{
		Body: MeResponse{UserID: u.ID, Login: u.Login},
	}, nil
}

package word

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"github.com/wuntoguo/word-assistant/internal/app/server/api/http/middleware/auth"
	"github.com/wuntoguo/word-assistant/internal/domain/sync"
)

type Handler struct {
	service    sync.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service sync.Servicer, log *slog.Logger, middleware huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		log:        log,
		middleware: middleware,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.listOp(), h.list)
}

func (h *Handler) list(ctx context.Context, _ *listInput) (*listOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	resp, err := h.service.ListWords(ctx, userID)
	if err != nil {
		h.log.Error("list words failed", slog.String("error", err.Error()))
		return nil, huma.Error500InternalServerError("list words failed")
	}

	return &listOutput{Body: *resp}, nil
}

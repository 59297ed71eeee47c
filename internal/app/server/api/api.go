// Word Assistant server API.
//
// POST /user/register   # Register (public)
// POST /user/login      # Log in, returns bearer token (public)
// POST /user/logout     # Revoke session (token in header)
// GET  /api/me          # Current account (auth)
// POST /api/sync        # Merge client words, return server changes (auth)
// GET  /api/words       # Full word collection (auth)
// GET  /api/health      # Liveness probe (public)

package api

import (
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"golang.org/x/exp/slog"

	healthAPI "github.com/wuntoguo/word-assistant/internal/app/server/api/http/health"
	"github.com/wuntoguo/word-assistant/internal/app/server/api/http/middleware"
	"github.com/wuntoguo/word-assistant/internal/app/server/api/http/middleware/auth"
	"github.com/wuntoguo/word-assistant/internal/app/server/api/http/middleware/logger"
	syncAPI "github.com/wuntoguo/word-assistant/internal/app/server/api/http/sync"
	userAPI "github.com/wuntoguo/word-assistant/internal/app/server/api/http/user"
	wordAPI "github.com/wuntoguo/word-assistant/internal/app/server/api/http/word"
	"github.com/wuntoguo/word-assistant/internal/domain/session"
	"github.com/wuntoguo/word-assistant/internal/domain/sync"
	"github.com/wuntoguo/word-assistant/internal/domain/user"
	"github.com/wuntoguo/word-assistant/internal/infrastructure/storage/postgres"
)

type Handlers struct {
	Health *healthAPI.Handler
	User   *userAPI.Handler
	Sync   *syncAPI.Handler
	Word   *wordAPI.Handler
}

// New builds a *chi.Mux with every operation registered through huma.
func New(storage *postgres.Storage, log *slog.Logger) *chi.Mux {
	mux := chi.NewMux()

	config := huma.DefaultConfig("Word Assistant API", "1.0.0")
	config.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {Type: "http", Scheme: "bearer"},
	}

	API := humachi.New(mux, config)

	h := handlers(storage, log)
	h.Health.SetupRoutes(API)
	h.User.SetupRoutes(API)
	h.Sync.SetupRoutes(API)
	h.Word.SetupRoutes(API)

	return mux
}

func handlers(storage *postgres.Storage, log *slog.Logger) *Handlers {
	sessionRepo := postgres.NewSessionRepository(storage.Pool(), log)
	sessionService := session.NewService(sessionRepo, log)
	authMW := auth.New(sessionService, log)
	loggerMW := logger.New(log)
	middlewares := middleware.NewContainer()

	middlewares.Add(loggerMW.Middleware())
	healthHandler := healthAPI.NewHandler(log, middlewares.GetAllAndClear())

	userRepo := postgres.NewUserRepository(storage.Pool(), log)
	userService := user.NewService(userRepo, log)
	middlewares.Add(loggerMW.Middleware())
	public := middlewares.GetAllAndClear()
	middlewares.Add(authMW.Middleware())
	middlewares.Add(loggerMW.Middleware())
	userHandler := userAPI.NewHandler(userService, sessionService, log, public, middlewares.GetAllAndClear())

	wordRepo := postgres.NewWordRepository(storage.Pool(), log)
	syncService := sync.NewService(wordRepo, log)
	middlewares.Add(authMW.Middleware())
	middlewares.Add(loggerMW.Middleware())
	syncHandler := syncAPI.NewHandler(syncService, log, middlewares.GetAllAndClear())

	middlewares.Add(authMW.Middleware())
	middlewares.Add(loggerMW.Middleware())
	wordHandler := wordAPI.NewHandler(syncService, log, middlewares.GetAllAndClear())

	return &Handlers{
		Health: healthHandler,
		User:   userHandler,
		Sync:   syncHandler,
		Word:   wordHandler,
	}
}

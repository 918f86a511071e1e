//регистрация, аутентификация и авторизация владельцев;
//приём локально накопленных записей от клиентов;
//отдача полного журнала записей владельца по запросу;
//журнал достижений и публичный профиль.

//POST /user/register          # Регистрация (публичный)
//POST /user/login             # Логин (публичный)
//POST /user/logout            # Logout текущей сессии (auth)
//GET  /api/entries            # Полный журнал записей (auth)
//POST /api/entries            # Пакетная загрузка записей (auth)
//DELETE /api/entries/{id}     # Удалить запись (auth)
//GET  /api/stats/global       # Общий рейтинг по напиткам (auth)
//POST /api/achievements       # Слить достижения (auth)
//GET  /api/achievements       # Журнал достижений (auth)
//GET  /api/profile            # Профиль владельца (auth)
//PATCH /api/profile           # Частичное обновление профиля (auth)

package api

import (
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"golang.org/x/exp/slog"

	achievementAPI "canlog/internal/app/server/api/http/achievement"
	entryAPI "canlog/internal/app/server/api/http/entry"
	healthAPI "canlog/internal/app/server/api/http/health"
	"canlog/internal/app/server/api/http/middleware"
	"canlog/internal/app/server/api/http/middleware/auth"
	"canlog/internal/app/server/api/http/middleware/logger"
	profileAPI "canlog/internal/app/server/api/http/profile"
	userAPI "canlog/internal/app/server/api/http/user"
	"canlog/internal/domain/achievement"
	"canlog/internal/domain/entry"
	"canlog/internal/domain/profile"
	"canlog/internal/domain/session"
	"canlog/internal/domain/user"
	"canlog/internal/infrastructure/storage/postgres"
)

type Handlers struct {
	Health      *healthAPI.Handler
	User        *userAPI.Handler
	Entry       *entryAPI.Handler
	Achievement *achievementAPI.Handler
	Profile     *profileAPI.Handler
}

// New создает *chi.Mux с ВСЕМИ операциями через huma.Register
func New(storage *postgres.Storage, log *slog.Logger) *chi.Mux {
	mux := chi.NewMux()

	config := huma.DefaultConfig("Canlog API", "1.0.0")
	config.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {Type: "http", Scheme: "bearer"},
	}

	API := humachi.New(mux, config)

	h := handlers(storage, log)
	h.Health.SetupRoutes(API)
	h.User.SetupRoutes(API)
	h.Entry.SetupRoutes(API)
	h.Achievement.SetupRoutes(API)
	h.Profile.SetupRoutes(API)

	return mux
}

func handlers(storage *postgres.Storage, log *slog.Logger) *Handlers {
	sessionRepo := postgres.NewSessionRepository(storage, log)
	sessionService := session.NewService(sessionRepo, log)
	authMW := auth.New(sessionService, log)
	loggerMW := logger.New(log)
	middlewares := middleware.NewContainer()

	middlewares.Add(loggerMW.Middleware())
	healthHandler := healthAPI.NewHandler(log, middlewares.GetAllAndClear())

	userRepo := postgres.NewUserRepository(storage, log)
	userService := user.NewService(userRepo, user.NewPasswordValidator(), log)
	middlewares.Add(loggerMW.Middleware())
	userHandler := userAPI.NewHandler(userService, sessionService, log, middlewares.GetAllAndClear())

	entryRepo := postgres.NewEntryRepository(storage, log)
	entryService := entry.NewService(entryRepo, log)
	middlewares.Add(authMW.Middleware())
	middlewares.Add(loggerMW.Middleware())
	entryHandler := entryAPI.NewHandler(entryService, log, middlewares.GetAllAndClear())

	achievementRepo := postgres.NewAchievementRepository(storage, log)
	achievementService := achievement.NewService(achievementRepo, log)
	middlewares.Add(authMW.Middleware())
	middlewares.Add(loggerMW.Middleware())
	achievementHandler := achievementAPI.NewHandler(achievementService, log, middlewares.GetAllAndClear())

	profileRepo := postgres.NewProfileRepository(storage, log)
	profileService := profile.NewService(profileRepo, entryService, log)
	middlewares.Add(authMW.Middleware())
	middlewares.Add(loggerMW.Middleware())
	profileHandler := profileAPI.NewHandler(profileService, log, middlewares.GetAllAndClear())

	return &Handlers{
		Health:      healthHandler,
		User:        userHandler,
		Entry:       entryHandler,
		Achievement: achievementHandler,
		Profile:     profileHandler,
	}
}

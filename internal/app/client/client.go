package client

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	gosync "sync"
	"time"

	"golang.org/x/exp/slog"

	"canlog/internal/app/client/config"
	"canlog/internal/domain/entry"
	"canlog/internal/domain/profile"
	"canlog/internal/domain/stats"
)

// Ключи настроек, зеркалируемых в серверный профиль.
const (
	prefDisplayName      = "displayName"
	prefShowAchievements = "showAchievements"
	prefShowStats        = "showStats"
	prefDailyGoal        = "dailyGoal"
)

const (
	minDailyGoal = 0
	maxDailyGoal = 10
)

// App - клиентское приложение: локальный журнал, настройки и
// синхронизация с сервером.
type App struct {
	config      *config.Config
	log         *slog.Logger
	httpClient  *httpClient
	storage     Storage
	syncService *SyncService
	auth        *AuthNotifier
	wg          gosync.WaitGroup
}

func New(cfg *config.Config, log *slog.Logger) (*App, error) {
	// Инициализируем HTTP клиент
	httpCl, err := NewHTTPClient(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("ошибка инициализации HTTP клиента: %w", err)
	}

	// Локальное хранилище: SQLite, при отказе - память
	var storage Storage
	sqliteStorage, err := NewSQLiteStorage(cfg.DataPath, log)
	if err != nil {
		log.Warn("Не удалось инициализировать SQLite, используем память", "error", err)
		storage = NewMemoryStorage()
	} else {
		storage = sqliteStorage
	}

	app := &App{
		config:     cfg,
		log:        log,
		httpClient: httpCl,
		storage:    storage,
		auth:       NewAuthNotifier(),
	}

	app.syncService = NewSyncService(storage, httpCl, log)

	// Движок синхронизации подписан на переходы аутентификации:
	// полный прогон на каждом переходе в authenticated
	app.auth.Subscribe(func(state AuthState) {
		if state.Status != AuthAuthenticated {
			return
		}
		app.backgroundSync()
	})

	// Загружаем токен если он есть
	if token, err := app.loadToken(); err == nil && token != "" {
		httpCl.SetToken(token)
		app.auth.Set(AuthState{Status: AuthAuthenticated})
		log.Debug("Токен загружен из файла")
	} else {
		app.auth.Set(AuthState{Status: AuthUnauthenticated})
	}

	return app, nil
}

// AuthState возвращает текущее состояние аутентификации.
func (a *App) AuthState() AuthState {
	return a.auth.State()
}

// IsAuthenticated сообщает, есть ли живой токен.
func (a *App) IsAuthenticated() bool {
	return a.auth.State().Status == AuthAuthenticated
}

// ================= Журнал =================

// AddEntry пишет запись локально. Сначала гейт лимита, затем локальная
// вставка; сеть в пути записи не участвует.
func (a *App) AddEntry(ctx context.Context, drinkID string, source entry.Source) (entry.Entry, error) {
	if !entry.KnownDrink(drinkID) {
		return entry.Entry{}, fmt.Errorf("%w: %s", entry.ErrUnknownDrink, drinkID)
	}

	cfg, err := loadRateLimitConfig(a.storage)
	if err != nil {
		return entry.Entry{}, err
	}

	entries, err := a.storage.ListEntries()
	if err != nil {
		return entry.Entry{}, err
	}

	if res := CheckRateLimit(entries, cfg, time.Now()); !res.Allowed {
		return entry.Entry{}, &RateLimitError{WaitUntil: res.WaitUntil}
	}

	e, err := a.storage.AddEntry(drinkID, source)
	if err != nil {
		return entry.Entry{}, err
	}

	// Оппортунистическая синхронизация после локальной мутации
	if a.IsAuthenticated() {
		a.backgroundSync()
	}

	return e, nil
}

// RemoveEntry удаляет запись: сначала локально, затем сразу на сервере.
// Отказ удалённого удаления пользователю не показывается - id встаёт в
// очередь и будет добит следующим прогоном.
func (a *App) RemoveEntry(ctx context.Context, id string) error {
	if err := a.storage.RemoveEntry(id); err != nil {
		return err
	}

	if a.IsAuthenticated() {
		a.syncService.DeleteRemote(ctx, id)
		a.backgroundSync()
	}

	return nil
}

// ListEntries возвращает журнал от новых к старым.
func (a *App) ListEntries() ([]entry.Entry, error) {
	return a.storage.ListEntries()
}

// Stats считает сводку по локальному журналу.
func (a *App) Stats() (stats.Summary, error) {
	entries, err := a.storage.ListEntries()
	if err != nil {
		return stats.Summary{}, err
	}
	return stats.Compute(entries, time.Now()), nil
}

// Last7Days возвращает бары за последнюю неделю.
func (a *App) Last7Days() ([]stats.DayBar, error) {
	entries, err := a.storage.ListEntries()
	if err != nil {
		return nil, err
	}
	return stats.Last7Days(entries, time.Now()), nil
}

// ================= Настройки =================

// GetPreference читает локальную настройку.
func (a *App) GetPreference(key string) (string, bool, error) {
	return a.storage.GetPreference(key)
}

// SetPreference пишет настройку локально и, для зеркалируемых ключей,
// отправляет её в серверный профиль fire-and-forget.
func (a *App) SetPreference(key, value string) error {
	if key == prefDailyGoal {
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("dailyGoal должен быть числом: %w", err)
		}
		value = strconv.Itoa(clampInt(n, minDailyGoal, maxDailyGoal))
	}

	if err := a.storage.SetPreference(key, value); err != nil {
		return err
	}

	if a.IsAuthenticated() {
		a.mirrorPreference(key, value)
	}

	return nil
}

// mirrorPreference зеркалирует один ключ в серверный профиль. Отказ
// только логируется: локальная настройка уже записана.
func (a *App) mirrorPreference(key, value string) {
	var req profile.UpdateRequest
	switch key {
	case prefDisplayName:
		req.DisplayName = &value
	case prefShowAchievements:
		v := value == "true" || value == "1"
		req.ShowAchievements = &v
	case prefShowStats:
		v := value == "true" || value == "1"
		req.ShowStats = &v
	default:
		return
	}

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := a.httpClient.UpdateProfile(ctx, req); err != nil {
			a.log.Debug("Зеркалирование настройки не удалось", "key", key, "error", err)
		}
	}()
}

// ================= Аутентификация =================

// Register создаёт владельца на сервере.
func (a *App) Register(ctx context.Context, login, password string) (int, error) {
	return a.httpClient.Register(ctx, login, password)
}

// Login обменивает учётные данные на токен и выполняет полный прогон
// синхронизации до возврата управления вызывающему.
func (a *App) Login(ctx context.Context, login, password string) error {
	token, err := a.httpClient.Login(ctx, login, password)
	if err != nil {
		return err
	}

	if err := a.saveToken(token); err != nil {
		return fmt.Errorf("ошибка сохранения токена: %w", err)
	}
	a.httpClient.SetToken(token)

	// Полный прогон до возврата: подписчик AuthNotifier запустил бы его
	// в фоне, поэтому здесь прогон выполняется синхронно, а переход
	// состояния публикуется после него
	if _, err := a.syncService.Run(ctx); err != nil {
		a.log.Warn("Первый прогон синхронизации не удался", "error", err)
	}
	if err := a.syncService.SyncAchievements(ctx); err != nil {
		a.log.Debug("Синхронизация достижений не удалась", "error", err)
	}

	a.auth.Set(AuthState{Status: AuthAuthenticated})
	return nil
}

// Logout отзывает сессию и забывает токен. Локальный журнал не трогается.
func (a *App) Logout(ctx context.Context) error {
	if err := a.httpClient.Logout(ctx); err != nil {
		a.log.Debug("Отзыв сессии на сервере не удался", "error", err)
	}

	a.httpClient.SetToken("")
	if err := os.Remove(a.config.TokenPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("ошибка удаления токена: %w", err)
	}

	a.auth.Set(AuthState{Status: AuthUnauthenticated})
	return nil
}

func (a *App) loadToken() (string, error) {
	data, err := os.ReadFile(a.config.TokenPath)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (a *App) saveToken(token string) error {
	return os.WriteFile(a.config.TokenPath, []byte(token), 0600)
}

// ================= Синхронизация =================

// Sync выполняет полный прогон синхронизации синхронно.
func (a *App) Sync(ctx context.Context) (*SyncResult, error) {
	result, err := a.syncService.Run(ctx)
	if err != nil {
		return result, err
	}

	if err := a.syncService.SyncAchievements(ctx); err != nil {
		a.log.Debug("Синхронизация достижений не удалась", "error", err)
	}

	return result, nil
}

// backgroundSync запускает прогон в фоне. Отказы ловятся и логируются
// на границе задачи: локальная мутация уже прошла, пользователь
// отказа синхронизации не видит.
func (a *App) backgroundSync() {
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if _, err := a.syncService.Run(ctx); err != nil {
			if errors.Is(err, ErrSyncInProgress) {
				return
			}
			a.log.Debug("Фоновая синхронизация не удалась, повторим позже", "error", err)
			return
		}
		if err := a.syncService.SyncAchievements(ctx); err != nil {
			a.log.Debug("Синхронизация достижений не удалась", "error", err)
		}
	}()
}

// HealthCheck проверяет доступность сервера.
func (a *App) HealthCheck(ctx context.Context) error {
	return a.httpClient.HealthCheck(ctx)
}

// Profile забирает серверный профиль владельца.
func (a *App) Profile(ctx context.Context) (*profile.Profile, error) {
	return a.httpClient.GetProfile(ctx)
}

// Close дожидается фоновых задач и закрывает хранилище.
func (a *App) Close() error {
	a.wg.Wait()
	return a.storage.Close()
}

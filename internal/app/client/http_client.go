package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/exp/slog"

	"canlog/internal/app/client/config"
	"canlog/internal/domain/achievement"
	"canlog/internal/domain/entry"
	"canlog/internal/domain/profile"
	"canlog/internal/domain/user"
)

type httpClient struct {
	client    *http.Client
	config    *config.Config
	log       *slog.Logger
	baseURL   string
	token     string
	userAgent string
}

func NewHTTPClient(cfg *config.Config, log *slog.Logger) (*httpClient, error) {
	client := &http.Client{
		Timeout: 30 * time.Second,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			IdleConnTimeout:     90 * time.Second,
			MaxIdleConnsPerHost: 10,
		},
	}

	// Определяем протокол
	scheme := "http://"
	if cfg.EnableTLS {
		scheme = "https://"
	}
	baseURL := scheme + cfg.ServerAddress

	return &httpClient{
		client:    client,
		config:    cfg,
		log:       log,
		baseURL:   baseURL,
		userAgent: "Canlog-Client/1.0",
	}, nil
}

// SetToken устанавливает токен аутентификации
func (h *httpClient) SetToken(token string) {
	h.token = token
}

// HealthCheck проверяет доступность сервера
func (h *httpClient) HealthCheck(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, "GET", h.baseURL+"/api/v1/health", nil)
	if err != nil {
		return fmt.Errorf("ошибка создания запроса: %w", err)
	}

	req.Header.Set("User-Agent", h.userAgent)

	resp, err := h.client.Do(req)
	if err != nil {
		return fmt.Errorf("сервер недоступен: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("сервер вернул статус: %d", resp.StatusCode)
	}

	return nil
}

// Register регистрирует владельца
func (h *httpClient) Register(ctx context.Context, login, password string) (int, error) {
	req := user.BaseRequest{Login: login, Password: password}

	resp, err := h.doRequest(ctx, "POST", "/user/register", req)
	if err != nil {
		return 0, err
	}

	var registerResp struct {
		ID     int    `json:"user_id"`
		Status string `json:"status"`
		Error  string `json:"error"`
	}
	if err := h.parseResponse(resp, &registerResp); err != nil {
		return 0, err
	}

	if registerResp.Status != "Ok" {
		return 0, fmt.Errorf("регистрация отклонена: %s", registerResp.Error)
	}

	return registerResp.ID, nil
}

// Login обменивает логин и пароль на токен сессии
func (h *httpClient) Login(ctx context.Context, login, password string) (string, error) {
	req := user.BaseRequest{Login: login, Password: password}

	resp, err := h.doRequest(ctx, "POST", "/user/login", req)
	if err != nil {
		return "", err
	}

	var loginResp struct {
		Token  string `json:"token"`
		Status string `json:"status"`
		Error  string `json:"error"`
	}
	if err := h.parseResponse(resp, &loginResp); err != nil {
		return "", err
	}

	if loginResp.Status != "Ok" || loginResp.Token == "" {
		return "", fmt.Errorf("вход отклонён: %s", loginResp.Error)
	}

	return loginResp.Token, nil
}

// Logout отзывает текущую сессию на сервере
func (h *httpClient) Logout(ctx context.Context) error {
	resp, err := h.doRequest(ctx, "POST", "/user/logout", nil)
	if err != nil {
		return err
	}

	return h.parseResponse(resp, nil)
}

// ListEntries забирает полный журнал записей владельца
func (h *httpClient) ListEntries(ctx context.Context) ([]entry.Entry, error) {
	resp, err := h.doRequest(ctx, "GET", "/api/entries", nil)
	if err != nil {
		return nil, err
	}

	var listResp entry.ListResponse
	if err := h.parseResponse(resp, &listResp); err != nil {
		return nil, err
	}

	return listResp.Entries, nil
}

// UpsertEntries отправляет пакет записей. Повторная отправка того же
// пакета безопасна: сервер пропускает уже известные id.
func (h *httpClient) UpsertEntries(ctx context.Context, entries []entry.UpsertEntry) error {
	req := entry.UpsertRequest{Entries: entries}

	resp, err := h.doRequest(ctx, "POST", "/api/entries", req)
	if err != nil {
		return err
	}

	return h.parseResponse(resp, nil)
}

// DeleteEntry удаляет запись владельца на сервере
func (h *httpClient) DeleteEntry(ctx context.Context, id string) error {
	resp, err := h.doRequest(ctx, "DELETE", "/api/entries/"+id, nil)
	if err != nil {
		return err
	}

	return h.parseResponse(resp, nil)
}

// SyncAchievements сливает набор достижений в серверный журнал
func (h *httpClient) SyncAchievements(ctx context.Context, ids []string) error {
	req := achievement.SyncRequest{AchievementIDs: ids}

	resp, err := h.doRequest(ctx, "POST", "/api/achievements", req)
	if err != nil {
		return err
	}

	return h.parseResponse(resp, nil)
}

// GetProfile забирает профиль владельца
func (h *httpClient) GetProfile(ctx context.Context) (*profile.Profile, error) {
	resp, err := h.doRequest(ctx, "GET", "/api/profile", nil)
	if err != nil {
		return nil, err
	}

	var getResp profile.GetResponse
	if err := h.parseResponse(resp, &getResp); err != nil {
		return nil, err
	}

	return getResp.Profile, nil
}

// UpdateProfile частично обновляет профиль владельца
func (h *httpClient) UpdateProfile(ctx context.Context, req profile.UpdateRequest) error {
	resp, err := h.doRequest(ctx, "PATCH", "/api/profile", req)
	if err != nil {
		return err
	}

	return h.parseResponse(resp, nil)
}

func (h *httpClient) doRequest(ctx context.Context, method, path string, body interface{}) (*http.Response, error) {
	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("ошибка маршалинга тела запроса: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, h.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания запроса: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", h.userAgent)
	if h.token != "" {
		req.Header.Set("Authorization", "Bearer "+h.token)
	}

	h.log.Debug("Отправка запроса",
		"method", method,
		"url", req.URL.String(),
	)

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ошибка выполнения запроса: %w", err)
	}

	return resp, nil
}

func (h *httpClient) parseResponse(resp *http.Response, result interface{}) error {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("ошибка чтения ответа: %w", err)
	}

	h.log.Debug("Получен ответ",
		"status", resp.StatusCode,
	)

	if resp.StatusCode >= 400 {
		var errResp struct {
			Error string `json:"error"`
		}
		if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
			return fmt.Errorf("ошибка сервера: %s", errResp.Error)
		}
		return fmt.Errorf("ошибка сервера: статус %d", resp.StatusCode)
	}

	if result != nil {
		if err := json.Unmarshal(body, result); err != nil {
			return fmt.Errorf("ошибка парсинга ответа: %w", err)
		}
	}

	return nil
}

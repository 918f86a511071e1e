package profile

import (
	"time"
)

// Profile - публичный профиль владельца. Отдельные ключи локальных настроек
// клиента зеркалируются сюда при наличии аутентификации.
type Profile struct {
	UserID           int       `json:"user_id"`
	DisplayName      string    `json:"display_name"`
	ShowAchievements bool      `json:"show_achievements"`
	ShowStats        bool      `json:"show_stats"`
	UpdatedAt        time.Time `json:"updated_at"`
}

package profile

import (
	"canlog/internal/domain/stats"
)

// DTO для API профиля.

// UpdateRequest - частичное обновление: nil-поля не трогаются.
type UpdateRequest struct {
	DisplayName      *string `json:"display_name,omitempty" maxLength:"64"`
	ShowAchievements *bool   `json:"show_achievements,omitempty"`
	ShowStats        *bool   `json:"show_stats,omitempty"`
}

// GetResponse - профиль владельца со сводкой журнала, если она открыта.
type GetResponse struct {
	Status  string         `json:"status"`
	Profile *Profile       `json:"profile,omitempty"`
	Stats   *stats.Summary `json:"stats,omitempty"`
}

// UpdateResponse - результат обновления.
type UpdateResponse struct {
	Status  string   `json:"status"`
	Profile *Profile `json:"profile,omitempty"`
}

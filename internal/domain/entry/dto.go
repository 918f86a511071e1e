package entry

import (
	"time"
)

// DTO для API синхронизации записей.

// UpsertRequest - пакет записей от клиента.
type UpsertRequest struct {
	Entries []UpsertEntry `json:"entries"`
}

// UpsertEntry - одна запись пакета.
type UpsertEntry struct {
	ID       string    `json:"id" minLength:"1"`
	DrinkID  string    `json:"drink_id" minLength:"1"`
	LoggedAt time.Time `json:"logged_at" format:"date-time"`
	Source   string    `json:"source,omitempty" enum:"manual,scan"`
}

// UpsertResponse - результат пакетной загрузки.
type UpsertResponse struct {
	Status    string `json:"status"`
	Processed int    `json:"processed"`
	Skipped   int    `json:"skipped"`
}

// ListResponse - записи владельца.
type ListResponse struct {
	Status  string  `json:"status"`
	Entries []Entry `json:"entries"`
}

// DeleteResponse - результат удаления.
type DeleteResponse struct {
	Status string `json:"status"`
}

// GlobalStatsResponse - общий рейтинг по напиткам.
type GlobalStatsResponse struct {
	Status       string         `json:"status"`
	Total        int            `json:"total"`
	CountByDrink map[string]int `json:"count_by_drink"`
}

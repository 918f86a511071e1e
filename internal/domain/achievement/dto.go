package achievement

// DTO для API журнала достижений.

// SyncRequest - набор идентификаторов от клиента.
type SyncRequest struct {
	AchievementIDs []string `json:"achievement_ids"`
}

// SyncResponse - результат слияния с журналом.
type SyncResponse struct {
	Status string `json:"status"`
	Synced int    `json:"synced"`
}

// ListResponse - достижения владельца.
type ListResponse struct {
	Status  string   `json:"status"`
	Unlocks []Unlock `json:"unlocks"`
}

package profile

import (
	"context"
)

// Repository - серверное хранилище профилей.
type Repository interface {
	// Get возвращает профиль владельца или ErrNotFound.
	Get(ctx context.Context, userID int) (*Profile, error)

	// Upsert записывает профиль целиком, последняя запись выигрывает.
	Upsert(ctx context.Context, p *Profile) error
}

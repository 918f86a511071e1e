package session

import (
	"context"
	"time"
)

// Repository - серверное хранилище сессий. Токены хранятся только в виде
// sha256-хэшей.
type Repository interface {
	Create(ctx context.Context, userID int, tokenHash string, expiresAt time.Time) error
	Validate(ctx context.Context, tokenHash string) (int, error)
	Delete(ctx context.Context, tokenHash string) error
}

package achievement

import (
	"context"
)

// Repository - серверный журнал достижений.
type Repository interface {
	// UpsertIgnoreDuplicates вставляет пары (владелец, достижение), молча
	// пропуская уже существующие. Возвращает количество новых строк.
	UpsertIgnoreDuplicates(ctx context.Context, userID int, ids []string) (int, error)

	// List возвращает все достижения владельца.
	List(ctx context.Context, userID int) ([]Unlock, error)
}

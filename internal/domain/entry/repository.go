package entry

import (
	"context"
)

// Repository - серверное хранилище записей. Все операции ограничены владельцем:
// строки чужих пользователей недостижимы ни из одного метода.
type Repository interface {
	// List возвращает все записи владельца, новые первыми.
	List(ctx context.Context, userID int) ([]Entry, error)

	// Upsert вставляет пакет записей с конфликтом по id. Уже существующие id
	// пропускаются молча: строки неизменяемы после записи, повторная отправка
	// того же пакета не создает дублей и не ошибается.
	Upsert(ctx context.Context, userID int, entries []Entry) (int, error)

	// Delete удаляет запись владельца. Отсутствующий id не считается ошибкой.
	Delete(ctx context.Context, userID int, entryID string) error

	// CountByDrink - агрегат по всем пользователям для общей статистики.
	CountByDrink(ctx context.Context) (map[string]int, error)
}

package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"golang.org/x/exp/slog"

	"canlog/internal/domain/entry"
)

type EntryRepository struct {
	db  *Storage
	log *slog.Logger
}

func NewEntryRepository(db *Storage, log *slog.Logger) *EntryRepository {
	return &EntryRepository{
		db:  db,
		log: log.With("component", "entry_repository"),
	}
}

func (r *EntryRepository) List(ctx context.Context, userID int) ([]entry.Entry, error) {
	const query = `
		SELECT id, user_id, drink_id, logged_at, source
		FROM entries
		WHERE user_id = $1
		ORDER BY logged_at ASC`

	rows, err := r.db.Pool().Query(ctx, query, userID)
	if err != nil {
		r.log.Error("failed to list entries", "user_id", userID, "error", err)
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()

	var entries []entry.Entry
	for rows.Next() {
		var e entry.Entry
		var src string
		if err := rows.Scan(&e.ID, &e.UserID, &e.DrinkID, &e.LoggedAt, &src); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		e.Source = entry.ParseSource(src)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entries: %w", err)
	}

	return entries, nil
}

// Upsert вставляет записи батчем. Записи неизменяемы, поэтому конфликт по id
// молча пропускается. Возвращает количество реально вставленных строк.
func (r *EntryRepository) Upsert(ctx context.Context, userID int, entries []entry.Entry) (int, error) {
	const query = `
		INSERT INTO entries (id, user_id, drink_id, logged_at, source)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO NOTHING`

	batch := &pgx.Batch{}
	for _, e := range entries {
		batch.Queue(query, e.ID, userID, e.DrinkID, e.LoggedAt, string(e.Source))
	}

	results := r.db.Pool().SendBatch(ctx, batch)
	defer results.Close()

	inserted := 0
	for range entries {
		tag, err := results.Exec()
		if err != nil {
			r.log.Error("failed to upsert entries", "user_id", userID, "error", err)
			return inserted, fmt.Errorf("upsert entries: %w", err)
		}
		inserted += int(tag.RowsAffected())
	}

	return inserted, nil
}

func (r *EntryRepository) Delete(ctx context.Context, userID int, entryID string) error {
	const query = `DELETE FROM entries WHERE id = $1 AND user_id = $2`

	// ноль затронутых строк не ошибка, удаление идемпотентно
	_, err := r.db.Pool().Exec(ctx, query, entryID, userID)
	if err != nil {
		r.log.Error("failed to delete entry",
			"entry_id", entryID, "user_id", userID, "error", err)
		return fmt.Errorf("delete entry: %w", err)
	}
	return nil
}

func (r *EntryRepository) CountByDrink(ctx context.Context) (map[string]int, error) {
	const query = `SELECT drink_id, COUNT(*) FROM entries GROUP BY drink_id`

	rows, err := r.db.Pool().Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("count by drink: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var drinkID string
		var n int
		if err := rows.Scan(&drinkID, &n); err != nil {
			return nil, fmt.Errorf("scan count: %w", err)
		}
		counts[drinkID] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate counts: %w", err)
	}

	return counts, nil
}

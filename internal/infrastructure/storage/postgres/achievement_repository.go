package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"golang.org/x/exp/slog"

	"canlog/internal/domain/achievement"
)

type AchievementRepository struct {
	db  *Storage
	log *slog.Logger
}

func NewAchievementRepository(db *Storage, log *slog.Logger) *AchievementRepository {
	return &AchievementRepository{
		db:  db,
		log: log.With("component", "achievement_repository"),
	}
}

// UpsertIgnoreDuplicates пишет пары (владелец, достижение). Журнал только
// пополняется: повторная запись той же пары пропускается.
func (r *AchievementRepository) UpsertIgnoreDuplicates(ctx context.Context, userID int, ids []string) (int, error) {
	const query = `
		INSERT INTO user_achievements (user_id, achievement_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, achievement_id) DO NOTHING`

	batch := &pgx.Batch{}
	for _, id := range ids {
		batch.Queue(query, userID, id)
	}

	results := r.db.Pool().SendBatch(ctx, batch)
	defer results.Close()

	inserted := 0
	for range ids {
		tag, err := results.Exec()
		if err != nil {
			r.log.Error("failed to upsert achievements", "user_id", userID, "error", err)
			return inserted, fmt.Errorf("upsert achievements: %w", err)
		}
		inserted += int(tag.RowsAffected())
	}

	return inserted, nil
}

func (r *AchievementRepository) List(ctx context.Context, userID int) ([]achievement.Unlock, error) {
	const query = `
		SELECT user_id, achievement_id, unlocked_at
		FROM user_achievements
		WHERE user_id = $1
		ORDER BY unlocked_at ASC`

	rows, err := r.db.Pool().Query(ctx, query, userID)
	if err != nil {
		r.log.Error("failed to list achievements", "user_id", userID, "error", err)
		return nil, fmt.Errorf("list achievements: %w", err)
	}
	defer rows.Close()

	var unlocks []achievement.Unlock
	for rows.Next() {
		var u achievement.Unlock
		if err := rows.Scan(&u.UserID, &u.AchievementID, &u.UnlockedAt); err != nil {
			return nil, fmt.Errorf("scan unlock: %w", err)
		}
		unlocks = append(unlocks, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate unlocks: %w", err)
	}

	return unlocks, nil
}

package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"golang.org/x/exp/slog"

	"canlog/internal/domain/profile"
)

type ProfileRepository struct {
	db  *Storage
	log *slog.Logger
}

func NewProfileRepository(db *Storage, log *slog.Logger) *ProfileRepository {
	return &ProfileRepository{
		db:  db,
		log: log.With("component", "profile_repository"),
	}
}

func (r *ProfileRepository) Get(ctx context.Context, userID int) (*profile.Profile, error) {
	const query = `
		SELECT user_id, display_name, show_achievements, show_stats, updated_at
		FROM profiles
		WHERE user_id = $1`

	var p profile.Profile
	err := r.db.Pool().QueryRow(ctx, query, userID).
		Scan(&p.UserID, &p.DisplayName, &p.ShowAchievements, &p.ShowStats, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, profile.ErrNotFound
		}
		r.log.Error("failed to get profile", "user_id", userID, "error", err)
		return nil, fmt.Errorf("get profile: %w", err)
	}

	return &p, nil
}

func (r *ProfileRepository) Upsert(ctx context.Context, p *profile.Profile) error {
	const query = `
		INSERT INTO profiles (user_id, display_name, show_achievements, show_stats, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id) DO UPDATE
		SET display_name = EXCLUDED.display_name,
		    show_achievements = EXCLUDED.show_achievements,
		    show_stats = EXCLUDED.show_stats,
		    updated_at = EXCLUDED.updated_at`

	_, err := r.db.Pool().Exec(ctx, query,
		p.UserID, p.DisplayName, p.ShowAchievements, p.ShowStats, p.UpdatedAt)
	if err != nil {
		r.log.Error("failed to upsert profile", "user_id", p.UserID, "error", err)
		return fmt.Errorf("upsert profile: %w", err)
	}
	return nil
}

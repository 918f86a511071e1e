package achievement

import (
	"context"
	"fmt"

	"golang.org/x/exp/slog"
)

// Servicer defines the business logic for the achievements ledger.
type Servicer interface {
	Sync(ctx context.Context, userID int, req SyncRequest) (SyncResponse, error)
	List(ctx context.Context, userID int) (ListResponse, error)
}

type Service struct {
	repo Repository
	log  *slog.Logger
}

// NewService creates a new achievement service.
func NewService(repo Repository, log *slog.Logger) Servicer {
	return &Service{
		repo: repo,
		log:  log.With("component", "achievement_service"),
	}
}

// Sync merges the client-computed unlock set into the ledger. The ledger is
// append-only: ids already present are ignored, nothing is ever removed, so a
// client may resend its full set on every history change.
func (s *Service) Sync(ctx context.Context, userID int, req SyncRequest) (SyncResponse, error) {
	ids := make([]string, 0, len(req.AchievementIDs))
	for _, id := range req.AchievementIDs {
		if !Known(id) {
			return SyncResponse{}, fmt.Errorf("%w: %s", ErrUnknownAchievement, id)
		}
		ids = append(ids, id)
	}

	if len(ids) == 0 {
		return SyncResponse{Status: "Ok", Synced: 0}, nil
	}

	added, err := s.repo.UpsertIgnoreDuplicates(ctx, userID, ids)
	if err != nil {
		s.log.Error("failed to sync achievements", "user_id", userID, "error", err)
		return SyncResponse{}, fmt.Errorf("sync achievements: %w", err)
	}

	if added > 0 {
		s.log.Info("new achievements recorded", "user_id", userID, "added", added)
	}

	return SyncResponse{Status: "Ok", Synced: added}, nil
}

// List returns every unlock recorded for the user.
func (s *Service) List(ctx context.Context, userID int) (ListResponse, error) {
	unlocks, err := s.repo.List(ctx, userID)
	if err != nil {
		s.log.Error("failed to list achievements", "user_id", userID, "error", err)
		return ListResponse{}, fmt.Errorf("list achievements: %w", err)
	}

	return ListResponse{Status: "Ok", Unlocks: unlocks}, nil
}

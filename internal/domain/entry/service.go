package entry

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/exp/slog"
)

// Servicer defines the business logic for the entries collection.
type Servicer interface {
	List(ctx context.Context, userID int) ([]Entry, error)
	Upsert(ctx context.Context, userID int, req UpsertRequest) (UpsertResponse, error)
	Delete(ctx context.Context, userID int, entryID string) error
	GlobalStats(ctx context.Context) (GlobalStatsResponse, error)
}

type Service struct {
	repo Repository
	log  *slog.Logger
}

// NewService creates a new entry service.
func NewService(repo Repository, log *slog.Logger) Servicer {
	return &Service{
		repo: repo,
		log:  log.With("component", "entry_service"),
	}
}

// List returns all entries owned by the user, newest first.
func (s *Service) List(ctx context.Context, userID int) ([]Entry, error) {
	entries, err := s.repo.List(ctx, userID)
	if err != nil {
		s.log.Error("failed to list entries", "user_id", userID, "error", err)
		return nil, fmt.Errorf("list entries: %w", err)
	}
	return entries, nil
}

// Upsert stores a batch of entries keyed by id. Entries already present remotely
// are skipped, so a client retrying the same batch never creates duplicates.
func (s *Service) Upsert(ctx context.Context, userID int, req UpsertRequest) (UpsertResponse, error) {
	rows := make([]Entry, 0, len(req.Entries))
	for _, e := range req.Entries {
		if e.ID == "" || e.LoggedAt.IsZero() {
			return UpsertResponse{}, ErrInvalidEntry
		}
		if !KnownDrink(e.DrinkID) {
			return UpsertResponse{}, fmt.Errorf("%w: %s", ErrUnknownDrink, e.DrinkID)
		}
		rows = append(rows, Entry{
			ID:       e.ID,
			UserID:   userID,
			DrinkID:  e.DrinkID,
			LoggedAt: e.LoggedAt,
			Source:   ParseSource(e.Source),
		})
	}

	// Старые записи первыми, чтобы порядок вставки на сервере был осмысленным.
	sort.Slice(rows, func(i, j int) bool { return rows[i].LoggedAt.Before(rows[j].LoggedAt) })

	processed, err := s.repo.Upsert(ctx, userID, rows)
	if err != nil {
		s.log.Error("failed to upsert entries", "user_id", userID, "count", len(rows), "error", err)
		return UpsertResponse{}, fmt.Errorf("upsert entries: %w", err)
	}

	s.log.Debug("entries upserted", "user_id", userID, "processed", processed, "skipped", len(rows)-processed)
	return UpsertResponse{
		Status:    "Ok",
		Processed: processed,
		Skipped:   len(rows) - processed,
	}, nil
}

// Delete removes a single entry owned by the user. Deleting an id that is
// already gone is not an error: the client retries deletes until they succeed.
func (s *Service) Delete(ctx context.Context, userID int, entryID string) error {
	if err := s.repo.Delete(ctx, userID, entryID); err != nil {
		s.log.Error("failed to delete entry", "user_id", userID, "entry_id", entryID, "error", err)
		return fmt.Errorf("delete entry: %w", err)
	}
	return nil
}

// GlobalStats aggregates entry counts across all users.
func (s *Service) GlobalStats(ctx context.Context) (GlobalStatsResponse, error) {
	counts, err := s.repo.CountByDrink(ctx)
	if err != nil {
		s.log.Error("failed to count entries by drink", "error", err)
		return GlobalStatsResponse{}, fmt.Errorf("global stats: %w", err)
	}

	total := 0
	for _, n := range counts {
		total += n
	}

	return GlobalStatsResponse{
		Status:       "Ok",
		Total:        total,
		CountByDrink: counts,
	}, nil
}

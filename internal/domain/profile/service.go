package profile

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/exp/slog"

	"canlog/internal/domain/entry"
	"canlog/internal/domain/stats"
)

const defaultDisplayName = "User"

// Servicer defines the business logic for owner profiles.
type Servicer interface {
	Get(ctx context.Context, userID int) (GetResponse, error)
	Update(ctx context.Context, userID int, req UpdateRequest) (UpdateResponse, error)
}

// EntryLister provides the owner's journal for the public stats block.
type EntryLister interface {
	List(ctx context.Context, userID int) ([]entry.Entry, error)
}

type Service struct {
	repo    Repository
	entries EntryLister
	log     *slog.Logger
}

// NewService creates a new profile service.
func NewService(repo Repository, entries EntryLister, log *slog.Logger) Servicer {
	return &Service{
		repo:    repo,
		entries: entries,
		log:     log.With("component", "profile_service"),
	}
}

// Get returns the owner's profile, creating a default one on first access.
// When the owner shows stats, the response carries a summary of their journal.
func (s *Service) Get(ctx context.Context, userID int) (GetResponse, error) {
	p, err := s.repo.Get(ctx, userID)
	if errors.Is(err, ErrNotFound) {
		p = s.defaultProfile(userID)
		if err := s.repo.Upsert(ctx, p); err != nil {
			return GetResponse{}, fmt.Errorf("init profile: %w", err)
		}
	} else if err != nil {
		s.log.Error("failed to get profile", "user_id", userID, "error", err)
		return GetResponse{}, fmt.Errorf("get profile: %w", err)
	}

	resp := GetResponse{Status: "Ok", Profile: p}

	if p.ShowStats && s.entries != nil {
		journal, err := s.entries.List(ctx, userID)
		if err != nil {
			// Профиль важнее сводки: отдаём его без блока статистики
			s.log.Error("failed to list entries for profile stats", "user_id", userID, "error", err)
			return resp, nil
		}
		summary := stats.Compute(journal, time.Now())
		resp.Stats = &summary
	}

	return resp, nil
}

// Update applies a partial profile update, last write wins.
func (s *Service) Update(ctx context.Context, userID int, req UpdateRequest) (UpdateResponse, error) {
	p, err := s.repo.Get(ctx, userID)
	if errors.Is(err, ErrNotFound) {
		p = s.defaultProfile(userID)
	} else if err != nil {
		return UpdateResponse{}, fmt.Errorf("get profile: %w", err)
	}

	if req.DisplayName != nil {
		p.DisplayName = *req.DisplayName
	}
	if req.ShowAchievements != nil {
		p.ShowAchievements = *req.ShowAchievements
	}
	if req.ShowStats != nil {
		p.ShowStats = *req.ShowStats
	}
	p.UpdatedAt = time.Now()

	if err := s.repo.Upsert(ctx, p); err != nil {
		s.log.Error("failed to update profile", "user_id", userID, "error", err)
		return UpdateResponse{}, fmt.Errorf("update profile: %w", err)
	}

	return UpdateResponse{Status: "Ok", Profile: p}, nil
}

func (s *Service) defaultProfile(userID int) *Profile {
	return &Profile{
		UserID:           userID,
		DisplayName:      defaultDisplayName,
		ShowAchievements: true,
		ShowStats:        true,
		UpdatedAt:        time.Now(),
	}
}

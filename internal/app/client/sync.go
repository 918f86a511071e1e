package client

import (
	"context"
	"fmt"
	gosync "sync"
	"time"

	"golang.org/x/exp/slog"

	"canlog/internal/domain/achievement"
	"canlog/internal/domain/entry"
	"canlog/internal/domain/stats"
)

// remoteAPI - кусок HTTP-клиента, нужный движку синхронизации.
// Отдельный интерфейс, чтобы тестировать движок без сети.
type remoteAPI interface {
	ListEntries(ctx context.Context) ([]entry.Entry, error)
	UpsertEntries(ctx context.Context, entries []entry.UpsertEntry) error
	DeleteEntry(ctx context.Context, id string) error
	SyncAchievements(ctx context.Context, ids []string) error
}

// SyncService управляет синхронизацией локального журнала с сервером.
// Каждый шаг прогона идемпотентен, поэтому прерванный прогон безопасно
// повторяется целиком на следующем триггере.
type SyncService struct {
	storage  Storage
	remote   remoteAPI
	log      *slog.Logger
	mu       gosync.Mutex
	syncing  bool
	lastSync time.Time
}

// SyncResult - итог одного прогона.
type SyncResult struct {
	Deleted int `json:"deleted"`
	Pulled  int `json:"pulled"`
	Pushed  int `json:"pushed"`
}

func NewSyncService(storage Storage, remote remoteAPI, log *slog.Logger) *SyncService {
	return &SyncService{
		storage: storage,
		remote:  remote,
		log:     log.With("component", "sync"),
	}
}

// Run выполняет один прогон: отложенные удаления, затем pull, затем push.
// Отказ любого шага прерывает остаток прогона: локальное состояние
// остаётся согласованным, прогон повторится на следующем триггере.
func (s *SyncService) Run(ctx context.Context) (*SyncResult, error) {
	// Флаг in-flight сериализует перекрывающиеся прогоны. Это только
	// экономия: параллельные прогоны корректны, но бессмысленны.
	s.mu.Lock()
	if s.syncing {
		s.mu.Unlock()
		return nil, ErrSyncInProgress
	}
	s.syncing = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.syncing = false
		s.mu.Unlock()
	}()

	result := &SyncResult{}

	// 1. Отложенные удаления
	deleted, err := s.drainPendingDeletes(ctx)
	result.Deleted = deleted
	if err != nil {
		return result, fmt.Errorf("drain pending deletes: %w", err)
	}

	// 2. Pull: чужие записи журнала
	pulled, err := s.pull(ctx)
	result.Pulled = pulled
	if err != nil {
		return result, fmt.Errorf("pull: %w", err)
	}

	// 3. Push: локальные неотправленные записи
	pushed, err := s.push(ctx)
	result.Pushed = pushed
	if err != nil {
		return result, fmt.Errorf("push: %w", err)
	}

	s.mu.Lock()
	s.lastSync = time.Now()
	s.mu.Unlock()

	s.log.Info("sync run finished",
		"deleted", result.Deleted,
		"pulled", result.Pulled,
		"pushed", result.Pushed,
	)

	return result, nil
}

// drainPendingDeletes проходит очередь отложенных удалений. Каждый id
// убирается из очереди только после успешного удаления на сервере;
// на отказе id остаётся в очереди, а прогон прерывается.
func (s *SyncService) drainPendingDeletes(ctx context.Context) (int, error) {
	ids, err := s.storage.ListPendingDeletes()
	if err != nil {
		return 0, err
	}

	processed := 0
	for _, id := range ids {
		if err := s.remote.DeleteEntry(ctx, id); err != nil {
			return processed, err
		}
		if err := s.storage.RemovePendingDelete(id); err != nil {
			return processed, err
		}
		processed++
	}

	return processed, nil
}

// pull забирает весь журнал владельца и вставляет недостающие записи
// с synced = 1. Повторный pull ничего не меняет.
func (s *SyncService) pull(ctx context.Context) (int, error) {
	remote, err := s.remote.ListEntries(ctx)
	if err != nil {
		return 0, err
	}

	return s.storage.InsertIfAbsent(remote)
}

// push отправляет локальные записи с synced = 0 одним пакетом от старых
// к новым. На успехе помечает отправленным ровно этот пакет: записи,
// добавленные во время прогона, уйдут со следующим.
func (s *SyncService) push(ctx context.Context) (int, error) {
	unsynced, err := s.storage.ListUnsynced()
	if err != nil {
		return 0, err
	}
	if len(unsynced) == 0 {
		return 0, nil
	}

	batch := make([]entry.UpsertEntry, 0, len(unsynced))
	ids := make([]string, 0, len(unsynced))
	for _, e := range unsynced {
		batch = append(batch, entry.UpsertEntry{
			ID:       e.ID,
			DrinkID:  e.DrinkID,
			LoggedAt: e.LoggedAt,
			Source:   string(e.Source),
		})
		ids = append(ids, e.ID)
	}

	if err := s.remote.UpsertEntries(ctx, batch); err != nil {
		return 0, err
	}

	if err := s.storage.MarkSynced(ids); err != nil {
		return 0, err
	}

	return len(ids), nil
}

// DeleteRemote удаляет запись на сервере сразу после локального удаления.
// На отказе id встаёт в очередь отложенных удалений: пользователь отказа
// не видит, очередь добьёт удаление на следующем прогоне.
func (s *SyncService) DeleteRemote(ctx context.Context, id string) {
	if err := s.remote.DeleteEntry(ctx, id); err != nil {
		s.log.Debug("remote delete failed, queueing", "id", id, "error", err)
		if qerr := s.storage.EnqueuePendingDelete(id); qerr != nil {
			s.log.Error("failed to enqueue pending delete", "id", id, "error", qerr)
		}
	}
}

// SyncAchievements пересчитывает достижения из локального журнала и
// сливает набор в серверный журнал. Журнал только пополняется, поэтому
// повторный вызов безопасен и дёшев.
func (s *SyncService) SyncAchievements(ctx context.Context) error {
	entries, err := s.storage.ListEntries()
	if err != nil {
		return err
	}

	summary := stats.Compute(entries, time.Now())
	ids := achievement.UnlockedIDs(entries, summary.Total, summary.Streak, summary.CountByDrink)
	if len(ids) == 0 {
		return nil
	}

	if err := s.remote.SyncAchievements(ctx, ids); err != nil {
		return fmt.Errorf("sync achievements: %w", err)
	}

	return nil
}

// LastSync возвращает момент последнего успешного прогона.
func (s *SyncService) LastSync() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSync
}

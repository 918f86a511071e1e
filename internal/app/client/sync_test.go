package client

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"canlog/internal/domain/entry"
)

// MockRemote is a mock implementation of the remoteAPI interface for testing
type MockRemote struct {
	mock.Mock
}

func (m *MockRemote) ListEntries(ctx context.Context) ([]entry.Entry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entry.Entry), args.Error(1)
}

func (m *MockRemote) UpsertEntries(ctx context.Context, entries []entry.UpsertEntry) error {
	args := m.Called(ctx, entries)
	return args.Error(0)
}

func (m *MockRemote) DeleteEntry(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRemote) SyncAchievements(ctx context.Context, ids []string) error {
	args := m.Called(ctx, ids)
	return args.Error(0)
}

func newTestSync(storage Storage, remote remoteAPI) *SyncService {
	return NewSyncService(storage, remote, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestSyncService_Run_PushesUnsynced(t *testing.T) {
	storage := NewMemoryStorage()
	remote := new(MockRemote)
	svc := newTestSync(storage, remote)

	e1, err := storage.AddEntry("original-green", entry.SourceManual)
	require.NoError(t, err)
	e2, err := storage.AddEntry("mango-loco", entry.SourceManual)
	require.NoError(t, err)

	remote.On("ListEntries", mock.Anything).Return([]entry.Entry{}, nil)
	remote.On("UpsertEntries", mock.Anything, mock.MatchedBy(func(batch []entry.UpsertEntry) bool {
		// пакет от старых к новым
		return len(batch) == 2 && batch[0].ID == e1.ID && batch[1].ID == e2.ID
	})).Return(nil)

	result, err := svc.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, result.Pushed)

	// повторный прогон ничего не отправляет: пакет помечен отправленным
	remote.On("ListEntries", mock.Anything).Return([]entry.Entry{}, nil)
	result, err = svc.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, result.Pushed)
	remote.AssertNumberOfCalls(t, "UpsertEntries", 1)
}

func TestSyncService_Run_PullInsertsOnlyAbsent(t *testing.T) {
	storage := NewMemoryStorage()
	remote := new(MockRemote)
	svc := newTestSync(storage, remote)

	local, err := storage.AddEntry("original-green", entry.SourceManual)
	require.NoError(t, err)
	require.NoError(t, storage.MarkSynced([]string{local.ID}))

	foreign := entry.Entry{ID: "424242", DrinkID: "mango-loco", LoggedAt: time.Now().Add(-time.Hour)}
	remote.On("ListEntries", mock.Anything).Return([]entry.Entry{local, foreign}, nil)

	result, err := svc.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Pulled)

	entries, err := storage.ListEntries()
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	// pull идемпотентен
	result, err = svc.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, result.Pulled)
}

func TestSyncService_Run_DrainsDeletesBeforePull(t *testing.T) {
	storage := NewMemoryStorage()
	remote := new(MockRemote)
	svc := newTestSync(storage, remote)

	// запись удалена локально в оффлайне, сервер про неё ещё знает
	ghost := entry.Entry{ID: "777", DrinkID: "ultra-blue-hawaiian", LoggedAt: time.Now().Add(-2 * time.Hour)}
	require.NoError(t, storage.EnqueuePendingDelete(ghost.ID))

	remote.On("DeleteEntry", mock.Anything, ghost.ID).Return(nil)
	// к моменту pull сервер запись уже не отдаёт
	remote.On("ListEntries", mock.Anything).Return([]entry.Entry{}, nil)

	result, err := svc.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Deleted)

	// призрак не воскрес
	entries, err := storage.ListEntries()
	require.NoError(t, err)
	assert.Empty(t, entries)

	pending, err := storage.ListPendingDeletes()
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestSyncService_Run_DrainFailureAbortsRun(t *testing.T) {
	storage := NewMemoryStorage()
	remote := new(MockRemote)
	svc := newTestSync(storage, remote)

	require.NoError(t, storage.EnqueuePendingDelete("777"))
	remote.On("DeleteEntry", mock.Anything, "777").Return(errors.New("network down"))

	_, err := svc.Run(context.Background())
	assert.Error(t, err)

	// id остался в очереди, pull и push не выполнялись
	pending, err := storage.ListPendingDeletes()
	require.NoError(t, err)
	assert.Equal(t, []string{"777"}, pending)
	remote.AssertNotCalled(t, "ListEntries", mock.Anything)
	remote.AssertNotCalled(t, "UpsertEntries", mock.Anything, mock.Anything)
}

func TestSyncService_Run_PullFailureSkipsPush(t *testing.T) {
	storage := NewMemoryStorage()
	remote := new(MockRemote)
	svc := newTestSync(storage, remote)

	_, err := storage.AddEntry("original-green", entry.SourceManual)
	require.NoError(t, err)

	remote.On("ListEntries", mock.Anything).Return(nil, errors.New("network down"))

	_, err = svc.Run(context.Background())
	assert.Error(t, err)
	remote.AssertNotCalled(t, "UpsertEntries", mock.Anything, mock.Anything)

	// запись осталась неотправленной и уйдёт со следующим прогоном
	unsynced, err := storage.ListUnsynced()
	require.NoError(t, err)
	assert.Len(t, unsynced, 1)
}

func TestSyncService_Run_MarksExactlyPushedBatch(t *testing.T) {
	storage := NewMemoryStorage()
	remote := new(MockRemote)
	svc := newTestSync(storage, remote)

	e1, err := storage.AddEntry("original-green", entry.SourceManual)
	require.NoError(t, err)

	remote.On("ListEntries", mock.Anything).Return([]entry.Entry{}, nil)
	var late entry.Entry
	remote.On("UpsertEntries", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		// запись добавлена во время прогона, в пакет не попала
		late, _ = storage.AddEntry("mango-loco", entry.SourceManual)
	}).Return(nil)

	result, err := svc.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Pushed)

	unsynced, err := storage.ListUnsynced()
	require.NoError(t, err)
	require.Len(t, unsynced, 1)
	assert.Equal(t, late.ID, unsynced[0].ID)
	assert.NotEqual(t, e1.ID, unsynced[0].ID)
}

func TestSyncService_DeleteRemote_QueuesOnFailure(t *testing.T) {
	storage := NewMemoryStorage()
	remote := new(MockRemote)
	svc := newTestSync(storage, remote)

	remote.On("DeleteEntry", mock.Anything, "123").Return(errors.New("network down"))

	svc.DeleteRemote(context.Background(), "123")

	pending, err := storage.ListPendingDeletes()
	require.NoError(t, err)
	assert.Equal(t, []string{"123"}, pending)
}

func TestSyncService_DeleteRemote_NoQueueOnSuccess(t *testing.T) {
	storage := NewMemoryStorage()
	remote := new(MockRemote)
	svc := newTestSync(storage, remote)

	remote.On("DeleteEntry", mock.Anything, "123").Return(nil)

	svc.DeleteRemote(context.Background(), "123")

	pending, err := storage.ListPendingDeletes()
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestSyncService_SyncAchievements(t *testing.T) {
	storage := NewMemoryStorage()
	remote := new(MockRemote)
	svc := newTestSync(storage, remote)

	_, err := storage.AddEntry("original-green", entry.SourceManual)
	require.NoError(t, err)

	remote.On("SyncAchievements", mock.Anything, mock.MatchedBy(func(ids []string) bool {
		for _, id := range ids {
			if id == "first-can" {
				return true
			}
		}
		return false
	})).Return(nil)

	require.NoError(t, svc.SyncAchievements(context.Background()))
	remote.AssertExpectations(t)
}

func TestSyncService_SyncAchievements_EmptyJournalSkipsRemote(t *testing.T) {
	storage := NewMemoryStorage()
	remote := new(MockRemote)
	svc := newTestSync(storage, remote)

	require.NoError(t, svc.SyncAchievements(context.Background()))
	remote.AssertNotCalled(t, "SyncAchievements", mock.Anything, mock.Anything)
}

func TestSyncService_Run_SecondRunWhileSyncing(t *testing.T) {
	storage := NewMemoryStorage()
	remote := new(MockRemote)
	svc := newTestSync(storage, remote)

	started := make(chan struct{})
	release := make(chan struct{})
	remote.On("ListEntries", mock.Anything).Run(func(mock.Arguments) {
		close(started)
		<-release
	}).Return([]entry.Entry{}, nil)

	done := make(chan error, 1)
	go func() {
		_, err := svc.Run(context.Background())
		done <- err
	}()

	<-started
	_, err := svc.Run(context.Background())
	assert.ErrorIs(t, err, ErrSyncInProgress)

	close(release)
	require.NoError(t, <-done)
}

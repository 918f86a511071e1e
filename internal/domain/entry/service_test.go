package entry

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/exp/slog"
)

// MockRepository is a mock implementation of the Repository interface for testing
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) List(ctx context.Context, userID int) ([]Entry, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Entry), args.Error(1)
}

func (m *MockRepository) Upsert(ctx context.Context, userID int, entries []Entry) (int, error) {
	args := m.Called(ctx, userID, entries)
	return args.Int(0), args.Error(1)
}

func (m *MockRepository) Delete(ctx context.Context, userID int, entryID string) error {
	args := m.Called(ctx, userID, entryID)
	return args.Error(0)
}

func (m *MockRepository) CountByDrink(ctx context.Context) (map[string]int, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int), args.Error(1)
}

func newTestService(repo Repository) Servicer {
	return NewService(repo, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestService_Upsert_SortsOldestFirst(t *testing.T) {
	repo := new(MockRepository)
	svc := newTestService(repo)

	now := time.Now()
	req := UpsertRequest{Entries: []UpsertEntry{
		{ID: "2", DrinkID: "mango-loco", LoggedAt: now},
		{ID: "1", DrinkID: "original-green", LoggedAt: now.Add(-time.Hour)},
	}}

	repo.On("Upsert", mock.Anything, 7, mock.MatchedBy(func(rows []Entry) bool {
		return len(rows) == 2 && rows[0].ID == "1" && rows[1].ID == "2" &&
			rows[0].UserID == 7 && rows[1].UserID == 7
	})).Return(2, nil)

	resp, err := svc.Upsert(context.Background(), 7, req)
	assert.NoError(t, err)
	assert.Equal(t, 2, resp.Processed)
	assert.Equal(t, 0, resp.Skipped)
	repo.AssertExpectations(t)
}

func TestService_Upsert_ReportsSkippedDuplicates(t *testing.T) {
	repo := new(MockRepository)
	svc := newTestService(repo)

	req := UpsertRequest{Entries: []UpsertEntry{
		{ID: "1", DrinkID: "original-green", LoggedAt: time.Now()},
		{ID: "2", DrinkID: "original-green", LoggedAt: time.Now()},
	}}

	// Сервер уже знает одну из записей - это не ошибка.
	repo.On("Upsert", mock.Anything, 1, mock.Anything).Return(1, nil)

	resp, err := svc.Upsert(context.Background(), 1, req)
	assert.NoError(t, err)
	assert.Equal(t, 1, resp.Processed)
	assert.Equal(t, 1, resp.Skipped)
}

func TestService_Upsert_RejectsUnknownDrink(t *testing.T) {
	repo := new(MockRepository)
	svc := newTestService(repo)

	req := UpsertRequest{Entries: []UpsertEntry{
		{ID: "1", DrinkID: "no-such-drink", LoggedAt: time.Now()},
	}}

	_, err := svc.Upsert(context.Background(), 1, req)
	assert.ErrorIs(t, err, ErrUnknownDrink)
	repo.AssertNotCalled(t, "Upsert")
}

func TestService_Upsert_RejectsEmptyID(t *testing.T) {
	repo := new(MockRepository)
	svc := newTestService(repo)

	req := UpsertRequest{Entries: []UpsertEntry{
		{ID: "", DrinkID: "original-green", LoggedAt: time.Now()},
	}}

	_, err := svc.Upsert(context.Background(), 1, req)
	assert.ErrorIs(t, err, ErrInvalidEntry)
}

func TestService_Delete_AbsentIDIsNoError(t *testing.T) {
	repo := new(MockRepository)
	svc := newTestService(repo)

	repo.On("Delete", mock.Anything, 3, "gone").Return(nil)

	err := svc.Delete(context.Background(), 3, "gone")
	assert.NoError(t, err)
}

func TestService_GlobalStats(t *testing.T) {
	repo := new(MockRepository)
	svc := newTestService(repo)

	repo.On("CountByDrink", mock.Anything).Return(map[string]int{
		"original-green": 3,
		"mango-loco":     2,
	}, nil)

	resp, err := svc.GlobalStats(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 5, resp.Total)
}

func TestService_List_RepositoryError(t *testing.T) {
	repo := new(MockRepository)
	svc := newTestService(repo)

	repo.On("List", mock.Anything, 1).Return(nil, errors.New("connection lost"))

	_, err := svc.List(context.Background(), 1)
	assert.Error(t, err)
}

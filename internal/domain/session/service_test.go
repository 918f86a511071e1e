package session

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

func (m *MockRepository) Create(ctx context.Context, userID int, tokenHash string, expiresAt time.Time) error {
	args := m.Called(ctx, userID, tokenHash, expiresAt)
	return args.Error(0)
}

func (m *MockRepository) Validate(ctx context.Context, tokenHash string) (int, error) {
	args := m.Called(ctx, tokenHash)
	return args.Int(0), args.Error(1)
}

func (m *MockRepository) Delete(ctx context.Context, tokenHash string) error {
	args := m.Called(ctx, tokenHash)
	return args.Error(0)
}

func newTestService(repo Repository) *Service {
	return NewService(repo, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestService_Create(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo)

	userID := 123

	// хэш непредсказуем, проверяем формат и срок жизни
	mockRepo.On("Create", mock.Anything, userID, mock.MatchedBy(func(hash string) bool {
		return len(hash) == 64
	}), mock.MatchedBy(func(expiresAt time.Time) bool {
		return expiresAt.After(time.Now())
	})).Return(nil)

	token, err := service.Create(context.Background(), userID)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	// 32 байта в base64 с паддингом - 44 символа
	assert.Len(t, token, 44)

	mockRepo.AssertExpectations(t)
}

func TestService_Create_RepositoryError(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo)

	mockRepo.On("Create", mock.Anything, 123, mock.AnythingOfType("string"), mock.AnythingOfType("time.Time")).Return(errors.New("database error"))

	_, err := service.Create(context.Background(), 123)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "database error")

	mockRepo.AssertExpectations(t)
}

func TestService_Validate(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo)

	userID := 123
	token := "test_token_123"

	mockRepo.On("Validate", mock.Anything, hashToken(token)).Return(userID, nil)

	validatedUserID, err := service.Validate(context.Background(), token)
	assert.NoError(t, err)
	assert.Equal(t, userID, validatedUserID)

	mockRepo.AssertExpectations(t)
}

func TestService_Validate_Invalid(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo)

	mockRepo.On("Validate", mock.Anything, mock.AnythingOfType("string")).Return(0, errors.New("invalid session"))

	_, err := service.Validate(context.Background(), "bad_token")
	assert.Error(t, err)
}

func TestService_Revoke(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo)

	token := "test_token_123"
	mockRepo.On("Delete", mock.Anything, hashToken(token)).Return(nil)

	err := service.Revoke(context.Background(), token)
	assert.NoError(t, err)

	mockRepo.AssertExpectations(t)
}

func TestService_Revoke_SameTokenSameHash(t *testing.T) {
	// один токен всегда даёт один хэш - повторный logout идемпотентен
	assert.Equal(t, hashToken("abc"), hashToken("abc"))
	assert.NotEqual(t, hashToken("abc"), hashToken("abd"))
}

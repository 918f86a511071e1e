package user

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/exp/slog"
)

// MockRepository is a mock implementation of the Repository interface for testing
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, login, passwordHash string) (int, error) {
	args := m.Called(ctx, login, passwordHash)
	return args.Int(0), args.Error(1)
}

func (m *MockRepository) FindByLogin(ctx context.Context, login string) (User, error) {
	args := m.Called(ctx, login)
	return args.Get(0).(User), args.Error(1)
}

func newTestService(repo Repository) *Service {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(repo, NewPasswordValidator(), log)
}

func TestService_Register(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo)

	login := "testuser"
	password := "testpassword123"

	// хэш непредсказуем, проверяем что он bcrypt-совместим
	mockRepo.On("Create", mock.Anything, login, mock.MatchedBy(func(hash string) bool {
		return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
	})).Return(123, nil)

	userID, err := service.Register(context.Background(), login, password)
	assert.NoError(t, err)
	assert.Equal(t, 123, userID)

	mockRepo.AssertExpectations(t)
}

func TestService_Register_InvalidInput(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo)

	_, err := service.Register(context.Background(), "ab", "short")
	assert.ErrorIs(t, err, ErrInvalidInput)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Register_RepositoryError(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo)

	mockRepo.On("Create", mock.Anything, "testuser", mock.AnythingOfType("string")).Return(0, errors.New("database error"))

	_, err := service.Register(context.Background(), "testuser", "testpassword123")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "database error")

	mockRepo.AssertExpectations(t)
}

func TestService_Authenticate_Success(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo)

	login := "testuser"
	password := "testpassword123"

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	assert.NoError(t, err)

	stored := User{
		ID:       123,
		Login:    login,
		Password: string(hash),
	}

	mockRepo.On("FindByLogin", mock.Anything, login).Return(stored, nil)

	authUser, err := service.Authenticate(context.Background(), login, password)
	assert.NoError(t, err)
	assert.Equal(t, stored, authUser)

	mockRepo.AssertExpectations(t)
}

func TestService_Authenticate_UserNotFound(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo)

	mockRepo.On("FindByLogin", mock.Anything, "nonexistent").Return(User{}, errors.New("no rows"))

	_, err := service.Authenticate(context.Background(), "nonexistent", "testpassword123")
	assert.ErrorIs(t, err, ErrNotFound)

	mockRepo.AssertExpectations(t)
}

func TestService_Authenticate_InvalidPassword(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo)

	hash, err := bcrypt.GenerateFromPassword([]byte("correctpassword1"), bcrypt.DefaultCost)
	assert.NoError(t, err)

	stored := User{ID: 123, Login: "testuser", Password: string(hash)}
	mockRepo.On("FindByLogin", mock.Anything, "testuser").Return(stored, nil)

	_, err = service.Authenticate(context.Background(), "testuser", "wrongpassword1")
	assert.ErrorIs(t, err, ErrInvalidAuth)

	mockRepo.AssertExpectations(t)
}

func TestService_Authenticate_InvalidLogin(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo)

	// логин не проходит валидацию, до репозитория не доходим
	_, err := service.Authenticate(context.Background(), "a b", "testpassword123")
	assert.ErrorIs(t, err, ErrInvalidAuth)
	mockRepo.AssertNotCalled(t, "FindByLogin", mock.Anything, mock.Anything)
}

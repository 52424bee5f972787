package app_test

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"gomemo/internal/memo/domain/entities"
)

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) Create(ctx context.Context, user *entities.User) (*entities.User, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *mockUserRepository) FindByID(ctx context.Context, id string) (*entities.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

type mockMemoRepository struct {
	mock.Mock
}

func (m *mockMemoRepository) ListByUserID(ctx context.Context, userID string) ([]entities.Memo, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.Memo), args.Error(1)
}

func (m *mockMemoRepository) Append(ctx context.Context, userID string, memo entities.Memo) (*entities.Memo, error) {
	args := m.Called(ctx, userID, memo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Memo), args.Error(1)
}

func (m *mockMemoRepository) Delete(ctx context.Context, userID, memoID string) error {
	args := m.Called(ctx, userID, memoID)
	return args.Error(0)
}

type mockPasswordService struct {
	mock.Mock
}

func (m *mockPasswordService) Hash(ctx context.Context, password string) (string, error) {
	args := m.Called(ctx, password)
	return args.String(0), args.Error(1)
}

func (m *mockPasswordService) Verify(ctx context.Context, password, hash string) (bool, error) {
	args := m.Called(ctx, password, hash)
	return args.Bool(0), args.Error(1)
}

type mockTokenService struct {
	mock.Mock
}

func (m *mockTokenService) GenerateToken(ctx context.Context, userID string) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}

func (m *mockTokenService) ValidateToken(ctx context.Context, token string) (string, error) {
	args := m.Called(ctx, token)
	return args.String(0), args.Error(1)
}

type mockMemoCache struct {
	mock.Mock
}

func (m *mockMemoCache) Get(ctx context.Context, userID string) ([]entities.Memo, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.Memo), args.Error(1)
}

func (m *mockMemoCache) Version(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockMemoCache) Set(ctx context.Context, userID string, version int64, memos []entities.Memo) error {
	return m.Called(ctx, userID, version, memos).Error(0)
}

func (m *mockMemoCache) Invalidate(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *mockMemoCache) Close() error {
	return m.Called().Error(0)
}

// memoryStore - хранилище в памяти для проверки свойств списков заметок.
type memoryStore struct {
	mu    sync.Mutex
	memos map[string][]entities.Memo
}

func newMemoryStore() *memoryStore {
	return &memoryStore{memos: make(map[string][]entities.Memo)}
}

func (s *memoryStore) ListByUserID(_ context.Context, userID string) ([]entities.Memo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]entities.Memo, len(s.memos[userID]))
	copy(out, s.memos[userID])
	return out, nil
}

func (s *memoryStore) Append(_ context.Context, userID string, memo entities.Memo) (*entities.Memo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	memo.ID = uuid.NewString()
	s.memos[userID] = append(s.memos[userID], memo)
	return &memo, nil
}

func (s *memoryStore) Delete(_ context.Context, userID, memoID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.memos[userID]
	for i, m := range list {
		if m.ID == memoID {
			s.memos[userID] = append(list[:i:i], list[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("delete %s: %w", memoID, entities.ErrMemoNotFound)
}

// memoryUsers - хранилище пользователей в памяти с уникальным email.
type memoryUsers struct {
	mu    sync.Mutex
	users map[string]*entities.User
}

func newMemoryUsers() *memoryUsers {
	return &memoryUsers{users: make(map[string]*entities.User)}
}

func (s *memoryUsers) Create(_ context.Context, user *entities.User) (*entities.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == user.Email {
			return nil, fmt.Errorf("create %s: %w", user.Email, entities.ErrEmailTaken)
		}
	}

	created := *user
	created.ID = uuid.NewString()
	s.users[created.ID] = &created
	return &created, nil
}

func (s *memoryUsers) FindByID(_ context.Context, id string) (*entities.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if u, ok := s.users[id]; ok {
		found := *u
		return &found, nil
	}
	return nil, entities.ErrUserNotFound
}

func (s *memoryUsers) FindByEmail(_ context.Context, email string) (*entities.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == email {
			found := *u
			return &found, nil
		}
	}
	return nil, entities.ErrUserNotFound
}

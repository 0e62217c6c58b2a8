// Package mocks provides testify mocks for the repository interfaces.
package mocks

import (
	"context"

	"github.com/bnema/lockbreak/internal/domain/entity"
	"github.com/bnema/lockbreak/internal/domain/repository"
	"github.com/stretchr/testify/mock"
)

// MockLockHistoryRepository is a testify mock of repository.LockHistoryRepository.
type MockLockHistoryRepository struct {
	mock.Mock
}

// NewMockLockHistoryRepository creates a mock and asserts its expectations on cleanup.
func NewMockLockHistoryRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockLockHistoryRepository {
	m := &MockLockHistoryRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockLockHistoryRepository) Save(ctx context.Context, event *entity.LockEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockLockHistoryRepository) Finish(ctx context.Context, event *entity.LockEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockLockHistoryRepository) GetRecent(ctx context.Context, limit int) ([]*entity.LockEvent, error) {
	args := m.Called(ctx, limit)
	events, _ := args.Get(0).([]*entity.LockEvent)
	return events, args.Error(1)
}

func (m *MockLockHistoryRepository) Stats(ctx context.Context) (*entity.LockStats, error) {
	args := m.Called(ctx)
	stats, _ := args.Get(0).(*entity.LockStats)
	return stats, args.Error(1)
}

func (m *MockLockHistoryRepository) Prune(ctx context.Context, keepCount int) (int64, error) {
	args := m.Called(ctx, keepCount)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLockHistoryRepository) DeleteAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

var _ repository.LockHistoryRepository = (*MockLockHistoryRepository)(nil)

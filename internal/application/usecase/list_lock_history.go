package usecase

import (
	"context"
	"fmt"

	"github.com/bnema/lockbreak/internal/domain/entity"
	"github.com/bnema/lockbreak/internal/domain/repository"
)

const defaultHistoryLimit = 50

// ListLockHistoryUseCase reads the break history for the CLI.
type ListLockHistoryUseCase struct {
	repo repository.LockHistoryRepository
}

func NewListLockHistoryUseCase(repo repository.LockHistoryRepository) *ListLockHistoryUseCase {
	return &ListLockHistoryUseCase{repo: repo}
}

type ListLockHistoryOutput struct {
	Events []*entity.LockEvent
	Stats  *entity.LockStats
}

func (uc *ListLockHistoryUseCase) Execute(ctx context.Context, limit int) (*ListLockHistoryOutput, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	events, err := uc.repo.GetRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("get recent locks: %w", err)
	}

	stats, err := uc.repo.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("get lock stats: %w", err)
	}
	if stats == nil {
		stats = &entity.LockStats{}
	}

	return &ListLockHistoryOutput{Events: events, Stats: stats}, nil
}

// Clear deletes the whole history and returns the number of deleted events.
func (uc *ListLockHistoryUseCase) Clear(ctx context.Context) (int64, error) {
	deleted, err := uc.repo.DeleteAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("clear lock history: %w", err)
	}
	return deleted, nil
}

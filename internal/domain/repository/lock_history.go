// Package repository defines persistence interfaces for domain entities.
package repository

import (
	"context"

	"github.com/bnema/lockbreak/internal/domain/entity"
)

// LockHistoryRepository persists the break history.
type LockHistoryRepository interface {
	// Save inserts a new event. Events without EndedAt are still in progress.
	Save(ctx context.Context, event *entity.LockEvent) error
	// Finish records how and when an event ended.
	Finish(ctx context.Context, event *entity.LockEvent) error
	GetRecent(ctx context.Context, limit int) ([]*entity.LockEvent, error)
	Stats(ctx context.Context) (*entity.LockStats, error)

	// Prune deletes the oldest events beyond keepCount.
	// Returns number of deleted events.
	Prune(ctx context.Context, keepCount int) (int64, error)
	DeleteAll(ctx context.Context) (int64, error)
}

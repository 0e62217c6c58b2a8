package sqlite_test

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/lockbreak/internal/domain/entity"
	"github.com/bnema/lockbreak/internal/infrastructure/persistence/sqlite"
	"github.com/bnema/lockbreak/internal/logging"
)

func testCtx() context.Context {
	logger := logging.NewFromConfigValues("debug", "console")
	return logging.WithContext(context.Background(), logger)
}

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sqlite.NewConnection(testCtx(), filepath.Join(t.TempDir(), "nested", "lockbreak.sqlite"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlite.Close(db) })
	return db
}

func TestNewConnection_RunsMigrations(t *testing.T) {
	ctx := testCtx()
	db := openTestDB(t)

	version, err := sqlite.GetMigrationStatus(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, int64(1), version)

	// Running them again is a no-op.
	require.NoError(t, sqlite.RunMigrations(ctx, db))
}

func TestNewConnection_EmptyPath(t *testing.T) {
	_, err := sqlite.NewConnection(testCtx(), "")
	assert.Error(t, err)
}

func TestLockHistoryRepository_SaveFinishAndList(t *testing.T) {
	ctx := testCtx()
	repo := sqlite.NewLockHistoryRepository(openTestDB(t))

	started := time.Date(2026, 5, 4, 9, 30, 0, 0, time.UTC)
	event := &entity.LockEvent{ID: "evt-1", Mode: entity.LockModeOverlay, StartedAt: started}
	require.NoError(t, repo.Save(ctx, event))

	recent, err := repo.GetRecent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Nil(t, recent[0].EndedAt)
	assert.Empty(t, recent[0].Reason)

	event.End(started.Add(3*time.Minute), entity.EndReasonUnlocked, nil)
	require.NoError(t, repo.Finish(ctx, event))

	recent, err = repo.GetRecent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	got := recent[0]
	assert.Equal(t, event.ID, got.ID)
	assert.Equal(t, entity.LockModeOverlay, got.Mode)
	assert.True(t, got.StartedAt.Equal(started))
	require.NotNil(t, got.EndedAt)
	assert.Equal(t, entity.EndReasonUnlocked, got.Reason)
	assert.Equal(t, 3*time.Minute, got.Duration())
}

func TestLockHistoryRepository_SaveRejectsInvalid(t *testing.T) {
	ctx := testCtx()
	repo := sqlite.NewLockHistoryRepository(openTestDB(t))

	err := repo.Save(ctx, &entity.LockEvent{ID: "x", Mode: "hibernate", StartedAt: time.Now()})
	assert.ErrorIs(t, err, entity.ErrInvalidLockEvent)

	err = repo.Finish(ctx, &entity.LockEvent{ID: "x", Mode: entity.LockModeSystem, StartedAt: time.Now()})
	assert.ErrorIs(t, err, entity.ErrInvalidLockEvent)
}

func TestLockHistoryRepository_FinishUnknown(t *testing.T) {
	ctx := testCtx()
	repo := sqlite.NewLockHistoryRepository(openTestDB(t))

	event := &entity.LockEvent{ID: "missing", Mode: entity.LockModeSystem, StartedAt: time.Now()}
	event.End(time.Now(), entity.EndReasonExpired, nil)

	assert.ErrorIs(t, repo.Finish(ctx, event), sql.ErrNoRows)
}

func seedEvents(t *testing.T, ctx context.Context, repo interface {
	Save(context.Context, *entity.LockEvent) error
	Finish(context.Context, *entity.LockEvent) error
}, reasons []entity.EndReason) {
	t.Helper()
	base := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)
	for i, reason := range reasons {
		start := base.Add(time.Duration(i) * time.Hour)
		event := &entity.LockEvent{
			ID:        entity.LockEventID(fmt.Sprintf("evt-%02d", i)),
			Mode:      entity.LockModeSystem,
			StartedAt: start,
		}
		require.NoError(t, repo.Save(ctx, event))

		var lockErr error
		if reason == entity.EndReasonFailed {
			lockErr = fmt.Errorf("loginctl: exit status 1")
		}
		event.End(start.Add(time.Minute), reason, lockErr)
		require.NoError(t, repo.Finish(ctx, event))
	}
}

func TestLockHistoryRepository_RecentOrderAndStats(t *testing.T) {
	ctx := testCtx()
	repo := sqlite.NewLockHistoryRepository(openTestDB(t))

	seedEvents(t, ctx, repo, []entity.EndReason{
		entity.EndReasonExpired,
		entity.EndReasonExpired,
		entity.EndReasonUnlocked,
		entity.EndReasonStopped,
		entity.EndReasonFailed,
	})

	recent, err := repo.GetRecent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, entity.LockEventID("evt-04"), recent[0].ID)
	assert.Equal(t, entity.LockEventID("evt-03"), recent[1].ID)
	assert.Equal(t, "loginctl: exit status 1", recent[0].Error)

	stats, err := repo.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, entity.LockStats{
		Total:     5,
		Expired:   2,
		Unlocked:  1,
		Stopped:   1,
		Failed:    1,
		TotalTime: 5 * time.Minute,
	}, *stats)
}

func TestLockHistoryRepository_PruneAndDeleteAll(t *testing.T) {
	ctx := testCtx()
	repo := sqlite.NewLockHistoryRepository(openTestDB(t))

	seedEvents(t, ctx, repo, []entity.EndReason{
		entity.EndReasonExpired,
		entity.EndReasonExpired,
		entity.EndReasonExpired,
		entity.EndReasonExpired,
	})

	deleted, err := repo.Prune(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	recent, err := repo.GetRecent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recent, 3)
	assert.Equal(t, entity.LockEventID("evt-01"), recent[2].ID)

	deleted, err = repo.DeleteAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), deleted)

	stats, err := repo.Stats(ctx)
	require.NoError(t, err)
	assert.Zero(t, stats.Total)
}

package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/bnema/lockbreak/internal/domain/entity"
	"github.com/bnema/lockbreak/internal/domain/repository"
	"github.com/bnema/lockbreak/internal/logging"
)

const (
	insertLockEvent = `INSERT INTO lock_events (id, mode, started_at, ended_at, end_reason, error)
VALUES (?, ?, ?, ?, ?, ?)`

	finishLockEvent = `UPDATE lock_events SET ended_at = ?, end_reason = ?, error = ? WHERE id = ?`

	selectRecentLockEvents = `SELECT id, mode, started_at, ended_at, end_reason, error
FROM lock_events ORDER BY started_at DESC, id DESC LIMIT ?`

	selectLockStats = `SELECT
    COUNT(*),
    COALESCE(SUM(end_reason = 'expired'), 0),
    COALESCE(SUM(end_reason = 'unlocked'), 0),
    COALESCE(SUM(end_reason = 'stopped'), 0),
    COALESCE(SUM(end_reason = 'failed'), 0),
    COALESCE(SUM(CASE WHEN ended_at IS NOT NULL THEN ended_at - started_at ELSE 0 END), 0)
FROM lock_events`

	pruneLockEvents = `DELETE FROM lock_events WHERE id NOT IN (
    SELECT id FROM lock_events ORDER BY started_at DESC, id DESC LIMIT ?
)`

	deleteAllLockEvents = `DELETE FROM lock_events`
)

type lockHistoryRepo struct {
	db *sql.DB
}

// NewLockHistoryRepository creates a SQLite-backed break history.
// Timestamps are stored as unix milliseconds.
func NewLockHistoryRepository(db *sql.DB) repository.LockHistoryRepository {
	return &lockHistoryRepo{db: db}
}

func (r *lockHistoryRepo) Save(ctx context.Context, event *entity.LockEvent) error {
	if err := event.Validate(); err != nil {
		return err
	}
	logging.FromContext(ctx).Debug().
		Str("event", string(event.ID)).
		Str("mode", string(event.Mode)).
		Msg("saving lock event")

	_, err := r.db.ExecContext(ctx, insertLockEvent,
		string(event.ID),
		string(event.Mode),
		toMillis(event.StartedAt),
		nullMillis(event.EndedAt),
		nullString(string(event.Reason)),
		event.Error,
	)
	if err != nil {
		return fmt.Errorf("insert lock event: %w", err)
	}
	return nil
}

func (r *lockHistoryRepo) Finish(ctx context.Context, event *entity.LockEvent) error {
	if err := event.Validate(); err != nil {
		return err
	}
	if event.EndedAt == nil {
		return fmt.Errorf("%w: event %s has not ended", entity.ErrInvalidLockEvent, event.ID)
	}

	res, err := r.db.ExecContext(ctx, finishLockEvent,
		toMillis(*event.EndedAt),
		nullString(string(event.Reason)),
		event.Error,
		string(event.ID),
	)
	if err != nil {
		return fmt.Errorf("finish lock event: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("finish lock event %s: %w", event.ID, sql.ErrNoRows)
	}
	return nil
}

func (r *lockHistoryRepo) GetRecent(ctx context.Context, limit int) ([]*entity.LockEvent, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := r.db.QueryContext(ctx, selectRecentLockEvents, limit)
	if err != nil {
		return nil, fmt.Errorf("query lock events: %w", err)
	}
	defer rows.Close()

	events := make([]*entity.LockEvent, 0, limit)
	for rows.Next() {
		var (
			id, mode, errText string
			startedAt         int64
			endedAt           sql.NullInt64
			reason            sql.NullString
		)
		if err := rows.Scan(&id, &mode, &startedAt, &endedAt, &reason, &errText); err != nil {
			return nil, fmt.Errorf("scan lock event: %w", err)
		}

		event := &entity.LockEvent{
			ID:        entity.LockEventID(id),
			Mode:      entity.LockMode(mode),
			StartedAt: fromMillis(startedAt),
			Reason:    entity.EndReason(reason.String),
			Error:     errText,
		}
		if endedAt.Valid {
			t := fromMillis(endedAt.Int64)
			event.EndedAt = &t
		}
		events = append(events, event)
	}
	return events, rows.Err()
}

func (r *lockHistoryRepo) Stats(ctx context.Context) (*entity.LockStats, error) {
	var (
		stats   entity.LockStats
		totalMs int64
	)
	err := r.db.QueryRowContext(ctx, selectLockStats).Scan(
		&stats.Total,
		&stats.Expired,
		&stats.Unlocked,
		&stats.Stopped,
		&stats.Failed,
		&totalMs,
	)
	if err != nil {
		return nil, fmt.Errorf("query lock stats: %w", err)
	}
	stats.TotalTime = time.Duration(totalMs) * time.Millisecond
	return &stats, nil
}

func (r *lockHistoryRepo) Prune(ctx context.Context, keepCount int) (int64, error) {
	if keepCount < 0 {
		keepCount = 0
	}
	res, err := r.db.ExecContext(ctx, pruneLockEvents, keepCount)
	if err != nil {
		return 0, fmt.Errorf("prune lock events: %w", err)
	}
	return res.RowsAffected()
}

func (r *lockHistoryRepo) DeleteAll(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, deleteAllLockEvents)
	if err != nil {
		return 0, fmt.Errorf("delete lock events: %w", err)
	}
	return res.RowsAffected()
}

func toMillis(t time.Time) int64 {
	return t.UTC().UnixMilli()
}

func fromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

func nullMillis(t *time.Time) sql.NullInt64 {
	if t == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: toMillis(*t), Valid: true}
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

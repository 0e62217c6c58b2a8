package usecase

import (
	"context"
	"time"

	"github.com/bnema/lockbreak/internal/domain/entity"
)

// LockAction renders a blocking lock when the interval elapses.
// Lock blocks until the lock is over: expired after duration, ended by the user,
// or aborted because ctx was cancelled (EndReasonStopped).
type LockAction interface {
	Mode() entity.LockMode
	Lock(ctx context.Context, duration time.Duration) (entity.EndReason, error)
}

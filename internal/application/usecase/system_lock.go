package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/bnema/lockbreak/internal/application/port"
	"github.com/bnema/lockbreak/internal/domain/entity"
	"github.com/bnema/lockbreak/internal/logging"
)

// DefaultLockConfirmTimeout is how long the system action waits for the lock
// notification before falling back to the fixed lock duration.
const DefaultLockConfirmTimeout = 5 * time.Second

// SystemLockAction delegates the lock to the operating system.
//
// The native lock screen gives no direct control back. When a LockStateWatcher is
// available and ResumeOnUnlock is set, the action waits for the real unlock.
// Otherwise, or when no lock notification arrives within ConfirmTimeout, it waits
// out the fixed lock duration instead.
type SystemLockAction struct {
	locker  port.ScreenLocker
	watcher port.LockStateWatcher
	clock   port.Clock

	ResumeOnUnlock bool
	ConfirmTimeout time.Duration
}

// NewSystemLockAction creates a system action. watcher may be nil.
func NewSystemLockAction(locker port.ScreenLocker, watcher port.LockStateWatcher, clock port.Clock) *SystemLockAction {
	return &SystemLockAction{
		locker:         locker,
		watcher:        watcher,
		clock:          clock,
		ResumeOnUnlock: watcher != nil,
		ConfirmTimeout: DefaultLockConfirmTimeout,
	}
}

func (a *SystemLockAction) Mode() entity.LockMode {
	return entity.LockModeSystem
}

func (a *SystemLockAction) Lock(ctx context.Context, duration time.Duration) (entity.EndReason, error) {
	log := logging.FromContext(ctx).With().Str("backend", a.locker.Name()).Logger()

	var states chan bool
	if a.watcher != nil && a.ResumeOnUnlock {
		states = make(chan bool, 8)
		if err := a.watcher.AddLockedSignal(states); err != nil {
			log.Warn().Err(err).Msg("cannot watch lock state, using fixed lock duration")
			states = nil
		} else {
			defer func() {
				if err := a.watcher.RemoveLockedSignal(states); err != nil {
					log.Debug().Err(err).Msg("failed to remove lock state signal")
				}
			}()
		}
	}

	deadline := a.clock.Now().Add(duration)
	if err := a.locker.Lock(ctx); err != nil {
		return entity.EndReasonFailed, fmt.Errorf("%s lock: %w", a.locker.Name(), err)
	}
	log.Info().Msg("system lock requested")

	if states != nil {
		if reason, ok := a.waitForUnlock(ctx, states); ok {
			return reason, nil
		}
		log.Debug().Dur("confirm_timeout", a.ConfirmTimeout).Msg("no lock notification, falling back to fixed wait")
	}

	select {
	case <-ctx.Done():
		return entity.EndReasonStopped, nil
	case <-a.clock.After(deadline.Sub(a.clock.Now())):
		return entity.EndReasonExpired, nil
	}
}

// waitForUnlock waits for a locked→unlocked transition. It returns ok=false when the
// session never reported being locked within ConfirmTimeout.
func (a *SystemLockAction) waitForUnlock(ctx context.Context, states <-chan bool) (entity.EndReason, bool) {
	timeout := a.ConfirmTimeout
	if timeout <= 0 {
		timeout = DefaultLockConfirmTimeout
	}
	confirm := a.clock.After(timeout)
	locked := false

	for {
		select {
		case <-ctx.Done():
			return entity.EndReasonStopped, true
		case <-confirm:
			return "", false
		case state := <-states:
			switch {
			case state && !locked:
				locked = true
				// A nil channel never fires: from here on only the unlock ends the wait.
				confirm = nil
			case !state && locked:
				return entity.EndReasonUnlocked, true
			}
		}
	}
}

var _ LockAction = (*SystemLockAction)(nil)

// Package usecase implements the lock timer, the lock actions and the CLI operations.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/bnema/lockbreak/internal/application/port"
	"github.com/bnema/lockbreak/internal/domain/entity"
	"github.com/bnema/lockbreak/internal/domain/repository"
	"github.com/bnema/lockbreak/internal/logging"
)

// DefaultLockDuration bounds how long a lock stays active before the loop resumes.
const DefaultLockDuration = 5 * time.Minute

var ErrInvalidLockDuration = errors.New("lock duration must be at least 1s")

// LockTimerConfig holds the per-session settings read when a session starts.
type LockTimerConfig struct {
	LockDuration time.Duration
	// HistoryLimit prunes the break history after each lock; 0 keeps everything.
	HistoryLimit int
}

// LockTimer starts sessions of the periodic lock loop.
type LockTimer struct {
	action  LockAction
	clock   port.Clock
	history repository.LockHistoryRepository
	cfg     LockTimerConfig
}

// NewLockTimer creates a LockTimer. history may be nil to disable recording.
func NewLockTimer(
	action LockAction,
	clock port.Clock,
	history repository.LockHistoryRepository,
	cfg LockTimerConfig,
) *LockTimer {
	if cfg.LockDuration == 0 {
		cfg.LockDuration = DefaultLockDuration
	}
	return &LockTimer{
		action:  action,
		clock:   clock,
		history: history,
		cfg:     cfg,
	}
}

// Mode returns the mode of the configured lock action.
func (t *LockTimer) Mode() entity.LockMode {
	return t.action.Mode()
}

// LockDuration returns the configured lock duration.
func (t *LockTimer) LockDuration() time.Duration {
	return t.cfg.LockDuration
}

// Start validates the interval and spawns the session worker.
// observer receives every status change from the worker goroutine; it must not block.
func (t *LockTimer) Start(
	ctx context.Context,
	interval time.Duration,
	observer func(entity.StatusEvent),
) (*Session, error) {
	if interval < entity.MinInterval {
		return nil, fmt.Errorf("%w: %s", entity.ErrInvalidInterval, interval)
	}
	if t.cfg.LockDuration < time.Second {
		return nil, fmt.Errorf("%w: %s", ErrInvalidLockDuration, t.cfg.LockDuration)
	}
	if observer == nil {
		observer = func(entity.StatusEvent) {}
	}

	logCtx := logging.WithLockMode(logging.WithComponent(ctx, "lock-timer"), string(t.action.Mode()))
	sessionCtx, cancel := context.WithCancel(logCtx)
	s := &Session{
		timer:    t,
		interval: interval,
		observer: observer,
		ctx:      sessionCtx,
		cancel:   cancel,
		done:     make(chan struct{}),
		status:   entity.StatusRunning,
	}

	logging.FromContext(sessionCtx).Info().
		Dur("interval", interval).
		Dur("lock_duration", t.cfg.LockDuration).
		Str("mode", string(t.action.Mode())).
		Msg("session started")

	go s.run()
	return s, nil
}

// Session is one Start→Stop run of the timer loop.
// It replaces a process-wide running flag: the owner holds the session and stops it.
type Session struct {
	timer    *LockTimer
	interval time.Duration
	observer func(entity.StatusEvent)

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}

	mu     sync.Mutex
	status entity.Status
	locks  int
}

// Interval returns the configured interval.
func (s *Session) Interval() time.Duration {
	return s.interval
}

// Stop requests the worker to exit. Safe to call more than once.
func (s *Session) Stop() {
	s.cancel()
}

// Done is closed when the worker has exited.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Wait blocks until the worker exits or timeout elapses. It reports whether the worker exited.
func (s *Session) Wait(timeout time.Duration) bool {
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case <-s.done:
		return true
	case <-timer.C:
		return false
	}
}

// Running reports whether the session has neither been stopped nor exited.
func (s *Session) Running() bool {
	select {
	case <-s.done:
		return false
	default:
		return s.ctx.Err() == nil
	}
}

// Status returns the last status emitted by the worker.
func (s *Session) Status() entity.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// LockCount returns how many locks this session has triggered.
func (s *Session) LockCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.locks
}

func (s *Session) emit(event entity.StatusEvent) {
	if event.At.IsZero() {
		event.At = s.timer.clock.Now()
	}
	s.mu.Lock()
	s.status = event.Status
	s.mu.Unlock()
	s.observer(event)
}

func (s *Session) run() {
	log := logging.FromContext(s.ctx)
	defer close(s.done)
	defer func() {
		s.emit(entity.StatusEvent{Status: entity.StatusStopped})
		log.Info().Int("locks", s.LockCount()).Msg("session stopped")
	}()

	s.emit(entity.StatusEvent{Status: entity.StatusRunning, Interval: s.interval})

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-s.timer.clock.After(s.interval):
		}
		if s.ctx.Err() != nil {
			return
		}

		err := s.lockOnce()
		if s.ctx.Err() != nil {
			return
		}
		if err == nil {
			s.emit(entity.StatusEvent{Status: entity.StatusWaiting})
		}
	}
}

// lockOnce runs the lock action and records it. Lock errors are reported as a
// status event only; the loop keeps going.
func (s *Session) lockOnce() error {
	log := logging.FromContext(s.ctx)
	mode := s.timer.action.Mode()

	s.mu.Lock()
	s.locks++
	s.mu.Unlock()

	s.emit(entity.StatusEvent{Status: entity.StatusLocking, Mode: mode})
	event := s.timer.beginEvent(s.ctx, mode)

	reason, err := s.timer.action.Lock(s.ctx, s.timer.cfg.LockDuration)
	if err != nil {
		reason = entity.EndReasonFailed
		log.Warn().Err(err).Str("mode", string(mode)).Msg("lock action failed")
		s.emit(entity.StatusEvent{Status: entity.StatusLockFailed, Mode: mode, Err: err})
	} else {
		log.Info().Str("mode", string(mode)).Str("reason", string(reason)).Msg("lock ended")
	}

	s.timer.finishEvent(s.ctx, event, reason, err)
	return err
}

func (t *LockTimer) beginEvent(ctx context.Context, mode entity.LockMode) *entity.LockEvent {
	if t.history == nil {
		return nil
	}
	event := &entity.LockEvent{
		ID:        entity.LockEventID(uuid.NewString()),
		Mode:      mode,
		StartedAt: t.clock.Now().UTC(),
	}
	if err := t.history.Save(context.WithoutCancel(ctx), event); err != nil {
		logging.FromContext(ctx).Warn().Err(err).Msg("failed to record lock start")
		return nil
	}
	return event
}

func (t *LockTimer) finishEvent(ctx context.Context, event *entity.LockEvent, reason entity.EndReason, lockErr error) {
	if t.history == nil || event == nil {
		return
	}
	log := logging.FromContext(ctx)
	// Stop must not abort the bookkeeping of the lock it interrupted.
	writeCtx := context.WithoutCancel(ctx)

	event.End(t.clock.Now(), reason, lockErr)
	if err := t.history.Finish(writeCtx, event); err != nil {
		log.Warn().Err(err).Msg("failed to record lock end")
		return
	}
	if t.cfg.HistoryLimit > 0 {
		if deleted, err := t.history.Prune(writeCtx, t.cfg.HistoryLimit); err != nil {
			log.Warn().Err(err).Msg("failed to prune lock history")
		} else if deleted > 0 {
			log.Debug().Int64("deleted", deleted).Msg("pruned lock history")
		}
	}
}
